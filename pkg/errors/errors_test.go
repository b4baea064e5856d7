package errors

import (
	"errors"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name     string
		err      *Error
		want     string
		wantUser string
	}{
		{
			name:     "plain",
			err:      New(ErrCodeUnknownNode, "link %d: unknown target %d", 4, 99),
			want:     "UNKNOWN_NODE: link 4: unknown target 99",
			wantUser: "link 4: unknown target 99",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeInvalidDataset, cause, "decode %s", "flows.json"),
			want:     "INVALID_DATASET: decode flows.json: unexpected EOF",
			wantUser: "decode flows.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if got := UserMessage(tt.err); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}

	if got := UserMessage(cause); got != "unexpected EOF" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestWrapKeepsChain(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write scene")

	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("stdlib errors.Is lost the cause")
	}
	if New(ErrCodeInternal, "x").Unwrap() != nil {
		t.Error("New should have no cause")
	}
}

func TestCodeLookup(t *testing.T) {
	nested := Wrap(ErrCodeDegenerateCanvas, New(ErrCodeInvalidInput, "inner"), "outer")

	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", New(ErrCodeInvalidStyle, "neon"), ErrCodeInvalidStyle},
		{"outermost wins", nested, ErrCodeDegenerateCanvas},
		{"fmt wrapped", fmtWrap(New(ErrCodeSessionNotFound, "x")), ErrCodeSessionNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is matched an unrelated code")
			}
		})
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		code         Code
		client, miss bool
	}{
		{ErrCodeInvalidInput, true, false},
		{ErrCodeInvalidDataset, true, false},
		{ErrCodeUnknownNode, true, false},
		{ErrCodeNonAdjacentLink, true, false},
		{ErrCodeDegenerateCanvas, true, false},
		{ErrCodeInvalidFormat, true, false},
		{ErrCodeInvalidStyle, true, false},
		{ErrCodeInvalidPath, true, false},
		{ErrCodeInvalidEvent, true, false},
		{ErrCodeNotFound, false, true},
		{ErrCodeFileNotFound, false, true},
		{ErrCodeSessionNotFound, false, true},
		{ErrCodeInternal, false, false},
		{ErrCodeUnsupported, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := fmtWrap(New(tt.code, "x"))
			if got := IsClientError(err); got != tt.client {
				t.Errorf("IsClientError() = %v, want %v", got, tt.client)
			}
			if got := IsNotFound(err); got != tt.miss {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.miss)
			}
		})
	}

	if IsClientError(errors.New("plain")) || IsNotFound(nil) {
		t.Error("uncoded errors belong to no class")
	}
}

func fmtWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "context: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
