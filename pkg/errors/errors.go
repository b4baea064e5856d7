// Package errors carries the coded failures riskflow reports.
//
// A [Code] names the category of a problem. The CLI picks its exit status
// from it and the HTTP API its response status, so neither has to match on
// message text.
//
//	err := errors.New(errors.ErrCodeUnknownNode, "link %d: unknown target %d", i, id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // bad data, not a bug
//	}
//
// Codes fall into three classes: client codes (bad datasets, options,
// formats, styles, events), not-found codes (files, sessions) and internal
// codes.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDataset   Code = "INVALID_DATASET"
	ErrCodeUnknownNode      Code = "UNKNOWN_NODE"
	ErrCodeNonAdjacentLink  Code = "NON_ADJACENT_LINK"
	ErrCodeDegenerateCanvas Code = "DEGENERATE_CANVAS"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidEvent     Code = "INVALID_EVENT"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

type class uint8

const (
	classInternal class = iota
	classClient
	classNotFound
)

var classes = map[Code]class{
	ErrCodeInvalidInput:     classClient,
	ErrCodeInvalidDataset:   classClient,
	ErrCodeUnknownNode:      classClient,
	ErrCodeNonAdjacentLink:  classClient,
	ErrCodeDegenerateCanvas: classClient,
	ErrCodeInvalidFormat:    classClient,
	ErrCodeInvalidStyle:     classClient,
	ErrCodeInvalidPath:      classClient,
	ErrCodeInvalidEvent:     classClient,
	ErrCodeNotFound:         classNotFound,
	ErrCodeFileNotFound:     classNotFound,
	ErrCodeSessionNotFound:  classNotFound,
}

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that keeps cause in its chain.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause for display.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by bad input rather than an
// internal failure.
func IsClientError(err error) bool {
	e, ok := find(err)
	return ok && classes[e.Code] == classClient
}

// IsNotFound reports whether err signals a missing file, session or
// resource.
func IsNotFound(err error) bool {
	e, ok := find(err)
	return ok && classes[e.Code] == classNotFound
}
