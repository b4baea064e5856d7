package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds node names so labels stay renderable.
const maxNameLength = 256

// ValidateNodeName checks a node display name.
//
// Names must be non-empty after trimming, at most 256 bytes long and free of
// control characters (newlines would break label wrapping, which splits on
// whitespace only).
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "node name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidDataset, "node name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "node name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateSessionID checks an interaction session id from a URL or file
// name. Ids are 1-64 characters of letters, digits, '-' and '_'.
func ValidateSessionID(id string) error {
	if id == "" || len(id) > 64 {
		return New(ErrCodeInvalidInput, "session id must be 1-64 characters")
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			return New(ErrCodeInvalidInput, "session id %q contains invalid characters", id)
		}
	}
	return nil
}
