package httputil

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/riskflow/pkg/errors"
)

// IntParam returns the integer query parameter name, or nil when it is
// absent or empty. A value that is not an integer is an INVALID_INPUT
// error.
func IntParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not an integer", name, raw)
	}
	return &v, nil
}

// BoolParam reports whether the query parameter name is set to a true
// value ("1", "true", ...). Anything unparsable is false.
func BoolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
