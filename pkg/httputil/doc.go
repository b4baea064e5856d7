// Package httputil provides the response helpers shared by the riskflow
// HTTP API.
//
// # Errors
//
// [WriteError] maps the code of a [errors.Error] to an HTTP status with
// [StatusFor] and writes a JSON body:
//
//	{"error": "unknown node 42", "code": "UNKNOWN_NODE"}
//
// Input problems (invalid dataset, unknown node, degenerate canvas and so
// on) become 400, missing files and sessions 404, everything else 500. The
// body of a 500 never carries the internal message.
//
// # Query Parameters
//
// [IntParam] reads optional integer parameters such as ?hover=3, returning
// nil when the parameter is absent.
//
// [errors.Error]: github.com/matzehuels/riskflow/pkg/errors.Error
package httputil
