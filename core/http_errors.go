package core

import (
	"net/http"
	"strconv"
)

// HTTPError is an error with an HTTP status code and a stable machine-readable
// key that clients can switch on.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Stable error key (e.g., "invalid_input", "not_found")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError creates an HTTPError. An empty key falls back to "http_<code>".
func NewHTTPError(code int, key string) HTTPError {
	if key == "" {
		key = "http_" + strconv.Itoa(code)
	}
	return HTTPError{Code: code, Key: key}
}

var (
	// ErrInvalidInput is the single answer to any request whose input could not
	// be sanitized. It carries no detail about the cause.
	ErrInvalidInput = HTTPError{Code: http.StatusBadRequest, Key: "invalid_input"}

	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable    = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)
