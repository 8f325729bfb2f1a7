package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Code  string         `json:"code,omitempty"`
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	enc := json.NewEncoder(w)
	// Sanitized payloads already carry entity-encoded brackets.
	enc.SetEscapeHTML(false)
	return enc.Encode(j.body)
}

// JSON creates a 200 response wrapping data and optional meta.
func JSON(code string, data any, meta map[string]any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Code: code, Data: data, Meta: meta},
	}
}

// JSONError creates an error response. An HTTPError anywhere in err's chain
// sets the status and key; anything else becomes a 500. The message is always
// the status text, so the cause never reaches the client.
func JSONError(err error) Response {
	httpErr := ErrInternalServerError
	var target HTTPError
	if errors.As(err, &target) {
		httpErr = target
	}
	return jsonResponse{
		status: httpErr.Code,
		body: JSONResponse{
			Code: httpErr.Key,
			Error: &ErrorDetail{
				Code:    httpErr.Key,
				Message: http.StatusText(httpErr.Code),
			},
		},
	}
}

// HandlerFunc is an HTTP handler that returns a Response instead of writing
// to the ResponseWriter directly.
type HandlerFunc func(r *http.Request) Response

// ServeHTTP renders the returned Response. A nil Response writes 204.
func (fn HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := fn(r)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_ = resp.Render(w, r)
}
