package scrubber

import "errors"

var (
	// ErrBodyTooLarge is returned when a request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrInvalidBody is returned when a JSON or form body cannot be parsed.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrInvalidQuery is returned when the query string cannot be parsed.
	ErrInvalidQuery = errors.New("invalid query string")
	// ErrInvalidParams is returned when route parameters cannot be sanitized.
	ErrInvalidParams = errors.New("invalid route parameters")
)
