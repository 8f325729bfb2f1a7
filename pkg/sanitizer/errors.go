package sanitizer

import "errors"

var (
	// ErrMaxDepthExceeded is returned when input nests deeper than the configured limit.
	ErrMaxDepthExceeded = errors.New("value nesting exceeds maximum depth")

	// ErrUnsupportedValue is returned for shapes the sanitizer does not know how to walk.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnstableInput is returned when the cleaning pipeline keeps changing a
	// string after MaxPasses runs.
	ErrUnstableInput = errors.New("input does not settle under sanitization")

	// ErrInvalidJSON is returned when input cannot be decoded into a Value.
	ErrInvalidJSON = errors.New("invalid JSON input")

	// ErrInvalidNumber is returned when a numeric Value does not hold a JSON number literal.
	ErrInvalidNumber = errors.New("invalid number literal")
)
