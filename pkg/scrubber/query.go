package scrubber

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// scrubQuery re-encodes r.URL.RawQuery from sanitized values. The encoding
// sorts keys.
func scrubQuery(r *http.Request, s *sanitizer.Sanitizer) error {
	if r.URL == nil || r.URL.RawQuery == "" {
		return nil
	}
	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	clean, err := sanitizeValues(s, query)
	if err != nil {
		return err
	}
	r.URL.RawQuery = clean.Encode()
	// Drop anything cached from the raw query.
	r.Form = nil
	return nil
}
