package scrubber

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// scrubParams rewrites chi URL parameter values in place. Parameters exist
// only after routing, so the middleware has to be attached with r.With or on
// the route itself for this surface to see them.
//
// chi matches on URL.RawPath when it is set, leaving parameters
// percent-encoded; those are unescaped before cleaning. The clean value is
// written to both the route context and the request path values, so
// chi.URLParam and r.PathValue agree.
func scrubParams(r *http.Request, s *sanitizer.Sanitizer) error {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Values) == 0 {
		return nil
	}

	escaped := r.URL.RawPath != ""
	items := make([]sanitizer.Value, len(rctx.URLParams.Values))
	for i, v := range rctx.URLParams.Values {
		if escaped {
			raw, err := url.PathUnescape(v)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidParams, err)
			}
			v = raw
		}
		items[i] = sanitizer.String(v)
	}
	clean, err := s.Sanitize(sanitizer.Sequence(items...))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	for i, v := range clean.Items() {
		rctx.URLParams.Values[i] = v.Text()
		if i < len(rctx.URLParams.Keys) {
			r.SetPathValue(rctx.URLParams.Keys[i], v.Text())
		}
	}
	return nil
}
