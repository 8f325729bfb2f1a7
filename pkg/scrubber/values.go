package scrubber

import (
	"maps"
	"net/url"
	"slices"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// sanitizeValues runs url.Values through the sanitizer as a keyed value of
// string sequences. Keys are left untouched.
func sanitizeValues(s *sanitizer.Sanitizer, in url.Values) (url.Values, error) {
	keys := slices.Sorted(maps.Keys(in))
	pairs := make([]sanitizer.Pair, 0, len(keys))
	for _, k := range keys {
		items := make([]sanitizer.Value, len(in[k]))
		for i, v := range in[k] {
			items[i] = sanitizer.String(v)
		}
		pairs = append(pairs, sanitizer.Pair{Key: k, Value: sanitizer.Sequence(items...)})
	}

	clean, err := s.Sanitize(sanitizer.Keyed(pairs...))
	if err != nil {
		return nil, err
	}

	out := make(url.Values, len(keys))
	for _, p := range clean.Pairs() {
		vals := make([]string, 0, p.Value.Len())
		for _, item := range p.Value.Items() {
			vals = append(vals, item.Text())
		}
		out[p.Key] = vals
	}
	return out, nil
}
