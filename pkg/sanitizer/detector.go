package sanitizer

import "strings"

// DefaultMarkers are the substrings that make a string worth running through the
// cleaning pipeline. Matching is case-insensitive.
var DefaultMarkers = []string{"<", ">", "javascript:", "onerror", "onclick", "onload"}

// Detector is a cheap containment scan used to skip the cleaning pipeline for
// strings that cannot carry markup or script.
type Detector struct {
	markers []string
}

var defaultDetector = NewDetector()

// NewDetector returns a Detector checking DefaultMarkers plus any extra markers.
// Extra markers are lower-cased; empty ones are ignored.
func NewDetector(extra ...string) *Detector {
	markers := make([]string, 0, len(DefaultMarkers)+len(extra))
	seen := make(map[string]struct{}, cap(markers))
	for _, m := range append(append([]string{}, DefaultMarkers...), extra...) {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		markers = append(markers, m)
	}
	return &Detector{markers: markers}
}

// Markers returns a copy of the lower-cased marker set.
func (d *Detector) Markers() []string {
	return append([]string(nil), d.markers...)
}

// IsDangerous reports whether text contains any marker, ignoring case.
func (d *Detector) IsDangerous(text string) bool {
	if text == "" {
		return false
	}
	// Brackets are the most common hit and need no case folding.
	if strings.ContainsAny(text, "<>") {
		return true
	}
	lower := strings.ToLower(text)
	for _, m := range d.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsDangerous reports whether text contains any of DefaultMarkers, ignoring case.
func IsDangerous(text string) bool {
	return defaultDetector.IsDangerous(text)
}
