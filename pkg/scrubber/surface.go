package scrubber

import "strings"

// Surface is a bit set of request parts the middleware rewrites.
type Surface uint8

const (
	SurfaceBody Surface = 1 << iota
	SurfaceQuery
	SurfaceParams

	SurfaceAll = SurfaceBody | SurfaceQuery | SurfaceParams
)

// Has reports whether every bit of o is set in s.
func (s Surface) Has(o Surface) bool {
	return s&o == o
}

func (s Surface) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Has(SurfaceBody) {
		parts = append(parts, "body")
	}
	if s.Has(SurfaceQuery) {
		parts = append(parts, "query")
	}
	if s.Has(SurfaceParams) {
		parts = append(parts, "params")
	}
	return strings.Join(parts, "|")
}
