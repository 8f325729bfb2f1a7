package sanitizer

import "strings"

// MaxPasses is the number of pipeline runs Clean allows before it gives up on
// reaching a stable output. The last run only confirms the previous result.
const MaxPasses = 4

var cleanPass = Compose(stages...)

// collapseEscaper rewrites every character a stage can match on into a numeric
// or named entity. Its output contains no trigger for any stage, so the
// pipeline leaves it unchanged.
var collapseEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&#60;",
	">", "&#62;",
	":", "&#58;",
	"=", "&#61;",
	"(", "&#40;",
	"@", "&#64;",
)

// Clean neutralizes markup, event handlers and dangerous URI schemes in s.
//
// The pipeline is repeated while its output keeps changing, so payloads that a
// removal reassembles (for example "javajavascript:script:") are caught too.
// The number of runs is capped at MaxPasses, which keeps the cost linear in the
// input size. Input that is still changing on the last run is rejected with
// ErrUnstableInput, and the partially cleaned text is returned alongside it.
func Clean(s string) (string, error) {
	out := cleanPass(s)
	for range MaxPasses - 1 {
		next := cleanPass(out)
		if next == out {
			return out, nil
		}
		out = next
	}
	if out == "" {
		return out, nil
	}
	return out, ErrUnstableInput
}

// SanitizeString is Clean without the error: input that does not settle within
// MaxPasses runs is collapsed by entity-escaping every character the stages
// react to. The result is always a fixed point, so SanitizeString is idempotent.
func SanitizeString(s string) string {
	out, err := Clean(s)
	if err != nil {
		return collapse(out)
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(collapseEscaper.Replace(s))
}
