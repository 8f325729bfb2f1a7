package sanitizer

import "strings"

// Stage is one named text transform of the string cleaning pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Stage names in execution order.
const (
	StageTrim          = "trim"
	StageDecodedTags   = "decoded-tags"
	StageContentTags   = "content-tags"
	StageEmbedTags     = "embed-tags"
	StageEventHandlers = "event-handlers"
	StageProtocols     = "protocols"
	StageCSS           = "css"
	StageBrackets      = "brackets"
)

// The order is part of the contract: encoded wrappers must collapse before raw
// tags are stripped, and brackets are escaped only after every markup stage ran.
var stages = []Stage{
	{Name: StageTrim, Apply: strings.TrimSpace},
	{Name: StageDecodedTags, Apply: stripEncodedTags},
	{Name: StageContentTags, Apply: stripContentTags},
	{Name: StageEmbedTags, Apply: stripEmbedTags},
	{Name: StageEventHandlers, Apply: stripEventHandlers},
	{Name: StageProtocols, Apply: stripProtocols},
	{Name: StageCSS, Apply: stripCSSInjection},
	{Name: StageBrackets, Apply: escapeBrackets},
}

// Stages returns the cleaning pipeline in execution order.
func Stages() []Stage {
	return append([]Stage(nil), stages...)
}

// Compose chains stages into a single transform. An empty intermediate result
// stops the chain.
func Compose(chain ...Stage) func(string) string {
	return func(s string) string {
		for _, st := range chain {
			s = st.Apply(s)
			if s == "" {
				return ""
			}
		}
		return s
	}
}

func stripEncodedTags(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = encodedScriptRegex.ReplaceAllString(s, "${1}")
	return encodedIframeRegex.ReplaceAllString(s, "${1}")
}

func stripContentTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	s = scriptTagRegex.ReplaceAllString(s, "${1}")
	s = styleTagRegex.ReplaceAllString(s, "${1}")
	s = iframeTagRegex.ReplaceAllString(s, "${1}")
	return objectTagRegex.ReplaceAllString(s, "${1}")
}

func stripEmbedTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	s = embedTagRegex.ReplaceAllString(s, "")
	return embedCloseTagRegex.ReplaceAllString(s, "")
}

func stripEventHandlers(s string) string {
	s = quotedHandlerRegex.ReplaceAllString(s, "")
	return unquotedHandlerRegex.ReplaceAllString(s, "")
}

func stripProtocols(s string) string {
	return protocolRegex.ReplaceAllString(s, "")
}

func stripCSSInjection(s string) string {
	s = cssExpressionRegex.ReplaceAllString(s, "")
	return cssImportRegex.ReplaceAllString(s, "")
}

var bracketEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func escapeBrackets(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return bracketEscaper.Replace(s)
}
