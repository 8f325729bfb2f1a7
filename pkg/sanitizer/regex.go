package sanitizer

import "regexp"

// Pre-compiled patterns for the cleaning stages. RE2 has no backreferences, so
// every paired tag gets its own expression to guarantee the close tag matches
// the open tag.
var (
	// Entity-encoded wrappers: &lt;script&gt;...&lt;/script&gt;
	encodedScriptRegex = regexp.MustCompile(`(?is)&lt;script(?:\s[^&]*)?&gt;(.*?)&lt;/script\s*&gt;`)
	encodedIframeRegex = regexp.MustCompile(`(?is)&lt;iframe(?:\s[^&]*)?&gt;(.*?)&lt;/iframe\s*&gt;`)

	// Raw tags whose inner text is kept
	scriptTagRegex = regexp.MustCompile(`(?is)<script\b[^>]*>(.*?)</script\s*>`)
	styleTagRegex  = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style\s*>`)
	iframeTagRegex = regexp.MustCompile(`(?is)<iframe\b[^>]*>(.*?)</iframe\s*>`)
	objectTagRegex = regexp.MustCompile(`(?is)<object\b[^>]*>(.*?)</object\s*>`)

	// Raw tags removed entirely
	embedTagRegex      = regexp.MustCompile(`(?is)<embed\b[^>]*>`)
	embedCloseTagRegex = regexp.MustCompile(`(?i)</embed\s*>`)

	// Event handler bindings
	quotedHandlerRegex   = regexp.MustCompile(`(?i)on\w+\s*=\s*["'][^"']*["']`)
	unquotedHandlerRegex = regexp.MustCompile(`(?i)on\w+\s*=\s*[^\s>]*`)

	// Dangerous URI schemes
	protocolRegex = regexp.MustCompile(`(?i)javascript:|vbscript:|data:text/html`)

	// CSS injection
	cssExpressionRegex = regexp.MustCompile(`(?i)expression\s*\(`)
	cssImportRegex     = regexp.MustCompile(`(?i)@import `)
)
