// Package sanitizer scrubs script-injection payloads out of untrusted,
// JSON-like input while preserving its shape.
//
// Input is modelled as a Value: a tagged union of null, bool, number, string,
// sequence and keyed map. Sanitizer.Sanitize walks a Value and replaces every
// string leaf with its cleaned form. Non-string leaves, sequence lengths, map
// keys and key order are never touched.
//
// # String cleaning
//
// SanitizeString runs an ordered list of regular expression stages (see Stages):
//
//  1. trim surrounding whitespace
//  2. collapse entity-encoded <script> and <iframe> wrappers, keeping inner text
//  3. strip script, style, iframe and object tags, keeping inner text
//  4. drop embed tags entirely
//  5. drop on*= event handler bindings
//  6. drop javascript:, vbscript: and data:text/html schemes
//  7. drop CSS expression( and @import
//  8. escape any remaining < and > as &lt; and &gt;
//
// The order matters. Encoded wrappers collapse before raw tags are stripped,
// and brackets are escaped only once nothing else can match. The list is
// repeated while the output keeps changing, at most MaxPasses times. Clean
// reports input that is still changing with ErrUnstableInput; SanitizeString
// collapses it to an entity-escaped form instead. Both are idempotent.
//
// This is a denylist, not an HTML parser. It does not guarantee removal of
// every XSS vector and does not validate markup.
//
// # Caching
//
// A Sanitizer keeps a bounded cache of results keyed by the original string.
// Before running the pipeline it checks a cheap Detector: strings without any
// marker (<, >, javascript:, onerror, onclick, onload) are returned unchanged.
// Strings longer than 1024 bytes are never cached. When the cache holds 1000
// entries the oldest 10% are evicted in one batch.
//
// # Usage
//
//	s := sanitizer.New()
//
//	in, err := sanitizer.ParseJSON(body)
//	if err != nil {
//		// reject
//	}
//	out, err := s.Sanitize(in)
//	if err != nil {
//		// depth limit or unstable string: reject as invalid input
//	}
//
//	clean := s.SanitizeString(`<script>alert(1)</script>Hello`) // "alert(1)Hello"
//
// # Error handling
//
// Sanitize fails with ErrMaxDepthExceeded, ErrUnstableInput or
// ErrUnsupportedValue. Callers at the HTTP boundary should answer all of them
// with a generic "invalid input" response.
//
// # Concurrency
//
// A Sanitizer is safe for use from multiple goroutines. The cache is guarded by
// a mutex; two goroutines racing on the same key both compute the same result.
package sanitizer
