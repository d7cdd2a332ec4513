package md2rich

import "regexp"

// Sanitization patterns. Matching is case-insensitive because pasted or
// imported HTML does not control its own casing.
var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>|<script\b[^>]*/?>`)
	eventAttrPattern   = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	jsURLPattern       = regexp.MustCompile(`(?i)\s+(href|src)\s*=\s*(?:"\s*javascript:[^"]*"|'\s*javascript:[^']*')`)
	dataURLPattern     = regexp.MustCompile(`(?i)\s+(href|src)\s*=\s*(?:"\s*data:[^"]*"|'\s*data:[^']*')`)
	imageDataURL       = regexp.MustCompile(`(?i)^\s*(href|src)\s*=\s*["']\s*data:image/`)
)

// Sanitize strips active content from html: script tags, inline event
// handler attributes, javascript: URLs, and non-image data: URLs. It is
// an always-applicable safety pass, independent of the optimize profiles,
// and idempotent: Sanitize(Sanitize(h)) == Sanitize(h).
func Sanitize(html string) string {
	// Loop so nested fragments cannot reassemble into a script tag after
	// one removal pass.
	for scriptBlockPattern.MatchString(html) {
		html = scriptBlockPattern.ReplaceAllString(html, "")
	}
	html = eventAttrPattern.ReplaceAllString(html, "")
	html = jsURLPattern.ReplaceAllString(html, "")
	html = dataURLPattern.ReplaceAllStringFunc(html, func(m string) string {
		if imageDataURL.MatchString(m) {
			return m
		}
		return ""
	})
	return html
}
