package sanitization

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// StripHTML removes all markup from a submitted text field and decodes the
// entities bluemonday leaves behind, so the relay email shows plain text.
// Line breaks in messages are kept.
func StripHTML(input string) string {
	safe := strictPolicy.Sanitize(input)
	safe = html.UnescapeString(safe)
	return strings.TrimSpace(safe)
}

// Sanitizer returns the hook the contact form applies to name and message,
// or nil when stripping is disabled.
func Sanitizer(enabled bool) func(string) string {
	if !enabled {
		return nil
	}
	return StripHTML
}
