// Package sanitize strips card text down to a small allow-list of inline
// and structural markup before it is stored or rendered. Malformed markup
// never fails: it degrades to plain text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// allowedElements is the markup kept in question and answer text:
// basic inline emphasis, line breaks and simple lists. Attributes are
// always stripped.
var allowedElements = []string{
	"b", "i", "u", "br", "p", "ol", "ul", "li", "strong", "em",
}

var (
	cleanPolicy = newCleanPolicy()
	labelPolicy = bluemonday.StrictPolicy()
)

func newCleanPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedElements...)
	return p
}

// Clean returns the text with everything outside the allow-list removed.
// Disallowed tags are dropped but their inner text is kept.
func Clean(text string) string {
	return strings.TrimSpace(cleanPolicy.Sanitize(text))
}

// Label returns the text with all markup stripped, suitable for use as a
// plain display label.
func Label(text string) string {
	return strings.TrimSpace(labelPolicy.Sanitize(text))
}
