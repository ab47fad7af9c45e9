// Package sanitize strips markup from user-authored text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds how many layers of entity encoding Text will peel.
const maxPasses = 4

// Text removes every tag and attribute and trims surrounding whitespace.
// Stored text is plain, so entities are decoded, and the decoded value is
// sanitized again until it stops changing. Markup hidden behind entities
// is therefore stripped rather than revived. Input still changing after
// maxPasses is returned in its escaped form.
func Text(s string) string {
	cur := strings.TrimSpace(s)
	for range maxPasses {
		escaped := strict.Sanitize(cur)
		next := strings.TrimSpace(html.UnescapeString(escaped))
		if next == cur {
			return next
		}
		cur = next
	}
	return strings.TrimSpace(strict.Sanitize(cur))
}

// Texts applies Text to each element and drops the ones that end up empty.
func Texts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if clean := Text(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
