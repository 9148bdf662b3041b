// AngelaMos | 2026
// slug.go

package category

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidSlug   = regexp.MustCompile(`[^a-z0-9_]`)
)

// Slug derives the stored value from a display title:
// "Running Shoes" -> "running_shoes".
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "_")
	return invalidSlug.ReplaceAllString(s, "")
}
