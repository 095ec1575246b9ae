package domain

import (
	"regexp"
	"strings"
)

// DefaultSlug is used when a field name normalizes to nothing.
const DefaultSlug = "general"

var (
	roleSuffixRe = regexp.MustCompile(`developer|engineer|expert|specialist`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeSlug derives the roadmap key from a free-text field name:
//   - lowercases the input
//   - removes the role words developer, engineer, expert, specialist (also inside other words)
//   - replaces "&" with "and"
//   - collapses every run outside [a-z0-9] into a single hyphen
//   - trims leading and trailing hyphens
//
// An empty result becomes DefaultSlug.
func NormalizeSlug(field string) string {
	s := strings.ToLower(field)
	s = roleSuffixRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = nonSlugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return DefaultSlug
	}
	return s
}
