// Package slug mirrors the slug rules the storefront uses for product URLs,
// so server-side lookups resolve the same slugs the front end generates.
package slug

import (
	"regexp"
	"strings"
)

var nonWordRuns = regexp.MustCompile(`[\s\W-]+`)

// Slugify lowercases the name, collapses whitespace and punctuation runs into
// single hyphens, and trims leading/trailing hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonWordRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
