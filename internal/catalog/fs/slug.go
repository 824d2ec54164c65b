package fs

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// SlugFromName derives the routing slug of a content unit from its directory
// name or extensionless file name. Names that normalize to nothing keep
// their raw form.
func SlugFromName(name string) string {
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return name
}

// Slugify converts a string to a URL-safe slug.
// "Next.js Starter" -> "next-js-starter".
// "Café Blog" -> "cafe-blog".
func Slugify(s string) string {
	// Decompose accented characters, then drop what is not ASCII
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
