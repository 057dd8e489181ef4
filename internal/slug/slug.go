// Package slug derives URL-safe routing keys from display names.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any run of characters that is not a lowercase letter or digit.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Make converts a display name to a URL-safe slug.
//
//	"Centenary House"          -> "centenary-house"
//	"KN 5 Road - Zone A"       -> "kn-5-road-zone-a"
//	"Café Épicerie"            -> "cafe-epicerie"
//	"  Java   Cafe!! "         -> "java-cafe"
func Make(name string) string {
	// Decompose accented characters so the base letter survives.
	s := norm.NFKD.String(name)

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

// Unique returns Make(name), suffixed with "-2", "-3", ... until taken
// reports false. An empty base becomes fallback.
func Unique(name, fallback string, taken func(string) bool) string {
	base := Make(name)
	if base == "" {
		base = fallback
	}
	candidate := base
	for n := 2; taken(candidate); n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	return candidate
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
