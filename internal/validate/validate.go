package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

const maxPostcodeRunes = 32

// Slug validates a product slug (lower-case letters, digits and dashes).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSlug.MatchString(s)
}

// Limit parses a history limit. Missing, non-numeric or non-positive
// input gives def; values above max are clamped.
func Limit(s string, def, maxN int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if maxN > 0 && n > maxN {
		return maxN
	}
	return n
}

// Postcode trims the value and caps its length. It is only echoed back.
func Postcode(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxPostcodeRunes {
		s = string(r[:maxPostcodeRunes])
	}
	return s
}

// Message trims s and reports whether anything is left.
func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
