package domain

import (
	"strings"
	"unicode"
)

// Slugify converts a title into a URL-safe slug:
//   - lowercases
//   - keeps letters and digits, converts runs of anything else to a single '-'
//   - trims leading/trailing '-'
//
// Uniqueness is the caller's concern (the content service suffixes on
// collision).
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(title))
	prevDash := true // suppress a leading dash
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
