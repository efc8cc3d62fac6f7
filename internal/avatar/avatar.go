// Package avatar derives the placeholder initials shown instead of a profile picture.
package avatar

import (
	"strings"
	"unicode"
)

// Initials returns the uppercase first letters of up to max words of name.
func Initials(name string, max int) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i >= max {
			break
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
