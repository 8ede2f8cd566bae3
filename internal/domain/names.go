package domain

import (
	"strings"
	"unicode"
)

// Initials returns up to two upper-cased leading letters of a name.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		if count == 2 {
			break
		}
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		count++
	}
	return b.String()
}
