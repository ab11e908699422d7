package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

var filenameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// CleanFilename turns a display name into a filename stem.
// Spaces become underscores, punctuation (commas, periods,
// parentheses, ...) is dropped. Applying it twice is a no-op.
func CleanFilename(name string) string {
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "_")
	return filenameDisallowed.ReplaceAllString(name, "")
}

// SafeName lowercases a display name and replaces every
// non-alphanumeric rune with an underscore, the naming used for
// downloaded headshot files.
func SafeName(name string) string {
	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			continue
		}
		if c >= 'A' && c <= 'Z' {
			b.WriteRune(c + ('a' - 'A'))
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}

func ZeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
