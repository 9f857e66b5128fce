package core

import (
	"strings"
	"unicode"

	slug "github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify folds accents, turns every other non alphanumeric rune into a word
// break and leaves the rest to slug.Normalize. Input with nothing to keep
// yields "".
func Slugify(value string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, value)
	if err != nil {
		folded = value
	}
	spaced := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, folded)
	out, err := slug.Normalize(spaced)
	if err != nil {
		return ""
	}
	return out
}
