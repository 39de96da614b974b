package slug

import (
	"regexp"
	"strings"
)

// whitespace as JavaScript's \s understands it: ASCII whitespace with \v,
// Unicode space separators, line and paragraph separators and the BOM
const spaceClass = `\t\n\x0B\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	regDisallowed = regexp.MustCompile(`[^a-z0-9` + spaceClass + `-]+`)
	regSpaces     = regexp.MustCompile(`[` + spaceClass + `]+`)
	regHyphens    = regexp.MustCompile(`-+`)
)

// Make converts a book title or an author name into URL identifier.
//
// Everything but ASCII letters, digits, whitespace (Unicode spaces included) and hyphens is dropped (accented
// letters too, they are not transliterated), whitespace runs become a single hyphen
// and hyphen runs are collapsed and trimmed. Result may be empty, which never
// identifies anything.
//
//	"Punk 57"                      -> "punk-57"
//	"Hideaway (Devil's Night, #2)" -> "hideaway-devils-night-2"
func Make(text string) string {
	s := regDisallowed.ReplaceAllString(strings.ToLower(text), "")
	s = regSpaces.ReplaceAllString(s, "-")
	s = regHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
