package resolver

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suffixPattern captures a trailing parenthesized country code,
// e.g. "Yoshida (JPN)" -> base "Yoshida", suffix "JPN".
var suffixPattern = regexp.MustCompile(`^(.*?)\s*\(([A-Za-z]{2,4})\)\s*$`)

// whitespaceRun matches one or more whitespace characters.
var whitespaceRun = regexp.MustCompile(`\s+`)

// diacriticStripper removes combining marks after NFD decomposition, so
// names like "Medáglia" slug the same as their ASCII spellings. European
// stallion names in sale sheets carry accents inconsistently. Transformer
// chains carry internal state, so each call builds a fresh one.
func diacriticStripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify converts a sire name to its canonical BloodHorse slug form:
// "Gio Ponti" -> "gio-ponti", "Yoshida (JPN)" -> "yoshida-jpn".
//
// Slugify is idempotent: applying it to an already-normalized slug returns
// the slug unchanged.
func Slugify(name string) string {
	if m := suffixPattern.FindStringSubmatch(name); m != nil {
		return hyphenate(m[1]) + "-" + strings.ToLower(m[2])
	}
	return hyphenate(name)
}

// Candidates returns the slug forms to try, in order: the plain base slug
// first, then the country-suffixed form when the name carries one. For
// names without a suffix both forms coincide and a single candidate is
// returned.
func Candidates(name string) []string {
	m := suffixPattern.FindStringSubmatch(name)
	if m == nil {
		return []string{hyphenate(name)}
	}

	plain := hyphenate(m[1])
	suffixed := plain + "-" + strings.ToLower(m[2])
	if plain == "" || plain == suffixed {
		return []string{suffixed}
	}
	return []string{plain, suffixed}
}

// hyphenate performs the base normalization: fold diacritics, lowercase,
// strip everything outside [a-z0-9- ], collapse whitespace runs to single
// hyphens.
func hyphenate(s string) string {
	if folded, _, err := transform.String(diacriticStripper(), s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return whitespaceRun.ReplaceAllString(strings.TrimSpace(b.String()), "-")
}
