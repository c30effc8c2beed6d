package utils

import (
	"strings"
)

// transliterations maps locale-specific characters to ASCII expansions.
// German umlauts expand to digraphs, eszett to "ss"; other accents drop
// their diacritic.
var transliterations = map[rune]string{
	'ä': "ae", 'ö': "oe", 'ü': "ue", 'ß': "ss",
	'á': "a", 'à': "a", 'â': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o",
	'ú': "u", 'ù': "u", 'û': "u",
	'ç': "c", 'ñ': "n",
}

// NormalizeRole lowercases a raw role string, transliterates diacritics to
// ASCII, strips punctuation, and collapses whitespace, hyphens and slashes
// to single spaces. Idempotent: NormalizeRole(NormalizeRole(s)) ==
// NormalizeRole(s). Anything that is not usable text normalizes to "".
func NormalizeRole(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-' || r == '/' || r == '_':
			b.WriteByte(' ')
		default:
			if expansion, ok := transliterations[r]; ok {
				b.WriteString(expansion)
			}
			// remaining punctuation is dropped
		}
	}

	// collapse repeated separators and trim the ends
	return strings.Join(strings.Fields(b.String()), " ")
}
