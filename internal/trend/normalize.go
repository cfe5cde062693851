package trend

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and replaces every rune that is not an ASCII
// letter, ASCII digit or whitespace with a single space. Whitespace runs are
// kept as-is and nothing is trimmed.
//
// Capital dotted I lowers to "i" plus a combining dot, so "İ" becomes "i ".
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "İ", "i̇")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case isSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))
}

// isSpace reports Unicode whitespace plus the ASCII separators U+001C-U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
