package masking

import (
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r counts as a word character for boundary checks.
// Letters and digits of any script count, so Turkish letters such as ş or İ
// do not produce a boundary.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isWordBoundary reports whether byte offset i in text sits between a word
// rune and a non-word rune (text edges count as non-word).
func isWordBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

// nextRune returns the offset of the rune after the one starting at i.
// Past the end it returns len(text)+1 so scanning loops terminate.
func nextRune(text string, i int) int {
	if i >= len(text) {
		return len(text) + 1
	}
	_, w := utf8.DecodeRuneInString(text[i:])
	return i + w
}
