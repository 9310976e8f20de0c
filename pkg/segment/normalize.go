package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes text to NFC and collapses every run of Unicode white
// space (including line breaks and no-break spaces) to a single space.
// Leading and trailing white space is dropped.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
