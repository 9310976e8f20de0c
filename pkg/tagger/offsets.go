package tagger

import (
	"unicode/utf8"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// RuneToByteOffsets converts spans whose Start/End count code points into
// byte offsets into text. An offset outside [0, runes] becomes -1 so the
// masker discards the span as malformed.
func RuneToByteOffsets(text string, spans []models.EntitySpan) []models.EntitySpan {
	if len(spans) == 0 {
		return spans
	}
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	lookup := func(r int) int {
		if r < 0 || r >= len(offsets) {
			return -1
		}
		return offsets[r]
	}

	out := make([]models.EntitySpan, len(spans))
	for i, sp := range spans {
		sp.Start = lookup(sp.Start)
		sp.End = lookup(sp.End)
		out[i] = sp
	}
	return out
}
