package masking

// buffer is a byte buffer rewritten span by span.
type buffer []byte

// replace rewrites [start, end) with token. A token no longer than the span
// is written in place and the rest of the span is blanked with spaces, so
// offsets before end stay valid. A longer token grows the buffer; offsets
// before start stay valid either way.
func (b *buffer) replace(start, end int, token string) {
	if len(token) <= end-start {
		n := copy((*b)[start:end], token)
		for i := start + n; i < end; i++ {
			(*b)[i] = ' '
		}
		return
	}
	grown := make([]byte, 0, len(*b)+len(token)-(end-start))
	grown = append(grown, (*b)[:start]...)
	grown = append(grown, token...)
	grown = append(grown, (*b)[end:]...)
	*b = grown
}
