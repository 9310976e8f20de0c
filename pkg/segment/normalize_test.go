package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses white space", "  Bir\t\tiki\n\nüç  ", "Bir iki üç"},
		{"no-break space", "Madde\u00a05", "Madde 5"},
		{"composes to NFC", "s\u0327u", "şu"},
		{"dotted capital I", "I\u0307stanbul", "İstanbul"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	p := newPlaceholders()

	a := p.key("ABBR", "Dr.")
	b := p.key("ABBR", "Sn.")
	d := p.key("DATE", "01.02.2023")

	assert.Equal(t, "\uE000__ABBR0__\uE001", a)
	assert.Equal(t, "\uE000__ABBR1__\uE001", b)
	assert.Equal(t, "\uE000__DATE0__\uE001", d)
	assert.Equal(t, a, p.key("ABBR", "Dr."))

	assert.Equal(t, "Dr. ve Sn. 01.02.2023", p.restorer().Replace(a+" ve "+b+" "+d))
}
