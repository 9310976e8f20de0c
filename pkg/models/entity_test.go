package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel_IsRecognized(t *testing.T) {
	tests := []struct {
		label Label
		want  bool
	}{
		{LabelPerson, true},
		{LabelLocation, true},
		{LabelOrganization, true},
		{LabelOther, false},
		{Label("DATE"), false},
		{Label(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label.IsRecognized())
		})
	}
}

func TestEntitySpan_Overlaps(t *testing.T) {
	a := EntitySpan{Start: 0, End: 5}
	assert.True(t, a.Overlaps(EntitySpan{Start: 4, End: 8}))
	assert.True(t, a.Overlaps(EntitySpan{Start: 1, End: 2}))
	assert.False(t, a.Overlaps(EntitySpan{Start: 5, End: 8}), "touching intervals do not overlap")
	assert.Equal(t, 5, a.Len())
}
