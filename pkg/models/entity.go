package models

// Label is the entity category attached to a tagger span.
type Label string

const (
	LabelPerson       Label = "PERSON"
	LabelLocation     Label = "LOCATION"
	LabelOrganization Label = "ORGANIZATION"
	// LabelOther marks any category the masking pipeline does not rewrite.
	LabelOther Label = "OTHER"
)

// IsRecognized reports whether spans with this label are rewritten by the entity stage.
func (l Label) IsRecognized() bool {
	switch l {
	case LabelPerson, LabelLocation, LabelOrganization:
		return true
	default:
		return false
	}
}

// EntitySpan is a labelled half-open byte interval [Start, End) reported by a tagger.
type EntitySpan struct {
	Label      Label   `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Len returns the span width in bytes.
func (s EntitySpan) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two intervals share at least one byte.
func (s EntitySpan) Overlaps(o EntitySpan) bool {
	return s.Start < o.End && o.Start < s.End
}
