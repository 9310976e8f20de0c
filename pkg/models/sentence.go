package models

// Sentence is one unit produced by the segmenter.
// Masked is empty until the unit has gone through the masking stages.
type Sentence struct {
	Ordinal  int    `json:"ordinal"`
	Original string `json:"original"`
	Masked   string `json:"masked,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

// FailureKind classifies a per-unit failure marker.
type FailureKind string

const (
	// FailureTaggerUnavailable: the tagger call failed for the unit.
	FailureTaggerUnavailable FailureKind = "tagger_unavailable"
	// FailureRuleTimeout: a rule exceeded its budget and was skipped for the unit.
	FailureRuleTimeout FailureKind = "rule_timeout"
	// FailurePlaceholderCollision: the document contained reserved placeholder runes.
	FailurePlaceholderCollision FailureKind = "placeholder_collision"
	// FailureDocument: the document could not be processed at all.
	FailureDocument FailureKind = "document_error"
)

// UnitFailure is a failure marker for one unit of work. Ordinal 0 refers to
// the whole document. Markers never carry document text.
type UnitFailure struct {
	Ordinal  int         `json:"ordinal"`
	Kind     FailureKind `json:"kind"`
	Rule     string      `json:"rule,omitempty"`
	Message  string      `json:"message"`
	Excluded bool        `json:"excluded,omitempty"`
}
