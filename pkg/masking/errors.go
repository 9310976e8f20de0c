package masking

import "errors"

var (
	// ErrRuleTimeout indicates a rule exceeded its budget on one unit
	ErrRuleTimeout = errors.New("masking rule timed out")

	// ErrInvalidRule indicates a rule could not be compiled
	ErrInvalidRule = errors.New("invalid masking rule")

	// ErrEmptyRegistry indicates a registry was built without rules
	ErrEmptyRegistry = errors.New("rule registry is empty")

	// ErrDuplicateRule indicates two rules share a name
	ErrDuplicateRule = errors.New("duplicate rule name")

	// ErrTokenRematched indicates a mask token is matched by a rule applied after it
	ErrTokenRematched = errors.New("mask token matched by later rule")

	// ErrTaggerUnavailable indicates a unit was excluded because its tagger call failed
	ErrTaggerUnavailable = errors.New("tagger unavailable for unit")

	// ErrNoSegmenter indicates SegmentAndMask was called on a service without a segmenter
	ErrNoSegmenter = errors.New("no segmenter configured")
)
