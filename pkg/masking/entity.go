package masking

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// DefaultEntityTokens maps the recognized labels to their mask tokens.
var DefaultEntityTokens = map[models.Label]string{
	models.LabelPerson:       "[KİŞİ_ADI]",
	models.LabelLocation:     "[YER_ADI]",
	models.LabelOrganization: "[ŞİRKET_ADI]",
}

// MaskStats counts what happened to the spans handed to the entity stage.
type MaskStats struct {
	Accepted      int `json:"accepted"`
	Malformed     int `json:"malformed,omitempty"`
	Unrecognized  int `json:"unrecognized,omitempty"`
	LowConfidence int `json:"low_confidence,omitempty"`
	Overlapping   int `json:"overlapping,omitempty"`
}

// Dropped returns the number of spans that were not rewritten.
func (s MaskStats) Dropped() int {
	return s.Malformed + s.Unrecognized + s.LowConfidence + s.Overlapping
}

// EntityMasker rewrites tagger spans with category tokens.
type EntityMasker struct {
	tokens        map[models.Label]string
	minConfidence float64
}

// NewEntityMasker creates an entity masker. A nil tokens map uses
// DefaultEntityTokens. Spans reporting a confidence in (0, minConfidence)
// are dropped; a zero confidence means the tagger did not score the span.
func NewEntityMasker(tokens map[models.Label]string, minConfidence float64) *EntityMasker {
	if tokens == nil {
		tokens = DefaultEntityTokens
	}
	return &EntityMasker{tokens: tokens, minConfidence: minConfidence}
}

// Tokens returns the tokens this masker writes.
func (m *EntityMasker) Tokens() []string {
	tokens := make([]string, 0, len(m.tokens))
	for _, t := range m.tokens {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	return tokens
}

// Resolve filters spans and resolves overlaps. The first-starting span wins;
// for equal starts the longer span wins, then the earlier one in input order.
// Accepted spans are returned in ascending start order.
func (m *EntityMasker) Resolve(text string, spans []models.EntitySpan) ([]models.EntitySpan, MaskStats) {
	var stats MaskStats
	candidates := make([]models.EntitySpan, 0, len(spans))
	for _, sp := range spans {
		switch {
		case !validSpan(text, sp):
			stats.Malformed++
		case !sp.Label.IsRecognized() || m.tokens[sp.Label] == "":
			stats.Unrecognized++
		case sp.Confidence > 0 && sp.Confidence < m.minConfidence:
			stats.LowConfidence++
		default:
			candidates = append(candidates, sp)
		}
	}

	slices.SortStableFunc(candidates, func(a, b models.EntitySpan) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.Len(), a.Len())
	})

	accepted := candidates[:0]
	lastEnd := 0
	for _, sp := range candidates {
		if sp.Start < lastEnd {
			stats.Overlapping++
			continue
		}
		accepted = append(accepted, sp)
		lastEnd = sp.End
	}
	stats.Accepted = len(accepted)
	return accepted, stats
}

// Apply rewrites the accepted spans with their tokens, right to left. Short
// tokens are padded with spaces to the original span width; the result is
// trimmed when at least one span was rewritten. With no accepted span the
// input is returned unchanged.
func (m *EntityMasker) Apply(text string, spans []models.EntitySpan) (string, MaskStats) {
	start := time.Now()
	accepted, stats := m.Resolve(text, spans)
	recordSpanStats(stats)
	if len(accepted) == 0 {
		return text, stats
	}

	buf := buffer(text)
	for i := len(accepted) - 1; i >= 0; i-- {
		sp := accepted[i]
		buf.replace(sp.Start, sp.End, m.tokens[sp.Label])
	}
	metrics.StageDuration.WithLabelValues("entity").Observe(time.Since(start).Seconds())
	return strings.TrimSpace(string(buf)), stats
}

func validSpan(text string, sp models.EntitySpan) bool {
	if sp.Start < 0 || sp.End > len(text) || sp.Start >= sp.End {
		return false
	}
	if !utf8.RuneStart(text[sp.Start]) {
		return false
	}
	return sp.End == len(text) || utf8.RuneStart(text[sp.End])
}

func recordSpanStats(s MaskStats) {
	for outcome, n := range map[string]int{
		"accepted":       s.Accepted,
		"malformed":      s.Malformed,
		"unrecognized":   s.Unrecognized,
		"low_confidence": s.LowConfidence,
		"overlapping":    s.Overlapping,
	} {
		if n > 0 {
			metrics.EntitySpans.WithLabelValues(outcome).Add(float64(n))
		}
	}
}
