// Package segment splits contract text into sentences.
//
// Splitting happens in three passes over a normalized buffer: abbreviations
// and numeric dates are swapped for placeholder keys, the buffer is cut at
// white space following '.', '!' or '?', and every piece has its keys
// restored.
package segment

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Segment is a restored candidate sentence and the white space that
// followed it in the normalized input.
type Segment struct {
	Text      string
	Separator string
}

// Segmenter is safe for concurrent use.
type Segmenter struct {
	abbreviations []string
	datePattern   *regexp.Regexp
	dateKeywords  []string
	dropNoise     bool
	minRunes      int
}

// New creates a segmenter from cfg.
func New(cfg *config.SegmenterConfig) (*Segmenter, error) {
	re, err := regexp.Compile(cfg.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDatePattern, err)
	}
	abbrs := make([]string, 0, len(cfg.Abbreviations))
	for _, a := range cfg.Abbreviations {
		abbrs = append(abbrs, strings.TrimSuffix(a, ".")+".")
	}
	return &Segmenter{
		abbreviations: abbrs,
		datePattern:   re,
		dateKeywords:  append([]string(nil), cfg.DateKeywords...),
		dropNoise:     cfg.DropNoise,
		minRunes:      cfg.MinSentenceRunes,
	}, nil
}

// Segments normalizes text and returns every candidate sentence with its
// separator. Concatenating Text+Separator over the result reproduces
// Normalize(text).
func (s *Segmenter) Segments(text string) ([]Segment, error) {
	text = Normalize(text)
	if strings.ContainsAny(text, reservedRunes) {
		return nil, ErrPlaceholderCollision
	}
	if text == "" {
		return nil, nil
	}

	ph := newPlaceholders()
	protected := s.protect(text, ph)
	restore := ph.restorer()

	var segments []Segment
	prev := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(protected, -1) {
		cut := loc[0] + 1
		segments = append(segments, Segment{
			Text:      restore.Replace(protected[prev:cut]),
			Separator: protected[cut:loc[1]],
		})
		prev = loc[1]
	}
	if prev < len(protected) {
		segments = append(segments, Segment{Text: restore.Replace(protected[prev:])})
	}

	for _, seg := range segments {
		if strings.ContainsAny(seg.Text, reservedRunes) {
			return nil, ErrUnrestoredPlaceholder
		}
	}
	return segments, nil
}

// Split returns the sentences of text that survive filtering, numbered from 1.
// Empty pieces and date fragments are always dropped; noise is dropped when
// configured.
func (s *Segmenter) Split(text string) ([]models.Sentence, error) {
	segments, err := s.Segments(text)
	if err != nil {
		return nil, err
	}

	sentences := make([]models.Sentence, 0, len(segments))
	for _, seg := range segments {
		sent := strings.TrimSpace(seg.Text)
		outcome := "kept"
		switch {
		case sent == "":
			outcome = "empty"
		case s.isDateFragment(sent):
			outcome = "date"
		case s.dropNoise && s.isNoise(sent):
			outcome = "noise"
		}
		metrics.Sentences.WithLabelValues(outcome).Inc()
		if outcome != "kept" {
			continue
		}
		sentences = append(sentences, models.Sentence{
			Ordinal:  len(sentences) + 1,
			Original: sent,
		})
	}

	slog.Debug("Text segmented",
		"candidates", len(segments),
		"sentences", len(sentences))
	return sentences, nil
}

func (s *Segmenter) protect(text string, ph *placeholders) string {
	for _, abbr := range s.abbreviations {
		if strings.Contains(text, abbr) {
			text = strings.ReplaceAll(text, abbr, ph.key("ABBR", abbr))
		}
	}
	return s.datePattern.ReplaceAllStringFunc(text, func(m string) string {
		return ph.key("DATE", m)
	})
}

func (s *Segmenter) isDateFragment(sent string) bool {
	for _, kw := range s.dateKeywords {
		if strings.Contains(sent, kw) {
			return true
		}
	}
	return s.datePattern.MatchString(sent)
}

// isNoise flags extraction debris: very short pieces, pieces without any
// letter (page numbers, separators) and dot leaders.
func (s *Segmenter) isNoise(sent string) bool {
	n := utf8.RuneCountInString(sent)
	if n < s.minRunes {
		return true
	}
	letters, dots := 0, 0
	for _, r := range sent {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == '.':
			dots++
		}
	}
	return letters == 0 || dots*2 > n
}
