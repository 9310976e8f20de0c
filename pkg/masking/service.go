package masking

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
	"github.com/codeready-toolchain/contractmask/pkg/tagger"
)

// Splitter splits a document into sentence units.
type Splitter interface {
	Split(text string) ([]models.Sentence, error)
}

// UnitResult is the outcome of masking one unit.
type UnitResult struct {
	Original string    `json:"-"`
	Masked   string    `json:"masked"`
	Degraded bool      `json:"degraded,omitempty"`
	Excluded bool      `json:"excluded,omitempty"`
	Entities MaskStats `json:"entities"`
	Regex    Report    `json:"regex"`
	// TaggerErr is the tagger failure that degraded or excluded the unit.
	TaggerErr error `json:"-"`
}

// DocumentResult is the outcome of segmenting and masking one document.
// Excluded units are absent from Sentences and present in Failures.
type DocumentResult struct {
	Sentences []models.Sentence    `json:"sentences"`
	Failures  []models.UnitFailure `json:"failures,omitempty"`
	Units     int                  `json:"units"`
}

// Service composes the entity stage and the regex stage:
// raw unit → entity spans rewritten → regex rules applied → masked unit.
// Created once at startup; safe for concurrent use.
type Service struct {
	engine    *RegexEngine
	entities  *EntityMasker
	tagger    tagger.Tagger
	splitter  Splitter
	policy    config.TaggerFailurePolicy
	batchSize int
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTagger enables the entity stage. Without a tagger every unit is masked
// by the regex stage only and is not considered degraded.
func WithTagger(t tagger.Tagger) Option {
	return func(s *Service) { s.tagger = t }
}

// WithSplitter sets the segmenter used by SegmentAndMask.
func WithSplitter(sp Splitter) Option {
	return func(s *Service) { s.splitter = sp }
}

// WithTaggerBatchSize sets how many units are sent per batch tagger call.
func WithTaggerBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewService compiles the masking catalogue and wires the stages.
func NewService(cfg *config.MaskingConfig, opts ...Option) (*Service, error) {
	rules, err := CompileRules(cfg)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(rules)
	if err != nil {
		return nil, err
	}

	entities := NewEntityMasker(DefaultEntityTokens, cfg.MinConfidence)
	if err := registry.CheckTokens(entities.Tokens()...); err != nil {
		return nil, fmt.Errorf("entity tokens: %w", err)
	}

	policy := cfg.TaggerFailurePolicy
	if policy == "" {
		policy = config.TaggerFailureDegrade
	}

	s := &Service{
		engine:    NewRegexEngine(registry, cfg.RuleTimeout),
		entities:  entities,
		policy:    policy,
		batchSize: config.DefaultTaggerBatchSize,
		tracer:    otel.Tracer("github.com/codeready-toolchain/contractmask/pkg/masking"),
	}
	for _, opt := range opts {
		opt(s)
	}

	slog.Info("Masking service initialized",
		"rules", registry.Len(),
		"rule_timeout", cfg.RuleTimeout,
		"min_confidence", cfg.MinConfidence,
		"tagger_enabled", s.tagger != nil,
		"tagger_failure_policy", s.policy)

	return s, nil
}

// Registry returns the compiled rule registry.
func (s *Service) Registry() *Registry {
	return s.engine.Registry()
}

// TaggerEnabled reports whether the entity stage runs.
func (s *Service) TaggerEnabled() bool {
	return s.tagger != nil
}

// Mask tags and masks a single text. Under the strict policy a tagger failure
// excludes the unit: the result has Excluded set, Masked empty, and the error
// wraps ErrTaggerUnavailable.
func (s *Service) Mask(ctx context.Context, text string) (*UnitResult, error) {
	ctx, span := s.tracer.Start(ctx, "masking.mask",
		trace.WithAttributes(attribute.Int("text_bytes", len(text))))
	defer span.End()

	var (
		spans  []models.EntitySpan
		tagErr error
	)
	if s.tagger != nil {
		spans, tagErr = s.tagger.Detect(ctx, text)
	}

	res, err := s.MaskUnit(ctx, text, spans, tagErr)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("entities_accepted", res.Entities.Accepted),
		attribute.Int("regex_matches", res.Regex.Total()),
		attribute.Bool("degraded", res.Degraded))

	if res.Excluded {
		err := fmt.Errorf("%w: %v", ErrTaggerUnavailable, res.TaggerErr)
		span.RecordError(err)
		return res, err
	}
	return res, nil
}

// MaskUnit masks text given the outcome of its tagger call. spans are byte
// offsets into text. A non-nil taggerErr applies the failure policy; the
// returned error is non-nil only when ctx is done.
func (s *Service) MaskUnit(ctx context.Context, text string, spans []models.EntitySpan, taggerErr error) (*UnitResult, error) {
	res := &UnitResult{Original: text, TaggerErr: taggerErr}

	masked := text
	if taggerErr != nil {
		slog.Warn("Tagger failed for unit",
			"policy", s.policy,
			"text_bytes", len(text),
			"error", taggerErr)
		if s.policy == config.TaggerFailureStrict {
			res.Excluded = true
			metrics.Units.WithLabelValues("excluded").Inc()
			return res, nil
		}
		res.Degraded = true
	} else {
		masked, res.Entities = s.entities.Apply(text, spans)
	}

	masked, report, err := s.engine.Apply(ctx, masked)
	if err != nil {
		return nil, err
	}
	res.Masked = masked
	res.Regex = report

	if res.Degraded {
		metrics.Units.WithLabelValues("degraded").Inc()
	} else {
		metrics.Units.WithLabelValues("ok").Inc()
	}
	return res, nil
}

// SegmentAndMask splits text into sentences and masks each one. Failures of
// individual units are reported in the result; the returned error is
// reserved for document-level failures (segmentation errors, ctx done).
func (s *Service) SegmentAndMask(ctx context.Context, text string) (*DocumentResult, error) {
	if s.splitter == nil {
		return nil, ErrNoSegmenter
	}

	ctx, span := s.tracer.Start(ctx, "masking.segment_and_mask",
		trace.WithAttributes(attribute.Int("text_bytes", len(text))))
	defer span.End()

	sentences, err := s.splitter.Split(text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	texts := make([]string, len(sentences))
	for i, sent := range sentences {
		texts[i] = sent.Original
	}
	spans, tagErrs := s.tagAll(ctx, texts)

	doc := &DocumentResult{
		Sentences: make([]models.Sentence, 0, len(sentences)),
		Units:     len(sentences),
	}
	for i, sent := range sentences {
		res, err := s.MaskUnit(ctx, sent.Original, spans[i], tagErrs[i])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if res.TaggerErr != nil {
			doc.Failures = append(doc.Failures, models.UnitFailure{
				Ordinal:  sent.Ordinal,
				Kind:     models.FailureTaggerUnavailable,
				Message:  res.TaggerErr.Error(),
				Excluded: res.Excluded,
			})
		}
		for _, rule := range res.Regex.Skipped {
			doc.Failures = append(doc.Failures, models.UnitFailure{
				Ordinal: sent.Ordinal,
				Kind:    models.FailureRuleTimeout,
				Rule:    rule,
				Message: "rule skipped after exceeding its budget",
			})
		}
		if res.Excluded {
			continue
		}
		sent.Masked = res.Masked
		sent.Degraded = res.Degraded
		doc.Sentences = append(doc.Sentences, sent)
	}

	span.SetAttributes(
		attribute.Int("units", doc.Units),
		attribute.Int("sentences", len(doc.Sentences)),
		attribute.Int("failures", len(doc.Failures)))
	return doc, nil
}

// tagAll runs the tagger over texts, batching when the tagger supports it.
// It returns one span slice and one error per text; a failed batch fails
// every unit in it.
func (s *Service) tagAll(ctx context.Context, texts []string) ([][]models.EntitySpan, []error) {
	spans := make([][]models.EntitySpan, len(texts))
	errs := make([]error, len(texts))
	if s.tagger == nil || len(texts) == 0 {
		return spans, errs
	}

	bt, ok := s.tagger.(tagger.BatchTagger)
	if !ok {
		for i, text := range texts {
			spans[i], errs[i] = s.tagger.Detect(ctx, text)
		}
		return spans, errs
	}

	for lo := 0; lo < len(texts); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(texts))
		out, err := bt.DetectBatch(ctx, texts[lo:hi])
		if err == nil && len(out) != hi-lo {
			err = fmt.Errorf("%w: batch returned %d results for %d texts", tagger.ErrUnavailable, len(out), hi-lo)
		}
		for i := lo; i < hi; i++ {
			if err != nil {
				errs[i] = err
				continue
			}
			spans[i] = out[i-lo]
		}
	}
	return spans, errs
}
