package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ConfigValidator validates configuration comprehensively with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs comprehensive validation (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateMasking(); err != nil {
		return fmt.Errorf("masking validation failed: %w", err)
	}

	if err := v.validateRules(); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := v.validateSegmenter(); err != nil {
		return fmt.Errorf("segmenter validation failed: %w", err)
	}

	if err := v.validateTagger(); err != nil {
		return fmt.Errorf("tagger validation failed: %w", err)
	}

	if err := v.validateBatch(); err != nil {
		return fmt.Errorf("batch validation failed: %w", err)
	}

	return nil
}

func (v *ConfigValidator) validateMasking() error {
	m := v.cfg.Masking
	if m == nil {
		return NewValidationError("masking", "masking", "", ErrMissingRequiredField)
	}
	if m.RuleTimeout <= 0 {
		return NewValidationError("masking", "masking", "rule_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if m.MinConfidence < 0 || m.MinConfidence > 1 {
		return NewValidationError("masking", "masking", "min_confidence", fmt.Errorf("%w: must be within [0, 1]", ErrInvalidValue))
	}
	if !m.TaggerFailurePolicy.IsValid() {
		return NewValidationError("masking", "masking", "tagger_failure_policy", fmt.Errorf("%w: %q", ErrInvalidValue, m.TaggerFailurePolicy))
	}

	known := make(map[string]bool, len(m.Rules))
	for _, r := range m.Rules {
		known[r.Name] = true
	}
	for _, name := range m.DisabledRules {
		if !known[name] {
			return NewValidationError("masking", "masking", "disabled_rules", fmt.Errorf("%w: unknown rule %q", ErrInvalidValue, name))
		}
	}
	if len(m.EnabledRules()) == 0 {
		return NewValidationError("masking", "masking", "rules", fmt.Errorf("at least one enabled rule required"))
	}
	return nil
}

func (v *ConfigValidator) validateRules() error {
	m := v.cfg.Masking
	seen := make(map[string]bool, len(m.Rules))
	for _, r := range m.Rules {
		if r.Name == "" {
			return NewValidationError("rule", "", "name", ErrMissingRequiredField)
		}
		if seen[r.Name] {
			return NewValidationError("rule", r.Name, "name", ErrDuplicateRule)
		}
		seen[r.Name] = true

		if r.Replacement == "" {
			return NewValidationError("rule", r.Name, "replacement", ErrMissingRequiredField)
		}
		if r.MaskToken() == "" {
			return NewValidationError("rule", r.Name, "token", fmt.Errorf("%w: required when replacement references groups", ErrMissingRequiredField))
		}

		switch {
		case r.Gazetteer != "" && r.Pattern != "":
			return NewValidationError("rule", r.Name, "pattern", fmt.Errorf("%w: pattern and gazetteer are mutually exclusive", ErrInvalidValue))
		case r.Gazetteer != "":
			if !r.Gazetteer.IsValid() {
				return NewValidationError("rule", r.Name, "gazetteer", fmt.Errorf("%w: %q", ErrInvalidValue, r.Gazetteer))
			}
			if len(m.GazetteerWords(r.Gazetteer)) == 0 {
				return NewValidationError("rule", r.Name, "gazetteer", fmt.Errorf("%w: word list %q is empty", ErrInvalidValue, r.Gazetteer))
			}
		case r.Pattern == "":
			return NewValidationError("rule", r.Name, "pattern", ErrMissingRequiredField)
		default:
			if strings.Contains(r.Pattern, `\b`) {
				return NewValidationError("rule", r.Name, "pattern", fmt.Errorf("%w: use word_start/word_end instead of \\b", ErrInvalidValue))
			}
			if _, err := regexp.Compile(r.Pattern); err != nil {
				return NewValidationError("rule", r.Name, "pattern", fmt.Errorf("%w: %v", ErrInvalidValue, err))
			}
		}
	}
	return nil
}

func (v *ConfigValidator) validateSegmenter() error {
	s := v.cfg.Segmenter
	if s == nil {
		return NewValidationError("segmenter", "segmenter", "", ErrMissingRequiredField)
	}
	if s.DatePattern == "" {
		return NewValidationError("segmenter", "segmenter", "date_pattern", ErrMissingRequiredField)
	}
	if _, err := regexp.Compile(s.DatePattern); err != nil {
		return NewValidationError("segmenter", "segmenter", "date_pattern", fmt.Errorf("%w: %v", ErrInvalidValue, err))
	}
	for _, abbr := range s.Abbreviations {
		if strings.TrimSpace(abbr) == "" {
			return NewValidationError("segmenter", "segmenter", "abbreviations", fmt.Errorf("%w: empty abbreviation", ErrInvalidValue))
		}
	}
	if s.MinSentenceRunes < 0 {
		return NewValidationError("segmenter", "segmenter", "min_sentence_runes", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateTagger() error {
	t := v.cfg.Tagger
	if t == nil {
		return NewValidationError("tagger", "tagger", "", ErrMissingRequiredField)
	}
	if !t.Transport.IsValid() {
		return NewValidationError("tagger", string(t.Transport), "transport", fmt.Errorf("%w: %q", ErrInvalidValue, t.Transport))
	}
	if t.Transport != TaggerTransportNone && t.Address == "" {
		return NewValidationError("tagger", string(t.Transport), "address", ErrMissingRequiredField)
	}
	if !t.OffsetUnit.IsValid() {
		return NewValidationError("tagger", string(t.Transport), "offset_unit", fmt.Errorf("%w: %q", ErrInvalidValue, t.OffsetUnit))
	}
	if t.Timeout <= 0 {
		return NewValidationError("tagger", string(t.Transport), "timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if t.BatchSize < 1 {
		return NewValidationError("tagger", string(t.Transport), "batch_size", fmt.Errorf("%w: must be at least 1", ErrInvalidValue))
	}
	if t.Cache != nil {
		if !t.Cache.Backend.IsValid() {
			return NewValidationError("tagger", "cache", "backend", fmt.Errorf("%w: %q", ErrInvalidValue, t.Cache.Backend))
		}
		if t.Cache.Backend == CacheBackendRedis && t.Cache.RedisAddr == "" {
			return NewValidationError("tagger", "cache", "redis_addr", ErrMissingRequiredField)
		}
	}
	return nil
}

func (v *ConfigValidator) validateBatch() error {
	if v.cfg.Batch == nil {
		return NewValidationError("batch", "batch", "", ErrMissingRequiredField)
	}
	if v.cfg.Batch.Workers < 1 {
		return NewValidationError("batch", "batch", "workers", fmt.Errorf("%w: must be at least 1", ErrInvalidValue))
	}
	return nil
}
