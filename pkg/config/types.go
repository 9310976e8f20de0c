package config

import (
	"strings"
	"time"
)

// RuleConfig defines one regex masking rule.
//
// Pattern uses RE2 syntax without \b; word boundaries are requested with
// WordStart/WordEnd and checked against Unicode letters, digits and '_'.
// A rule with Gazetteer set has its pattern generated from that word list
// and Pattern must be empty.
type RuleConfig struct {
	Name        string    `yaml:"name"`
	Pattern     string    `yaml:"pattern,omitempty"`
	Gazetteer   Gazetteer `yaml:"gazetteer,omitempty"`
	Replacement string    `yaml:"replacement"`
	// Token is the literal mask token the rule emits. Defaults to
	// Replacement when Replacement has no group references.
	Token       string   `yaml:"token,omitempty"`
	IgnoreCase  bool     `yaml:"ignore_case,omitempty"`
	WordStart   bool     `yaml:"word_start,omitempty"`
	WordEnd     bool     `yaml:"word_end,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"` // matches containing one of these words are rejected
	Description string   `yaml:"description,omitempty"`
}

// MaskToken returns the literal token written by the rule.
func (r RuleConfig) MaskToken() string {
	if r.Token != "" {
		return r.Token
	}
	if strings.Contains(r.Replacement, "$") {
		return ""
	}
	return r.Replacement
}

// MaskingConfig holds the regex catalogue and entity-stage settings.
type MaskingConfig struct {
	// Rules is the ordered catalogue. Order is part of the masking contract.
	Rules []RuleConfig `yaml:"rules,omitempty"`

	// DisabledRules removes rules by name without touching the order of the rest.
	DisabledRules []string `yaml:"disabled_rules,omitempty"`

	Cities []string `yaml:"cities,omitempty"`
	Titles []string `yaml:"titles,omitempty"`

	// RuleTimeout bounds a single rule application on a single unit.
	RuleTimeout time.Duration `yaml:"rule_timeout,omitempty"`

	// MinConfidence drops tagger spans scored below it.
	MinConfidence float64 `yaml:"min_confidence,omitempty"`

	TaggerFailurePolicy TaggerFailurePolicy `yaml:"tagger_failure_policy,omitempty"`
}

// EnabledRules returns the catalogue without disabled rules, in order.
func (m *MaskingConfig) EnabledRules() []RuleConfig {
	disabled := make(map[string]bool, len(m.DisabledRules))
	for _, name := range m.DisabledRules {
		disabled[name] = true
	}
	rules := make([]RuleConfig, 0, len(m.Rules))
	for _, r := range m.Rules {
		if !disabled[r.Name] {
			rules = append(rules, r)
		}
	}
	return rules
}

// GazetteerWords returns the word list backing a gazetteer rule.
func (m *MaskingConfig) GazetteerWords(g Gazetteer) []string {
	switch g {
	case GazetteerCities:
		return m.Cities
	case GazetteerTitles:
		return m.Titles
	default:
		return nil
	}
}

// SegmenterConfig controls sentence splitting.
type SegmenterConfig struct {
	// Abbreviations are written without the trailing period.
	Abbreviations []string `yaml:"abbreviations,omitempty"`
	DatePattern   string   `yaml:"date_pattern,omitempty"`
	// DateKeywords drop any sentence containing them (case-sensitive substring).
	DateKeywords []string `yaml:"date_keywords,omitempty"`
	DropNoise    bool     `yaml:"drop_noise,omitempty"`
	// MinSentenceRunes is the noise filter's length floor.
	MinSentenceRunes int `yaml:"min_sentence_runes,omitempty"`
}

// TaggerConfig selects and tunes the entity tagger client.
type TaggerConfig struct {
	Transport TaggerTransport `yaml:"transport,omitempty"`
	// Address is a base URL for http and host:port for grpc.
	Address    string             `yaml:"address,omitempty"`
	Timeout    time.Duration      `yaml:"timeout,omitempty"`
	OffsetUnit OffsetUnit         `yaml:"offset_unit,omitempty"`
	BatchSize  int                `yaml:"batch_size,omitempty"`
	Cache      *TaggerCacheConfig `yaml:"cache,omitempty"`
}

// TaggerCacheConfig configures caching of tagger responses.
type TaggerCacheConfig struct {
	Backend       CacheBackend  `yaml:"backend,omitempty"`
	TTL           time.Duration `yaml:"ttl,omitempty"`
	RedisAddr     string        `yaml:"redis_addr,omitempty"`
	RedisPassword string        `yaml:"redis_password,omitempty"`
	RedisDB       int           `yaml:"redis_db,omitempty"`
	KeyPrefix     string        `yaml:"key_prefix,omitempty"`
}

// BatchConfig controls the batch worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers,omitempty"`
	// OutputBOM prefixes exported CSV files with a UTF-8 byte order mark.
	OutputBOM bool `yaml:"output_bom,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	HTTPPort     string `yaml:"http_port,omitempty"`
	MaxBodyBytes int64  `yaml:"max_body_bytes,omitempty"`
}
