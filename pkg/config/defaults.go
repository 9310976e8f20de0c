package config

import "time"

const (
	// DefaultRuleTimeout is the per-rule budget for one unit.
	DefaultRuleTimeout = 250 * time.Millisecond

	// DefaultTaggerTimeout bounds one tagger round trip.
	DefaultTaggerTimeout = 10 * time.Second

	// DefaultTaggerBatchSize is the number of sentences sent per batch call.
	DefaultTaggerBatchSize = 32

	// DefaultCacheTTL is how long tagger responses are cached.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultMinSentenceRunes is the noise filter length floor.
	DefaultMinSentenceRunes = 4
)

// DefaultMaskingConfig returns the built-in masking settings.
func DefaultMaskingConfig() *MaskingConfig {
	builtin := GetBuiltinConfig()
	return &MaskingConfig{
		Rules:               append([]RuleConfig(nil), builtin.Rules...),
		Cities:              append([]string(nil), builtin.Cities...),
		Titles:              append([]string(nil), builtin.Titles...),
		RuleTimeout:         DefaultRuleTimeout,
		TaggerFailurePolicy: TaggerFailureDegrade,
	}
}

// DefaultSegmenterConfig returns the built-in segmenter settings.
func DefaultSegmenterConfig() *SegmenterConfig {
	builtin := GetBuiltinConfig()
	return &SegmenterConfig{
		Abbreviations:    append([]string(nil), builtin.Abbreviations...),
		DatePattern:      builtin.DatePattern,
		DateKeywords:     append([]string(nil), builtin.DateKeywords...),
		MinSentenceRunes: DefaultMinSentenceRunes,
	}
}

// DefaultTaggerConfig returns tagger settings with the entity stage disabled.
func DefaultTaggerConfig() *TaggerConfig {
	return &TaggerConfig{
		Transport:  TaggerTransportNone,
		Timeout:    DefaultTaggerTimeout,
		OffsetUnit: OffsetUnitByte,
		BatchSize:  DefaultTaggerBatchSize,
		Cache: &TaggerCacheConfig{
			Backend:   CacheBackendNone,
			TTL:       DefaultCacheTTL,
			KeyPrefix: "contractmask:tagger:",
		},
	}
}

// DefaultBatchConfig returns the built-in batch settings.
func DefaultBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers: 4,
	}
}

// DefaultServerConfig returns the built-in HTTP settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		HTTPPort:     "8080",
		MaxBodyBytes: 4 << 20,
	}
}
