package config

// Config is the umbrella configuration object returned by Initialize.
type Config struct {
	configDir string

	Masking   *MaskingConfig
	Segmenter *SegmenterConfig
	Tagger    *TaggerConfig
	Batch     *BatchConfig
	Server    *ServerConfig
}

// Stats contains statistics about loaded configuration
type Stats struct {
	Rules         int
	DisabledRules int
	Cities        int
	Titles        int
	Abbreviations int
}

// Stats returns configuration statistics for logging
func (c *Config) Stats() Stats {
	s := Stats{}
	if c.Masking != nil {
		s.Rules = len(c.Masking.EnabledRules())
		s.DisabledRules = len(c.Masking.Rules) - s.Rules
		s.Cities = len(c.Masking.Cities)
		s.Titles = len(c.Masking.Titles)
	}
	if c.Segmenter != nil {
		s.Abbreviations = len(c.Segmenter.Abbreviations)
	}
	return s
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return &Config{
		Masking:   DefaultMaskingConfig(),
		Segmenter: DefaultSegmenterConfig(),
		Tagger:    DefaultTaggerConfig(),
		Batch:     DefaultBatchConfig(),
		Server:    DefaultServerConfig(),
	}
}
