package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional configuration file inside the config directory.
const ConfigFileName = "contractmask.yaml"

// ContractMaskYAMLConfig represents the complete contractmask.yaml file structure
type ContractMaskYAMLConfig struct {
	Masking   *MaskingConfig   `yaml:"masking"`
	Segmenter *SegmenterConfig `yaml:"segmenter"`
	Tagger    *TaggerConfig    `yaml:"tagger"`
	Batch     *BatchConfig     `yaml:"batch"`
	Server    *ServerConfig    `yaml:"server"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Load contractmask.yaml from configDir (a missing file means built-in defaults)
//  2. Expand environment variables
//  3. Merge user settings over built-in defaults
//  4. Validate all configuration
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"rules", stats.Rules,
		"disabled_rules", stats.DisabledRules,
		"cities", stats.Cities,
		"titles", stats.Titles,
		"abbreviations", stats.Abbreviations,
		"tagger_transport", cfg.Tagger.Transport,
		"tagger_failure_policy", cfg.Masking.TaggerFailurePolicy)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	user, err := loader.loadContractMaskYAML()
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, NewLoadError(ConfigFileName, err)
		}
		slog.Info("No configuration file found, using built-in defaults",
			"file", filepath.Join(configDir, ConfigFileName))
		user = &ContractMaskYAMLConfig{}
	}

	cfg := Default()
	cfg.configDir = configDir

	if user.Masking != nil {
		merged, err := mergeMasking(cfg.Masking, user.Masking)
		if err != nil {
			return nil, err
		}
		cfg.Masking = merged
	}
	if user.Segmenter != nil {
		if err := mergo.Merge(cfg.Segmenter, user.Segmenter, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge segmenter config: %w", err)
		}
	}
	if user.Tagger != nil {
		if err := mergo.Merge(cfg.Tagger, user.Tagger, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge tagger config: %w", err)
		}
	}
	if user.Batch != nil {
		if err := mergo.Merge(cfg.Batch, user.Batch, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge batch config: %w", err)
		}
	}
	if user.Server != nil {
		if err := mergo.Merge(cfg.Server, user.Server, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge server config: %w", err)
		}
	}

	return cfg, nil
}

// mergeMasking overlays user masking settings on the built-in ones.
// A user rule whose name matches a built-in rule replaces it in place so the
// catalogue order is kept; other user rules are appended in file order.
func mergeMasking(builtin, user *MaskingConfig) (*MaskingConfig, error) {
	rules := mergeRules(builtin.Rules, user.Rules)

	userScalars := *user
	userScalars.Rules = nil
	if err := mergo.Merge(builtin, &userScalars, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge masking config: %w", err)
	}
	builtin.Rules = rules
	return builtin, nil
}

func mergeRules(builtin, user []RuleConfig) []RuleConfig {
	result := append([]RuleConfig(nil), builtin...)
	index := make(map[string]int, len(result))
	for i, r := range result {
		index[r.Name] = i
	}
	for _, r := range user {
		if i, ok := index[r.Name]; ok {
			result[i] = r
			continue
		}
		index[r.Name] = len(result)
		result = append(result, r)
	}
	return result
}

func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadContractMaskYAML() (*ContractMaskYAMLConfig, error) {
	var config ContractMaskYAMLConfig
	if err := l.loadYAML(ConfigFileName, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
