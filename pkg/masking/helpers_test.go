package masking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

// builtinRule compiles one rule of the built-in catalogue.
func builtinRule(t *testing.T, name string) *Rule {
	t.Helper()
	cfg := config.DefaultMaskingConfig()
	for _, rc := range cfg.Rules {
		if rc.Name == name {
			rule, err := NewRule(rc, cfg.GazetteerWords(rc.Gazetteer))
			require.NoError(t, err)
			return rule
		}
	}
	t.Fatalf("no built-in rule %q", name)
	return nil
}

func mustRule(t *testing.T, rc config.RuleConfig) *Rule {
	t.Helper()
	rule, err := NewRule(rc, nil)
	require.NoError(t, err)
	return rule
}
