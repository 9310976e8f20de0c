package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{
			name:  "simple substitution with {{.VAR}}",
			input: "address: {{.TAGGER_ADDR}}",
			env:   map[string]string{"TAGGER_ADDR": "http://ner:8000"},
			want:  "address: http://ner:8000",
		},
		{
			name:  "group reference in replacement is NOT expanded",
			input: `replacement: "${1}[BANKA_BILGISI]"`,
			env:   map[string]string{"1": "oops"},
			want:  `replacement: "${1}[BANKA_BILGISI]"`,
		},
		{
			name:  "multiple substitutions in one line",
			input: "redis_addr: {{.REDIS_HOST}}:{{.REDIS_PORT}}",
			env:   map[string]string{"REDIS_HOST": "cache", "REDIS_PORT": "6379"},
			want:  "redis_addr: cache:6379",
		},
		{
			name:  "missing variable expands to empty",
			input: "address: {{.MISSING_VAR}}",
			want:  "address: ",
		},
		{
			name:  "malformed template passes through",
			input: "pattern: {{.BROKEN",
			want:  "pattern: {{.BROKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, string(ExpandEnv([]byte(tt.input))))
		})
	}
}

func TestExpandEnvKeepsYAMLValid(t *testing.T) {
	t.Setenv("POLICY", "strict")
	input := []byte(`
masking:
  tagger_failure_policy: {{.POLICY}}
  rules:
    - name: custom
      pattern: 'Sözleşme\s+No[:.]?\s*(\d+)'
      replacement: "[SOZLESME_NO]"
`)
	var cfg ContractMaskYAMLConfig
	err := yaml.Unmarshal(ExpandEnv(input), &cfg)
	assert.NoError(t, err)
	assert.Equal(t, TaggerFailureStrict, cfg.Masking.TaggerFailurePolicy)
	assert.Equal(t, `Sözleşme\s+No[:.]?\s*(\d+)`, cfg.Masking.Rules[0].Pattern)
}
