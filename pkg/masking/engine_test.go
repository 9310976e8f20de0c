package masking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

func newTestEngine(t *testing.T, rules ...config.RuleConfig) *RegexEngine {
	t.Helper()
	compiled := make([]*Rule, 0, len(rules))
	for _, rc := range rules {
		compiled = append(compiled, mustRule(t, rc))
	}
	reg, err := NewRegistry(compiled)
	require.NoError(t, err)
	return NewRegexEngine(reg, time.Second)
}

var (
	dateRule   = config.RuleConfig{Name: "date", Pattern: `\d{4}-\d{2}-\d{2}`, Replacement: "[DATE]"}
	numberRule = config.RuleConfig{Name: "number", Pattern: `\d+`, Replacement: "[NUM]"}
)

func TestRegexEngine_OrderMatters(t *testing.T) {
	input := "2023-01-05 and 42"

	got, report, err := newTestEngine(t, dateRule, numberRule).Apply(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "[DATE] and [NUM]", got)
	assert.Equal(t, map[string]int{"date": 1, "number": 1}, report.Matches)
	assert.Equal(t, 2, report.Total())
	assert.Empty(t, report.Skipped)

	got, _, err = newTestEngine(t, numberRule, dateRule).Apply(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "[NUM]-[NUM]-[NUM] and [NUM]", got)
}

func TestRegexEngine_NoMatches(t *testing.T) {
	got, report, err := newTestEngine(t, dateRule).Apply(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Equal(t, "nothing here", got)
	assert.Zero(t, report.Total())
}

func TestRegexEngine_SkipsRuleOverBudget(t *testing.T) {
	engine := newTestEngine(t, dateRule, numberRule)
	engine.ruleContext = func(ctx context.Context, rule *Rule) (context.Context, context.CancelFunc) {
		if rule.Name == "date" {
			return context.WithDeadline(ctx, time.Now().Add(-time.Second))
		}
		return context.WithCancel(ctx)
	}

	got, report, err := engine.Apply(context.Background(), "2023-01-05 and 42")
	require.NoError(t, err)
	assert.Equal(t, []string{"date"}, report.Skipped)
	assert.Equal(t, "[NUM]-[NUM]-[NUM] and [NUM]", got, "skipped rule passes its input on unchanged")
}

func TestRegexEngine_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, _, err := newTestEngine(t, dateRule).Apply(ctx, "2023-01-05")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestRegexEngine_BuiltinOrdering(t *testing.T) {
	cfg := config.DefaultMaskingConfig()
	rules, err := CompileRules(cfg)
	require.NoError(t, err)
	reg, err := NewRegistry(rules)
	require.NoError(t, err)
	engine := NewRegexEngine(reg, cfg.RuleTimeout)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"account label survives", "Hesap No: 1234567890", "Hesap No: [BANKA_BILGISI]"},
		{"tax label survives", "Vergi No: 1234567890", "Vergi No: [VERGI_NO]"},
		{"iban not shredded by national id", "TR12 3456 7890 1234 5678 9012", "[BANKA_BILGISI]"},
		{"bare article reference shadows referential phrase", "Madde 5'e göre", "[MADDE_NO]'e göre"},
		{"amount", "Kira bedeli 15.000 TL olarak belirlenmiştir", "Kira bedeli [TUTAR] olarak belirlenmiştir"},
		{"written date", "5 Mart 2024 tarihinde", "[TARİH] tarihinde"},
		{"phone", "Tel: 0532 123 45 67", "Tel: [ILETISIM_BILGISI]"},
		{"party", "Taraf A bu sözleşmeyi", "[TARAF_ADI] bu sözleşmeyi"},
		{"statute", "6098 sayılı Türk Borçlar Kanunu uyarınca", "[KANUN_ADI] uyarınca"},
		{"tax office", "Kadıköy Vergi Dairesi", "[VERGI_DAIRESI]"},
		{"attachment", "Ek-1 Teknik Şartname", "[EK_REFERANSI]"},
		{"currency name", "ödeme Euro cinsinden", "ödeme [PARA_BIRIMI] cinsinden"},
		{"title then person fallback", "Yönetim Kurulu Başkanı Mehmet Demir", "[UNVAN] [KİŞİ_ADI]"},
		{"no match", "bu metin hiçbir şey içermez", "bu metin hiçbir şey içermez"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, report, err := engine.Apply(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, report.Skipped)
		})
	}
}

func TestRegexEngine_ReferentialPhraseWhenBareRuleDisabled(t *testing.T) {
	cfg := config.DefaultMaskingConfig()
	cfg.DisabledRules = []string{"madde_no"}
	rules, err := CompileRules(cfg)
	require.NoError(t, err)
	reg, err := NewRegistry(rules)
	require.NoError(t, err)

	got, report, err := NewRegexEngine(reg, cfg.RuleTimeout).Apply(context.Background(), "Madde 5'e göre")
	require.NoError(t, err)
	assert.Equal(t, "[MADDE_ATIFI] göre", got)
	assert.Equal(t, 1, report.Matches["madde_atifi"])
}
