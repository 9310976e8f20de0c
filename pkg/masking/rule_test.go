package masking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

func TestGazetteerPattern(t *testing.T) {
	got := gazetteerPattern([]string{"Müdür", "Genel Müdür", "Av.", "Prof. Dr."})
	assert.Equal(t, `(?:Genel\s+Müdür|Prof\.?\s*Dr\.?|Müdür|Av\.?)`, got)
	assert.Empty(t, gazetteerPattern(nil))
	assert.Empty(t, gazetteerPattern([]string{"  "}))
}

func TestNewRule_Errors(t *testing.T) {
	_, err := NewRule(config.RuleConfig{Name: "bad", Pattern: `(`, Replacement: "[X]"}, nil)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRule(config.RuleConfig{Name: "empty", Gazetteer: config.GazetteerCities, Replacement: "[X]"}, nil)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRule(config.RuleConfig{Name: "notoken", Pattern: `(a)`, Replacement: "${1}"}, nil)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestRuleApply(t *testing.T) {
	tests := []struct {
		name  string
		rule  string
		input string
		want  string
		count int
	}{
		{
			name:  "label preserved through group reference",
			rule:  "hesap_no",
			input: "Hesap No: 1234567890",
			want:  "Hesap No: [BANKA_BILGISI]",
			count: 1,
		},
		{
			name:  "tax label preserved",
			rule:  "vergi_no",
			input: "Vergi No: 1234567890",
			want:  "Vergi No: [VERGI_NO]",
			count: 1,
		},
		{
			name:  "turkish letter after match is not a boundary",
			rule:  "sure",
			input: "2 günü içinde",
			want:  "2 günü içinde",
		},
		{
			name:  "duration followed by space",
			rule:  "sure",
			input: "3 ay içinde",
			want:  "[SÜRE] içinde",
			count: 1,
		},
		{
			name:  "city inside a longer word",
			rule:  "yer_adi",
			input: "İzmirli firma",
			want:  "İzmirli firma",
		},
		{
			name:  "city before apostrophe suffix",
			rule:  "yer_adi",
			input: "İzmir'de",
			want:  "[YER_ADI]'de",
			count: 1,
		},
		{
			name:  "letter before digits blocks start boundary",
			rule:  "tc_kimlik",
			input: "ş12345678901",
			want:  "ş12345678901",
		},
		{
			name:  "national id",
			rule:  "tc_kimlik",
			input: "TC kimlik numarası 12345678901 olan",
			want:  "TC kimlik numarası [KIMLIK_NO] olan",
			count: 1,
		},
		{
			name:  "match shortened to the last word boundary",
			rule:  "unvan",
			input: "Av. Canan Demir",
			want:  "[UNVAN]. Canan Demir",
			count: 1,
		},
		{
			name:  "multi-word title before single-word title",
			rule:  "unvan",
			input: "Prof. Dr. Ayşe",
			want:  "[UNVAN]. Ayşe",
			count: 1,
		},
		{
			name:  "title inside an uppercase token is ignored",
			rule:  "unvan",
			input: "[ADRES] [WEB_ADRESI]",
			want:  "[ADRES] [WEB_ADRESI]",
		},
		{
			name:  "company suffix",
			rule:  "sirket_adi",
			input: "ABC Ticaret A.Ş. ile anlaşılmıştır",
			want:  "[ŞİRKET_ADI]. ile anlaşılmıştır",
			count: 1,
		},
		{
			name:  "email",
			rule:  "email",
			input: "iletisim@acme.com.tr adresine",
			want:  "[ILETISIM_BILGISI] adresine",
			count: 1,
		},
		{
			name:  "url stops at comma",
			rule:  "url",
			input: "www.acme.com.tr, adresinden",
			want:  "[WEB_ADRESI], adresinden",
			count: 1,
		},
		{
			name:  "every occurrence replaced",
			rule:  "tarih_sayisal",
			input: "01.01.2023 ile 2024-12-31 arasında",
			want:  "[TARİH] ile [TARİH] arasında",
			count: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := builtinRule(t, tt.rule)
			got, n, err := rule.Apply(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, n)
		})
	}
}

func TestRuleApply_ExcludedWords(t *testing.T) {
	rule := builtinRule(t, "kisi_adi")

	got, n, err := rule.Apply(context.Background(), "Hesap No: [BANKA_BILGISI]")
	require.NoError(t, err)
	assert.Equal(t, "Hesap No: [BANKA_BILGISI]", got)
	assert.Zero(t, n)

	got, n, err = rule.Apply(context.Background(), "Ahmet Yılmaz imzaladı")
	require.NoError(t, err)
	assert.Equal(t, "[KİŞİ_ADI] imzaladı", got)
	assert.Equal(t, 1, n)
}

func TestRuleApply_EmptyMatches(t *testing.T) {
	rule := mustRule(t, config.RuleConfig{Name: "x", Pattern: `x*`, Replacement: "-"})
	got, n, err := rule.Apply(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, "-a-b-", got)
	assert.Equal(t, 3, n)
}

func TestRuleApply_ContextDone(t *testing.T) {
	rule := builtinRule(t, "tarih_sayisal")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "01.01.2023"
	got, n, err := rule.Apply(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuleTimeout)
	assert.Contains(t, err.Error(), "tarih_sayisal")
	assert.Equal(t, input, got)
	assert.Zero(t, n)
}

func TestRuleMatches(t *testing.T) {
	rule := builtinRule(t, "iban")
	assert.True(t, rule.Matches(context.Background(), "TR12 3456 7890 1234 5678 9012"))
	assert.False(t, rule.Matches(context.Background(), "[BANKA_BILGISI]"))
}

func TestIsWordBoundary(t *testing.T) {
	text := "şu İş"
	assert.True(t, isWordBoundary(text, 0))
	assert.False(t, isWordBoundary(text, len("ş")))
	assert.True(t, isWordBoundary(text, len("şu")))
	assert.True(t, isWordBoundary(text, len("şu ")))
	assert.False(t, isWordBoundary(text, len("şu İ")))
	assert.True(t, isWordBoundary(text, len(text)))
	assert.False(t, isWordBoundary("", 0))
}
