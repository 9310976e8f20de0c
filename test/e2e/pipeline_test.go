package e2e

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/api"
	"github.com/codeready-toolchain/contractmask/pkg/app"
	"github.com/codeready-toolchain/contractmask/pkg/batch"
	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

const contract = "Sn. Ayşe Çelik ile Genel Müdür Ahmet Yılmaz arasında imzalanmıştır. " +
	"İletişim: info@ornek.com adresine yazınız. " +
	"Hesap No: 1234567890 olarak bildirilmiştir. " +
	"Sözleşme 01.01.2023 tarihinde yürürlüğe girer."

var maskedContract = []string{
	"Sn. [KİŞİ_ADI] ile [UNVAN] [KİŞİ_ADI] arasında imzalanmıştır.",
	"İletişim: [ILETISIM_BILGISI] adresine yazınız.",
	"Hesap No: [BANKA_BILGISI] olarak bildirilmiştir.",
}

func maskedTexts(sentences []models.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Masked
	}
	return out
}

func TestSegmentMask_WithSidecar(t *testing.T) {
	sidecar := NewSidecar(t, "Ayşe Çelik", "Ahmet Yılmaz")
	a := NewTestApp(t, WithSidecar(sidecar))

	var resp api.SegmentMaskResponse
	a.PostJSON(t, "/api/v1/segment-mask", map[string]string{"text": contract}, http.StatusOK, &resp)

	assert.Equal(t, 3, resp.Units)
	assert.Empty(t, resp.Failures)
	assert.Equal(t, maskedContract, maskedTexts(resp.Sentences))
	for i, s := range resp.Sentences {
		assert.Equal(t, i+1, s.Ordinal)
		assert.False(t, s.Degraded)
	}
	// One batch call carries every sentence that survived filtering.
	assert.Equal(t, 3, sidecar.Texts())
}

func TestMask_EntityCounts(t *testing.T) {
	sidecar := NewSidecar(t, "Ahmet Yılmaz")
	a := NewTestApp(t, WithSidecar(sidecar))

	var resp api.MaskResponse
	a.PostJSON(t, "/api/v1/mask",
		map[string]string{"text": "Genel Müdür Ahmet Yılmaz imzalayacaktır."}, http.StatusOK, &resp)

	assert.Equal(t, "[UNVAN] [KİŞİ_ADI] imzalayacaktır.", resp.Masked)
	assert.Equal(t, 1, resp.Entities.Accepted)
	assert.Equal(t, 1, resp.Regex.Matches["unvan"])
}

func TestMask_TaggerCache(t *testing.T) {
	sidecar := NewSidecar(t, "Ahmet Yılmaz")
	a := NewTestApp(t, WithSidecar(sidecar), WithMemoryCache())

	body := map[string]string{"text": "Genel Müdür Ahmet Yılmaz imzalayacaktır."}
	for range 3 {
		var resp api.MaskResponse
		a.PostJSON(t, "/api/v1/mask", body, http.StatusOK, &resp)
		assert.Equal(t, "[UNVAN] [KİŞİ_ADI] imzalayacaktır.", resp.Masked)
	}
	assert.Equal(t, 1, sidecar.Texts())
}

func TestSidecarDown_Degrade(t *testing.T) {
	sidecar := NewSidecar(t, "Ayşe Çelik", "Ahmet Yılmaz")
	sidecar.SetDown(true)
	a := NewTestApp(t, WithSidecar(sidecar))

	var resp api.SegmentMaskResponse
	a.PostJSON(t, "/api/v1/segment-mask", map[string]string{"text": contract}, http.StatusOK, &resp)

	// The regex fallback still masks the names; every unit is flagged.
	assert.Equal(t, maskedContract, maskedTexts(resp.Sentences))
	require.Len(t, resp.Failures, 3)
	for i, f := range resp.Failures {
		assert.Equal(t, i+1, f.Ordinal)
		assert.Equal(t, models.FailureTaggerUnavailable, f.Kind)
		assert.False(t, f.Excluded)
		assert.True(t, resp.Sentences[i].Degraded)
	}
}

func TestSidecarDown_Strict(t *testing.T) {
	sidecar := NewSidecar(t)
	sidecar.SetDown(true)
	cfg := config.Default()
	cfg.Masking.TaggerFailurePolicy = config.TaggerFailureStrict
	a := NewTestApp(t, WithConfig(cfg), WithSidecar(sidecar))

	var errResp api.ErrorResponse
	a.PostJSON(t, "/api/v1/mask", map[string]string{"text": "Hesap No: 1234567890"}, http.StatusServiceUnavailable, &errResp)
	assert.Equal(t, "TAGGER_UNAVAILABLE", errResp.Error)

	var resp api.SegmentMaskResponse
	a.PostJSON(t, "/api/v1/segment-mask", map[string]string{"text": contract}, http.StatusOK, &resp)
	assert.Empty(t, resp.Sentences)
	assert.Equal(t, 3, resp.Units)
	require.Len(t, resp.Failures, 3)
	for _, f := range resp.Failures {
		assert.True(t, f.Excluded)
	}

	sidecar.SetDown(false)
	var recovered api.SegmentMaskResponse
	a.PostJSON(t, "/api/v1/segment-mask", map[string]string{"text": contract}, http.StatusOK, &recovered)
	assert.Equal(t, maskedContract, maskedTexts(recovered.Sentences))
	assert.Empty(t, recovered.Failures)
}

func TestHealthAndMetrics(t *testing.T) {
	a := NewTestApp(t, WithSidecar(NewSidecar(t)))

	var resp api.HealthResponse
	a.PostJSON(t, "/api/v1/mask", map[string]string{"text": "Hesap No: 1234567890"}, http.StatusOK, nil)
	require.NoError(t, json.Unmarshal(a.Get(t, "/health", http.StatusOK), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.Configuration.TaggerEnabled)

	metrics := string(a.Get(t, "/metrics", http.StatusOK))
	assert.Contains(t, metrics, "contractmask_tagger_calls_total")
	assert.Contains(t, metrics, "contractmask_units_total")
}

func TestBatch_CSVGolden(t *testing.T) {
	sidecar := NewSidecar(t, "Ayşe Çelik", "Ahmet Yılmaz")
	a := NewTestApp(t, WithSidecar(sidecar))

	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "sozlesme.txt"), []byte(contract), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "bozuk.txt"), []byte("Metin \uE000 içerir."), 0o600))

	docs, err := app.ReadDocuments(in)
	require.NoError(t, err)

	report, err := batch.NewPool(a.Pipeline.Service, 2, batch.NopRecorder{}).Run(t.Context(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Run.Documents)
	assert.Equal(t, 1, report.Run.Failed)
	assert.Equal(t, 3, report.Run.Sentences)

	out := t.TempDir()
	require.NoError(t, app.WriteReport(out, report, false))

	_, err = os.Stat(filepath.Join(out, "bozuk.csv"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(out, "sozlesme.csv"))
	require.NoError(t, err)
	AssertGolden(t, goldenPath("batch", "sozlesme.csv"), data)
}
