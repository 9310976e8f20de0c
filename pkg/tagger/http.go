package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
	"github.com/codeready-toolchain/contractmask/pkg/version"
)

const transportHTTP = "http"

// maxResponseBytes caps how much of a tagger response is read.
const maxResponseBytes = 8 << 20

// HTTPClient calls a tagger sidecar over JSON/HTTP.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	offsets    config.OffsetUnit
	logger     *slog.Logger
}

// NewHTTPClient creates a client for the tagger at baseURL
// (e.g. "http://localhost:8000"). timeout bounds every round trip.
func NewHTTPClient(baseURL string, timeout time.Duration, offsets config.OffsetUnit) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		offsets:    offsets,
		logger:     slog.Default().With("tagger", baseURL),
	}
}

// Detect posts text to /detect.
func (c *HTTPClient) Detect(ctx context.Context, text string) ([]models.EntitySpan, error) {
	metrics.TaggerCalls.WithLabelValues(transportHTTP, "single").Inc()

	var resp detectResponse
	if err := c.post(ctx, "/detect", detectRequest{Text: text}, &resp); err != nil {
		metrics.TaggerFailures.WithLabelValues(transportHTTP).Inc()
		return nil, err
	}
	return toSpans(text, resp.Spans, c.offsets), nil
}

// DetectBatch posts texts to /detect/batch.
func (c *HTTPClient) DetectBatch(ctx context.Context, texts []string) ([][]models.EntitySpan, error) {
	metrics.TaggerCalls.WithLabelValues(transportHTTP, "batch").Inc()

	var resp detectBatchResponse
	if err := c.post(ctx, "/detect/batch", detectBatchRequest{Texts: texts}, &resp); err != nil {
		metrics.TaggerFailures.WithLabelValues(transportHTTP).Inc()
		return nil, err
	}
	if len(resp.Results) != len(texts) {
		metrics.TaggerFailures.WithLabelValues(transportHTTP).Inc()
		return nil, fmt.Errorf("%w: batch returned %d results for %d texts", ErrUnavailable, len(resp.Results), len(texts))
	}
	out := make([][]models.EntitySpan, len(texts))
	for i, r := range resp.Results {
		out[i] = toSpans(texts[i], r.Spans, c.offsets)
	}
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode tagger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create tagger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.Full())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("Tagger returned error status",
			"path", path,
			"status", resp.StatusCode,
			"body", string(snippet))
		return fmt.Errorf("%w: tagger returned HTTP %d for %s", ErrUnavailable, resp.StatusCode, path)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode tagger response: %v", ErrUnavailable, err)
	}
	return nil
}
