// Package e2e runs the HTTP service end to end against a stand-in tagger.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/api"
	"github.com/codeready-toolchain/contractmask/pkg/app"
	"github.com/codeready-toolchain/contractmask/pkg/config"
)

// TestApp is a running contractmask server.
type TestApp struct {
	Config   *config.Config
	Pipeline *app.Pipeline
	Server   *api.Server
	Sidecar  *Sidecar
	BaseURL  string
}

type testAppConfig struct {
	cfg     *config.Config
	sidecar *Sidecar
	cache   bool
}

// TestAppOption configures NewTestApp.
type TestAppOption func(*testAppConfig)

// WithConfig replaces the built-in configuration.
func WithConfig(cfg *config.Config) TestAppOption {
	return func(c *testAppConfig) { c.cfg = cfg }
}

// WithSidecar points the tagger at s over HTTP with rune offsets.
func WithSidecar(s *Sidecar) TestAppOption {
	return func(c *testAppConfig) { c.sidecar = s }
}

// WithMemoryCache enables the in-process tagger cache.
func WithMemoryCache() TestAppOption {
	return func(c *testAppConfig) { c.cache = true }
}

// NewTestApp builds the pipeline the way cmd/contractmask does and serves it
// on a random local port.
func NewTestApp(t *testing.T, opts ...TestAppOption) *TestApp {
	t.Helper()

	tc := &testAppConfig{}
	for _, opt := range opts {
		opt(tc)
	}
	if tc.cfg == nil {
		tc.cfg = config.Default()
	}
	if tc.sidecar != nil {
		tc.cfg.Tagger.Transport = config.TaggerTransportHTTP
		tc.cfg.Tagger.Address = tc.sidecar.URL
		tc.cfg.Tagger.OffsetUnit = config.OffsetUnitRune
		tc.cfg.Tagger.Timeout = 2 * time.Second
	}
	if tc.cache {
		tc.cfg.Tagger.Cache.Backend = config.CacheBackendMemory
	}

	ctx := context.Background()
	pipeline, err := app.NewPipeline(ctx, tc.cfg)
	require.NoError(t, err)

	server := api.NewServer(tc.cfg, pipeline.Service, pipeline.Segmenter, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.Serve(ln)
	}()

	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		_ = pipeline.Close()
	})

	return &TestApp{
		Config:   tc.cfg,
		Pipeline: pipeline,
		Server:   server,
		Sidecar:  tc.sidecar,
		BaseURL:  fmt.Sprintf("http://%s", ln.Addr().String()),
	}
}

// PostJSON posts body to path, asserts the status and decodes the response
// into out (when non-nil).
func (a *TestApp) PostJSON(t *testing.T, path string, body any, expectedStatus int, out any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, a.BaseURL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, "POST %s: %s", path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

// Get fetches path and returns the body.
func (a *TestApp) Get(t *testing.T, path string, expectedStatus int) []byte {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, a.BaseURL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, "GET %s: %s", path, raw)
	return raw
}
