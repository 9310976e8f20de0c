package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Sidecar is a stand-in NER service speaking the tagger wire format. It
// reports a PER span, in code point offsets, for every known name.
type Sidecar struct {
	URL string

	mu    sync.Mutex
	names []string
	down  atomic.Bool
	texts atomic.Int64
}

type sidecarSpan struct {
	Label string  `json:"label"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

type sidecarResult struct {
	Spans []sidecarSpan `json:"spans"`
}

// NewSidecar starts a sidecar recognizing names.
func NewSidecar(t *testing.T, names ...string) *Sidecar {
	t.Helper()
	s := &Sidecar{names: names}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /detect", func(w http.ResponseWriter, r *http.Request) {
		if s.down.Load() {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(s.detect(req.Text))
	})
	mux.HandleFunc("POST /detect/batch", func(w http.ResponseWriter, r *http.Request) {
		if s.down.Load() {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			return
		}
		var req struct {
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := struct {
			Results []sidecarResult `json:"results"`
		}{Results: make([]sidecarResult, 0, len(req.Texts))}
		for _, text := range req.Texts {
			resp.Results = append(resp.Results, s.detect(text))
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// SetDown makes every request fail with 503 until called with false.
func (s *Sidecar) SetDown(down bool) { s.down.Store(down) }

// Texts returns how many texts the sidecar has tagged.
func (s *Sidecar) Texts() int { return int(s.texts.Load()) }

func (s *Sidecar) detect(text string) sidecarResult {
	s.texts.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()

	res := sidecarResult{Spans: []sidecarSpan{}}
	for _, name := range s.names {
		offset := 0
		for {
			i := strings.Index(text[offset:], name)
			if i < 0 {
				break
			}
			i += offset
			start := len([]rune(text[:i]))
			res.Spans = append(res.Spans, sidecarSpan{
				Label: "B-PER",
				Start: start,
				End:   start + len([]rune(name)),
				Score: 0.98,
			})
			offset = i + len(name)
		}
	}
	return res
}
