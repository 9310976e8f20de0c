package tagger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// Cache stores tagger results keyed by text digest.
type Cache interface {
	// Get returns the cached spans for key. A nil slice with ok=true is a
	// cached "no entities" result.
	Get(ctx context.Context, key string) (spans []models.EntitySpan, ok bool, err error)
	Set(ctx context.Context, key string, spans []models.EntitySpan) error
}

// CachingTagger serves repeated texts from a Cache. Cache errors are logged
// and treated as misses; tagger errors are never cached.
type CachingTagger struct {
	inner Tagger
	cache Cache
}

type cachingBatchTagger struct {
	*CachingTagger
	batch BatchTagger
}

// NewCaching wraps inner with cache. The result implements BatchTagger
// exactly when inner does.
func NewCaching(inner Tagger, cache Cache) Tagger {
	c := &CachingTagger{inner: inner, cache: cache}
	if bt, ok := inner.(BatchTagger); ok {
		return &cachingBatchTagger{CachingTagger: c, batch: bt}
	}
	return c
}

// CacheKey returns the digest a text is cached under.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Detect implements Tagger.
func (c *CachingTagger) Detect(ctx context.Context, text string) ([]models.EntitySpan, error) {
	key := CacheKey(text)
	if spans, ok := c.lookup(ctx, key); ok {
		return spans, nil
	}
	spans, err := c.inner.Detect(ctx, text)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, spans)
	return spans, nil
}

// DetectBatch looks every text up and sends only the misses to the tagger.
func (c *cachingBatchTagger) DetectBatch(ctx context.Context, texts []string) ([][]models.EntitySpan, error) {
	out := make([][]models.EntitySpan, len(texts))
	keys := make([]string, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		keys[i] = CacheKey(text)
		if spans, ok := c.lookup(ctx, keys[i]); ok {
			out[i] = spans
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}
	if len(missTexts) == 0 {
		return out, nil
	}

	fresh, err := c.batch.DetectBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		out[i] = fresh[j]
		c.store(ctx, keys[i], fresh[j])
	}
	return out, nil
}

func (c *CachingTagger) lookup(ctx context.Context, key string) ([]models.EntitySpan, bool) {
	spans, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		slog.Warn("Tagger cache lookup failed", "error", err)
		metrics.TaggerCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	case ok:
		metrics.TaggerCacheLookups.WithLabelValues("hit").Inc()
		return spans, true
	default:
		metrics.TaggerCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (c *CachingTagger) store(ctx context.Context, key string, spans []models.EntitySpan) {
	if err := c.cache.Set(ctx, key, spans); err != nil {
		slog.Warn("Tagger cache store failed", "error", err)
	}
}
