package tagger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		tg, closeFn, err := FromConfig(ctx, config.DefaultTaggerConfig())
		require.NoError(t, err)
		assert.Nil(t, tg)
		assert.NoError(t, closeFn())
	})

	t.Run("nil config", func(t *testing.T) {
		tg, closeFn, err := FromConfig(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, tg)
		assert.NoError(t, closeFn())
	})

	t.Run("http", func(t *testing.T) {
		cfg := config.DefaultTaggerConfig()
		cfg.Transport = config.TaggerTransportHTTP
		cfg.Address = "http://localhost:8000"
		tg, closeFn, err := FromConfig(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &HTTPClient{}, tg)
		assert.NoError(t, closeFn())
	})

	t.Run("grpc with memory cache", func(t *testing.T) {
		cfg := config.DefaultTaggerConfig()
		cfg.Transport = config.TaggerTransportGRPC
		cfg.Address = "localhost:50051"
		cfg.Cache.Backend = config.CacheBackendMemory
		cfg.Cache.TTL = time.Minute
		tg, closeFn, err := FromConfig(ctx, cfg)
		require.NoError(t, err)
		_, ok := tg.(BatchTagger)
		assert.True(t, ok)
		assert.IsType(t, &cachingBatchTagger{}, tg)
		assert.NoError(t, closeFn())
	})

	t.Run("unknown transport", func(t *testing.T) {
		cfg := config.DefaultTaggerConfig()
		cfg.Transport = "smtp"
		_, _, err := FromConfig(ctx, cfg)
		require.Error(t, err)
	})
}
