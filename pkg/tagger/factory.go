package tagger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/codeready-toolchain/contractmask/pkg/config"
)

// FromConfig builds the tagger selected by cfg, wrapped in the configured
// cache. It returns a nil Tagger when the transport is "none". The returned
// close function releases connections and is never nil.
func FromConfig(ctx context.Context, cfg *config.TaggerConfig) (Tagger, func() error, error) {
	noop := func() error { return nil }
	if cfg == nil {
		return nil, noop, nil
	}

	var (
		t       Tagger
		closers []func() error
	)
	switch cfg.Transport {
	case config.TaggerTransportNone, "":
		slog.Info("Entity tagger disabled, masking is regex-only")
		return nil, noop, nil
	case config.TaggerTransportHTTP:
		t = NewHTTPClient(cfg.Address, cfg.Timeout, cfg.OffsetUnit)
	case config.TaggerTransportGRPC:
		c, err := NewGRPCClient(cfg.Address, cfg.Timeout, cfg.OffsetUnit)
		if err != nil {
			return nil, noop, err
		}
		t = c
		closers = append(closers, c.Close)
	default:
		return nil, noop, fmt.Errorf("unknown tagger transport %q", cfg.Transport)
	}

	if cfg.Cache != nil {
		switch cfg.Cache.Backend {
		case config.CacheBackendMemory:
			t = NewCaching(t, NewMemoryCache(cfg.Cache.TTL))
		case config.CacheBackendRedis:
			rc := NewRedisCache(cfg.Cache)
			if err := rc.Ping(ctx); err != nil {
				// Lookups fail open, so an unreachable cache only costs hits.
				slog.Warn("Tagger cache unreachable at startup", "addr", cfg.Cache.RedisAddr, "error", err)
			}
			t = NewCaching(t, rc)
			closers = append(closers, rc.Close)
		}
	}

	slog.Info("Entity tagger configured",
		"transport", cfg.Transport,
		"address", cfg.Address,
		"offset_unit", cfg.OffsetUnit,
		"cache", cacheBackend(cfg))

	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
	return t, closeAll, nil
}

func cacheBackend(cfg *config.TaggerConfig) config.CacheBackend {
	if cfg.Cache == nil || cfg.Cache.Backend == "" {
		return config.CacheBackendNone
	}
	return cfg.Cache.Backend
}
