package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/segment"
	"github.com/codeready-toolchain/contractmask/pkg/tagger"
)

// Pipeline is the masking service with the components it was built from.
type Pipeline struct {
	Service   *masking.Service
	Segmenter *segment.Segmenter
	closeFn   func() error
}

// NewPipeline builds the segmenter, the configured tagger (if any) and the
// masking service.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	seg, err := segment.New(cfg.Segmenter)
	if err != nil {
		return nil, fmt.Errorf("failed to create segmenter: %w", err)
	}

	tg, closeTagger, err := tagger.FromConfig(ctx, cfg.Tagger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tagger: %w", err)
	}

	opts := []masking.Option{
		masking.WithSplitter(seg),
		masking.WithTaggerBatchSize(cfg.Tagger.BatchSize),
	}
	if tg != nil {
		opts = append(opts, masking.WithTagger(tg))
	}

	svc, err := masking.NewService(cfg.Masking, opts...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create masking service: %w", err), closeTagger())
	}

	return &Pipeline{Service: svc, Segmenter: seg, closeFn: closeTagger}, nil
}

// Close releases the tagger connections and caches.
func (p *Pipeline) Close() error {
	if p.closeFn == nil {
		return nil
	}
	return p.closeFn()
}
