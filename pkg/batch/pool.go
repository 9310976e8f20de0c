// Package batch masks many documents concurrently and records each run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
	"github.com/codeready-toolchain/contractmask/pkg/segment"
)

// Document is one extracted contract text.
type Document struct {
	ID   string
	Text string
}

// Outcome is the result for one document. Err is set when the document as a
// whole could not be processed; Sentences is then empty.
type Outcome struct {
	DocumentID string
	Sentences  []models.Sentence
	Failures   []models.UnitFailure
	Err        error
}

// Report is returned by Pool.Run. Outcomes follow input order; documents not
// started before cancellation have a nil Err and no sentences.
type Report struct {
	Run      models.Run
	Outcomes []Outcome
}

// Masker segments and masks one document.
type Masker interface {
	SegmentAndMask(ctx context.Context, text string) (*masking.DocumentResult, error)
}

// Recorder persists run metadata and failure markers. Implementations must
// be safe for concurrent use.
type Recorder interface {
	StartRun(ctx context.Context, run *models.Run) error
	RecordFailure(ctx context.Context, f *models.RunFailure) error
	FinishRun(ctx context.Context, run *models.Run) error
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) StartRun(context.Context, *models.Run) error          { return nil }
func (NopRecorder) RecordFailure(context.Context, *models.RunFailure) error { return nil }
func (NopRecorder) FinishRun(context.Context, *models.Run) error         { return nil }

// Pool processes documents with at most workers in flight.
type Pool struct {
	masker   Masker
	workers  int
	recorder Recorder
	now      func() time.Time
}

// NewPool creates a pool. workers < 1 means one worker; a nil recorder
// records nothing.
func NewPool(masker Masker, workers int, recorder Recorder) *Pool {
	if workers < 1 {
		workers = 1
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Pool{masker: masker, workers: workers, recorder: recorder, now: time.Now}
}

// Run masks docs. A failing document never stops the others. The error is
// non-nil only when the run could not be started or ctx ended before every
// document was processed; the report is returned in the latter case too.
func (p *Pool) Run(ctx context.Context, docs []Document) (*Report, error) {
	start := p.now()
	run := models.Run{
		ID:        uuid.New().String(),
		Status:    models.RunStatusRunning,
		Workers:   p.workers,
		StartedAt: start.UTC(),
	}
	log := slog.With("run_id", run.ID)

	if err := p.recorder.StartRun(ctx, &run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	log.Info("Batch run started", "documents", len(docs), "workers", p.workers)

	outcomes := make([]Outcome, len(docs))
	done := make([]bool, len(docs))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range docs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = p.process(ctx, log, run.ID, docs[i])
			done[i] = !errors.Is(outcomes[i].Err, context.Canceled) &&
				!errors.Is(outcomes[i].Err, context.DeadlineExceeded)
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if !done[i] {
			continue
		}
		run.Documents++
		if o.Err != nil {
			run.Failed++
			continue
		}
		run.Sentences += len(o.Sentences)
		for _, s := range o.Sentences {
			if s.Degraded {
				run.Degraded++
			}
		}
		for _, f := range o.Failures {
			if f.Excluded {
				run.Excluded++
			}
		}
	}

	finished := p.now().UTC()
	run.FinishedAt = &finished
	run.Status = models.RunStatusCompleted
	runErr := ctx.Err()
	if runErr != nil {
		run.Status = models.RunStatusCancelled
	}

	// The ledger entry is closed even when the run was cancelled.
	if err := p.recorder.FinishRun(context.WithoutCancel(ctx), &run); err != nil {
		log.Error("Failed to record run completion", "error", err)
	}
	metrics.BatchDuration.Observe(finished.Sub(start.UTC()).Seconds())

	log.Info("Batch run finished",
		"status", run.Status,
		"documents", run.Documents,
		"sentences", run.Sentences,
		"degraded", run.Degraded,
		"excluded", run.Excluded,
		"failed", run.Failed,
		"duration", finished.Sub(start.UTC()))

	return &Report{Run: run, Outcomes: outcomes}, runErr
}

func (p *Pool) process(ctx context.Context, log *slog.Logger, runID string, doc Document) Outcome {
	out := Outcome{DocumentID: doc.ID}
	log = log.With("document_id", doc.ID)

	res, err := p.masker.SegmentAndMask(ctx, doc.Text)
	if err != nil {
		out.Err = err
		if ctx.Err() != nil {
			metrics.Documents.WithLabelValues("cancelled").Inc()
			return out
		}
		log.Warn("Document failed", "error", err)
		metrics.Documents.WithLabelValues("failed").Inc()
		p.record(ctx, log, runID, doc.ID, documentFailure(err))
		return out
	}

	out.Sentences = res.Sentences
	out.Failures = res.Failures
	for _, f := range res.Failures {
		p.record(ctx, log, runID, doc.ID, f)
	}
	metrics.Documents.WithLabelValues("ok").Inc()
	log.Debug("Document masked",
		"units", res.Units,
		"sentences", len(res.Sentences),
		"failures", len(res.Failures))
	return out
}

func (p *Pool) record(ctx context.Context, log *slog.Logger, runID, docID string, f models.UnitFailure) {
	err := p.recorder.RecordFailure(ctx, &models.RunFailure{
		RunID:      runID,
		DocumentID: docID,
		Failure:    f,
		RecordedAt: p.now().UTC(),
	})
	if err != nil {
		log.Error("Failed to record failure marker", "kind", f.Kind, "error", err)
	}
}

func documentFailure(err error) models.UnitFailure {
	kind := models.FailureDocument
	if errors.Is(err, segment.ErrPlaceholderCollision) {
		kind = models.FailurePlaceholderCollision
	}
	return models.UnitFailure{Kind: kind, Message: err.Error(), Excluded: true}
}
