// Package runlog persists batch run summaries and failure markers.
// Document text is never written.
package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Store is a batch.Recorder over PostgreSQL. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over a migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// StartRun inserts run.
func (s *Store) StartRun(ctx context.Context, run *models.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mask_runs (id, status, workers, started_at)
		 VALUES ($1, $2, $3, $4)`,
		run.ID, string(run.Status), run.Workers, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// RecordFailure appends a failure marker to its run.
func (s *Store) RecordFailure(ctx context.Context, f *models.RunFailure) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mask_run_failures
		   (run_id, document_id, ordinal, kind, rule, message, excluded, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.RunID, f.DocumentID, f.Failure.Ordinal, string(f.Failure.Kind),
		f.Failure.Rule, f.Failure.Message, f.Failure.Excluded, f.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert failure for run %s: %w", f.RunID, err)
	}
	return nil
}

// FinishRun stores the final status and counts of run.
func (s *Store) FinishRun(ctx context.Context, run *models.Run) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mask_runs
		 SET status = $2, finished_at = $3, documents = $4, sentences = $5,
		     degraded = $6, excluded = $7, failed = $8
		 WHERE id = $1`,
		run.ID, string(run.Status), run.FinishedAt, run.Documents, run.Sentences,
		run.Degraded, run.Excluded, run.Failed)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", run.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

// GetRun returns the run with id.
func (s *Store) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var (
		run      models.Run
		status   string
		finished sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status, workers, started_at, finished_at,
		        documents, sentences, degraded, excluded, failed
		 FROM mask_runs WHERE id = $1`, id).
		Scan(&run.ID, &status, &run.Workers, &run.StartedAt, &finished,
			&run.Documents, &run.Sentences, &run.Degraded, &run.Excluded, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	run.Status = models.RunStatus(status)
	run.StartedAt = run.StartedAt.UTC()
	if finished.Valid {
		t := finished.Time.UTC()
		run.FinishedAt = &t
	}
	return &run, nil
}

// ListFailures returns the failure markers of a run in recording order.
func (s *Store) ListFailures(ctx context.Context, runID string) ([]models.RunFailure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, ordinal, kind, rule, message, excluded, recorded_at
		 FROM mask_run_failures WHERE run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list failures for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []models.RunFailure
	for rows.Next() {
		var (
			f        = models.RunFailure{RunID: runID}
			kind     string
			recorded time.Time
		)
		if err := rows.Scan(&f.DocumentID, &f.Failure.Ordinal, &kind, &f.Failure.Rule,
			&f.Failure.Message, &f.Failure.Excluded, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		f.Failure.Kind = models.FailureKind(kind)
		f.RecordedAt = recorded.UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}
