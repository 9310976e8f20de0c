package models

import "time"

// RunStatus is the lifecycle state of a batch run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// Run summarizes one batch masking run. Only counts are kept.
type Run struct {
	ID         string     `json:"id"`
	Status     RunStatus  `json:"status"`
	Workers    int        `json:"workers"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Documents  int        `json:"documents"`
	Sentences  int        `json:"sentences"`
	Degraded   int        `json:"degraded"`
	Excluded   int        `json:"excluded"`
	Failed     int        `json:"failed"`
}

// RunFailure is a failure marker recorded against a run.
type RunFailure struct {
	RunID      string      `json:"run_id"`
	DocumentID string      `json:"document_id"`
	Failure    UnitFailure `json:"failure"`
	RecordedAt time.Time   `json:"recorded_at"`
}
