package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/contractmask/pkg/batch"
	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/masking"
	"github.com/codeready-toolchain/contractmask/pkg/models"
	"github.com/codeready-toolchain/contractmask/pkg/segment"
	"github.com/codeready-toolchain/contractmask/test/util"
)

var _ batch.Recorder = (*Store)(nil)

func TestStore_RunLifecycle(t *testing.T) {
	store := NewStore(util.SetupTestDatabase(t))
	ctx := context.Background()

	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	run := &models.Run{
		ID:        uuid.New().String(),
		Status:    models.RunStatusRunning,
		Workers:   4,
		StartedAt: started,
	}
	require.NoError(t, store.StartRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusRunning, got.Status)
	assert.Nil(t, got.FinishedAt)
	assert.True(t, started.Equal(got.StartedAt))

	require.NoError(t, store.RecordFailure(ctx, &models.RunFailure{
		RunID:      run.ID,
		DocumentID: "sozlesme-1.txt",
		Failure: models.UnitFailure{
			Ordinal:  3,
			Kind:     models.FailureTaggerUnavailable,
			Message:  "tagger unavailable",
			Excluded: true,
		},
		RecordedAt: started.Add(time.Second),
	}))
	require.NoError(t, store.RecordFailure(ctx, &models.RunFailure{
		RunID:      run.ID,
		DocumentID: "sozlesme-2.txt",
		Failure:    models.UnitFailure{Ordinal: 1, Kind: models.FailureRuleTimeout, Rule: "kisi_adi", Message: "skipped"},
		RecordedAt: started.Add(2 * time.Second),
	}))

	finished := started.Add(time.Minute)
	run.Status = models.RunStatusCompleted
	run.FinishedAt = &finished
	run.Documents, run.Sentences, run.Degraded, run.Excluded, run.Failed = 2, 40, 1, 1, 0
	require.NoError(t, store.FinishRun(ctx, run))

	got, err = store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, finished.Equal(*got.FinishedAt))
	assert.Equal(t, 2, got.Documents)
	assert.Equal(t, 40, got.Sentences)
	assert.Equal(t, 1, got.Degraded)
	assert.Equal(t, 1, got.Excluded)

	failures, err := store.ListFailures(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "sozlesme-1.txt", failures[0].DocumentID)
	assert.Equal(t, models.FailureTaggerUnavailable, failures[0].Failure.Kind)
	assert.True(t, failures[0].Failure.Excluded)
	assert.Equal(t, "kisi_adi", failures[1].Failure.Rule)
}

func TestStore_NotFound(t *testing.T) {
	store := NewStore(util.SetupTestDatabase(t))
	ctx := context.Background()

	_, err := store.GetRun(ctx, uuid.New().String())
	require.ErrorIs(t, err, ErrRunNotFound)

	now := time.Now()
	err = store.FinishRun(ctx, &models.Run{ID: uuid.New().String(), Status: models.RunStatusCompleted, FinishedAt: &now})
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestStore_WithPool(t *testing.T) {
	store := NewStore(util.SetupTestDatabase(t))
	ctx := context.Background()

	seg, err := segment.New(config.DefaultSegmenterConfig())
	require.NoError(t, err)
	svc, err := masking.NewService(config.DefaultMaskingConfig(), masking.WithSplitter(seg))
	require.NoError(t, err)

	report, err := batch.NewPool(svc, 2, store).Run(ctx, []batch.Document{
		{ID: "ok.txt", Text: "IBAN: TR33 0006 1005 1978 6457 8413 26 hesabına ödenir."},
		{ID: "bad.txt", Text: "Ayrılmış \uE001 karakter."},
	})
	require.NoError(t, err)

	got, err := store.GetRun(ctx, report.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 2, got.Documents)
	assert.Equal(t, 1, got.Failed)

	failures, err := store.ListFailures(ctx, report.Run.ID)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.txt", failures[0].DocumentID)
	assert.Equal(t, models.FailurePlaceholderCollision, failures[0].Failure.Kind)
	assert.NotContains(t, failures[0].Failure.Message, "karakter")
}
