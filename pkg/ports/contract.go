package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newRun := func(id string, at time.Time) *domain.Run {
		return &domain.Run{
			ID:          id,
			Dataset:     "room0",
			DatasetPath: "/data/room0",
			Binary:      "/opt/fuse_replica",
			Outputs:     domain.NewOutputs("/out/room0"),
			StartedAt:   at,
			Duration:    1500 * time.Millisecond,
			ExitCode:    0,
			Outcome:     domain.OutcomeSucceeded,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		run := newRun(runID, started)
		run.ExitCode = 2
		run.Outcome = domain.OutcomeFailed

		err := store.Save(ctx, run)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Outputs, loaded.Outputs)
		assert.Equal(t, 2, loaded.ExitCode)
		assert.Equal(t, domain.OutcomeFailed, loaded.Outcome)
		assert.Equal(t, run.Duration, loaded.Duration)
		assert.True(t, run.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newRun(runID, started))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Saved out of order on purpose.
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, newRun(id2, started.Add(time.Minute)))
		_ = store.Save(ctx, newRun(id1, started))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, id1, runs[0].ID)
		assert.Equal(t, id2, runs[1].ID)
	})
}
