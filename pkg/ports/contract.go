package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeilner/unimach/pkg/domain"
)

// RunStoreContract runs a suite of tests to verify that a RunStore
// implementation adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	record := func(n int, startedAt time.Time) *domain.RunRecord {
		return &domain.RunRecord{
			ID:         fmt.Sprintf("%s-%d", prefix, n),
			Name:       "add",
			Code:       "0101010100",
			Word:       "00100001",
			TapeSize:   200,
			Status:     domain.RunCompleted,
			Result:     6,
			Steps:      115,
			FinalState: 7,
			FinalTape:  []domain.Symbol{domain.SymbolBlank, domain.SymbolZero},
			StartedAt:  startedAt,
			Duration:   42 * time.Millisecond,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		want := record(1, time.Now().UTC())
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Code, got.Code)
		assert.Equal(t, want.Word, got.Word)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.Result, got.Result)
		assert.Equal(t, want.Steps, got.Steps)
		assert.Equal(t, want.FinalState, got.FinalState)
		assert.Equal(t, want.FinalTape, got.FinalTape)
		assert.Equal(t, want.Duration, got.Duration)
		// Persistence may round-trip through JSON; compare instants, not
		// representations.
		assert.WithinDuration(t, want.StartedAt, got.StartedAt, time.Second)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		first := record(2, time.Now().UTC())
		require.NoError(t, store.Save(ctx, first))

		updated := record(2, time.Now().UTC())
		updated.Result = 80
		require.NoError(t, store.Save(ctx, updated))

		got, err := store.Load(ctx, updated.ID)
		require.NoError(t, err)
		assert.Equal(t, 80, got.Result)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := record(3, time.Now().UTC())
		require.NoError(t, store.Save(ctx, rec))

		require.NoError(t, store.Delete(ctx, rec.ID))

		_, err := store.Load(ctx, rec.ID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		// Deleting again must stay silent.
		assert.NoError(t, store.Delete(ctx, rec.ID))
	})

	t.Run("List Newest First", func(t *testing.T) {
		base := time.Now().UTC().Add(-time.Hour)
		oldest := record(4, base)
		middle := record(5, base.Add(10*time.Minute))
		newest := record(6, base.Add(20*time.Minute))

		for _, r := range []*domain.RunRecord{middle, newest, oldest} {
			require.NoError(t, store.Save(ctx, r))
		}
		defer func() {
			for _, r := range []*domain.RunRecord{oldest, middle, newest} {
				_ = store.Delete(ctx, r.ID)
			}
		}()

		records, err := store.List(ctx)
		require.NoError(t, err)

		// Other subtests may have left records behind; check relative
		// order of ours instead of exact positions.
		pos := map[string]int{}
		for i, r := range records {
			pos[r.ID] = i
		}
		require.Contains(t, pos, oldest.ID)
		require.Contains(t, pos, middle.ID)
		require.Contains(t, pos, newest.ID)
		assert.Less(t, pos[newest.ID], pos[middle.ID])
		assert.Less(t, pos[middle.ID], pos[oldest.ID])
	})
}
