package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeilner/unimach/internal/adapters/memory"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	record := &domain.RunRecord{
		ID:        "iso-1",
		Status:    domain.RunCompleted,
		FinalTape: []domain.Symbol{domain.SymbolZero},
		StartedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, record))

	// Mutating the saved record must not reach the store.
	record.FinalTape[0] = domain.SymbolMarker

	loaded, err := store.Load(ctx, "iso-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SymbolZero, loaded.FinalTape[0])

	// Mutating a loaded record must not reach the store either.
	loaded.FinalTape[0] = domain.SymbolMarker
	again, err := store.Load(ctx, "iso-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SymbolZero, again.FinalTape[0])
}
