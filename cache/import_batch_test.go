package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/pkg/csvimport"
)

func TestMemoryBatchStoreRoundTrip(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := context.Background()

	batch := &csvimport.Batch{ID: "batch-1", CompanyID: 7, Stage: csvimport.StageMapping}
	require.NoError(t, store.Save(ctx, batch, time.Minute))

	got, err := store.Get(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.CompanyID)
	assert.Equal(t, csvimport.StageMapping, got.Stage)
}

func TestMemoryBatchStoreMissing(t *testing.T) {
	store := NewMemoryBatchStore()

	_, err := store.Get(context.Background(), "yok")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryBatchStoreExpiry(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := context.Background()

	batch := &csvimport.Batch{ID: "batch-1"}
	require.NoError(t, store.Save(ctx, batch, -time.Second))

	_, err := store.Get(ctx, "batch-1")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestMemoryBatchStoreDelete(t *testing.T) {
	store := NewMemoryBatchStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &csvimport.Batch{ID: "batch-1"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "batch-1"))

	_, err := store.Get(ctx, "batch-1")
	assert.ErrorIs(t, err, ErrBatchNotFound)

	// Olmayan kaydı silmek hata değildir.
	assert.NoError(t, store.Delete(ctx, "batch-1"))
}

func TestNewBatchStoreFallsBackToMemory(t *testing.T) {
	// Testlerde redis bağlantısı açılmaz; depo bellek içi olmalıdır.
	store := NewBatchStore()
	_, ok := store.(*MemoryBatchStore)
	assert.True(t, ok)
}
