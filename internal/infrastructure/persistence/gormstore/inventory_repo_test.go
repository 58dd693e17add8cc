package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbridge/internal/domain/inventory"
)

func TestInventoryRepository_LockAndAdjust(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db,
		bookSeed{ID: 1, Title: "A", Quantity: 3},
		bookSeed{ID: 2, Title: "B", Quantity: 0},
	)
	repo := NewInventoryRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		snapshots, err := repo.LockForUpdate(ctx, []uint{2, 1, 99})
		require.NoError(t, err)
		assert.Len(t, snapshots, 2)
		assert.Equal(t, inventory.Snapshot{BookID: 1, Title: "A", Quantity: 3}, snapshots[1])

		require.NoError(t, repo.Adjust(ctx, 1, -3))
		assert.ErrorIs(t, repo.Adjust(ctx, 2, -1), inventory.ErrInsufficientStock)
		return repo.Adjust(ctx, 2, 4)
	})
	require.NoError(t, err)

	var models []BookModel
	require.NoError(t, db.Order("id").Find(&models).Error)
	assert.Equal(t, 0, models[0].Quantity)
	assert.Equal(t, 4, models[1].Quantity)
}

func TestTxManager_Rollback(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db, bookSeed{ID: 1, Title: "A", Quantity: 3})
	repo := NewInventoryRepository(db)
	tx := NewTxManager(db)

	boom := errors.New("boom")
	err := tx.Transaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.Adjust(ctx, 1, -2))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	snapshots, err := repo.LockForUpdate(context.Background(), []uint{1})
	require.NoError(t, err)
	assert.Equal(t, 3, snapshots[1].Quantity)
}
