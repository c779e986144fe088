package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

func TestReserveDecrementsWhileStockRemains(t *testing.T) {
	db := &fakeExecutor{execRows: 1}
	repo := NewInventoryRepository()

	err := repo.Reserve(db, 7)

	require.NoError(t, err)
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "qty_current > 0")
	assert.Equal(t, []interface{}{int64(7)}, db.args[0])
}

func TestReserveExhaustedStockIsOutOfStock(t *testing.T) {
	// The guarded UPDATE touches nothing, but the item itself exists:
	// that is exhaustion, not absence.
	db := &fakeExecutor{
		execRows: 0,
		getItem:  &model.InventoryItem{ID: 7, ItemName: "sticker pack", QtyInitial: 3, QtyCurrent: 0},
	}
	repo := NewInventoryRepository()

	err := repo.Reserve(db, 7)

	assert.ErrorIs(t, err, apperrors.ErrOutOfStock)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReserveMissingItemIsNotFound(t *testing.T) {
	db := &fakeExecutor{execRows: 0, getErr: sql.ErrNoRows}
	repo := NewInventoryRepository()

	err := repo.Reserve(db, 404)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrOutOfStock)
}

func TestReleaseIncrementsBelowInitial(t *testing.T) {
	db := &fakeExecutor{execRows: 1}
	repo := NewInventoryRepository()

	err := repo.Release(db, 7)

	require.NoError(t, err)
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "qty_current < qty_initial")
}

func TestReleaseAtInitialQuantityWarns(t *testing.T) {
	db := &fakeExecutor{
		execRows: 0,
		getItem:  &model.InventoryItem{ID: 7, ItemName: "sticker pack", QtyInitial: 3, QtyCurrent: 3},
	}
	repo := NewInventoryRepository()

	err := repo.Release(db, 7)

	var warn *apperrors.ConsistencyWarning
	require.ErrorAs(t, err, &warn)
	assert.Contains(t, warn.Detail, "already at initial 3")
}

func TestReleaseMissingItemIsNotFound(t *testing.T) {
	db := &fakeExecutor{execRows: 0, getErr: sql.ErrNoRows}
	repo := NewInventoryRepository()

	err := repo.Release(db, 404)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	var warn *apperrors.ConsistencyWarning
	assert.False(t, errors.As(err, &warn))
}
