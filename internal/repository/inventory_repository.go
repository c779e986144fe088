package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// InventoryRepository handles prize inventory data operations
type InventoryRepository struct {
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Create inserts a new inventory item with current quantity equal to initial
func (r *InventoryRepository) Create(db DBExecutor, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory (item_name, sponsor, image_url, qty_initial, qty_current, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	item.QtyCurrent = item.QtyInitial
	item.CreatedAt = time.Now()

	err := db.Get(&item.ID, query,
		item.ItemName, item.Sponsor, item.ImageURL, item.QtyInitial, item.QtyCurrent, item.CreatedAt)
	if err != nil {
		return apperrors.NewPersistence("create inventory item", err)
	}

	return nil
}

// Get retrieves an inventory item by ID
func (r *InventoryRepository) Get(db DBExecutor, id int64) (*model.InventoryItem, error) {
	query := `
		SELECT id, item_name, sponsor, image_url, qty_initial, qty_current, created_at
		FROM inventory
		WHERE id = $1
	`

	var item model.InventoryItem
	err := db.Get(&item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("get inventory item", err)
	}

	return &item, nil
}

// List retrieves all inventory items, newest first
func (r *InventoryRepository) List(db DBExecutor) ([]model.InventoryItem, error) {
	query := `
		SELECT id, item_name, sponsor, image_url, qty_initial, qty_current, created_at
		FROM inventory
		ORDER BY created_at DESC, id DESC
	`

	items := []model.InventoryItem{}
	if err := db.Select(&items, query); err != nil {
		return nil, apperrors.NewPersistence("list inventory", err)
	}

	return items, nil
}

// Reserve atomically decrements the remaining quantity by one, only while
// stock remains. The guard lives in the statement itself, so two concurrent
// reservations of the last unit resolve to one success and one
// ErrOutOfStock; the quantity never goes negative.
func (r *InventoryRepository) Reserve(db DBExecutor, id int64) error {
	result, err := db.Exec(
		`UPDATE inventory SET qty_current = qty_current - 1 WHERE id = $1 AND qty_current > 0`, id)
	if err != nil {
		return apperrors.NewPersistence("reserve inventory item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("reserve inventory item", err)
	}
	if rowsAffected == 0 {
		// Distinguish a missing item from exhausted stock
		if _, err := r.Get(db, id); err != nil {
			return err
		}
		return apperrors.ErrOutOfStock
	}

	return nil
}

// Release returns one reserved unit to the pool, used only when a winner
// assignment referencing the item is rolled back. The increment never pushes
// the quantity above the initial amount; a release that would do so is
// clamped and reported as a ConsistencyWarning rather than absorbed.
func (r *InventoryRepository) Release(db DBExecutor, id int64) error {
	result, err := db.Exec(
		`UPDATE inventory SET qty_current = qty_current + 1 WHERE id = $1 AND qty_current < qty_initial`, id)
	if err != nil {
		return apperrors.NewPersistence("release inventory item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("release inventory item", err)
	}
	if rowsAffected == 0 {
		item, err := r.Get(db, id)
		if err != nil {
			return err
		}
		return &apperrors.ConsistencyWarning{
			Detail: fmt.Sprintf("release of item %d ignored: quantity already at initial %d", id, item.QtyInitial),
		}
	}

	return nil
}
