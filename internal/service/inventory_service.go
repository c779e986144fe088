package service

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/metrics"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// InventoryService tracks prize items and their remaining quantity
type InventoryService struct {
	postgres      *sqlx.DB
	inventoryRepo *repository.InventoryRepository
}

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(postgres *sqlx.DB) *InventoryService {
	return &InventoryService{
		postgres:      postgres,
		inventoryRepo: repository.NewInventoryRepository(),
	}
}

// Create adds a prize item with the given initial quantity
func (s *InventoryService) Create(ctx context.Context, name string, sponsor, imageURL *string, initialQty int) (int64, error) {
	missing := []string{}
	if name == "" {
		missing = append(missing, "item_name")
	}
	if initialQty < 1 {
		missing = append(missing, "qty_initial")
	}
	if len(missing) > 0 {
		return 0, apperrors.NewValidation(missing...)
	}

	item := &model.InventoryItem{
		ItemName:   name,
		Sponsor:    sponsor,
		ImageURL:   imageURL,
		QtyInitial: initialQty,
	}

	if err := s.inventoryRepo.Create(s.postgres, item); err != nil {
		return 0, err
	}

	return item.ID, nil
}

// Get retrieves an inventory item by id
func (s *InventoryService) Get(ctx context.Context, id int64) (*model.InventoryItem, error) {
	return s.inventoryRepo.Get(s.postgres, id)
}

// List retrieves all inventory items
func (s *InventoryService) List(ctx context.Context) ([]model.InventoryItem, error) {
	return s.inventoryRepo.List(s.postgres)
}

// Reserve consumes one unit of the item's remaining quantity
func (s *InventoryService) Reserve(ctx context.Context, id int64) error {
	err := s.inventoryRepo.Reserve(s.postgres, id)
	switch {
	case err == nil:
		metrics.CountReservation("reserved")
	case errors.Is(err, apperrors.ErrOutOfStock):
		metrics.CountReservation("out_of_stock")
	default:
		metrics.CountReservation("failed")
	}
	return err
}

// Release returns one unit to the item's remaining quantity
func (s *InventoryService) Release(ctx context.Context, id int64) error {
	err := s.inventoryRepo.Release(s.postgres, id)
	var warn *apperrors.ConsistencyWarning
	switch {
	case err == nil:
		metrics.CountReservation("released")
	case errors.As(err, &warn):
		metrics.CountReservation("clamped")
	default:
		metrics.CountReservation("failed")
	}
	return err
}
