package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/metrics"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// PromoteParams is the input for promoting a selected identity to winner.
// CampaignID and InventoryID are optional back-references; naming an
// inventory item consumes one unit of its stock.
type PromoteParams struct {
	OwnerID        int64
	CampaignID     *int64
	InventoryID    *int64
	DisplayName    string
	PlatformOrigin string
}

// FulfillmentService tracks winners through the post-selection workflow:
// promotion reserves prize stock, advancement walks the fulfillment stages
// in order, withdrawal hands the reservation back. Nothing here retries;
// storage failures propagate for the caller's own policy.
type FulfillmentService struct {
	postgres      *sqlx.DB
	winnerRepo    *repository.WinnerRepository
	inventoryRepo *repository.InventoryRepository
}

// NewFulfillmentService creates a new FulfillmentService instance
func NewFulfillmentService(postgres *sqlx.DB) *FulfillmentService {
	return &FulfillmentService{
		postgres:      postgres,
		winnerRepo:    repository.NewWinnerRepository(),
		inventoryRepo: repository.NewInventoryRepository(),
	}
}

// Promote creates a winner, reserving one unit of the named inventory item
// in the same transaction. If the reservation fails, no winner row is
// created: the promotion is all-or-nothing.
func (s *FulfillmentService) Promote(ctx context.Context, p PromoteParams) (int64, error) {
	missing := []string{}
	if p.OwnerID <= 0 {
		missing = append(missing, "owner")
	}
	if p.DisplayName == "" {
		missing = append(missing, "display_name")
	}
	if p.PlatformOrigin == "" {
		missing = append(missing, "platform_origin")
	}
	if len(missing) > 0 {
		return 0, apperrors.NewValidation(missing...)
	}

	tx, err := s.postgres.BeginTxx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewPersistence("begin promote", err)
	}
	defer tx.Rollback()

	if p.InventoryID != nil {
		if err := s.inventoryRepo.Reserve(tx, *p.InventoryID); err != nil {
			if errors.Is(err, apperrors.ErrOutOfStock) {
				metrics.CountReservation("out_of_stock")
			}
			return 0, err
		}
	}

	winner := &model.Winner{
		UserID:         p.OwnerID,
		CampaignID:     p.CampaignID,
		InventoryID:    p.InventoryID,
		DisplayName:    p.DisplayName,
		PlatformOrigin: p.PlatformOrigin,
	}

	if err := s.winnerRepo.Create(tx, winner); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewPersistence("commit promote", err)
	}

	if p.InventoryID != nil {
		metrics.CountReservation("reserved")
	}

	return winner.ID, nil
}

// Advance sets the target fulfillment flag, allowed only when every flag
// strictly earlier in the canonical order is already set. Re-reaching the
// current stage is a no-op; anything else is a hard InvalidTransition
// reject, never silently ignored.
func (s *FulfillmentService) Advance(ctx context.Context, winnerID int64, target model.Stage) error {
	winner, err := s.winnerRepo.Get(s.postgres, winnerID)
	if err != nil {
		return err
	}

	from := winner.Stage()
	if !model.CanAdvance(from, target) {
		return &apperrors.InvalidTransitionError{
			WinnerID: winnerID,
			From:     from.String(),
			To:       target.String(),
		}
	}
	if target <= from {
		return nil
	}

	return s.winnerRepo.SetStage(s.postgres, winnerID, target)
}

// RecordContact sets the winner's contact email and shipping address.
// Unordered and unconstrained; fulfillment stage does not gate it.
func (s *FulfillmentService) RecordContact(ctx context.Context, winnerID int64, email, shipping *string) error {
	return s.winnerRepo.UpdateContact(s.postgres, winnerID, email, shipping)
}

// Annotate appends a line to the winner's notes
func (s *FulfillmentService) Annotate(ctx context.Context, winnerID int64, notes string) error {
	if notes == "" {
		return apperrors.NewValidation("notes")
	}
	return s.winnerRepo.AppendNote(s.postgres, winnerID, notes)
}

// Withdraw reverses a promotion: the reserved unit, if any, goes back to
// inventory and the back-reference is cleared, while the winner row itself
// is retained with its flags untouched and a withdrawal marker in the
// notes. A release clamped at the item's initial quantity still commits the
// withdrawal; the ConsistencyWarning is returned for the caller to report.
func (s *FulfillmentService) Withdraw(ctx context.Context, winnerID int64) error {
	tx, err := s.postgres.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewPersistence("begin withdraw", err)
	}
	defer tx.Rollback()

	winner, err := s.winnerRepo.Get(tx, winnerID)
	if err != nil {
		return err
	}

	var warn *apperrors.ConsistencyWarning
	if winner.InventoryID != nil {
		if err := s.inventoryRepo.Release(tx, *winner.InventoryID); err != nil {
			if !errors.As(err, &warn) {
				return err
			}
			metrics.CountReservation("clamped")
		} else {
			metrics.CountReservation("released")
		}
		if err := s.winnerRepo.ClearInventoryRef(tx, winnerID); err != nil {
			return err
		}
	}

	if err := s.winnerRepo.AppendNote(tx, winnerID, withdrawalMarker(time.Now())); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewPersistence("commit withdraw", err)
	}

	if warn != nil {
		return warn
	}
	return nil
}

// withdrawalMarker is the audit line appended to the winner's notes when a
// promotion is reversed.
func withdrawalMarker(now time.Time) string {
	return fmt.Sprintf("[withdrawn] %s", now.UTC().Format(time.RFC3339))
}

// Get retrieves a winner by id
func (s *FulfillmentService) Get(ctx context.Context, winnerID int64) (*model.Winner, error) {
	return s.winnerRepo.Get(s.postgres, winnerID)
}

// List retrieves all winners, most recent win first
func (s *FulfillmentService) List(ctx context.Context) ([]model.Winner, error) {
	return s.winnerRepo.List(s.postgres)
}
