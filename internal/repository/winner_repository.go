package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// WinnerRepository handles winner fulfillment data operations
type WinnerRepository struct {
}

// NewWinnerRepository creates a new winner repository
func NewWinnerRepository() *WinnerRepository {
	return &WinnerRepository{}
}

// Create inserts a new winner with all status flags clear
func (r *WinnerRepository) Create(db DBExecutor, winner *model.Winner) error {
	query := `
		INSERT INTO winners
			(user_id, campaign_id, inventory_id, display_name, platform_origin,
			 contact_email, shipping_address, notified, info_collected, sent_to_sponsor, shipped,
			 notes, won_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	winner.WonAt = time.Now()

	err := db.Get(&winner.ID, query,
		winner.UserID, winner.CampaignID, winner.InventoryID,
		winner.DisplayName, winner.PlatformOrigin,
		winner.ContactEmail, winner.ShippingAddress,
		winner.Notified, winner.InfoCollected, winner.SentToSponsor, winner.Shipped,
		winner.Notes, winner.WonAt)
	if err != nil {
		return apperrors.NewPersistence("create winner", err)
	}

	return nil
}

// Get retrieves a winner by ID
func (r *WinnerRepository) Get(db DBExecutor, id int64) (*model.Winner, error) {
	query := `
		SELECT id, user_id, campaign_id, inventory_id, display_name, platform_origin,
		       contact_email, shipping_address, notified, info_collected, sent_to_sponsor, shipped,
		       notes, won_at
		FROM winners
		WHERE id = $1
	`

	var winner model.Winner
	err := db.Get(&winner, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("get winner", err)
	}

	return &winner, nil
}

// List retrieves all winners, most recent win first
func (r *WinnerRepository) List(db DBExecutor) ([]model.Winner, error) {
	query := `
		SELECT id, user_id, campaign_id, inventory_id, display_name, platform_origin,
		       contact_email, shipping_address, notified, info_collected, sent_to_sponsor, shipped,
		       notes, won_at
		FROM winners
		ORDER BY won_at DESC, id DESC
	`

	winners := []model.Winner{}
	if err := db.Select(&winners, query); err != nil {
		return nil, apperrors.NewPersistence("list winners", err)
	}

	return winners, nil
}

// SetStage writes the boolean projection of an ordinal stage. Ordering is
// validated by the caller; this is a plain write.
func (r *WinnerRepository) SetStage(db DBExecutor, id int64, stage model.Stage) error {
	notified, infoCollected, sentToSponsor, shipped := model.StageFlags(stage)

	result, err := db.Exec(`
		UPDATE winners
		SET notified = $1, info_collected = $2, sent_to_sponsor = $3, shipped = $4
		WHERE id = $5`,
		notified, infoCollected, sentToSponsor, shipped, id)
	if err != nil {
		return apperrors.NewPersistence("set winner stage", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("set winner stage", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// UpdateContact sets the winner's contact email and shipping address
func (r *WinnerRepository) UpdateContact(db DBExecutor, id int64, email, shipping *string) error {
	result, err := db.Exec(
		`UPDATE winners SET contact_email = $1, shipping_address = $2 WHERE id = $3`,
		email, shipping, id)
	if err != nil {
		return apperrors.NewPersistence("update winner contact", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("update winner contact", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// AppendNote appends a line to the winner's free-text notes
func (r *WinnerRepository) AppendNote(db DBExecutor, id int64, note string) error {
	result, err := db.Exec(`
		UPDATE winners
		SET notes = COALESCE(notes || E'\n', '') || $1
		WHERE id = $2`,
		note, id)
	if err != nil {
		return apperrors.NewPersistence("annotate winner", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("annotate winner", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ClearInventoryRef drops the winner's inventory back-reference after a
// withdrawn reservation has been released
func (r *WinnerRepository) ClearInventoryRef(db DBExecutor, id int64) error {
	if _, err := db.Exec(`UPDATE winners SET inventory_id = NULL WHERE id = $1`, id); err != nil {
		return apperrors.NewPersistence("clear winner inventory ref", err)
	}
	return nil
}
