package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// CampaignRepository handles campaign data operations
type CampaignRepository struct {
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

// Create creates a new campaign, active by default
func (r *CampaignRepository) Create(db DBExecutor, campaign *model.Campaign) error {
	query := `
		INSERT INTO campaigns (title, is_active, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	campaign.CreatedAt = time.Now()

	err := db.Get(&campaign.ID, query, campaign.Title, campaign.IsActive, campaign.CreatedAt)
	if err != nil {
		return apperrors.NewPersistence("create campaign", err)
	}

	return nil
}

// Get retrieves a campaign by ID
func (r *CampaignRepository) Get(db DBExecutor, id int64) (*model.Campaign, error) {
	query := `
		SELECT id, title, is_active, created_at
		FROM campaigns
		WHERE id = $1
	`

	var campaign model.Campaign
	err := db.Get(&campaign, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("get campaign", err)
	}

	return &campaign, nil
}

// List retrieves all campaigns, newest first
func (r *CampaignRepository) List(db DBExecutor) ([]model.Campaign, error) {
	query := `
		SELECT id, title, is_active, created_at
		FROM campaigns
		ORDER BY created_at DESC, id DESC
	`

	campaigns := []model.Campaign{}
	if err := db.Select(&campaigns, query); err != nil {
		return nil, apperrors.NewPersistence("list campaigns", err)
	}

	return campaigns, nil
}

// SetActive toggles a campaign's active flag
func (r *CampaignRepository) SetActive(db DBExecutor, id int64, active bool) error {
	result, err := db.Exec(`UPDATE campaigns SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return apperrors.NewPersistence("set campaign active", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("set campaign active", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a campaign. The schema cascades the delete to the
// campaign's entrants and nulls the campaign reference on winners, which
// are retained for fulfillment history.
func (r *CampaignRepository) Delete(db DBExecutor, id int64) error {
	result, err := db.Exec(`DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewPersistence("delete campaign", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewPersistence("delete campaign", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
