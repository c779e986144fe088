package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// pqUniqueViolation is the class 23 error code Postgres raises when an
// insert hits a unique index.
const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-index conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// EntrantRepository handles entrant data operations
type EntrantRepository struct {
}

// NewEntrantRepository creates a new entrant repository
func NewEntrantRepository() *EntrantRepository {
	return &EntrantRepository{}
}

// Create inserts an entrant under the (campaign, platform, platform_user_id)
// uniqueness index. A conflict maps to ErrDuplicateEntry so bulk ingestion
// can skip re-seen identities without aborting the batch. Rows with a null
// platform user id never conflict; each occupies its own slot.
func (r *EntrantRepository) Create(db DBExecutor, entrant *model.Entrant) error {
	query := `
		INSERT INTO entrants
			(campaign_id, platform, platform_user_id, display_name, source_detail, is_subscriber, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	entrant.CreatedAt = time.Now()

	err := db.Get(&entrant.ID, query,
		entrant.CampaignID, entrant.Platform, entrant.PlatformUserID,
		entrant.DisplayName, entrant.SourceDetail, entrant.IsSubscriber, entrant.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return apperrors.NewPersistence("create entrant", err)
	}

	return nil
}

// ListByCampaign retrieves a campaign's entrants ordered by creation time.
// Each call is a fresh query; no cursor state is retained.
func (r *EntrantRepository) ListByCampaign(db DBExecutor, campaignID int64) ([]model.Entrant, error) {
	query := `
		SELECT id, campaign_id, platform, platform_user_id, display_name, source_detail, is_subscriber, created_at
		FROM entrants
		WHERE campaign_id = $1
		ORDER BY created_at ASC, id ASC
	`

	entrants := []model.Entrant{}
	if err := db.Select(&entrants, query, campaignID); err != nil {
		return nil, apperrors.NewPersistence("list entrants", err)
	}

	return entrants, nil
}

// CountByCampaign returns the number of entrants recorded for a campaign
func (r *EntrantRepository) CountByCampaign(db DBExecutor, campaignID int64) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM entrants WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return 0, apperrors.NewPersistence("count entrants", err)
	}
	return count, nil
}
