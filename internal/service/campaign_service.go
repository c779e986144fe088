package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// CampaignService owns campaigns and their active/inactive lifecycle
type CampaignService struct {
	postgres     *sqlx.DB
	campaignRepo *repository.CampaignRepository
}

// NewCampaignService creates a new CampaignService instance
func NewCampaignService(postgres *sqlx.DB) *CampaignService {
	return &CampaignService{
		postgres:     postgres,
		campaignRepo: repository.NewCampaignRepository(),
	}
}

// Create creates a new active campaign and returns its id
func (s *CampaignService) Create(ctx context.Context, title string) (int64, error) {
	if title == "" {
		return 0, apperrors.NewValidation("title")
	}

	campaign := &model.Campaign{
		Title:    title,
		IsActive: true,
	}

	if err := s.campaignRepo.Create(s.postgres, campaign); err != nil {
		return 0, err
	}

	return campaign.ID, nil
}

// Get retrieves a campaign by id
func (s *CampaignService) Get(ctx context.Context, id int64) (*model.Campaign, error) {
	return s.campaignRepo.Get(s.postgres, id)
}

// List retrieves all campaigns
func (s *CampaignService) List(ctx context.Context) ([]model.Campaign, error) {
	return s.campaignRepo.List(s.postgres)
}

// SetActive toggles a campaign active or inactive
func (s *CampaignService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.campaignRepo.SetActive(s.postgres, id, active)
}

// Delete removes a campaign. Entrants cascade away with it; winners that
// referenced it keep their rows with the campaign reference nulled.
func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	return s.campaignRepo.Delete(s.postgres, id)
}
