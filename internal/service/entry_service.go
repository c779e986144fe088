package service

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/metrics"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// NewEntry is the input for recording one campaign entry
type NewEntry struct {
	CampaignID     int64
	Platform       model.Platform
	PlatformUserID *string
	DisplayName    string
	SourceDetail   *string
	IsSubscriber   bool
}

// EntryService is the entrant ledger: platform ingestion and manual entry
// both record through it, and duplicate identities come back as a signal,
// not a failure, so batch callers can skip and continue.
type EntryService struct {
	postgres     *sqlx.DB
	campaignRepo *repository.CampaignRepository
	entrantRepo  *repository.EntrantRepository
}

// NewEntryService creates a new EntryService instance
func NewEntryService(postgres *sqlx.DB) *EntryService {
	return &EntryService{
		postgres:     postgres,
		campaignRepo: repository.NewCampaignRepository(),
		entrantRepo:  repository.NewEntrantRepository(),
	}
}

// Record inserts one entry under the dedup invariant: the same (campaign,
// platform, platform user id) triple is stored at most once, while entries
// without a platform user id each get their own row.
func (s *EntryService) Record(ctx context.Context, entry NewEntry) (int64, error) {
	// Start timing for metrics
	start := time.Now()
	result := "failed"

	// Defer metric recording to ensure it's always called
	defer func() {
		metrics.ObserveRecordEntry(result, time.Since(start).Seconds())
	}()

	missing := []string{}
	if entry.CampaignID <= 0 {
		missing = append(missing, "campaign_id")
	}
	if !model.KnownPlatform(entry.Platform) {
		missing = append(missing, "platform")
	}
	if entry.DisplayName == "" {
		missing = append(missing, "display_name")
	}
	if len(missing) > 0 {
		return 0, apperrors.NewValidation(missing...)
	}

	// Surface a clean not-found for dangling campaigns instead of the
	// foreign key violation the insert would raise
	if _, err := s.campaignRepo.Get(s.postgres, entry.CampaignID); err != nil {
		return 0, err
	}

	entrant := &model.Entrant{
		CampaignID:     entry.CampaignID,
		Platform:       entry.Platform,
		PlatformUserID: entry.PlatformUserID,
		DisplayName:    entry.DisplayName,
		SourceDetail:   entry.SourceDetail,
		IsSubscriber:   entry.IsSubscriber,
	}

	if err := s.entrantRepo.Create(s.postgres, entrant); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			result = "duplicate"
		}
		return 0, err
	}

	result = "recorded"
	return entrant.ID, nil
}

// List retrieves a campaign's entrants ordered by creation time
func (s *EntryService) List(ctx context.Context, campaignID int64) ([]model.Entrant, error) {
	return s.entrantRepo.ListByCampaign(s.postgres, campaignID)
}

// Count returns the number of entrants recorded for a campaign
func (s *EntryService) Count(ctx context.Context, campaignID int64) (int, error) {
	return s.entrantRepo.CountByCampaign(s.postgres, campaignID)
}
