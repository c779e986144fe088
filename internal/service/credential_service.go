package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/repository"
)

// CredentialService is the credential store: per-user, per-service tokens
// consumed by external platform pollers. This service never refreshes or
// schedules anything itself.
type CredentialService struct {
	postgres *sqlx.DB
	credRepo *repository.CredentialRepository
}

// NewCredentialService creates a new CredentialService instance
func NewCredentialService(postgres *sqlx.DB) *CredentialService {
	return &CredentialService{
		postgres: postgres,
		credRepo: repository.NewCredentialRepository(),
	}
}

// Upsert stores tokens for (owner, service), replacing any existing row.
// The replacement is a single native upsert, so concurrent refreshes cannot
// produce duplicate live credentials.
func (s *CredentialService) Upsert(ctx context.Context, ownerID int64, serviceName model.ServiceName,
	serviceUserID *string, accessToken string, refreshToken *string, expiresAt *time.Time) (int64, error) {

	missing := []string{}
	if ownerID <= 0 {
		missing = append(missing, "owner")
	}
	if !model.KnownService(serviceName) {
		missing = append(missing, "service_name")
	}
	if accessToken == "" {
		missing = append(missing, "access_token")
	}
	if len(missing) > 0 {
		return 0, apperrors.NewValidation(missing...)
	}

	cred := &model.ServiceCredential{
		UserID:        ownerID,
		ServiceName:   serviceName,
		ServiceUserID: serviceUserID,
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		ExpiresAt:     expiresAt,
	}

	if err := s.credRepo.Upsert(s.postgres, cred); err != nil {
		return 0, err
	}

	return cred.ID, nil
}

// Get retrieves the credential for (owner, service)
func (s *CredentialService) Get(ctx context.Context, ownerID int64, serviceName model.ServiceName) (*model.ServiceCredential, error) {
	return s.credRepo.Get(s.postgres, ownerID, serviceName)
}
