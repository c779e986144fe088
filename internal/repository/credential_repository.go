package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// CredentialRepository handles service credential data operations
type CredentialRepository struct {
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{}
}

// Upsert inserts or replaces the credential for (user, service) as a single
// atomic statement. Concurrent refreshes for the same pair can never leave
// two live rows; the later writer's tokens win. All fields commit together.
func (r *CredentialRepository) Upsert(db DBExecutor, cred *model.ServiceCredential) error {
	query := `
		INSERT INTO service_credentials
			(user_id, service_name, service_user_id, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, service_name) DO UPDATE SET
			service_user_id = EXCLUDED.service_user_id,
			access_token    = EXCLUDED.access_token,
			refresh_token   = EXCLUDED.refresh_token,
			expires_at      = EXCLUDED.expires_at,
			updated_at      = EXCLUDED.updated_at
		RETURNING id
	`

	cred.UpdatedAt = time.Now()

	err := db.Get(&cred.ID, query,
		cred.UserID, cred.ServiceName, cred.ServiceUserID,
		cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, cred.UpdatedAt)
	if err != nil {
		return apperrors.NewPersistence("upsert credential", err)
	}

	return nil
}

// Get retrieves the credential for (user, service)
func (r *CredentialRepository) Get(db DBExecutor, userID int64, service model.ServiceName) (*model.ServiceCredential, error) {
	query := `
		SELECT id, user_id, service_name, service_user_id, access_token, refresh_token, expires_at, updated_at
		FROM service_credentials
		WHERE user_id = $1 AND service_name = $2
	`

	var cred model.ServiceCredential
	err := db.Get(&cred, query, userID, service)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("get credential", err)
	}

	return &cred, nil
}
