package model

import "time"

// ServiceName identifies an external platform a credential authorizes
// against. Only platforms that hand out tokens appear here; manual entry
// needs no credential.
type ServiceName string

const (
	ServiceTwitch      ServiceName = "twitch"
	ServiceYouTube     ServiceName = "youtube"
	ServiceGoogleSheet ServiceName = "google_sheet"
)

// KnownService reports whether s is a service this system stores tokens for.
func KnownService(s ServiceName) bool {
	switch s {
	case ServiceTwitch, ServiceYouTube, ServiceGoogleSheet:
		return true
	}
	return false
}

// ServiceCredential holds one user's tokens for one external service.
// At most one row exists per (user, service); refreshes replace in place.
type ServiceCredential struct {
	ID            int64       `db:"id" json:"id"`
	UserID        int64       `db:"user_id" json:"user_id"`
	ServiceName   ServiceName `db:"service_name" json:"service_name"`
	ServiceUserID *string     `db:"service_user_id" json:"service_user_id,omitempty"`
	AccessToken   string      `db:"access_token" json:"-"`
	RefreshToken  *string     `db:"refresh_token" json:"-"`
	ExpiresAt     *time.Time  `db:"expires_at" json:"expires_at,omitempty"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether the credential is past its expiry at the given
// instant. Credentials without an expiry never expire.
func (c *ServiceCredential) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(*c.ExpiresAt)
}
