package model

import "time"

// Platform is the source of a campaign entry.
type Platform string

const (
	PlatformTwitch      Platform = "twitch"
	PlatformYouTube     Platform = "youtube"
	PlatformGoogleSheet Platform = "google_sheet"
	PlatformManual      Platform = "manual"
)

// KnownPlatform reports whether p is a recognized entry source.
func KnownPlatform(p Platform) bool {
	switch p {
	case PlatformTwitch, PlatformYouTube, PlatformGoogleSheet, PlatformManual:
		return true
	}
	return false
}

// Entrant records one external identity entering one campaign. Rows are
// immutable after insert and are removed only when their campaign is deleted.
//
// PlatformUserID is nullable: manual entries may carry no external id, and
// each such row occupies its own slot under the dedup index. Two identical
// non-null ids for the same campaign and platform collide.
type Entrant struct {
	ID             int64     `db:"id" json:"id"`
	CampaignID     int64     `db:"campaign_id" json:"campaign_id"`
	Platform       Platform  `db:"platform" json:"platform"`
	PlatformUserID *string   `db:"platform_user_id" json:"platform_user_id,omitempty"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	SourceDetail   *string   `db:"source_detail" json:"source_detail,omitempty"`
	IsSubscriber   bool      `db:"is_subscriber" json:"is_subscriber"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
