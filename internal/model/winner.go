package model

import "time"

// Stage is the ordinal fulfillment state of a winner. The database stores
// four booleans for each winner; the ordinal is the authoritative view and
// the booleans are its projection, so ordering is enforced in one place.
type Stage int

const (
	StageCreated Stage = iota
	StageNotified
	StageInfoCollected
	StageSentToSponsor
	StageShipped
)

var stageNames = map[Stage]string{
	StageCreated:       "created",
	StageNotified:      "notified",
	StageInfoCollected: "info_collected",
	StageSentToSponsor: "sent_to_sponsor",
	StageShipped:       "shipped",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStage resolves a stage name to its ordinal.
func ParseStage(name string) (Stage, bool) {
	for s, n := range stageNames {
		if n == name {
			return s, true
		}
	}
	return StageCreated, false
}

// StageFromFlags returns the furthest stage reachable through contiguous set
// flags. A gap stops the walk: a row with shipped set but notified clear
// reports StageCreated, so such legacy rows cannot be advanced past the gap.
func StageFromFlags(notified, infoCollected, sentToSponsor, shipped bool) Stage {
	stage := StageCreated
	for _, set := range []bool{notified, infoCollected, sentToSponsor, shipped} {
		if !set {
			break
		}
		stage++
	}
	return stage
}

// StageFlags projects an ordinal stage back onto the four stored booleans.
func StageFlags(s Stage) (notified, infoCollected, sentToSponsor, shipped bool) {
	return s >= StageNotified, s >= StageInfoCollected, s >= StageSentToSponsor, s >= StageShipped
}

// CanAdvance reports whether target may be set when the winner currently
// stands at from: every flag strictly earlier than target must already be
// set. Re-setting an already reached stage is allowed and is a no-op.
func CanAdvance(from, target Stage) bool {
	return target >= StageNotified && target <= StageShipped && from >= target-1
}

// Winner is a promoted entrant undergoing fulfillment. Campaign and
// inventory references are lookup-only back-references: the row survives
// deletion of either, which is why both are nullable.
type Winner struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	CampaignID      *int64     `db:"campaign_id" json:"campaign_id,omitempty"`
	InventoryID     *int64     `db:"inventory_id" json:"inventory_id,omitempty"`
	DisplayName     string     `db:"display_name" json:"display_name"`
	PlatformOrigin  string     `db:"platform_origin" json:"platform_origin"`
	ContactEmail    *string    `db:"contact_email" json:"contact_email,omitempty"`
	ShippingAddress *string    `db:"shipping_address" json:"shipping_address,omitempty"`
	Notified        bool       `db:"notified" json:"notified"`
	InfoCollected   bool       `db:"info_collected" json:"info_collected"`
	SentToSponsor   bool       `db:"sent_to_sponsor" json:"sent_to_sponsor"`
	Shipped         bool       `db:"shipped" json:"shipped"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	WonAt           time.Time  `db:"won_at" json:"won_at"`
}

// Stage derives the winner's ordinal stage from its stored flags.
func (w *Winner) Stage() Stage {
	return StageFromFlags(w.Notified, w.InfoCollected, w.SentToSponsor, w.Shipped)
}
