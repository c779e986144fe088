package model

import "time"

// InventoryItem is a prize with a finite remaining quantity.
// Invariant: 0 <= QtyCurrent <= QtyInitial.
type InventoryItem struct {
	ID         int64     `db:"id" json:"id"`
	ItemName   string    `db:"item_name" json:"item_name"`
	Sponsor    *string   `db:"sponsor" json:"sponsor,omitempty"`
	ImageURL   *string   `db:"image_url" json:"image_url,omitempty"`
	QtyInitial int       `db:"qty_initial" json:"qty_initial"`
	QtyCurrent int       `db:"qty_current" json:"qty_current"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
