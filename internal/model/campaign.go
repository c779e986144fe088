package model

import (
	"time"
)

// Campaign represents a giveaway campaign in the database
type Campaign struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
