package repository

import (
	"database/sql"
	"errors"

	"github.com/prizepacket/prizepacket/internal/apperrors"
)

// SettingsRepository handles the generic key/value settings table
type SettingsRepository struct {
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Set writes a setting, replacing any existing value
func (r *SettingsRepository) Set(db DBExecutor, key, value string) error {
	query := `
		INSERT INTO settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value
	`

	if _, err := db.Exec(query, key, value); err != nil {
		return apperrors.NewPersistence("set setting", err)
	}
	return nil
}

// Get retrieves a setting value by key
func (r *SettingsRepository) Get(db DBExecutor, key string) (string, error) {
	var value string
	err := db.Get(&value, `SELECT setting_value FROM settings WHERE setting_key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewPersistence("get setting", err)
	}
	return value, nil
}
