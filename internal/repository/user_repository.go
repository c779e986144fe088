package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
)

// UserRepository handles operator identity data operations
type UserRepository struct {
}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// UsernameExists reports whether a user with the given username is present
func (r *UserRepository) UsernameExists(db DBExecutor, username string) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM users WHERE username = $1`, username)
	if err != nil {
		return false, apperrors.NewPersistence("check username", err)
	}
	return count > 0, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(db DBExecutor, username, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := db.Get(&id, query, username, passwordHash, time.Now()); err != nil {
		return 0, apperrors.NewPersistence("create user", err)
	}
	return id, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(db DBExecutor, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("get user", err)
	}
	return &user, nil
}
