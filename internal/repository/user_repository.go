package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/safespot/safespot-backend/internal/database"
	"github.com/safespot/safespot-backend/internal/models"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Get retrieves a profile by user id. Returns nil when the user is unknown.
func (r *UserRepository) Get(userID string) (*models.UserProfile, error) {
	query := `SELECT user_id, name, email, phone, avatar, created_at, updated_at
		FROM users WHERE user_id = ?`

	var u models.UserProfile
	var createdAt, updatedAt string
	err := r.db.QueryRow(query, userID).Scan(&u.UserID, &u.Name, &u.Email, &u.Phone, &u.Avatar, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		u.CreatedAt = t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", updatedAt); err == nil {
		u.UpdatedAt = t
	}

	return &u, nil
}

// Insert creates a profile row.
func (r *UserRepository) Insert(u *models.UserProfile) error {
	query := `INSERT INTO users (user_id, name, email, phone, avatar)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, u.UserID, u.Name, u.Email, u.Phone, u.Avatar)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Upsert updates the provided fields, creating the row when absent. Nil
// fields leave the stored value untouched.
func (r *UserRepository) Upsert(userID string, update models.UserProfileUpdate) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE users SET
				name = COALESCE(?, name),
				email = COALESCE(?, email),
				phone = COALESCE(?, phone),
				avatar = COALESCE(?, avatar),
				updated_at = datetime('now')
			WHERE user_id = ?`,
			update.Name, update.Email, update.Phone, update.Avatar, userID)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read update result: %w", err)
		}
		if affected > 0 {
			return nil
		}

		_, err = tx.Exec(`INSERT INTO users (user_id, name, email, phone, avatar)
			VALUES (?, COALESCE(?, ''), COALESCE(?, ''), COALESCE(?, ''), COALESCE(?, ''))`,
			userID, update.Name, update.Email, update.Phone, update.Avatar)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
}
