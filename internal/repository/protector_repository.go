package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/safespot/safespot-backend/internal/models"
)

// ProtectorRepository handles database operations for emergency contacts
type ProtectorRepository struct {
	db *sql.DB
}

// NewProtectorRepository creates a new protector repository
func NewProtectorRepository(db *sql.DB) *ProtectorRepository {
	return &ProtectorRepository{db: db}
}

// GetByUser retrieves a user's protectors in insertion order.
func (r *ProtectorRepository) GetByUser(userID string) ([]models.Protector, error) {
	query := `SELECT id, user_id, name, phone, photo, created_at
		FROM protectors
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query protectors: %w", err)
	}
	defer rows.Close()

	var protectors []models.Protector
	for rows.Next() {
		var p models.Protector
		var createdAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.Photo, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan protector: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			p.CreatedAt = t
		}
		protectors = append(protectors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating protectors: %w", err)
	}

	return protectors, nil
}

// Insert stores a new protector.
func (r *ProtectorRepository) Insert(p *models.Protector) error {
	query := `INSERT INTO protectors (id, user_id, name, phone, photo)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, p.ID, p.UserID, p.Name, p.Phone, p.Photo)
	if err != nil {
		return fmt.Errorf("failed to insert protector: %w", err)
	}
	return nil
}

// Delete removes a protector by id. Returns false when no row matched.
func (r *ProtectorRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM protectors WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete protector: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
