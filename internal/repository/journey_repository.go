package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/safespot/safespot-backend/internal/models"
)

// JourneyRepository handles database operations for journey points and
// persisted journey events.
type JourneyRepository struct {
	db *sql.DB
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db *sql.DB) *JourneyRepository {
	return &JourneyRepository{db: db}
}

// InsertPoint stores one raw GPS ping. The journey_points retention trigger
// prunes expired rows on every insert.
func (r *JourneyRepository) InsertPoint(p *models.JourneyPoint) (int64, error) {
	query := `INSERT INTO journey_points (user_id, date_key, ts, latitude, longitude, speed, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		p.UserID, p.DateKey, p.Timestamp.Unix(), p.Latitude, p.Longitude, p.Speed, p.Accuracy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journey point: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read journey point id: %w", err)
	}
	return id, nil
}

// GetPointsByDay retrieves one user-day of points ordered by timestamp
// ascending.
func (r *JourneyRepository) GetPointsByDay(userID, dateKey string) ([]models.JourneyPoint, error) {
	query := `SELECT id, user_id, date_key, ts, latitude, longitude, speed, accuracy
		FROM journey_points
		WHERE user_id = ? AND date_key = ?
		ORDER BY ts ASC`

	rows, err := r.db.Query(query, userID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query journey points: %w", err)
	}
	defer rows.Close()

	var points []models.JourneyPoint
	for rows.Next() {
		var p models.JourneyPoint
		var ts int64
		err := rows.Scan(&p.ID, &p.UserID, &p.DateKey, &ts, &p.Latitude, &p.Longitude, &p.Speed, &p.Accuracy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journey point: %w", err)
		}
		p.Timestamp = time.Unix(ts, 0).UTC()
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journey points: %w", err)
	}

	return points, nil
}

// InsertEvent appends a persisted journey event (flag entries from abnormal
// samples; the rest of the timeline is recomputed on read).
func (r *JourneyRepository) InsertEvent(e *models.JourneyEvent) (int64, error) {
	query := `INSERT INTO journey_events (user_id, date_key, ts, type, title, subtitle, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		e.UserID, e.DateKey, e.Timestamp.Unix(), e.Type, e.Title, e.Subtitle, e.Latitude, e.Longitude,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journey event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read journey event id: %w", err)
	}
	return id, nil
}

// GetEventsByDay retrieves one user-day of persisted events of the given
// type, ordered by timestamp ascending.
func (r *JourneyRepository) GetEventsByDay(userID, dateKey, eventType string) ([]models.JourneyEvent, error) {
	query := `SELECT id, user_id, date_key, ts, type, title, subtitle, latitude, longitude
		FROM journey_events
		WHERE user_id = ? AND date_key = ? AND type = ?
		ORDER BY ts ASC`

	rows, err := r.db.Query(query, userID, dateKey, eventType)
	if err != nil {
		return nil, fmt.Errorf("failed to query journey events: %w", err)
	}
	defer rows.Close()

	var events []models.JourneyEvent
	for rows.Next() {
		var e models.JourneyEvent
		var ts int64
		err := rows.Scan(&e.ID, &e.UserID, &e.DateKey, &ts, &e.Type, &e.Title, &e.Subtitle, &e.Latitude, &e.Longitude)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journey event: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journey events: %w", err)
	}

	return events, nil
}
