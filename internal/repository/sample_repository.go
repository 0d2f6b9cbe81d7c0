package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/safespot/safespot-backend/internal/models"
)

// SampleRepository handles database operations for motion samples
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

const sampleColumns = `id, user_id, latitude, longitude, speed,
	accel_x, accel_y, accel_z, gyro_x, gyro_y, gyro_z,
	intensity, is_abnormal, ts`

// Insert stores a classified motion sample and returns its id.
func (r *SampleRepository) Insert(s *models.MotionSample) (int64, error) {
	query := `INSERT INTO history (user_id, latitude, longitude, speed,
		accel_x, accel_y, accel_z, gyro_x, gyro_y, gyro_z,
		intensity, is_abnormal, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		s.UserID, s.Latitude, s.Longitude, s.Speed,
		s.AccelX, s.AccelY, s.AccelZ, s.GyroX, s.GyroY, s.GyroZ,
		s.Intensity, s.IsAbnormal, s.Timestamp.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sample: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read sample id: %w", err)
	}
	return id, nil
}

// GetByRange retrieves a user's samples within [start, end), ordered by
// timestamp ascending.
func (r *SampleRepository) GetByRange(userID string, start, end time.Time) ([]models.MotionSample, error) {
	query := `SELECT ` + sampleColumns + `
		FROM history
		WHERE user_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC`

	rows, err := r.db.Query(query, userID, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

// GetLatest retrieves a user's most recent samples, newest first.
func (r *SampleRepository) GetLatest(userID string, limit int) ([]models.MotionSample, error) {
	query := `SELECT ` + sampleColumns + `
		FROM history
		WHERE user_id = ?
		ORDER BY ts DESC
		LIMIT ?`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

// GetLastWithLocation retrieves the user's newest sample carrying coordinates.
// Returns nil when the user has no located samples yet.
func (r *SampleRepository) GetLastWithLocation(userID string) (*models.MotionSample, error) {
	query := `SELECT ` + sampleColumns + `
		FROM history
		WHERE user_id = ? AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY ts DESC
		LIMIT 1`

	var s models.MotionSample
	var ts int64
	err := r.db.QueryRow(query, userID).Scan(
		&s.ID, &s.UserID, &s.Latitude, &s.Longitude, &s.Speed,
		&s.AccelX, &s.AccelY, &s.AccelZ, &s.GyroX, &s.GyroY, &s.GyroZ,
		&s.Intensity, &s.IsAbnormal, &ts,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last located sample: %w", err)
	}
	s.Timestamp = time.Unix(ts, 0).UTC()

	return &s, nil
}

func scanSamples(rows *sql.Rows) ([]models.MotionSample, error) {
	var samples []models.MotionSample
	for rows.Next() {
		var s models.MotionSample
		var ts int64
		err := rows.Scan(
			&s.ID, &s.UserID, &s.Latitude, &s.Longitude, &s.Speed,
			&s.AccelX, &s.AccelY, &s.AccelZ, &s.GyroX, &s.GyroY, &s.GyroZ,
			&s.Intensity, &s.IsAbnormal, &ts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		s.Timestamp = time.Unix(ts, 0).UTC()
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}

	return samples, nil
}
