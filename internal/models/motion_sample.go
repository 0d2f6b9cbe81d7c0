package models

import "time"

// Intensity labels assigned by the motion classifier, ordered from calmest to
// most intense.
const (
	IntensityIdle     = "Idle"
	IntensityLight    = "Light"
	IntensityModerate = "Moderate"
	IntensityHigh     = "High-intensity"
)

// IntensityRank returns the ordinal position of an intensity label
// (Idle=0 ... High-intensity=3). Unknown labels rank as Idle.
func IntensityRank(intensity string) int {
	switch intensity {
	case IntensityLight:
		return 1
	case IntensityModerate:
		return 2
	case IntensityHigh:
		return 3
	default:
		return 0
	}
}

// MotionSample is one ingested motion+location reading from a client device.
// Intensity and IsAbnormal are derived once at ingestion and never mutated.
type MotionSample struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	Latitude   *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude  *float64  `json:"longitude,omitempty" db:"longitude"`
	Speed      float64   `json:"speed" db:"speed"`
	AccelX     float64   `json:"accelX" db:"accel_x"`
	AccelY     float64   `json:"accelY" db:"accel_y"`
	AccelZ     float64   `json:"accelZ" db:"accel_z"`
	GyroX      float64   `json:"gyroX" db:"gyro_x"`
	GyroY      float64   `json:"gyroY" db:"gyro_y"`
	GyroZ      float64   `json:"gyroZ" db:"gyro_z"`
	Intensity  string    `json:"intensity" db:"intensity"`
	IsAbnormal bool      `json:"isAbnormal" db:"is_abnormal"`
	Timestamp  time.Time `json:"timestamp" db:"ts"`
}

// MotionSampleRequest is the ingestion payload for POST /api/v1/history.
// Every sensor field is optional; a missing axis is treated as 0.
type MotionSampleRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Speed     float64    `json:"speed"`
	AccelX    float64    `json:"accelX"`
	AccelY    float64    `json:"accelY"`
	AccelZ    float64    `json:"accelZ"`
	GyroX     float64    `json:"gyroX"`
	GyroY     float64    `json:"gyroY"`
	GyroZ     float64    `json:"gyroZ"`
	Timestamp *time.Time `json:"timestamp"`
}

// ClassificationResult is returned to the client after ingestion.
type ClassificationResult struct {
	Intensity  string `json:"intensity"`
	IsAbnormal bool   `json:"isAbnormal"`
}
