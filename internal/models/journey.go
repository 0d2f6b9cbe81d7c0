package models

import "time"

// Journey event types, ordered by timestamp within a day.
const (
	EventStart = "start"
	EventMove  = "move"
	EventIdle  = "idle"
	EventFlag  = "flag"
	EventEnd   = "end"
)

// JourneyPoint is one raw GPS ping used for journey reconstruction.
// Rows expire 30 days after their timestamp (enforced by the storage layer).
type JourneyPoint struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	DateKey   string    `json:"dateKey" db:"date_key"`
	Timestamp time.Time `json:"ts" db:"ts"`
	Latitude  float64   `json:"lat" db:"latitude"`
	Longitude float64   `json:"lng" db:"longitude"`
	Speed     float64   `json:"speed" db:"speed"`
	Accuracy  float64   `json:"accuracy" db:"accuracy"`
}

// JourneyPointRequest is the payload for POST /api/v1/journey/point.
// DateKey is computed from the timestamp when omitted.
type JourneyPointRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	DateKey   string     `json:"dateKey"`
	Timestamp *time.Time `json:"ts"`
	Latitude  *float64   `json:"lat" binding:"required"`
	Longitude *float64   `json:"lng" binding:"required"`
	Speed     float64    `json:"speed"`
	Accuracy  float64    `json:"accuracy"`
}

// JourneyEvent is a discrete narrative entry in a day's timeline. Only flag
// events are persisted; the rest are recomputed from raw points on read.
type JourneyEvent struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	DateKey   string    `json:"dateKey" db:"date_key"`
	Timestamp time.Time `json:"ts" db:"ts"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Latitude  *float64  `json:"lat,omitempty" db:"latitude"`
	Longitude *float64  `json:"lng,omitempty" db:"longitude"`
}

// JourneySummaryCards holds the formatted summary strings for a day.
type JourneySummaryCards struct {
	ActiveTime string `json:"activeTime"`
	Distance   string `json:"distance"`
	Sessions   string `json:"sessions"`
	Zones      string `json:"zones"`
}

// TimelineEntry is one rendered event in the journey-today response.
type TimelineEntry struct {
	Time     string `json:"time"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Type     string `json:"type"`
}

// JourneyTodayResponse is the response shape for GET /api/v1/journey/:userId/today.
type JourneyTodayResponse struct {
	UserID  string              `json:"userId"`
	Date    string              `json:"date"`
	Summary JourneySummaryCards `json:"summary"`
	Events  []TimelineEntry     `json:"events"`
}
