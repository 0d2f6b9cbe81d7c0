package models

import "time"

// Protector is an emergency contact notified when abnormal motion is detected.
type Protector struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Photo     string    `json:"photo" db:"photo"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProtectorRequest is the payload for POST /api/v1/protectors.
type ProtectorRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Photo  string `json:"photo"`
}
