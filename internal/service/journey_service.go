package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/safespot/safespot-backend/internal/datekey"
	"github.com/safespot/safespot-backend/internal/journey"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/repository"
)

// JourneyService handles journey-point ingestion and the reconstructed
// journey-today view.
type JourneyService struct {
	journeyRepo *repository.JourneyRepository
}

// NewJourneyService creates a new journey service
func NewJourneyService(journeyRepo *repository.JourneyRepository) *JourneyService {
	return &JourneyService{journeyRepo: journeyRepo}
}

// AddPoint stores one raw GPS ping, computing its date key when omitted.
func (s *JourneyService) AddPoint(req models.JourneyPointRequest) (*models.JourneyPoint, error) {
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	key := req.DateKey
	if key == "" {
		key = datekey.FromTime(ts)
	} else if !datekey.Valid(key) {
		return nil, fmt.Errorf("invalid date key %q", key)
	}

	point := &models.JourneyPoint{
		UserID:    req.UserID,
		DateKey:   key,
		Timestamp: ts,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Speed:     req.Speed,
		Accuracy:  req.Accuracy,
	}

	id, err := s.journeyRepo.InsertPoint(point)
	if err != nil {
		return nil, fmt.Errorf("failed to store journey point: %w", err)
	}
	point.ID = id

	return point, nil
}

// Today reconstructs the current day's journey from raw points and merges in
// the persisted flag events. A day without data returns a zero-valued,
// fully shaped response.
func (s *JourneyService) Today(userID string) (*models.JourneyTodayResponse, error) {
	key := datekey.Today()

	points, err := s.journeyRepo.GetPointsByDay(userID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load journey points: %w", err)
	}

	flags, err := s.journeyRepo.GetEventsByDay(userID, key, models.EventFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load flag events: %w", err)
	}

	summary, events := journey.SegmentDay(points)

	return &models.JourneyTodayResponse{
		UserID: userID,
		Date:   key,
		Summary: models.JourneySummaryCards{
			ActiveTime: summary.ActiveTime(),
			Distance:   summary.Distance(),
			Sessions:   strconv.Itoa(summary.Sessions),
			Zones:      journey.ZonesLabel(len(flags)),
		},
		Events: journey.RenderTimeline(events, flags),
	}, nil
}
