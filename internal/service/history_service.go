package service

import (
	"fmt"
	"log"
	"time"

	"github.com/safespot/safespot-backend/internal/analytics"
	"github.com/safespot/safespot-backend/internal/datekey"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/motion"
	"github.com/safespot/safespot-backend/internal/notify"
	"github.com/safespot/safespot-backend/internal/repository"
)

// HistoryService handles motion-sample ingestion and summary queries.
type HistoryService struct {
	sampleRepo   *repository.SampleRepository
	journeyRepo  *repository.JourneyRepository
	alertService *AlertService
}

// NewHistoryService creates a new history service
func NewHistoryService(sampleRepo *repository.SampleRepository, journeyRepo *repository.JourneyRepository, alertService *AlertService) *HistoryService {
	return &HistoryService{
		sampleRepo:   sampleRepo,
		journeyRepo:  journeyRepo,
		alertService: alertService,
	}
}

// Ingest classifies and stores one motion sample, returning the derived
// labels. Abnormal samples raise a background alert and, when located,
// append a flag event to the day's journey timeline.
func (s *HistoryService) Ingest(req models.MotionSampleRequest) (*models.ClassificationResult, error) {
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	result := motion.Classify(motion.Reading{
		Speed:  req.Speed,
		AccelX: req.AccelX,
		AccelY: req.AccelY,
		AccelZ: req.AccelZ,
		GyroX:  req.GyroX,
		GyroY:  req.GyroY,
		GyroZ:  req.GyroZ,
	})

	sample := &models.MotionSample{
		UserID:     req.UserID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Speed:      req.Speed,
		AccelX:     req.AccelX,
		AccelY:     req.AccelY,
		AccelZ:     req.AccelZ,
		GyroX:      req.GyroX,
		GyroY:      req.GyroY,
		GyroZ:      req.GyroZ,
		Intensity:  result.Intensity,
		IsAbnormal: result.IsAbnormal,
		Timestamp:  ts,
	}

	if _, err := s.sampleRepo.Insert(sample); err != nil {
		return nil, fmt.Errorf("failed to store sample: %w", err)
	}

	if result.IsAbnormal {
		s.recordAbnormal(req, result, ts)
	}

	return &models.ClassificationResult{
		Intensity:  result.Intensity,
		IsAbnormal: result.IsAbnormal,
	}, nil
}

// recordAbnormal raises the alert event and persists a flag entry for the
// journey timeline. Neither failure affects the ingestion response.
func (s *HistoryService) recordAbnormal(req models.MotionSampleRequest, result motion.Result, ts time.Time) {
	if req.Latitude == nil || req.Longitude == nil {
		log.Printf("[history] abnormal sample for user %s has no location, alert skipped", req.UserID)
		return
	}

	event := &models.JourneyEvent{
		UserID:    req.UserID,
		DateKey:   datekey.FromTime(ts),
		Timestamp: ts,
		Type:      models.EventFlag,
		Title:     "Abnormal motion detected",
		Subtitle:  fmt.Sprintf("Classified as %s", result.Intensity),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if _, err := s.journeyRepo.InsertEvent(event); err != nil {
		log.Printf("[history] failed to persist flag event for user %s: %v", req.UserID, err)
	}

	s.alertService.NotifyAbnormal(notify.Alert{
		UserID:    req.UserID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Intensity: result.Intensity,
	})
}

// Latest returns a user's most recent samples, newest first. The limit is
// clamped to [1, 200] with a default of 50.
func (s *HistoryService) Latest(userID string, limit int) ([]models.MotionSample, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	samples, err := s.sampleRepo.GetLatest(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest samples: %w", err)
	}
	return samples, nil
}

// LiveLocation returns the user's newest located sample, or nil when the
// user has never reported coordinates.
func (s *HistoryService) LiveLocation(userID string) (*models.LiveLocationResponse, error) {
	sample, err := s.sampleRepo.GetLastWithLocation(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get live location: %w", err)
	}
	if sample == nil {
		return nil, nil
	}

	return &models.LiveLocationResponse{
		UserID:    userID,
		Latitude:  *sample.Latitude,
		Longitude: *sample.Longitude,
		Timestamp: sample.Timestamp.Format(time.RFC3339),
	}, nil
}

// DaySummary computes the metrics for a single date key (defaults to today).
func (s *HistoryService) DaySummary(userID, dateKey string) (*models.SummaryResponse, error) {
	if dateKey == "" {
		dateKey = datekey.Today()
	}
	start, end, err := datekey.DayRange(dateKey)
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.GetByRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query day window: %w", err)
	}

	m := analytics.Compute(samples)
	return &models.SummaryResponse{
		Range:   "day",
		DateKey: dateKey,
		Cards: models.SummaryCards{
			ActiveTime: analytics.FormatActiveMins(m.ActiveMins),
			AvgSpeed:   analytics.FormatSpeed(m.AvgSpeed),
			Stability:  analytics.FormatStability(m.Stability),
			Intensity:  m.Intensity,
		},
		Series: []models.SeriesPoint{analytics.SeriesPoint(dateKey, m)},
	}, nil
}

// WeekSummary computes per-day metrics for the 7 days ending today and folds
// them into range-level cards.
func (s *HistoryService) WeekSummary(userID string) (*models.SummaryResponse, error) {
	keys := datekey.WeekKeysEndingAt(time.Now())
	series, err := s.seriesForKeys(userID, keys)
	if err != nil {
		return nil, err
	}

	totalActive, avgSpeed, avgStability := analytics.Combine(series)
	return &models.SummaryResponse{
		Range:    "week",
		DateKeys: keys,
		Cards: models.SummaryCards{
			ActiveTime: analytics.FormatActiveMins(totalActive),
			AvgSpeed:   analytics.FormatSpeed(avgSpeed),
			Stability:  analytics.FormatStability(avgStability),
			Intensity:  "Week",
		},
		Series: series,
	}, nil
}

// MonthSummary computes per-day metrics for every day of the given month.
// Zero year/month default to the current month.
func (s *HistoryService) MonthSummary(userID string, year, month int) (*models.SummaryResponse, error) {
	now := time.Now().In(datekey.ReferenceZone)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	keys := datekey.MonthKeys(year, month)
	series, err := s.seriesForKeys(userID, keys)
	if err != nil {
		return nil, err
	}

	totalActive, avgSpeed, avgStability := analytics.Combine(series)
	return &models.SummaryResponse{
		Range:    "month",
		DateKeys: keys,
		Year:     year,
		Month:    month,
		Cards: models.SummaryCards{
			ActiveTime: analytics.FormatActiveMins(totalActive),
			AvgSpeed:   analytics.FormatSpeed(avgSpeed),
			Stability:  analytics.FormatStability(avgStability),
			Intensity:  "Month",
		},
		Series: series,
	}, nil
}

// seriesForKeys fetches the covering range once and groups samples into
// per-day buckets, keeping every requested key in the series even when empty.
func (s *HistoryService) seriesForKeys(userID string, keys []string) ([]models.SeriesPoint, error) {
	if len(keys) == 0 {
		return []models.SeriesPoint{}, nil
	}

	start, _, err := datekey.DayRange(keys[0])
	if err != nil {
		return nil, err
	}
	_, end, err := datekey.DayRange(keys[len(keys)-1])
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.GetByRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query range window: %w", err)
	}

	buckets := make(map[string][]models.MotionSample, len(keys))
	for _, sample := range samples {
		k := datekey.FromTime(sample.Timestamp)
		buckets[k] = append(buckets[k], sample)
	}

	series := make([]models.SeriesPoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, analytics.SeriesPoint(k, analytics.Compute(buckets[k])))
	}
	return series, nil
}
