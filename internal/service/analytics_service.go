package service

import (
	"fmt"

	"github.com/safespot/safespot-backend/internal/analytics"
	"github.com/safespot/safespot-backend/internal/datekey"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/repository"
)

// AnalyticsService serves the today-analytics view (heatmap, stability,
// current intensity, abnormal timeline).
type AnalyticsService struct {
	sampleRepo *repository.SampleRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(sampleRepo *repository.SampleRepository) *AnalyticsService {
	return &AnalyticsService{sampleRepo: sampleRepo}
}

// Today computes the analytics view over today's samples. An empty day
// yields a zero-filled, fully shaped response.
func (s *AnalyticsService) Today(userID string) (*models.TodayAnalyticsResponse, error) {
	start, end, err := datekey.DayRange(datekey.Today())
	if err != nil {
		return nil, err
	}

	samples, err := s.sampleRepo.GetByRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's samples: %w", err)
	}

	m := analytics.Compute(samples)

	current := models.IntensityIdle
	if len(samples) > 0 {
		current = samples[len(samples)-1].Intensity
	}

	return &models.TodayAnalyticsResponse{
		Heatmap:          analytics.Heatmap(samples),
		StabilityScore:   m.Stability,
		CurrentIntensity: current,
		LogsFound:        len(samples),
		Timeline:         analytics.AbnormalTimeline(samples),
	}, nil
}
