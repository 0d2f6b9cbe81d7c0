// Package analytics derives window metrics from classified motion samples.
// Every computation is pure and recomputed per query; empty windows produce
// well-defined zero values, never an error.
package analytics

import (
	"fmt"
	"math"

	"github.com/safespot/safespot-backend/internal/datekey"
	"github.com/safespot/safespot-backend/internal/models"
)

const (
	// ActiveSpeedThreshold marks a sample as active even when it classified
	// as Idle (m/s).
	ActiveSpeedThreshold = 0.2

	// HeatmapSpeedThreshold admits a sample into the hour heatmap (m/s).
	HeatmapSpeedThreshold = 0.1

	// HeatmapWeight is the per-sample increment of an hour bucket. Sparse
	// data renders too faint with +1.
	HeatmapWeight = 2

	// TimelineLimit caps the abnormal-sample timeline.
	TimelineLimit = 3
)

// Metrics holds the derived values for one time window.
type Metrics struct {
	ActiveMins    int
	AvgSpeed      float64
	Stability     int
	Intensity     string
	AbnormalCount int
	Total         int
}

// Compute derives the metrics for one window of samples ordered by timestamp
// ascending.
func Compute(samples []models.MotionSample) Metrics {
	total := len(samples)
	if total == 0 {
		return Metrics{Stability: 100, Intensity: models.IntensityIdle}
	}

	abnormal := 0
	var speedSum float64
	freq := map[string]int{}
	order := []string{}
	for _, s := range samples {
		if s.IsAbnormal {
			abnormal++
		}
		speedSum += s.Speed

		key := intensityOrIdle(s)
		if _, seen := freq[key]; !seen {
			order = append(order, key)
		}
		freq[key]++
	}

	// Most frequent intensity; ties break toward the first label encountered.
	intensity := models.IntensityIdle
	best := 0
	for _, key := range order {
		if freq[key] > best {
			best = freq[key]
			intensity = key
		}
	}

	stability := int(math.Max(0, math.Round(100-float64(abnormal)/float64(total)*100)))

	// Active span approximates duration from the first to the last active
	// sample, because ping cadence is irregular.
	var first, last *models.MotionSample
	activeCount := 0
	for i := range samples {
		s := &samples[i]
		if intensityOrIdle(*s) != models.IntensityIdle || s.Speed > ActiveSpeedThreshold {
			if first == nil {
				first = s
			}
			last = s
			activeCount++
		}
	}

	activeMins := 0
	switch {
	case activeCount >= 2:
		span := last.Timestamp.Sub(first.Timestamp).Minutes()
		activeMins = int(math.Round(math.Max(0, span)))
	case activeCount == 1:
		activeMins = 1
	}

	return Metrics{
		ActiveMins:    activeMins,
		AvgSpeed:      speedSum / float64(total),
		Stability:     stability,
		Intensity:     intensity,
		AbnormalCount: abnormal,
		Total:         total,
	}
}

// SeriesPoint renders metrics into one per-day series row.
func SeriesPoint(label string, m Metrics) models.SeriesPoint {
	return models.SeriesPoint{
		Label:        label,
		ActiveMins:   m.ActiveMins,
		AvgSpeed:     math.Round(m.AvgSpeed*100) / 100,
		Stability:    m.Stability,
		TotalLogs:    m.Total,
		AbnormalLogs: m.AbnormalCount,
	}
}

// Combine folds per-day series rows into range-level cards: active minutes
// sum over days, speed and stability average over days. Stability averaging
// is per-day, not sample-weighted.
func Combine(series []models.SeriesPoint) (totalActive int, avgSpeed float64, avgStability int) {
	if len(series) == 0 {
		return 0, 0, 100
	}
	var speedSum, stabilitySum float64
	for _, p := range series {
		totalActive += p.ActiveMins
		speedSum += p.AvgSpeed
		stabilitySum += float64(p.Stability)
	}
	n := float64(len(series))
	return totalActive, speedSum / n, int(math.Round(stabilitySum / n))
}

// Heatmap buckets samples by reference-timezone hour of day. Only samples
// showing movement count, each adding a fixed weight.
func Heatmap(samples []models.MotionSample) [24]int {
	var buckets [24]int
	for _, s := range samples {
		if s.Speed > HeatmapSpeedThreshold || intensityOrIdle(s) != models.IntensityIdle {
			hour := s.Timestamp.In(datekey.ReferenceZone).Hour()
			buckets[hour] += HeatmapWeight
		}
	}
	return buckets
}

// intensityOrIdle treats an unset intensity label as Idle, so samples stored
// before classification ran cannot count as movement.
func intensityOrIdle(s models.MotionSample) string {
	if s.Intensity == "" {
		return models.IntensityIdle
	}
	return s.Intensity
}

// AbnormalTimeline renders the most recent abnormal samples, newest first.
// Samples are expected ordered by timestamp ascending.
func AbnormalTimeline(samples []models.MotionSample) []models.TimelineAlert {
	alerts := []models.TimelineAlert{}
	for i := len(samples) - 1; i >= 0 && len(alerts) < TimelineLimit; i-- {
		s := samples[i]
		if !s.IsAbnormal {
			continue
		}
		title := "Abnormal motion detected"
		severity := "warning"
		if s.Intensity == models.IntensityHigh {
			title = "High-intensity movement"
			severity = "critical"
		}
		alerts = append(alerts, models.TimelineAlert{
			Time:     s.Timestamp.In(datekey.ReferenceZone).Format("3:04 PM"),
			Title:    title,
			Severity: severity,
		})
	}
	return alerts
}

// FormatActiveMins renders active minutes as "1h 5m" past the hour mark,
// "X mins" below it.
func FormatActiveMins(mins int) string {
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%d mins", mins)
}

// FormatSpeed renders a speed in m/s with one decimal.
func FormatSpeed(v float64) string {
	return fmt.Sprintf("%.1f m/s", v)
}

// FormatStability renders a stability score as a percentage string.
func FormatStability(score int) string {
	return fmt.Sprintf("%d%%", score)
}
