// Package journey reconstructs a day's movement timeline from raw GPS pings.
// Reconstruction is a single linear pass over the day's points and is
// recomputed from raw data on every read; nothing incremental is stored, so
// concurrent point writes cannot race a summary document.
package journey

import (
	"fmt"
	"sort"
	"time"

	"github.com/safespot/safespot-backend/internal/datekey"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/spatial"
)

const (
	// SessionGap splits tracking into sessions: a longer silence means the
	// client paused and resumed.
	SessionGap = 10 * time.Minute

	// MoveThresholdMeters is the GPS noise floor. Displacement below it is
	// jitter and must not inflate distance or active time.
	MoveThresholdMeters = 10.0

	// ActiveGapCap bounds the time credited to a single counted movement,
	// so a multi-hour gap with real displacement does not count as active.
	ActiveGapCap = 10 * time.Minute

	// Idle run thresholds: consecutive pairs staying within this radius at
	// near-zero speed for at least IdleMinDuration collapse into one idle
	// event.
	StationaryRadiusMeters   = 8.0
	StationarySpeedThreshold = 0.3
	IdleMinDuration          = 10 * time.Minute

	// MoveEventMinMeters is the smallest movement run worth narrating.
	MoveEventMinMeters = 100.0
)

// Summary holds the reconstructed day totals.
type Summary struct {
	DistanceMeters float64
	ActiveDuration time.Duration
	Sessions       int
}

// ActiveTime formats the active duration as "1h 23m" or "23m".
func (s Summary) ActiveTime() string {
	mins := int(s.ActiveDuration.Minutes())
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// Distance formats the cumulative distance in kilometers.
func (s Summary) Distance() string {
	return fmt.Sprintf("%.1f km", s.DistanceMeters/1000)
}

type idleRun struct {
	active   bool
	start    models.JourneyPoint
	duration time.Duration
}

type moveRun struct {
	active bool
	start  models.JourneyPoint
	last   models.JourneyPoint
	meters float64
}

// SegmentDay reconstructs the timeline for one user-day. Points may arrive
// out of order from client retries, so the window is re-sorted by timestamp
// before segmentation rather than rejected.
func SegmentDay(points []models.JourneyPoint) (Summary, []models.JourneyEvent) {
	if len(points) == 0 {
		return Summary{}, []models.JourneyEvent{}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	first := points[0]
	last := points[len(points)-1]

	summary := Summary{Sessions: 1}
	events := []models.JourneyEvent{
		pointEvent(first, models.EventStart, "Journey started", "Tracking began"),
	}

	var idle idleRun
	var move moveRun

	for i := 1; i < len(points); i++ {
		prev := points[i-1]
		cur := points[i]

		dist := spatial.HaversineDistance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
		dt := cur.Timestamp.Sub(prev.Timestamp)

		if dt > SessionGap {
			events = flushIdle(events, &idle)
			events = flushMove(events, &move)
			summary.Sessions++
			events = append(events, pointEvent(cur, models.EventStart, "New session", "Tracking resumed"))
		}

		if dist >= MoveThresholdMeters {
			summary.DistanceMeters += dist
			if dt <= ActiveGapCap {
				summary.ActiveDuration += dt
			}
			events = flushIdle(events, &idle)
			if dt <= SessionGap {
				if !move.active {
					move = moveRun{active: true, start: prev}
				}
				move.last = cur
				move.meters += dist
			}
			continue
		}

		events = flushMove(events, &move)
		if dist < StationaryRadiusMeters && prev.Speed < StationarySpeedThreshold && cur.Speed < StationarySpeedThreshold && dt <= SessionGap {
			if !idle.active {
				idle = idleRun{active: true, start: prev}
			}
			idle.duration += dt
		} else {
			events = flushIdle(events, &idle)
		}
	}

	events = flushIdle(events, &idle)
	events = flushMove(events, &move)
	events = append(events, pointEvent(last, models.EventEnd, "Journey ended", "Tracking stopped"))

	return summary, events
}

// flushIdle closes an idle run, emitting a single event when the run lasted
// long enough to be a real stay rather than per-pair noise.
func flushIdle(events []models.JourneyEvent, run *idleRun) []models.JourneyEvent {
	if run.active && run.duration >= IdleMinDuration {
		mins := int(run.duration.Minutes())
		events = append(events, pointEvent(run.start, models.EventIdle,
			"Stayed in place", fmt.Sprintf("Idle for %dm", mins)))
	}
	run.active = false
	run.duration = 0
	return events
}

// flushMove closes a movement run, narrating it with distance and the compass
// direction from the run's first to last fix.
func flushMove(events []models.JourneyEvent, run *moveRun) []models.JourneyEvent {
	if run.active && run.meters >= MoveEventMinMeters {
		bearing := spatial.Bearing(run.start.Latitude, run.start.Longitude, run.last.Latitude, run.last.Longitude)
		events = append(events, pointEvent(run.last, models.EventMove,
			"On the move", fmt.Sprintf("%.1f km heading %s", run.meters/1000, spatial.CompassDirection(bearing))))
	}
	run.active = false
	run.meters = 0
	return events
}

func pointEvent(p models.JourneyPoint, eventType, title, subtitle string) models.JourneyEvent {
	lat := p.Latitude
	lng := p.Longitude
	return models.JourneyEvent{
		UserID:    p.UserID,
		DateKey:   p.DateKey,
		Timestamp: p.Timestamp,
		Type:      eventType,
		Title:     title,
		Subtitle:  subtitle,
		Latitude:  &lat,
		Longitude: &lng,
	}
}

// ZonesLabel summarizes the day's persisted flag events.
func ZonesLabel(flagCount int) string {
	if flagCount == 0 {
		return "Mostly Safe"
	}
	return fmt.Sprintf("%d flagged zones", flagCount)
}

// RenderTimeline merges reconstructed events with persisted flag events into
// one timestamp-ordered list of rendered entries.
func RenderTimeline(computed, flags []models.JourneyEvent) []models.TimelineEntry {
	merged := make([]models.JourneyEvent, 0, len(computed)+len(flags))
	merged = append(merged, computed...)
	merged = append(merged, flags...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	entries := make([]models.TimelineEntry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, models.TimelineEntry{
			Time:     e.Timestamp.In(datekey.ReferenceZone).Format("3:04 PM"),
			Title:    e.Title,
			Subtitle: e.Subtitle,
			Type:     e.Type,
		})
	}
	return entries
}
