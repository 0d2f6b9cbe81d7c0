// Package datekey buckets instants into calendar-day keys in the deployment's
// reference timezone. The whole system runs on a single fixed offset (IST);
// multi-timezone users are out of scope.
package datekey

import (
	"fmt"
	"time"
)

// Layout is the wire format of a date key.
const Layout = "2006-01-02"

// ReferenceZone is the fixed reference timezone (Asia/Kolkata, UTC+5:30).
var ReferenceZone = time.FixedZone("IST", 5*3600+1800)

// FromTime formats an instant into a YYYY-MM-DD key in the reference timezone.
func FromTime(t time.Time) string {
	return t.In(ReferenceZone).Format(Layout)
}

// Today returns the key for the current instant.
func Today() string {
	return FromTime(time.Now())
}

// DayRange returns the half-open UTC interval [start, end) covering the given
// key's calendar day in the reference timezone.
func DayRange(key string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(Layout, key, ReferenceZone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return start.UTC(), start.Add(24 * time.Hour).UTC(), nil
}

// Valid reports whether key parses as a YYYY-MM-DD date.
func Valid(key string) bool {
	_, err := time.ParseInLocation(Layout, key, ReferenceZone)
	return err == nil
}

// WeekKeysEndingAt returns the 7 consecutive day keys ending at, and
// including, the day containing t.
func WeekKeysEndingAt(t time.Time) []string {
	keys := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		keys = append(keys, FromTime(t.AddDate(0, 0, -i)))
	}
	return keys
}

// MonthKeys returns every day key belonging to the given year/month in
// ascending order. Iteration stops when the key's parsed year or month no
// longer matches, so it terminates naturally at the month boundary.
func MonthKeys(year, month int) []string {
	cur := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, ReferenceZone)
	var keys []string
	for {
		k := FromTime(cur)
		var y, m, d int
		if _, err := fmt.Sscanf(k, "%d-%d-%d", &y, &m, &d); err != nil {
			break
		}
		if y != year || m != month {
			break
		}
		keys = append(keys, k)
		cur = cur.AddDate(0, 0, 1)
	}
	return keys
}
