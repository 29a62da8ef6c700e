// Package clock keeps all run timestamps in two fixed zones: UTC for storage
// and America/New_York for window evaluation and reporting.
package clock

import (
	"sync"
	"time"
)

var (
	easternOnce sync.Once
	eastern     *time.Location
)

func easternLocation() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		eastern = loc
	})
	return eastern
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToEastern localizes a timestamp into America/New_York.
func ToEastern(t time.Time) time.Time {
	return t.In(easternLocation())
}

// PairISO returns the UTC and America/New_York ISO-8601 renderings of t.
func PairISO(t time.Time) (utcISO, usISO string) {
	return t.UTC().Format(time.RFC3339), ToEastern(t).Format(time.RFC3339)
}
