package domain

import "time"

// Clock is the wall-clock source used to stamp domain events.
type Clock func() time.Time

// SystemClock stamps events with second precision in the given location.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc).Truncate(time.Second)
	}
}

// FixedClock always returns the same instant. Used for backfills and tests.
func FixedClock(at time.Time) Clock {
	return func() time.Time {
		return at
	}
}
