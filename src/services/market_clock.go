package services

import (
	"fmt"
	"time"
)

// IsMarketOpen reports whether the regular NYSE session (09:30-16:00 ET,
// weekdays) is open at t. Exchange holidays are not modeled; callers that
// care pass the flag explicitly.
func IsMarketOpen(t time.Time) (bool, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return false, fmt.Errorf("IsMarketOpen: failed to load location: %w", err)
	}

	et := t.In(loc)

	switch et.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}

	open := time.Date(et.Year(), et.Month(), et.Day(), 9, 30, 0, 0, loc)
	close_ := time.Date(et.Year(), et.Month(), et.Day(), 16, 0, 0, 0, loc)

	return !et.Before(open) && et.Before(close_), nil
}
