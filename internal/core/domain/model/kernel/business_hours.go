package kernel

import (
	"fmt"
	"time"

	"tolkbook/internal/pkg/errs"
)

const (
	// DefaultDayStart is the hour business time begins when none is configured.
	DefaultDayStart = 9
	// DefaultDayEnd is the hour business time ends when none is configured.
	DefaultDayEnd = 21
)

// BusinessHours is the policy that classifies a wall-clock instant as business
// time or night time. Push notifications to recipients that opted out of
// night-time delivery are not suppressed at night; they are stamped with the
// next business instant and handed to the provider for deferred delivery.
//
// The policy is a closed daily window [DayStart, DayEnd) in the local time of
// the instant being classified.
//
// Example:
//
//	hours, _ := kernel.NewBusinessHours(9, 21)
//	if hours.IsNight(now) {
//	    deliverAfter := hours.NextBusinessTime(now)
//	    // stamp the push with deliverAfter
//	}
type BusinessHours struct {
	dayStart int
	dayEnd   int
}

// NewBusinessHours creates a business-hours policy with the daily window
// [dayStart, dayEnd) in whole hours. Both bounds must lie in [0, 24] and the
// window must be non-empty.
func NewBusinessHours(dayStart, dayEnd int) (BusinessHours, error) {
	if dayStart < 0 || dayStart > 23 {
		return BusinessHours{}, errs.NewValidationErrorWithCause("day_start",
			fmt.Errorf("%d is not an hour of day", dayStart))
	}
	if dayEnd < 1 || dayEnd > 24 {
		return BusinessHours{}, errs.NewValidationErrorWithCause("day_end",
			fmt.Errorf("%d is not an hour of day", dayEnd))
	}
	if dayStart >= dayEnd {
		return BusinessHours{}, errs.NewValidationErrorWithCause("day_end",
			fmt.Errorf("window [%d, %d) is empty", dayStart, dayEnd))
	}
	return BusinessHours{dayStart: dayStart, dayEnd: dayEnd}, nil
}

// DefaultBusinessHours returns the 09:00-21:00 policy.
func DefaultBusinessHours() BusinessHours {
	hours, _ := NewBusinessHours(DefaultDayStart, DefaultDayEnd)
	return hours
}

// IsNight reports whether t falls outside the business window.
func (b BusinessHours) IsNight(t time.Time) bool {
	hour := t.Hour()
	return hour < b.dayStart || hour >= b.dayEnd
}

// NextBusinessTime returns the earliest business instant at or after t.
// Inside the window it returns t unchanged; before the window it returns the
// window start of the same day; after the window it returns the window start
// of the following day.
func (b BusinessHours) NextBusinessTime(t time.Time) time.Time {
	if !b.IsNight(t) {
		return t
	}

	start := time.Date(t.Year(), t.Month(), t.Day(), b.dayStart, 0, 0, 0, t.Location())
	if t.Hour() < b.dayStart {
		return start
	}
	return start.AddDate(0, 0, 1)
}
