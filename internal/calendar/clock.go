package calendar

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-datebook/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// TodayProvider supplies the current date for IsToday comparisons.
type TodayProvider interface {
	Today() Date
}

// ClockToday is the wall clock backed TodayProvider.
type ClockToday struct {
	Clock Clock
}

var defaultToday TodayProvider = ClockToday{Clock: RealClock{}}

// Today returns the local calendar date of Clock.Now().
// On February 29 it returns February 28, the closest representable date.
func (c ClockToday) Today() Date {
	clock := c.Clock
	if clock == nil {
		clock = RealClock{}
	}
	now := clock.Now()
	today := FromTime(now)
	if today.Day() != now.Day() {
		slog.Debug(config.MsgTodayClamped,
			config.LogKeyComponent, config.CompCalendar,
			config.LogKeyDate, now.Format(config.DateFormatISO))
	}
	return today
}

// FixedToday always reports the same date. It is meant for tests and for
// reports generated "as of" a given day.
type FixedToday struct {
	Date Date
}

// Today returns the fixed date.
func (f FixedToday) Today() Date {
	return f.Date
}
