// Package calendar provides a validated calendar date value and the month
// rules it is checked against.
//
// The rules are a simplified Gregorian calendar: February always has 28 days
// and the month display tables are shifted (see MonthName). A Date can only be
// obtained through New, Parse, FromTime or arithmetic on an existing Date, so
// it is never observable in an invalid state. The zero Date is January 1 of
// year 1.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-datebook/internal/birthday"
	"github.com/tartampluch/go-datebook/internal/config"
)

var (
	// ErrOutOfRange is wrapped by every constructor validation failure.
	ErrOutOfRange = errors.New(config.ErrOutOfRange)

	// ErrInvalidArgument is wrapped when a rule function gets a month outside 1..12.
	ErrInvalidArgument = errors.New(config.ErrInvalidArgument)
)

// Date is an immutable year/month/day triple.
//
// Fields are stored as offsets from 0001-01-01 so that the zero value is a
// valid date. Compare dates with Equal: the injected collaborators are part
// of the struct and may not be comparable.
type Date struct {
	y int // year - 1
	m int // month - 1
	d int // day - 1

	today    TodayProvider
	holidays HolidayLookup
}

// Option configures the collaborators of a Date.
type Option func(*Date)

// WithToday injects the source of "today" used by IsToday.
func WithToday(p TodayProvider) Option {
	return func(d *Date) { d.today = p }
}

// WithHolidays injects the holiday source used by the holiday queries.
func WithHolidays(h HolidayLookup) Option {
	return func(d *Date) { d.holidays = h }
}

// New validates year, month and day and returns the corresponding Date.
// Validation runs in that order; the first failure is returned wrapped
// around ErrOutOfRange.
func New(year, month, day int, opts ...Option) (Date, error) {
	if year < config.MinYear || year > config.MaxYear {
		return Date{}, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	if !validMonth(month) {
		return Date{}, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if maxDay := maxDayOf(year, month); day < 1 || day > maxDay {
		return Date{}, fmt.Errorf("%w: day %d (month %d has %d days)", ErrOutOfRange, day, month, maxDay)
	}
	return newDate(year, month, day, opts...), nil
}

// newDate builds a Date from components the caller has already validated.
func newDate(year, month, day int, opts ...Option) Date {
	d := Date{y: year - 1, m: month - 1, d: day - 1}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Parse reads an ISO 8601 calendar date (YYYY-MM-DD) and validates it like New.
func Parse(value string, opts ...Option) (Date, error) {
	t, err := time.Parse(config.DateFormatISO, value)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return New(t.Year(), int(t.Month()), t.Day(), opts...)
}

// FromTime returns the calendar date of t in its own location.
// A leap day has no representation and maps to February 28.
func FromTime(t time.Time, opts ...Option) Date {
	year, month, day := t.Date()
	day = min(day, maxDayOf(year, int(month)))
	return newDate(year, int(month), day, opts...)
}

func (d Date) Year() int  { return d.y + 1 }
func (d Date) Month() int { return d.m + 1 }
func (d Date) Day() int   { return d.d + 1 }

// MonthName returns the display name of the month (see the package level MonthName).
func (d Date) MonthName() string {
	return MonthName(d.Month())
}

// MonthNameAbbrev returns the three letter month abbreviation, or "Unknown".
func (d Date) MonthNameAbbrev() string {
	return MonthAbbrev(d.Month())
}

// Equal reports whether both dates have the same year, month and day.
func (d Date) Equal(other Date) bool {
	return d.y == other.y && d.m == other.m && d.d == other.d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// Time returns midnight UTC on this date.
func (d Date) Time() time.Time {
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), 0, 0, 0, 0, time.UTC)
}

// AddOneMonth returns the same day in the following month, rolling December
// over into January of the next year. When the target month is shorter the
// day is clamped to its last day (January 31 becomes February 28).
// The result keeps the receiver's collaborators.
func (d Date) AddOneMonth() Date {
	year, month := d.Year(), d.Month()+1
	if month > config.MonthsPerYear {
		month = 1
		year++
	}
	day := min(d.Day(), maxDayOf(year, month))

	next := d
	next.y, next.m, next.d = year-1, month-1, day-1
	return next
}

// IsToday reports whether the date equals the injected provider's today.
// With the default wall clock a real February 29 counts as February 28, so
// February 28 reports true on a leap day.
func (d Date) IsToday() bool {
	return d.Equal(d.todayProvider().Today())
}

// WhatHolidayIsOnThisDay returns the name of the first holiday, in provider
// order, that falls on this exact date.
func (d Date) WhatHolidayIsOnThisDay() (string, bool) {
	for _, h := range d.holidayLookup().Holidays(d.Year()) {
		if h.Date.Equal(d) {
			return h.Name, true
		}
	}
	return "", false
}

// WhatHolidaysAreOnThisDay returns the names of all holidays on this exact
// date in provider order. The result is empty, never nil, when nothing matches.
func (d Date) WhatHolidaysAreOnThisDay() []string {
	names := make([]string, 0)
	for _, h := range d.holidayLookup().Holidays(d.Year()) {
		if h.Date.Equal(d) {
			names = append(names, h.Name)
		}
	}
	return names
}

// WhoseBirthdayIsIt returns the names in the birthday file at path whose
// birthday falls on this month and day, in file order. The year is ignored.
// Unreadable files and malformed lines produce no matches rather than errors.
func (d Date) WhoseBirthdayIsIt(path string) []string {
	return birthday.MatchFile(path, d.Month(), d.Day())
}

func (d Date) todayProvider() TodayProvider {
	if d.today == nil {
		return defaultToday
	}
	return d.today
}

func (d Date) holidayLookup() HolidayLookup {
	if d.holidays == nil {
		return DefaultHolidays
	}
	return d.holidays
}
