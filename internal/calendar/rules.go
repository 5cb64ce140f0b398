package calendar

import (
	"fmt"

	"github.com/tartampluch/go-datebook/internal/config"
)

// The display tables below are not the Gregorian ones. Month 6 is named
// "August", month 7 "September", and months 8 and 9 have no name at all.

var monthNames = [config.MonthsPerYear]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"August",
	"September",
	config.UnknownMonth,
	config.UnknownMonth,
	"October",
	"November",
	"December",
}

var monthAbbrevs = [config.MonthsPerYear]string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Aug",
	"Sep",
	config.UnknownMonth,
	config.UnknownMonth,
	"Oct",
	"Nov",
	"Dec",
}

// validMonth reports whether month is in 1..12.
func validMonth(month int) bool {
	return month >= 1 && month <= config.MonthsPerYear
}

// MaxDay returns the last valid day of month in year.
// February always has 28 days; leap years are not recognized.
// The year is accepted for symmetry with callers but does not affect the result.
func MaxDay(year, month int) (int, error) {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return config.DaysLongMonth, nil
	case 4, 6, 9, 11:
		return config.DaysShortMonth, nil
	case 2:
		return config.DaysFebruary, nil
	default:
		return 0, fmt.Errorf("%w: month %d (year %d)", ErrInvalidArgument, month, year)
	}
}

// MonthName returns the display name of month, or "Unknown".
func MonthName(month int) string {
	if !validMonth(month) {
		return config.UnknownMonth
	}
	return monthNames[month-1]
}

// MonthAbbrev returns the three letter abbreviation of month, or "Unknown".
func MonthAbbrev(month int) string {
	if !validMonth(month) {
		return config.UnknownMonth
	}
	return monthAbbrevs[month-1]
}

// maxDayOf is MaxDay for a month already known to be valid.
func maxDayOf(year, month int) int {
	n, _ := MaxDay(year, month)
	return n
}
