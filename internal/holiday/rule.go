// Package holiday loads holiday definitions from YAML tables and iCalendar
// files or feeds, and exposes them as a calendar.HolidayLookup.
//
// A Table keeps its rules in source order. For a given year every rule
// contributes zero or more holidays: fixed rules their single date, recurring
// rules (RRULE) every occurrence inside the year. Dates that do not exist
// under the calendar rules, such as February 29, are silently dropped.
package holiday

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-datebook/internal/calendar"
	"github.com/tartampluch/go-datebook/internal/config"
	"github.com/teambition/rrule-go"
)

// Rule describes how one holiday falls in a year.
type Rule struct {
	Name string

	// Fixed rules: Month and Day, observed every year unless Year is set.
	Month int
	Day   int
	Year  int

	// Recurring rules. When anchored is false the recurrence starts on
	// January 1 of each queried year.
	recurrence *rrule.ROption
	anchored   bool
}

// Fixed returns a rule observed on month/day every year.
func Fixed(name string, month, day int) Rule {
	return Rule{Name: name, Month: month, Day: day}
}

// OneOff returns a rule observed on a single date.
func OneOff(name string, year, month, day int) Rule {
	return Rule{Name: name, Year: year, Month: month, Day: day}
}

// Recurring returns a rule following an RFC 5545 RRULE value such as
// "FREQ=YEARLY;BYMONTH=11;BYDAY=+4TH". A zero start anchors the recurrence
// on January 1 of every queried year, which suits BYMONTH/BYDAY style rules.
func Recurring(name, rule string, start time.Time) (Rule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return Rule{}, fmt.Errorf("%s %q: %w", config.ErrRRuleParse, rule, err)
	}
	anchored := !start.IsZero()
	if anchored {
		opt.Dtstart = start
	}
	// Validate once so that queries cannot fail later.
	if _, err := rrule.NewRRule(*opt); err != nil {
		return Rule{}, fmt.Errorf("%s %q: %w", config.ErrRRuleParse, rule, err)
	}
	return Rule{Name: name, recurrence: opt, anchored: anchored}, nil
}

// IsRecurring reports whether the rule is driven by an RRULE.
func (r Rule) IsRecurring() bool {
	return r.recurrence != nil
}

// occurrences returns the holidays the rule produces in year.
func (r Rule) occurrences(year int) []calendar.Holiday {
	if r.recurrence != nil {
		return r.recurrences(year)
	}
	if r.Year != 0 && r.Year != year {
		return nil
	}
	d, err := calendar.New(year, r.Month, r.Day)
	if err != nil {
		slog.Debug(config.MsgSkippedRule,
			config.LogKeyComponent, config.CompHoliday,
			config.LogKeyName, r.Name,
			config.LogKeyYear, year,
			config.LogKeyError, err)
		return nil
	}
	return []calendar.Holiday{{Date: d, Name: r.Name}}
}

func (r Rule) recurrences(year int) []calendar.Holiday {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	opt := *r.recurrence
	if !r.anchored {
		opt.Dtstart = start
	} else {
		// Keep the comparison window in the rule's own location.
		loc := opt.Dtstart.Location()
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
	}

	rr, err := rrule.NewRRule(opt)
	if err != nil {
		// Unreachable for rules built by Recurring.
		return nil
	}

	var out []calendar.Holiday
	for _, t := range rr.Between(start, end, true) {
		d, err := calendar.New(t.Year(), int(t.Month()), t.Day())
		if err != nil {
			slog.Debug(config.MsgSkippedRule,
				config.LogKeyComponent, config.CompHoliday,
				config.LogKeyName, r.Name,
				config.LogKeyYear, year,
				config.LogKeyError, err)
			continue
		}
		out = append(out, calendar.Holiday{Date: d, Name: r.Name})
	}
	return out
}

// Table is an ordered set of holiday rules. It implements calendar.HolidayLookup.
type Table struct {
	rules []Rule
}

// NewTable returns a table holding rules in the given order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the table's rules.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Holidays returns the holidays of year in rule order.
func (t *Table) Holidays(year int) []calendar.Holiday {
	out := make([]calendar.Holiday, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r.occurrences(year)...)
	}
	return out
}
