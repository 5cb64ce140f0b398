package calendar_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datebook/internal/calendar"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// stubHolidays records the years it was asked for.
type stubHolidays struct {
	holidays []calendar.Holiday
	years    []int
}

func (s *stubHolidays) Holidays(year int) []calendar.Holiday {
	s.years = append(s.years, year)
	return s.holidays
}

func TestIsToday(t *testing.T) {
	today := calendar.FixedToday{Date: mustDate(t, 2020, 12, 3)}

	tests := []struct {
		name             string
		year, month, day int
		want             bool
	}{
		{"same date", 2020, 12, 3, true},
		{"other year", 2019, 12, 3, false},
		{"other month", 2020, 11, 3, false},
		{"other day", 2020, 12, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDate(t, tt.year, tt.month, tt.day, calendar.WithToday(today))
			assert.Equal(t, tt.want, d.IsToday())
		})
	}
}

func TestIsToday_ClockBacked(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	provider := calendar.ClockToday{Clock: clock}

	assert.True(t, mustDate(t, 2025, 1, 1, calendar.WithToday(provider)).IsToday())
	assert.False(t, mustDate(t, 2025, 1, 2, calendar.WithToday(provider)).IsToday())
}

func TestIsToday_LeapDayCountsAsFebruary28(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)}
	provider := calendar.ClockToday{Clock: clock}

	assert.True(t, mustDate(t, 2024, 2, 28, calendar.WithToday(provider)).IsToday())
	assert.False(t, mustDate(t, 2024, 3, 1, calendar.WithToday(provider)).IsToday())
}

func TestIsToday_DefaultProviderUsesWallClock(t *testing.T) {
	before := calendar.ClockToday{Clock: calendar.RealClock{}}.Today()
	got := mustDate(t, before.Year(), before.Month(), before.Day()).IsToday()
	after := calendar.ClockToday{}.Today()

	// Only meaningful when the test did not run across midnight.
	if before.Equal(after) {
		assert.True(t, got)
	}
}

func TestAddOneMonth_KeepsCollaborators(t *testing.T) {
	today := calendar.FixedToday{Date: mustDate(t, 2020, 2, 15)}
	d := mustDate(t, 2020, 1, 15, calendar.WithToday(today))

	assert.False(t, d.IsToday())
	assert.True(t, d.AddOneMonth().IsToday())
}

func TestWhatHolidayIsOnThisDay(t *testing.T) {
	lookup := &stubHolidays{holidays: []calendar.Holiday{
		{Date: mustDate(t, 2020, 12, 25), Name: "Christmas Day"},
		{Date: mustDate(t, 2020, 12, 25), Name: "Second Name"},
		{Date: mustDate(t, 2019, 12, 26), Name: "Wrong Year"},
		{Date: mustDate(t, 2020, 1, 1), Name: "New Year's Day"},
	}}

	name, ok := mustDate(t, 2020, 12, 25, calendar.WithHolidays(lookup)).WhatHolidayIsOnThisDay()
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", name, "first match in provider order wins")
	assert.Equal(t, []int{2020}, lookup.years, "provider is queried for the date's year")

	_, ok = mustDate(t, 2020, 12, 26, calendar.WithHolidays(lookup)).WhatHolidayIsOnThisDay()
	assert.False(t, ok, "holiday dates must match the year too")
}

func TestWhatHolidaysAreOnThisDay(t *testing.T) {
	lookup := &stubHolidays{holidays: []calendar.Holiday{
		{Date: mustDate(t, 2020, 12, 25), Name: "Christmas Day"},
		{Date: mustDate(t, 2020, 1, 1), Name: "New Year's Day"},
		{Date: mustDate(t, 2020, 12, 25), Name: "Second Name"},
	}}

	names := mustDate(t, 2020, 12, 25, calendar.WithHolidays(lookup)).WhatHolidaysAreOnThisDay()
	assert.Equal(t, []string{"Christmas Day", "Second Name"}, names)
}

func TestHolidayQueries_NoData(t *testing.T) {
	tests := []struct {
		name   string
		lookup calendar.HolidayLookup
	}{
		{"empty collection", calendar.HolidayFunc(func(int) []calendar.Holiday { return []calendar.Holiday{} })},
		{"absent collection", calendar.HolidayFunc(func(int) []calendar.Holiday { return nil })},
		{"empty table", calendar.FixedHolidays{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDate(t, 2020, 1, 1, calendar.WithHolidays(tt.lookup))

			names := d.WhatHolidaysAreOnThisDay()
			assert.NotNil(t, names)
			assert.Empty(t, names)

			name, ok := d.WhatHolidayIsOnThisDay()
			assert.False(t, ok)
			assert.Empty(t, name)
		})
	}
}

func TestDefaultHolidays(t *testing.T) {
	name, ok := mustDate(t, 2020, 12, 25).WhatHolidayIsOnThisDay()
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", name)

	assert.Equal(t, []string{"New Year's Day"}, mustDate(t, 1999, 1, 1).WhatHolidaysAreOnThisDay())
	assert.Empty(t, mustDate(t, 2020, 7, 14).WhatHolidaysAreOnThisDay())
}

func TestFixedHolidays_SkipsImpossibleDates(t *testing.T) {
	table := calendar.FixedHolidays{
		{Month: 2, Day: 29, Name: "Leap Day"},
		{Month: 13, Day: 1, Name: "Thirteenth Month"},
		{Month: 4, Day: 31, Name: "April 31"},
		{Month: 3, Day: 17, Name: "St Patrick's Day"},
	}

	holidays := table.Holidays(2024)
	require.Len(t, holidays, 1)
	assert.Equal(t, "St Patrick's Day", holidays[0].Name)
	assert.Equal(t, "2024-03-17", holidays[0].Date.String())
}

func writeBirthdays(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))
	return path
}

func TestWhoseBirthdayIsIt(t *testing.T) {
	path := writeBirthdays(t,
		"John,1990-12-03",
		"InvalidLineWithoutComma",
		"Alice,NotADate",
		"Bob,2025-12-03",
	)

	names := mustDate(t, 2020, 12, 3).WhoseBirthdayIsIt(path)
	assert.Equal(t, []string{"John", "Bob"}, names)

	assert.Empty(t, mustDate(t, 2020, 12, 4).WhoseBirthdayIsIt(path))
}

func TestWhoseBirthdayIsIt_MissingFile(t *testing.T) {
	names := mustDate(t, 2020, 12, 3).WhoseBirthdayIsIt(filepath.Join(t.TempDir(), "nope.txt"))
	assert.NotNil(t, names)
	assert.Empty(t, names)
}
