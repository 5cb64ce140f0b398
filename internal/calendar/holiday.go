package calendar

// Holiday is a named date produced by a HolidayLookup for one year.
type Holiday struct {
	Date Date
	Name string
}

// HolidayLookup supplies the holidays of a year, in a stable order.
// A nil or empty result means the year has no holidays.
type HolidayLookup interface {
	Holidays(year int) []Holiday
}

// HolidayFunc adapts an ordinary function to HolidayLookup.
type HolidayFunc func(year int) []Holiday

// Holidays calls f(year).
func (f HolidayFunc) Holidays(year int) []Holiday {
	return f(year)
}

// AnnualHoliday is a holiday observed on the same month and day every year.
type AnnualHoliday struct {
	Month int
	Day   int
	Name  string
}

// FixedHolidays is a HolidayLookup made of annual, fixed-date holidays.
// Entries whose month/day is invalid under MaxDay are ignored.
type FixedHolidays []AnnualHoliday

// Holidays returns the entries for year in table order.
func (f FixedHolidays) Holidays(year int) []Holiday {
	out := make([]Holiday, 0, len(f))
	for _, h := range f {
		if !validMonth(h.Month) || h.Day < 1 || h.Day > maxDayOf(year, h.Month) {
			continue
		}
		out = append(out, Holiday{Date: newDate(year, h.Month, h.Day), Name: h.Name})
	}
	return out
}

// DefaultHolidays is used by dates constructed without WithHolidays.
var DefaultHolidays HolidayLookup = FixedHolidays{
	{Month: 1, Day: 1, Name: "New Year's Day"},
	{Month: 12, Day: 25, Name: "Christmas Day"},
	{Month: 12, Day: 31, Name: "New Year's Eve"},
}
