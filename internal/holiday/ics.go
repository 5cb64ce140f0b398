package holiday

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-datebook/internal/calendar"
	"github.com/tartampluch/go-datebook/internal/config"
)

// LoadICS builds a table from the VEVENTs of an iCalendar stream.
//
// SUMMARY names the holiday and DTSTART dates it. Events with an RRULE
// recur from their DTSTART, others are single-day holidays. Events missing
// either property, or carrying a date or rule that cannot be parsed, are
// skipped so that one bad entry in a public feed does not discard the rest.
func LoadICS(r io.Reader) (*Table, error) {
	decoder := ical.NewDecoder(r)
	var rules []Rule

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrICalParse, err)
		}

		for _, event := range cal.Events() {
			rule, err := ruleFromEvent(event)
			if err != nil {
				slog.Warn(config.MsgSkippedEvent,
					config.LogKeyComponent, config.CompHoliday,
					config.LogKeyError, err)
				continue
			}
			rules = append(rules, rule)
		}
	}
	return NewTable(rules...), nil
}

func ruleFromEvent(event ical.Event) (Rule, error) {
	name, err := event.Props.Text(config.PropSummary)
	if err != nil {
		return Rule{}, err
	}
	if name == "" {
		return Rule{}, errors.New(config.ErrHolidayNoName)
	}

	dtStart := event.Props.Get(config.PropDTStart)
	if dtStart == nil {
		return Rule{}, errors.New(config.ErrHolidayNoDate)
	}
	start, err := parseICalDate(dtStart.Value)
	if err != nil {
		return Rule{}, err
	}

	if rruleProp := event.Props.Get(config.PropRRule); rruleProp != nil {
		return Recurring(name, rruleProp.Value, start)
	}
	return OneOff(name, start.Year(), int(start.Month()), start.Day()), nil
}

// parseICalDate accepts DATE and DATE-TIME values. Only the calendar date
// matters for holidays, so any time zone is ignored.
func parseICalDate(value string) (time.Time, error) {
	formats := []string{
		config.ICalFormatDate,
		config.ICalFormatDateTimeUTC,
		config.ICalFormatDateTimeLocal,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}

// Encode writes holidays as an iCalendar document with one all-day event per
// holiday. UIDs are derived from name and date so that re-encoding the same
// data yields stable identifiers.
func Encode(w io.Writer, holidays []calendar.Holiday, now time.Time) error {
	if len(holidays) == 0 {
		// Use the constant stub to ensure a valid VCALENDAR is returned even if empty.
		_, err := io.WriteString(w, config.StubVCalendar)
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, h := range holidays {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(h))
		event.Props.SetText(config.PropSummary, h.Name)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(h.Date.Time())
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

func eventUID(h calendar.Holiday) string {
	input := fmt.Sprintf(config.FormatHashInput, h.Name, h.Date.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
