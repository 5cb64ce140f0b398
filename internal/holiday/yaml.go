package holiday

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tartampluch/go-datebook/internal/config"
	"gopkg.in/yaml.v3"
)

// tableFile is the YAML layout of a holiday table:
//
//	holidays:
//	  - name: Christmas Day
//	    date: "12-25"
//	  - name: Founders Day
//	    date: "2021-09-17"
//	  - name: Thanksgiving
//	    rrule: FREQ=YEARLY;BYMONTH=11;BYDAY=+4TH
type tableFile struct {
	Holidays []tableEntry `yaml:"holidays"`
}

type tableEntry struct {
	Name string `yaml:"name"`
	// Date is "MM-DD" for an annual holiday or "YYYY-MM-DD" for a single
	// day. With RRule set, a full date anchors the recurrence.
	Date  string `yaml:"date"`
	RRule string `yaml:"rrule"`
}

// LoadYAML reads a holiday table document. Unknown fields are rejected and
// any invalid entry fails the whole load. An empty document is an empty table.
func LoadYAML(r io.Reader) (*Table, error) {
	var doc tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", config.ErrYAMLParse, err)
	}

	rules := make([]Rule, 0, len(doc.Holidays))
	for i, e := range doc.Holidays {
		rule, err := e.rule()
		if err != nil {
			return nil, fmt.Errorf("%s #%d (%q): %w", config.ErrHolidayRule, i+1, e.Name, err)
		}
		rules = append(rules, rule)
	}
	return NewTable(rules...), nil
}

func (e tableEntry) rule() (Rule, error) {
	if e.Name == "" {
		return Rule{}, errors.New(config.ErrHolidayNoName)
	}

	if e.RRule != "" {
		var start time.Time
		if e.Date != "" {
			t, err := time.Parse(config.DateFormatISO, e.Date)
			if err != nil {
				return Rule{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
			}
			start = t
		}
		return Recurring(e.Name, e.RRule, start)
	}

	if e.Date == "" {
		return Rule{}, errors.New(config.ErrHolidayNoDate)
	}
	if t, err := time.Parse(config.DateFormatISO, e.Date); err == nil {
		return OneOff(e.Name, t.Year(), int(t.Month()), t.Day()), nil
	}
	// Month-day values parse in a leap year so that "02-29" is accepted;
	// such a rule simply never produces a holiday.
	t, err := time.Parse(config.DateFormatISO, fmt.Sprintf("%04d-%s", config.DefaultLeapYear, e.Date))
	if err != nil {
		return Rule{}, fmt.Errorf("%s %q: %w", config.ErrDateParse, e.Date, err)
	}
	return Fixed(e.Name, int(t.Month()), t.Day()), nil
}
