package birthday

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-datebook/internal/config"
)

// ScanVCard decodes vCards from r and returns the names whose BDAY falls on
// month/day, in input order. Cards without a usable BDAY are skipped.
func ScanVCard(r io.Reader, month, day int) []string {
	names := make([]string, 0)
	src := &stickyReader{r: r}
	decoder := vcard.NewDecoder(stripBOM(src))

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			if src.err != nil {
				// The source itself failed; retrying would return the same error.
				slog.Warn(config.ErrBirthdayFileRead,
					config.LogKeyComponent, config.CompBirthday,
					config.LogKeyError, src.err)
				break
			}
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompBirthday,
				config.LogKeyError, err)
			continue
		}

		rec, ok := recordFromCard(card)
		if !ok {
			continue
		}
		if rec.Matches(month, day) {
			names = append(names, rec.Name)
		}
	}
	return names
}

// stickyReader remembers the first non-EOF error of r, so that read failures
// can be told apart from vCard syntax errors.
type stickyReader struct {
	r   io.Reader
	err error
}

func (s *stickyReader) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return n, err
}

// recordFromCard extracts the display name and birthday of card.
// Name Strategy: FN (Formatted) > N (Structured).
func recordFromCard(card vcard.Card) (Record, bool) {
	bday := card.Get(config.VCardBDAY)
	if bday == nil || bday.Value == "" {
		return Record{}, false
	}

	t, err := parseVCardDate(bday.Value)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompBirthday,
			config.LogKeyValue, bday.Value)
		return Record{}, false
	}

	var name string
	if fn := card.Get(config.VCardFN); fn != nil {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil {
		name = n.Value
	}
	if name == "" {
		return Record{}, false
	}

	return Record{Name: name, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
}

// parseVCardDate handles the BDAY layouts found in the wild, with and
// without a year. Year-less values are placed in a leap year so that
// --02-29 parses.
func parseVCardDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
