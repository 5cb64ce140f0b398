// Package birthday matches a month and day against birthday lists.
//
// Two formats are read: plain text with one "name,YYYY-MM-DD" record per line,
// and vCard files (.vcf, .vcard) using the FN and BDAY properties. Both are
// treated as user supplied data: unreadable files, malformed lines and
// unparsable dates never fail a lookup, they only produce fewer matches.
package birthday

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-datebook/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one parsed birthday entry.
type Record struct {
	Name  string
	Year  int
	Month int
	Day   int
}

// Matches reports whether the birthday falls on month/day. The year is ignored.
func (r Record) Matches(month, day int) bool {
	return r.Month == month && r.Day == day
}

// ParseLine splits line on its first comma into a name and an ISO 8601 date.
func ParseLine(line string) (Record, error) {
	name, value, ok := strings.Cut(line, config.BirthdayFieldSeparator)
	if !ok {
		return Record{}, errors.New(config.ErrLineSeparator)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, errors.New(config.ErrLineEmptyName)
	}

	t, err := time.Parse(config.DateFormatISO, strings.TrimSpace(value))
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return Record{Name: name, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// Scan reads "name,date" lines from r and returns the names born on
// month/day, in input order. The result is never nil.
// Lines longer than config.MaxBirthdayLineSize are skipped like any other
// malformed line.
func Scan(r io.Reader, month, day int) []string {
	names := make([]string, 0)
	reader := bufio.NewReader(stripBOM(r))

	lineNo := 0
	for {
		line, ok, err := readLine(reader)
		if err != nil {
			// A read error ends the scan; what was matched so far is still returned.
			if !errors.Is(err, io.EOF) {
				slog.Warn(config.ErrBirthdayFileRead,
					config.LogKeyComponent, config.CompBirthday,
					config.LogKeyLine, lineNo,
					config.LogKeyError, err)
			}
			return names
		}
		lineNo++

		if !ok {
			slog.Debug(config.MsgSkippedLine,
				config.LogKeyComponent, config.CompBirthday,
				config.LogKeyLine, lineNo,
				config.LogKeyError, config.ErrLineTooLong)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			slog.Debug(config.MsgSkippedLine,
				config.LogKeyComponent, config.CompBirthday,
				config.LogKeyLine, lineNo,
				config.LogKeyError, err)
			continue
		}

		if rec.Matches(month, day) {
			names = append(names, rec.Name)
		}
	}
}

// readLine returns the next line without its end-of-line marker. A line over
// config.MaxBirthdayLineSize is consumed entirely and reported with ok false.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	var buf []byte
	tooLong := false
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(frag) > config.MaxBirthdayLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", false, nil
	}
	return string(buf), true, nil
}

// MatchFile opens path and returns the names born on month/day.
// Files ending in .vcf or .vcard are decoded as vCard, anything else as
// "name,date" lines. A missing or unreadable file yields an empty result.
func MatchFile(path string, month, day int) []string {
	f, err := os.Open(path)
	if err != nil {
		slog.Debug(config.MsgBirthdayNoFile,
			config.LogKeyComponent, config.CompBirthday,
			config.LogKeyFile, path,
			config.LogKeyError, err)
		return make([]string, 0)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err != nil || !info.Mode().IsRegular() {
		slog.Debug(config.MsgBirthdayNoFile,
			config.LogKeyComponent, config.CompBirthday,
			config.LogKeyFile, path,
			config.LogKeyError, config.ErrBirthdayNotFile)
		return make([]string, 0)
	}

	var names []string
	if isVCard(path) {
		names = ScanVCard(f, month, day)
	} else {
		names = Scan(f, month, day)
	}

	for _, name := range names {
		slog.Debug(config.MsgBirthdayMatch,
			config.LogKeyComponent, config.CompBirthday,
			config.LogKeyFile, path,
			config.LogKeyName, name)
	}
	return names
}

func isVCard(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtVCF, config.ExtVCard:
		return true
	}
	return false
}

// stripBOM decodes r as UTF-8, dropping a leading byte order mark.
func stripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
