package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/tartampluch/go-datebook/internal/calendar"
	"github.com/tartampluch/go-datebook/internal/config"
	"github.com/tartampluch/go-datebook/internal/holiday"
	"github.com/tartampluch/go-datebook/internal/server"
)

// options holds the parsed command line.
type options struct {
	date      string
	birthdays string
	holidays  string
	serveAddr string
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.date, config.FlagDate, "", config.FlagDescDate)
	flag.StringVar(&opts.birthdays, config.FlagBirthdays, "", config.FlagDescBirthdays)
	flag.StringVar(&opts.holidays, config.FlagHolidays, "", config.FlagDescHolidays)
	flag.StringVar(&opts.serveAddr, config.FlagServe, "", config.FlagDescServe)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx, os.Stdout, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the holiday source, prints the report and optionally serves the feed.
func run(ctx context.Context, out io.Writer, opts options) error {
	lookup := calendar.DefaultHolidays
	if opts.holidays != "" {
		table, err := holiday.Open(ctx, opts.holidays, holiday.NewHTTPFetcher())
		if err != nil {
			return err
		}
		lookup = table
	}

	d, err := resolveDate(opts.date, calendar.WithHolidays(lookup))
	if err != nil {
		return err
	}

	if err := writeReport(out, d, opts.birthdays); err != nil {
		return err
	}

	if opts.serveAddr == "" {
		return nil
	}
	return serveFeed(ctx, opts.serveAddr, lookup, d.Year())
}

// resolveDate parses value, or falls back to today's date when it is empty.
func resolveDate(value string, opts ...calendar.Option) (calendar.Date, error) {
	if value == "" {
		return calendar.FromTime(time.Now(), opts...), nil
	}
	return calendar.Parse(value, opts...)
}

// writeReport prints everything known about d.
func writeReport(w io.Writer, d calendar.Date, birthdaysPath string) error {
	var b strings.Builder
	fmt.Fprintf(&b, config.ReportDate, d)
	fmt.Fprintf(&b, config.ReportMonth, d.MonthName(), d.MonthNameAbbrev())
	fmt.Fprintf(&b, config.ReportToday, d.IsToday())
	fmt.Fprintf(&b, config.ReportNext, d.AddOneMonth())
	fmt.Fprintf(&b, config.ReportHolidays, joinOrNone(d.WhatHolidaysAreOnThisDay()))
	if birthdaysPath != "" {
		fmt.Fprintf(&b, config.ReportBirthdays, joinOrNone(d.WhoseBirthdayIsIt(birthdaysPath)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return config.ReportNone
	}
	return strings.Join(names, config.ReportListSep)
}

// serveFeed publishes the holidays of year until ctx is cancelled.
func serveFeed(ctx context.Context, addr string, lookup calendar.HolidayLookup, year int) error {
	holidays := lookup.Holidays(year)

	var buf bytes.Buffer
	if err := holiday.Encode(&buf, holidays, time.Now()); err != nil {
		return err
	}
	slog.Info(config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyYear, year,
		config.LogKeyCount, len(holidays),
	)

	srv := server.NewFeedServer(addr)
	srv.Update(buf.Bytes())
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Logs go to stderr so that stdout only carries the report.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
