package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Datebook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Datebook"
	AppID       = "com.github.tartampluch.go-datebook"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagDate          = "date"
	FlagBirthdays     = "birthdays"
	FlagHolidays      = "holidays"
	FlagServe         = "serve"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stderr"
	FlagDescDate      = "Date to report on (YYYY-MM-DD), defaults to today"
	FlagDescBirthdays = "Birthday file (name,YYYY-MM-DD lines or .vcf)"
	FlagDescHolidays  = "Holiday source: .yaml/.yml table, .ics file or http(s) URL"
	FlagDescServe     = "Serve this year's holidays as an iCalendar feed on ADDR (e.g. 127.0.0.1:18080)"
	MsgVersionOutput  = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar Rules
// -----------------------------------------------------------------------------

const (
	// Year bounds accepted by the public constructor.
	// Years at or below -10000 are rejected.
	MinYear = -9999
	MaxYear = 9999

	MonthsPerYear = 12

	// Day limits per month class. February never has a 29th.
	DaysLongMonth  = 31
	DaysShortMonth = 30
	DaysFebruary   = 28

	// UnknownMonth is returned for months without a name in the display tables.
	UnknownMonth = "Unknown"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Datebook//Holidays//EN"
	ICalCalName = "Holidays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godatebook"

	// iCal/vCard Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRRule      = "RRULE"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// ISO 8601 calendar date, used by birthday files and the CLI.
	DateFormatISO = "2006-01-02"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// DTSTART layouts accepted in iCalendar holiday sources
	ICalFormatDate          = "20060102"
	ICalFormatDateTimeUTC   = "20060102T150405Z"
	ICalFormatDateTimeLocal = "20060102T150405"

	// Leap year used to parse month-day values so that "02-29" still parses.
	DefaultLeapYear = 2000

	// BirthdayFieldSeparator splits "name,date" lines.
	BirthdayFieldSeparator = ","

	// UID Generation
	UIDSalt         = "go-datebook-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtYAML  = ".yaml"
	ExtYML   = ".yml"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	MaxBirthdayLineSize = 64 * 1024        // longer lines are skipped
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrOutOfRange       = "argument out of range"
	ErrInvalidArgument  = "invalid argument"
	ErrSourceEmpty      = "configuration error: holiday source is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrAddrRequired     = "server address is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrICalParse        = "failed to parse iCalendar stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrYAMLParse        = "failed to parse holiday table"
	ErrHolidayRule      = "invalid holiday rule"
	ErrHolidayNoDate    = "holiday rule needs a date or an rrule"
	ErrHolidayNoName    = "holiday rule needs a name"
	ErrRRuleParse       = "unable to parse recurrence rule"
	ErrDateParse        = "unable to parse date"
	ErrHolidaySource    = "failed to load holiday source"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrBirthdayFileRead = "birthday file read interrupted"
	ErrLineSeparator    = "missing name/date separator"
	ErrLineEmptyName    = "empty name"
	ErrLineTooLong      = "line too long"
	ErrBirthdayNotFile  = "birthday path is not a regular file"
	ErrRequestCreate    = "failed to create request"
	ErrNetworkFetch     = "network error during fetch"
	ErrUnexpectedStatus = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Messages & Report Output
// -----------------------------------------------------------------------------

const (
	MsgAppStop        = "Application stopped gracefully"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSkippedLine    = "Skipping malformed birthday line"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedEvent   = "Skipping holiday event without summary or start date"
	MsgSkippedRule    = "Skipping holiday rule date not valid this year"
	MsgBirthdayNoFile = "Birthday file unavailable, no matches"
	MsgBirthdayMatch  = "Birthday matched"
	MsgHolidaysLoaded = "Holiday source loaded"
	MsgFetchStart     = "Initiating holiday download"
	MsgFetchDone      = "Holiday feed downloading"
	MsgFetchBadStatus = "Server returned error status"
	MsgFeedGenerated  = "Holiday feed generated"
	MsgTodayClamped   = "Leap day mapped to February 28"
	MsgCtxCancel      = "Context cancelled, shutting down"

	ReportDate      = "Date:       %s\n"
	ReportMonth     = "Month:      %s (%s)\n"
	ReportToday     = "Today:      %t\n"
	ReportNext      = "Next month: %s\n"
	ReportHolidays  = "Holidays:   %s\n"
	ReportBirthdays = "Birthdays:  %s\n"
	ReportNone      = "-"
	ReportListSep   = ", "
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeySource    = "source"
	LogKeyAddr      = "addr"
	LogKeyLine      = "line"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyDate      = "date"
	LogKeyYear      = "year"
	LogKeyCount     = "count"
	LogKeyRules     = "rules"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCalendar = "calendar"
	CompBirthday = "birthday"
	CompHoliday  = "holiday"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
)
