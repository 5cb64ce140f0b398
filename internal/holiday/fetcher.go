package holiday

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-datebook/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Fetcher defines the contract for retrieving a remote holiday source.
// This interface allows for mocking in tests and decoupling from the network layer.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher using the standard net/http library.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch retrieves a holiday document from a remote URL.
// It sanitizes the URL for logging purposes to avoid leaking sensitive tokens.
// It enforces a maximum response size limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Construct a safe URL for logging (stripping query parameters which might contain tokens).
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)

	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestCreate, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetworkFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close() // Ensure we don't leak resources on error.
		log.Warn(config.MsgFetchBadStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("%s: %s", config.ErrUnexpectedStatus, resp.Status)
	}

	log.Info(config.MsgFetchDone,
		slog.Int64("content_length", resp.ContentLength),
	)

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser wraps an io.Reader (Limited) and the original io.Closer.
// This ensures we can close the network connection properly while limiting the read size.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	return l.Reader.Read(p)
}

func (l *limitedReadCloser) Close() error {
	return l.Closer.Close()
}

// Open loads a holiday table from source, a local path or an http(s) URL.
// Sources ending in .yaml or .yml are read as YAML tables, anything else as
// iCalendar.
func Open(ctx context.Context, source string, fetcher Fetcher) (*Table, error) {
	start := time.Now()

	reader, err := acquireStream(ctx, source, fetcher)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrHolidaySource, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = reader.Close() }()

	// Exported calendars often start with a UTF-8 BOM.
	body := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var table *Table
	if isYAML(source) {
		table, err = LoadYAML(body)
	} else {
		table, err = LoadICS(body)
	}
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgHolidaysLoaded,
		config.LogKeyComponent, config.CompHoliday,
		config.LogKeySource, sourceForLog(source),
		config.LogKeyRules, table.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return table, nil
}

// acquireStream opens the local file or fetches the URL behind source.
func acquireStream(ctx context.Context, source string, fetcher Fetcher) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if isRemote(source) {
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, source)
	}
	return os.Open(source)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, config.SchemeHTTP+"://") ||
		strings.HasPrefix(source, config.SchemeHTTPS+"://")
}

func isYAML(source string) bool {
	ext := filepath.Ext(source)
	if isRemote(source) {
		if u, err := url.Parse(source); err == nil {
			ext = path.Ext(u.Path)
		}
	}
	switch strings.ToLower(ext) {
	case config.ExtYAML, config.ExtYML:
		return true
	}
	return false
}

// sourceForLog strips query strings from remote sources.
func sourceForLog(source string) string {
	if !isRemote(source) {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host + u.Path
}
