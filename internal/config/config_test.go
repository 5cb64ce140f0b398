package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-datebook/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"UnknownMonth", config.UnknownMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestCalendarRules_Sanity pins the calendar constants the date type depends on.
func TestCalendarRules_Sanity(t *testing.T) {
	assert.Less(t, config.MinYear, 0, "negative years must be representable")
	assert.Equal(t, -config.MinYear, config.MaxYear, "year range is symmetric")
	assert.Equal(t, 12, config.MonthsPerYear)
	assert.Equal(t, 28, config.DaysFebruary, "February never has a leap day")
	assert.Greater(t, config.DaysLongMonth, config.DaysShortMonth)
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Datebook/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.DefaultICalRefresh, time.Duration(0), "Feed refresh interval must be positive")

	// Holiday tables are small text documents.
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.LessOrEqual(t, int64(config.MaxHTTPResponseSize), int64(64*1024*1024), "MaxHTTPResponseSize should stay small to protect RAM")
	assert.GreaterOrEqual(t, config.MaxBirthdayLineSize, 4*1024, "MaxBirthdayLineSize must fit any real name and date")
}
