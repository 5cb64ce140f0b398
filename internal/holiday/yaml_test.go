package holiday_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datebook/internal/config"
	"github.com/tartampluch/go-datebook/internal/holiday"
)

const sampleTable = `
holidays:
  - name: New Year's Day
    date: "01-01"
  - name: Thanksgiving
    rrule: FREQ=YEARLY;BYMONTH=11;BYDAY=4TH
  - name: Founders Day
    date: "2021-09-17"
  - name: Anniversary
    date: "2015-06-20"
    rrule: FREQ=YEARLY;INTERVAL=5
`

func TestLoadYAML(t *testing.T) {
	table, err := holiday.LoadYAML(strings.NewReader(sampleTable))
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	assert.Equal(t, []string{
		"New Year's Day 2020-01-01",
		"Thanksgiving 2020-11-26",
		"Anniversary 2020-06-20",
	}, dates(table.Holidays(2020)))

	assert.Equal(t, []string{
		"New Year's Day 2021-01-01",
		"Thanksgiving 2021-11-25",
		"Founders Day 2021-09-17",
	}, dates(table.Holidays(2021)))
}

func TestLoadYAML_Empty(t *testing.T) {
	table, err := holiday.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Holidays(2020))
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown field",
			doc:     "holidays:\n  - name: X\n    day: \"01-01\"\n",
			wantErr: config.ErrYAMLParse,
		},
		{
			name:    "not yaml",
			doc:     "holidays: [",
			wantErr: config.ErrYAMLParse,
		},
		{
			name:    "missing name",
			doc:     "holidays:\n  - date: \"01-01\"\n",
			wantErr: config.ErrHolidayNoName,
		},
		{
			name:    "missing date and rrule",
			doc:     "holidays:\n  - name: X\n",
			wantErr: config.ErrHolidayNoDate,
		},
		{
			name:    "bad date",
			doc:     "holidays:\n  - name: X\n    date: \"13-45\"\n",
			wantErr: config.ErrDateParse,
		},
		{
			name:    "bad rrule",
			doc:     "holidays:\n  - name: X\n    rrule: FREQ=SOMETIMES\n",
			wantErr: config.ErrRRuleParse,
		},
		{
			name:    "bad rrule anchor",
			doc:     "holidays:\n  - name: X\n    date: \"12-25\"\n    rrule: FREQ=YEARLY\n",
			wantErr: config.ErrDateParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := holiday.LoadYAML(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadYAML_LeapDayRuleLoadsButNeverMatches(t *testing.T) {
	table, err := holiday.LoadYAML(strings.NewReader("holidays:\n  - name: Leap\n    date: \"02-29\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, table.Len())
	assert.Empty(t, table.Holidays(2024))
}
