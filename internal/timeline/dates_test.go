package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// today is fixedNow at midnight, the end date of ongoing roles
var today = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func ym(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"January 2020", ym(2020, time.January)},
		{"Jan 2020", ym(2020, time.January)},
		{"Sept. 2019", ym(2019, time.September)},
		{"03/2018", ym(2018, time.March)},
		{"11/2021", ym(2021, time.November)},
		{"2017", ym(2017, time.January)},
		{"2019-04-10", ym(2019, time.April)},
		{"Present", today},
		{"current", today},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input, fixedNow)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, input := range []string{"", "someday", "13/2020", "1890", "2099"} {
		_, ok := ParseDate(input, fixedNow)
		assert.False(t, ok, input)
	}
}

func TestFindRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		start   time.Time
		end     time.Time
		current bool
	}{
		{"month names", "Software Engineer | Acme | Jan 2019 – Mar 2021", ym(2019, time.January), ym(2021, time.March), false},
		{"present", "June 2021 - Present", ym(2021, time.June), today, true},
		{"numeric", "05/2016 to 08/2018", ym(2016, time.May), ym(2018, time.August), false},
		{"bare years", "Acme Corp 2015-2017", ym(2015, time.January), ym(2017, time.January), false},
		{"now", "2020 — Now", ym(2020, time.January), today, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := FindRange(tt.input, fixedNow)
			require.True(t, ok)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.current, r.IsCurrent)
			assert.Equal(t, r.Raw, tt.input[r.Loc[0]:r.Loc[1]])
		})
	}
}

func TestFindRange_NoRange(t *testing.T) {
	for _, input := range []string{"Led a team of five", "Call 555-1234", "2021 - 2019"} {
		_, ok := FindRange(input, fixedNow)
		assert.False(t, ok, input)
	}
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, MonthsBetween(ym(2020, time.January), ym(2021, time.January)))
	assert.Equal(t, 26, MonthsBetween(ym(2019, time.January), ym(2021, time.March)))
	assert.Equal(t, 1, MonthsBetween(ym(2020, time.May), ym(2020, time.May)))
	assert.Equal(t, 0, MonthsBetween(ym(2021, time.May), ym(2020, time.May)))
}

func TestFindYear(t *testing.T) {
	got, ok := FindYear("B.S. Computer Science, 2014 - 2018", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 2018, got.Year())

	_, ok = FindYear("no year here", fixedNow)
	assert.False(t, ok)
}

func TestToday(t *testing.T) {
	assert.Equal(t, today, Today(fixedNow))
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), Today(time.Date(2024, time.June, 15, 22, 0, 0, 0, est)))
}
