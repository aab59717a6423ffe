package dates

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLog "tripboard/internal/log"
	"tripboard/internal/model"
)

func warsaw(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	return loc
}

func tripDays() []model.Day {
	labels := []string{
		"Tuesday, September 9th",
		"Wednesday, September 10th",
		"Thursday, September 11th",
		"Friday, September 12th",
		"Saturday, September 13th",
		"Sunday, September 14th",
		"Monday, September 15th",
	}
	days := make([]model.Day, len(labels))
	for i, l := range labels {
		days[i] = model.Day{ID: "day" + string(rune('1'+i)), Date: l}
	}
	return days
}

func ids(days []model.Day) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.ID
	}
	return out
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Date
	}{
		{"Tuesday, September 9th", Date{2025, time.September, 9}},
		{"Monday, September 15th", Date{2025, time.September, 15}},
		{"saturday, SEPTEMBER 13th", Date{2025, time.September, 13}},
		{"Friday, August 1st", Date{2025, time.August, 1}},
		{"Wednesday, December 31st", Date{2025, time.December, 31}},
		{"Day 2: March 22nd", Date{2025, time.March, 2}},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.label, 2025)
		require.NoError(t, err, "label: %s", tt.label)
		assert.Equal(t, tt.want, got, "label: %s", tt.label)
	}
}

func TestParseLabel_YearIsConfiguration(t *testing.T) {
	e := NewEngine(time.UTC, 2031, nil)
	got, err := e.ParseLabel("Tuesday, September 9th")
	require.NoError(t, err)
	assert.Equal(t, Date{2031, time.September, 9}, got)
}

func TestParseLabel_Errors(t *testing.T) {
	bad := []string{
		"",
		"Tuesday",
		"Tuesday, 9th",
		"Tuesday, September",
		"September 31st",
		"Mayday, September 9th and October 2nd",
	}
	for _, label := range bad {
		_, err := ParseLabel(label, 2025)
		require.Error(t, err, "label: %q", label)
		assert.True(t, errors.Is(err, ErrParse), "label: %q", label)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
		assert.Equal(t, label, pe.Label)
	}
}

func TestCurrentLocalDate_UsesTripZone(t *testing.T) {
	// 23:30 UTC on Sep 10 is already Sep 11 in Warsaw (UTC+2).
	clock := FixedClock(time.Date(2025, 9, 10, 23, 30, 0, 0, time.UTC))
	e := NewEngine(warsaw(t), 2025, clock)
	assert.Equal(t, Date{2025, time.September, 11}, e.CurrentLocalDate())

	host := NewEngine(time.UTC, 2025, clock)
	assert.Equal(t, Date{2025, time.September, 10}, host.CurrentLocalDate())
}

func TestIsPast(t *testing.T) {
	loc := warsaw(t)
	e := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 11, 0, 5, 0, 0, loc)))

	assert.True(t, e.IsPast("Tuesday, September 9th"))
	assert.True(t, e.IsPast("Wednesday, September 10th"))
	assert.False(t, e.IsPast("Thursday, September 11th"), "today is not past")
	assert.False(t, e.IsPast("Friday, September 12th"))
}

func TestIsPast_FailsOpenAndLogs(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)

	e := NewEngine(time.UTC, 2025, FixedClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.IsPast("Someday soon"))
	assert.Contains(t, buf.String(), "unparseable")
}

func TestIsPast_MonotonicInClock(t *testing.T) {
	loc := warsaw(t)
	label := "Wednesday, September 10th"
	start := time.Date(2025, 9, 8, 12, 0, 0, 0, loc)

	seenPast := false
	for h := 0; h < 24*6; h++ {
		e := NewEngine(loc, 2025, FixedClock(start.Add(time.Duration(h)*time.Hour)))
		past := e.IsPast(label)
		if seenPast {
			assert.True(t, past, "hour offset %d", h)
		}
		seenPast = seenPast || past
	}
	assert.True(t, seenPast)
}

func TestFilterUpcoming_Scenario(t *testing.T) {
	loc := warsaw(t)
	e := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 11, 9, 0, 0, 0, loc)))

	got := e.FilterUpcoming(tripDays())
	assert.Equal(t, []string{"day3", "day4", "day5", "day6", "day7"}, ids(got))
}

func TestFilterUpcoming_OrderAndIdempotence(t *testing.T) {
	loc := warsaw(t)
	e := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 13, 9, 0, 0, 0, loc)))

	days := tripDays()
	// Shuffle order and add an unparseable day; both must survive as-is.
	mixed := []model.Day{days[6], {ID: "tbd", Date: "To be decided"}, days[0], days[4], days[5]}

	once := e.FilterUpcoming(mixed)
	assert.Equal(t, []string{"day7", "tbd", "day5", "day6"}, ids(once))
	assert.Equal(t, ids(once), ids(e.FilterUpcoming(once)))
}

func TestSummary(t *testing.T) {
	loc := warsaw(t)
	days := tripDays()

	during := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 11, 14, 30, 0, 0, loc))).Summary(days)
	assert.Equal(t, 2, during.PassedCount)
	assert.False(t, during.Completed)
	assert.Equal(t, "Thursday, September 11, 2025 at 02:30 PM CEST", during.Now)

	after := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 16, 8, 0, 0, 0, loc))).Summary(days)
	assert.Equal(t, 7, after.PassedCount)
	assert.True(t, after.Completed)
	assert.Empty(t, after.Upcoming)
}

func TestStatuses(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)

	loc := warsaw(t)
	e := NewEngine(loc, 2025, FixedClock(time.Date(2025, 9, 11, 23, 59, 0, 0, loc)))
	days := append(tripDays()[1:4], model.Day{ID: "tbd", Date: "To be decided"})

	assert.Equal(t, []DayStatus{StatusPast, StatusToday, StatusUpcoming, StatusUpcoming}, e.Statuses(days))
	assert.Equal(t, 1, strings.Count(buf.String(), "keeping day visible"))
}

func TestResolveLocation(t *testing.T) {
	assert.Equal(t, "Europe/Warsaw", ResolveLocation("Europe/Warsaw").String())
	assert.Equal(t, time.Local, ResolveLocation(""))
	assert.Equal(t, time.Local, ResolveLocation("Not/AZone"))
}

func TestDateHelpers(t *testing.T) {
	d := Date{2025, time.September, 9}
	assert.Equal(t, "2025-09-09", d.String())
	assert.True(t, d.Before(Date{2025, time.September, 10}))
	assert.True(t, d.Before(Date{2026, time.January, 1}))
	assert.False(t, d.Before(d))
	assert.True(t, d.Equal(DateOf(time.Date(2025, 9, 9, 23, 59, 0, 0, time.UTC))))
}
