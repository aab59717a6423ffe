// Package dates decides which itinerary days are already over, as seen from
// a single named timezone rather than the host's.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	appLog "tripboard/internal/log"
	"tripboard/internal/model"
)

// DefaultTimezone is the zone the trip happens in.
const DefaultTimezone = "Europe/Warsaw"

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("date label unparseable")

// ParseError reports a day label that carries no usable month or day.
type ParseError struct {
	Label  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date label %q: %s", e.Label, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) Equal(o Date) bool { return d == o }

// Midnight returns the start of d in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock abstracts the current instant so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Engine computes day visibility for one trip year in one timezone.
type Engine struct {
	loc   *time.Location
	year  int
	clock Clock
}

// NewEngine constructs an Engine. A nil loc means the host zone and a nil
// clock means SystemClock.
func NewEngine(loc *time.Location, year int, clock Clock) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{loc: loc, year: year, clock: clock}
}

func (e *Engine) Location() *time.Location { return e.loc }
func (e *Engine) Year() int                { return e.year }
func (e *Engine) Now() time.Time           { return e.clock.Now().In(e.loc) }

// ResolveLocation loads an IANA zone. Only when zone data is unavailable
// does it fall back to the host zone, logging the failure.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

// CurrentLocalDate returns today's date as observed in the engine's zone.
func (e *Engine) CurrentLocalDate() Date {
	return DateOf(e.clock.Now().In(e.loc))
}

var (
	monthPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	dayPattern   = regexp.MustCompile(`\d{1,2}`)
)

// ParseLabel turns "Tuesday, September 9th" into a Date in the engine's year.
func (e *Engine) ParseLabel(label string) (Date, error) {
	return ParseLabel(label, e.year)
}

// ParseLabel extracts one month name and the first one- or two-digit day
// from label and combines them with year.
func ParseLabel(label string, year int) (Date, error) {
	months := monthPattern.FindAllString(label, -1)
	if len(months) == 0 {
		return Date{}, &ParseError{Label: label, Reason: "no month name"}
	}
	month := monthByName(months[0])
	for _, m := range months[1:] {
		if monthByName(m) != month {
			return Date{}, &ParseError{Label: label, Reason: "more than one month name"}
		}
	}

	digits := dayPattern.FindString(label)
	if digits == "" {
		return Date{}, &ParseError{Label: label, Reason: "no day of month"}
	}
	day, err := strconv.Atoi(digits)
	if err != nil {
		return Date{}, &ParseError{Label: label, Reason: err.Error()}
	}
	if day < 1 || day > daysIn(month, year) {
		return Date{}, &ParseError{Label: label, Reason: fmt.Sprintf("day %d out of range for %s", day, month)}
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

func monthByName(name string) time.Month {
	name = strings.ToLower(name)
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m
		}
	}
	return 0
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsPast reports whether the labelled day lies strictly before today.
// An unparseable label is never past: content stays visible.
func (e *Engine) IsPast(label string) bool {
	return e.isPastOn(label, e.CurrentLocalDate())
}

// FilterUpcoming returns the days that are not past, in their original order.
func (e *Engine) FilterUpcoming(days []model.Day) []model.Day {
	today := e.CurrentLocalDate()
	out := make([]model.Day, 0, len(days))
	for _, day := range days {
		if e.isPastOn(day.Date, today) {
			continue
		}
		out = append(out, day)
	}
	return out
}

// isPastOn pins "today" so one filtering pass cannot straddle midnight.
func (e *Engine) isPastOn(label string, today Date) bool {
	return e.statusOn(label, today) == StatusPast
}

// DayStatus places a day relative to today.
type DayStatus int

const (
	StatusUpcoming DayStatus = iota
	StatusToday
	StatusPast
)

// Statuses classifies days against a single reading of today. Each label is
// parsed once; unparseable labels count as upcoming.
func (e *Engine) Statuses(days []model.Day) []DayStatus {
	today := e.CurrentLocalDate()
	out := make([]DayStatus, len(days))
	for i, day := range days {
		out[i] = e.statusOn(day.Date, today)
	}
	return out
}

func (e *Engine) statusOn(label string, today Date) DayStatus {
	d, err := e.ParseLabel(label)
	if err != nil {
		appLog.Error("itinerary date label unparseable; keeping day visible", err, "label", label)
		return StatusUpcoming
	}
	switch {
	case d.Before(today):
		return StatusPast
	case d.Equal(today):
		return StatusToday
	default:
		return StatusUpcoming
	}
}

// NowLayout renders like "Thursday, September 11, 2025 at 02:30 PM CEST".
const NowLayout = "Monday, January 2, 2006 at 03:04 PM MST"

// FormatNow renders the current instant in the engine's zone.
func (e *Engine) FormatNow() string {
	return e.Now().Format(NowLayout)
}

// Visibility is what the page header needs to know about the schedule.
type Visibility struct {
	Upcoming    []model.Day
	PassedCount int
	Completed   bool
	Now         string
}

func (e *Engine) Summary(days []model.Day) Visibility {
	upcoming := e.FilterUpcoming(days)
	return Visibility{
		Upcoming:    upcoming,
		PassedCount: len(days) - len(upcoming),
		Completed:   len(days) > 0 && len(upcoming) == 0,
		Now:         e.FormatNow(),
	}
}
