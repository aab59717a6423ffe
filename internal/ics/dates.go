package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"
)

// TripDates returns local midnight of every calendar day from start to end,
// both included.
func TripDates(start, end time.Time) ([]time.Time, error) {
	if end.Before(start) {
		return nil, errors.New("trip ends before it starts")
	}
	loc := start.Location()
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := end.In(loc)
	last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first,
		Until:   last,
	})
	if err != nil {
		return nil, err
	}
	return r.All(), nil
}
