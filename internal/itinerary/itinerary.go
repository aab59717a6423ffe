// Package itinerary holds the static day-by-day schedule and renders its
// content blocks.
package itinerary

import (
	"errors"

	"tripboard/internal/model"
)

// ErrUnknownDay is returned by ByID.
var ErrUnknownDay = errors.New("unknown itinerary day")

// Catalogue is a read-only, ordered list of days.
type Catalogue struct {
	days  []model.Day
	index map[string]int
}

// New builds a catalogue over days. Later duplicates of an id are ignored
// by ByID but still listed.
func New(days []model.Day) *Catalogue {
	c := &Catalogue{days: days, index: make(map[string]int, len(days))}
	for i, d := range days {
		if _, ok := c.index[d.ID]; !ok {
			c.index[d.ID] = i
		}
	}
	return c
}

// Default returns the built-in Kraków and Wrocław week.
func Default() *Catalogue {
	return New(schedule)
}

// Days returns the days in calendar order.
func (c *Catalogue) Days() []model.Day {
	out := make([]model.Day, len(c.days))
	copy(out, c.days)
	return out
}

func (c *Catalogue) ByID(id string) (model.Day, error) {
	i, ok := c.index[id]
	if !ok {
		return model.Day{}, ErrUnknownDay
	}
	return c.days[i], nil
}

// Locations returns the map points of one day.
func (c *Catalogue) Locations(id string) ([]model.Location, error) {
	d, err := c.ByID(id)
	if err != nil {
		return nil, err
	}
	if d.Locations == nil {
		return []model.Location{}, nil
	}
	return d.Locations, nil
}
