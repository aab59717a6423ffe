package ics

import (
	"context"
	"strings"
	"time"

	"tripboard/internal/guide"
	appLog "tripboard/internal/log"
)

// Window is the part of the calendar feeds are read for.
type Window struct {
	Start time.Time
	End   time.Time
	Loc   *time.Location
}

// Collect fetches, parses and expands every feed into guide events that
// fall inside w. Feeds that fail entirely are reported in the error slice;
// the rest still contribute.
func Collect(ctx context.Context, f *Fetcher, feeds []Feed, w Window, cities []string) ([]guide.Event, []error) {
	results, errs := f.FetchAll(ctx, feeds)

	var parsed []ParsedEvent
	for _, res := range results {
		evs, err := ParseICS(res.Feed, res.Body, w.Loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		parsed = append(parsed, evs...)
	}

	expanded, err := ExpandOccurrences(parsed, ExpandConfig{
		DisplayLocation: w.Loc,
		RangeStart:      w.Start,
		RangeEnd:        w.End,
	})
	if err != nil {
		return nil, append(errs, err)
	}

	out := ToGuideEvents(expanded.Occurrences, cities)
	appLog.Info("event feeds collected", "feeds", len(feeds), "events", len(out), "errors", len(errs))
	return out, errs
}

// ToGuideEvents converts occurrences to guide events. The city is the first
// of cities named in the event location, and the category the first feed
// category the guide knows.
func ToGuideEvents(occs []Occurrence, cities []string) []guide.Event {
	out := make([]guide.Event, 0, len(occs))
	for _, o := range occs {
		e := guide.Event{
			Name:        o.Summary,
			Date:        o.Start.Format("2006-01-02"),
			Location:    o.Location,
			City:        cityOf(o.Location, cities),
			Description: o.Description,
			Category:    categoryOf(o.Categories),
			Website:     o.URL,
			Feed:        o.Feed.Name,
		}
		if !o.AllDay {
			e.Time = o.Start.Format("15:04")
		}
		if e.Feed == "" {
			e.Feed = o.Feed.ID
		}
		out = append(out, e)
	}
	return out
}

func cityOf(location string, cities []string) string {
	l := strings.ToLower(location)
	for _, c := range cities {
		if c != "" && strings.Contains(l, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

func categoryOf(cats []string) string {
	for _, c := range cats {
		for _, known := range guide.EventCategories {
			if c == known {
				return c
			}
		}
	}
	return ""
}
