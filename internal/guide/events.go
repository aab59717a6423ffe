package guide

import (
	"sort"
	"strings"
)

// Event is something happening in town during the trip.
type Event struct {
	Name        string `json:"name"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
	Location    string `json:"location"`
	City        string `json:"city"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Website     string `json:"website,omitempty"`
	Featured    bool   `json:"featured"`
	// Feed names the calendar subscription the event came from; empty for
	// built-in events.
	Feed string `json:"feed,omitempty"`
}

// EventCategories lists the event categories in display order.
var EventCategories = []string{"music", "art", "film", "food", "tour", "market"}

var events = []Event{
	{Name: "Kraków Film Festival", Date: "2025-09-07", Time: "19:00", Location: "Kino Pod Baranami", City: "Kraków", Description: "International documentary and short film festival showcasing European cinema", Category: "film", Price: "25-45 PLN", Website: "https://www.krakowfilmfestival.pl", Featured: true},
	{Name: "Jazz Autumn Festival", Date: "2025-09-12", Time: "20:30", Location: "Piec Art Jazz Club", City: "Kraków", Description: "Evening of contemporary jazz featuring Polish and international artists", Category: "music", Price: "60-80 PLN", Featured: true},
	{Name: "Old Town Walking Tour", Date: "2025-09-10", Time: "14:00", Location: "Main Market Square", City: "Kraków", Description: "Free walking tour of medieval Kraków with local historian guides", Category: "tour", Price: "Free (tips appreciated)"},
	{Name: "Kazimierz Food Festival", Date: "2025-09-11", Time: "12:00", Location: "Plac Nowy", City: "Kraków", Description: "Traditional Polish and Jewish cuisine tasting event", Category: "food", Price: "15-30 PLN per dish"},
	{Name: "Wrocław Contemporary Art Biennale", Date: "2025-09-13", Time: "18:00", Location: "National Museum", City: "Wrocław", Description: "Opening night of contemporary art exhibition featuring Central European artists", Category: "art", Price: "20-35 PLN", Website: "https://www.mnwr.art.pl", Featured: true},
	{Name: "Nadodrze Street Art Tour", Date: "2025-09-14", Time: "11:00", Location: "Nadodrze District", City: "Wrocław", Description: "Guided tour of large-scale murals and urban art installations", Category: "tour", Price: "40 PLN", Featured: true},
	{Name: "Sunday Market at Hala Targowa", Date: "2025-09-14", Time: "08:00", Location: "Hala Targowa", City: "Wrocław", Description: "Local farmers market with fresh produce, crafts, and regional specialties", Category: "market", Price: "Free entry"},
	{Name: "Ostrów Tumski Evening Concert", Date: "2025-09-14", Time: "19:30", Location: "Cathedral of St. John", City: "Wrocław", Description: "Classical organ concert in the historic cathedral setting", Category: "music", Price: "30-50 PLN"},
}

// Events returns the built-in events in their curated order.
func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// EventFilter selects events. Empty fields and "all" match everything.
type EventFilter struct {
	Category string
	City     string
}

func matches(want, got string) bool {
	return want == "" || strings.EqualFold(want, "all") || strings.EqualFold(want, got)
}

// Filter keeps the events matching f, preserving order.
func (f EventFilter) Filter(in []Event) []Event {
	out := make([]Event, 0, len(in))
	for _, e := range in {
		if matches(f.Category, e.Category) && matches(f.City, e.City) {
			out = append(out, e)
		}
	}
	return out
}

// Merge appends feed events after the built-in ones, dropping feed events
// that duplicate an existing name on the same date. Feed events are sorted
// by date and time.
func Merge(builtin, feed []Event) []Event {
	seen := make(map[string]bool, len(builtin))
	for _, e := range builtin {
		seen[e.Date+"|"+strings.ToLower(e.Name)] = true
	}

	extra := make([]Event, 0, len(feed))
	for _, e := range feed {
		k := e.Date + "|" + strings.ToLower(e.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		extra = append(extra, e)
	}
	sort.SliceStable(extra, func(i, j int) bool {
		if extra[i].Date != extra[j].Date {
			return extra[i].Date < extra[j].Date
		}
		return extra[i].Time < extra[j].Time
	})

	out := make([]Event, 0, len(builtin)+len(extra))
	out = append(out, builtin...)
	return append(out, extra...)
}
