package ics

import (
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"

	"tripboard/internal/dates"
	"tripboard/internal/itinerary"
	appLog "tripboard/internal/log"
	"tripboard/internal/model"
)

// checkInTrigger fires the flight alarm when online check-in opens.
const checkInTrigger = "-PT24H"

// Export renders the itinerary and flights as an iCalendar document. Days
// whose label does not parse are left out; so are flights without a valid
// departure.
func Export(days []model.Day, flights []model.Flight, engine *dates.Engine, name string) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tripboard//itinerary//EN")
	if name != "" {
		cal.SetName(name)
		cal.SetXWRCalName(name)
	}
	cal.SetXWRTimezone(engine.Location().String())

	stamp := engine.Now()

	for _, d := range days {
		date, err := engine.ParseLabel(d.Date)
		if err != nil {
			appLog.Warn("export: day skipped", "day", d.ID, "label", d.Date)
			continue
		}
		start := date.Midnight(engine.Location())

		ev := cal.AddEvent(d.ID + "@tripboard")
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ev.SetSummary(strings.TrimSpace(d.Title + ": " + d.Subtitle))
		ev.SetDescription(dayDescription(d))
		if len(d.Locations) > 0 {
			first := d.Locations[0]
			ev.SetLocation(first.Name)
			ev.SetGeo(first.Lat, first.Lng)
		}
	}

	for _, f := range flights {
		dep, err := f.Departure(engine.Location())
		if err != nil {
			appLog.Warn("export: flight skipped", "flight", f.Number, "date", f.Date)
			continue
		}
		ev := cal.AddEvent("flight-" + f.Number + "-" + f.Date + "@tripboard")
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(dep)
		ev.SetEndAt(dep)
		ev.SetSummary(fmt.Sprintf("Flight %s %s to %s", f.Number, f.From, f.To))
		ev.SetLocation(f.From)
		ev.AddCategory("FLIGHT")

		alarm := ev.AddAlarm()
		alarm.SetAction(ical.ActionDisplay)
		alarm.SetTrigger(checkInTrigger)
		alarm.SetProperty(ical.ComponentPropertyDescription, "Online check-in opens for "+f.Number)
	}

	return cal.Serialize()
}

func dayDescription(d model.Day) string {
	lines := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if s := strings.TrimSpace(itinerary.PlainText(b)); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}
