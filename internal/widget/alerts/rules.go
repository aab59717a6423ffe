package alerts

import (
	"fmt"
	"math"
	"time"

	appLog "tripboard/internal/log"
	"tripboard/internal/model"
)

// CheckInWindow is how long before departure online check-in opens.
const CheckInWindow = 24 * time.Hour

// Rules are the trip facts the alert pass is evaluated against.
type Rules struct {
	// TripStart is midnight of the first trip day in Loc.
	TripStart time.Time
	Flights   []model.Flight
	Loc       *time.Location
}

// daysUntil rounds the remaining time up to whole days, so anything later
// today counts as 1 and anything already passed as 0 or less.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// Evaluate runs every rule once against now. Rules emit at most one alert
// each; the result is in rule order.
func (r Rules) Evaluate(now time.Time) []model.Alert {
	loc := r.Loc
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	var out []model.Alert
	add := func(id string, typ model.AlertType, urgency model.Urgency, title, message string) {
		out = append(out, model.Alert{
			ID:      id,
			Type:    typ,
			Title:   title,
			Message: message,
			Urgency: urgency,
			Date:    now,
		})
	}

	for _, f := range r.Flights {
		dep, err := f.Departure(loc)
		if err != nil {
			appLog.Error("flight departure unparseable; skipping check-in rule", err, "flight", f.Number)
			continue
		}
		days := daysUntil(dep.Add(-CheckInWindow), now)
		if days < 0 || days > 2 {
			continue
		}
		urgency := model.UrgencyMedium
		if days == 0 {
			urgency = model.UrgencyHigh
		}
		add("checkin-"+f.Number, model.AlertFlight, urgency,
			"Check-in Available: "+f.Number,
			fmt.Sprintf("Online check-in opens 24h before departure. Flight %s on %s.", f.Number, f.Date))
	}

	daysToTrip := daysUntil(r.TripStart, now)

	if daysToTrip > 0 && daysToTrip <= 7 {
		urgency := model.UrgencyLow
		if daysToTrip <= 3 {
			urgency = model.UrgencyMedium
		}
		add("packing-reminder", model.AlertBooking, urgency,
			"Start Packing Reminder",
			fmt.Sprintf("Your trip to Poland starts in %d days. Time to start checking your packing list!", daysToTrip))
		add("currency-reminder", model.AlertBooking, model.UrgencyLow,
			"Currency Exchange",
			"Consider getting some Polish zloty before your trip, though cards are widely accepted.")
		add("reservations-reminder", model.AlertBooking, model.UrgencyMedium,
			"Restaurant Reservations",
			"Make reservations for Miodova Restaurant and Karakter - both require advance booking.")
	}

	if daysToTrip >= 0 && daysToTrip <= 5 {
		add("weather-check", model.AlertWeather, model.UrgencyLow,
			"Check Weather Forecast",
			"September weather can be unpredictable. Pack layers and a light rain jacket.")
	}

	if daysToTrip > 0 && daysToTrip <= 14 {
		urgency := model.UrgencyLow
		if daysToTrip <= 7 {
			urgency = model.UrgencyMedium
		}
		add("train-booking", model.AlertTransport, urgency,
			"Book Train Tickets",
			"Book your PKP InterCity train from Kraków to Wrocław (Sep 13) in advance for better prices.")
	}

	return out
}
