package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"tripboard/internal/collab"
	"tripboard/internal/guide"
	"tripboard/internal/itinerary"
	appLog "tripboard/internal/log"
	"tripboard/internal/model"
	"tripboard/internal/widget/expenses"
	"tripboard/internal/widget/packing"
)

//go:embed templates/index.html
var templateFS embed.FS

const (
	weatherWarmTimeout  = 30 * time.Second
	weatherWarmInterval = time.Minute
)

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
}).ParseFS(templateFS, "templates/index.html"))

type dayView struct {
	ID       string
	Title    string
	Subtitle string
	Date     string
	Body     template.HTML
}

type weatherView struct {
	City       string
	Conditions collab.Conditions
	// Pending means no answer is cached yet; the browser asks /api/weather.
	Pending bool
	// Unavailable replaces Conditions when the service cannot answer.
	Unavailable bool
}

type pageData struct {
	Trip        string
	Now         string
	Days        []dayView
	PassedCount int
	Completed   bool
	Alerts      []model.Alert
	Expenses    expenses.Summary
	Packing     packing.Progress
	Weather     []weatherView
	PhotoSpots  []guide.PhotoSpotGroup
	PhotoTip    string
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	v := s.Engine.Summary(s.Catalogue.Days())

	data := pageData{
		Trip:        s.Config.Trip.Name,
		Now:         v.Now,
		PassedCount: v.PassedCount,
		Completed:   v.Completed,
		Alerts:      s.Alerts.Active(),
		Expenses:    s.Ledger.Summary(),
		Packing:     s.Packing.Progress(),
		Weather:     s.weatherViews(),
		PhotoSpots:  guide.PhotoSpots(""),
		PhotoTip:    guide.PhotoTip,
	}
	for _, d := range v.Upcoming {
		data.Days = append(data.Days, dayView{
			ID:       d.ID,
			Title:    d.Title,
			Subtitle: d.Subtitle,
			Date:     d.Date,
			Body:     itinerary.RenderDayHTML(d),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		appLog.Error("page render failed", err)
	}
}

// weatherViews only reads what is cached. Missing cities start a
// background warm-up so the page never waits on the weather service.
func (s *Server) weatherViews() []weatherView {
	out := make([]weatherView, 0, len(s.Config.Cities))
	missing := false
	for _, c := range s.Config.Cities {
		wv := weatherView{City: c.Name, Unavailable: true}
		if s.Weather != nil && s.Weather.Configured() {
			if cur, ok := s.Weather.Cached(collab.City{Name: c.Name, Lat: c.Lat, Lng: c.Lng}); ok {
				wv.Conditions, wv.Unavailable = cur, false
			} else {
				wv.Pending, wv.Unavailable = true, false
				missing = true
			}
		}
		out = append(out, wv)
	}
	if missing {
		s.WarmWeather()
	}
	return out
}

// WarmWeather fetches current conditions for every configured city in the
// background. At most one warm-up runs at a time, and a new one starts no
// sooner than weatherWarmInterval after the previous one.
func (s *Server) WarmWeather() {
	if s.Weather == nil || !s.Weather.Configured() {
		return
	}
	s.warmMu.Lock()
	if s.warming || (!s.warmedAt.IsZero() && time.Since(s.warmedAt) < weatherWarmInterval) {
		s.warmMu.Unlock()
		return
	}
	s.warming = true
	s.warmMu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), weatherWarmTimeout)
		defer cancel()
		for _, c := range s.Config.Cities {
			_, _ = s.Weather.Current(ctx, collab.City{Name: c.Name, Lat: c.Lat, Lng: c.Lng})
		}
		s.warmMu.Lock()
		s.warming = false
		s.warmedAt = time.Now()
		s.warmMu.Unlock()
	}()
}

// warmIdle reports whether no warm-up is running.
func (s *Server) warmIdle() bool {
	s.warmMu.Lock()
	defer s.warmMu.Unlock()
	return !s.warming
}
