package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tripboard/internal/collab"
	"tripboard/internal/config"
	"tripboard/internal/guide"
	"tripboard/internal/ics"
	"tripboard/internal/itinerary"
	appLog "tripboard/internal/log"
	"tripboard/internal/model"
	"tripboard/internal/widget/alerts"
	"tripboard/internal/widget/expenses"
	"tripboard/internal/widget/packing"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeWidgetError maps widget errors to a status. Anything unrecognised is
// a failed write: the change is live in memory but not on disk.
func writeWidgetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, expenses.ErrInvalidExpense), errors.Is(err, packing.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, expenses.ErrUnknownExpense), errors.Is(err, packing.ErrUnknownItem),
		errors.Is(err, alerts.ErrUnknownAlert), errors.Is(err, itinerary.ErrUnknownDay):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, packing.ErrEssential):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "change applied but could not be saved")
	}
}

type nowResponse struct {
	Now      string `json:"now"`
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
}

func (s *Server) handleNow(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nowResponse{
		Now:      s.Engine.FormatNow(),
		Date:     s.Engine.CurrentLocalDate().String(),
		Timezone: s.Engine.Location().String(),
	})
}

type daysResponse struct {
	Days        []itinerary.DayJSON `json:"days"`
	PassedCount int                 `json:"passed_count"`
	Completed   bool                `json:"completed"`
	Now         string              `json:"now"`
}

// handleDays returns the upcoming days, or every day with ?all=1.
func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	all := s.Catalogue.Days()
	v := s.Engine.Summary(all)
	days := v.Upcoming
	if r.URL.Query().Get("all") == "1" {
		days = all
	}
	writeJSON(w, http.StatusOK, daysResponse{
		Days:        itinerary.ToJSON(days),
		PassedCount: v.PassedCount,
		Completed:   v.Completed,
		Now:         v.Now,
	})
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.Catalogue.Locations(r.PathValue("id"))
	if err != nil {
		writeWidgetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

type expensesResponse struct {
	Expenses   []model.Expense                           `json:"expenses"`
	Summary    expenses.Summary                          `json:"summary"`
	ByCategory map[model.ExpenseCategory]decimal.Decimal `json:"by_category"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, expensesResponse{
		Expenses:   s.Ledger.Expenses(),
		Summary:    s.Ledger.Summary(),
		ByCategory: s.Ledger.ByCategory(),
	})
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var in expenses.NewExpense
	if !decodeJSON(w, r, &in) {
		return
	}
	e, err := s.Ledger.Add(r.Context(), in)
	if err != nil {
		writeWidgetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.Ledger.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeWidgetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type budgetBody struct {
	Budget decimal.Decimal `json:"budget"`
}

// setBudgetRequest tells a missing budget apart from an explicit zero.
type setBudgetRequest struct {
	Budget *decimal.Decimal `json:"budget"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var in setBudgetRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Budget == nil {
		writeError(w, http.StatusBadRequest, "budget is required")
		return
	}
	b, err := s.Ledger.SetBudget(r.Context(), *in.Budget)
	if err != nil {
		writeWidgetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetBody{Budget: b})
}

type packingResponse struct {
	Items      []model.PackingItem        `json:"items"`
	Progress   packing.Progress           `json:"progress"`
	Categories []packing.CategoryProgress `json:"categories"`
}

func (s *Server) handlePacking(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, packingResponse{
		Items:      s.Packing.Items(),
		Progress:   s.Packing.Progress(),
		Categories: s.Packing.ByCategory(),
	})
}

type newPackingItem struct {
	Name     string                `json:"name"`
	Category model.PackingCategory `json:"category"`
}

func (s *Server) handleAddPacking(w http.ResponseWriter, r *http.Request) {
	var in newPackingItem
	if !decodeJSON(w, r, &in) {
		return
	}
	it, err := s.Packing.Add(r.Context(), in.Name, in.Category)
	if err != nil {
		writeWidgetError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleTogglePacking(w http.ResponseWriter, r *http.Request) {
	it, err := s.Packing.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeWidgetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeletePacking(w http.ResponseWriter, r *http.Request) {
	if err := s.Packing.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeWidgetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAlerts returns active alerts, or all of them with ?all=1.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	list := s.Alerts.Active()
	if r.URL.Query().Get("all") == "1" {
		list = s.Alerts.All()
	}
	if list == nil {
		list = []model.Alert{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := s.Alerts.Dismiss(r.Context(), r.PathValue("id")); err != nil {
		writeWidgetError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cityParam resolves ?city=, defaulting to the first configured city.
func (s *Server) cityParam(r *http.Request) (collab.City, bool) {
	name := strings.TrimSpace(r.URL.Query().Get("city"))
	var c config.CityConfig
	var ok bool
	if name == "" {
		ok = len(s.Config.Cities) > 0
		if ok {
			c = s.Config.Cities[0]
		}
	} else {
		c, ok = s.Config.City(name)
	}
	return collab.City{Name: c.Name, Lat: c.Lat, Lng: c.Lng}, ok
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city, ok := s.cityParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown city")
		return
	}
	if s.Weather == nil {
		writeError(w, http.StatusServiceUnavailable, "Weather data unavailable")
		return
	}
	cur, err := s.Weather.Current(r.Context(), city)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Weather data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	city, ok := s.cityParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown city")
		return
	}
	if s.Weather == nil {
		writeError(w, http.StatusServiceUnavailable, "Weather forecast unavailable for "+city.Name)
		return
	}
	slots, err := s.Weather.Forecast(r.Context(), city)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Weather forecast unavailable for "+city.Name)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

type rateResponse struct {
	Rate      decimal.Decimal  `json:"rate"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Direction collab.Direction `json:"direction,omitempty"`
	Result    *decimal.Decimal `json:"result,omitempty"`
}

// handleRate returns the GBP→PLN rate. With ?amount= it also converts, in
// ?direction= (default gbp-pln).
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	if s.Rates == nil {
		writeError(w, http.StatusServiceUnavailable, "Exchange rates unavailable")
		return
	}
	rate, err := s.Rates.Rate(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Exchange rates unavailable")
		return
	}
	resp := rateResponse{Rate: rate}

	q := r.URL.Query()
	if raw := q.Get("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount")
			return
		}
		dir := collab.Direction(q.Get("direction"))
		if dir == "" {
			dir = collab.HomeToLocal
		}
		out, err := collab.Convert(amount, rate, dir)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Amount, resp.Direction, resp.Result = &amount, dir, &out
	}
	writeJSON(w, http.StatusOK, resp)
}

type translateBody struct {
	Text string      `json:"text"`
	From collab.Lang `json:"from"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var in translateBody
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.From == "" {
		in.From = collab.English
	}
	if !in.From.Valid() {
		writeError(w, http.StatusBadRequest, "from must be en or pl")
		return
	}
	if s.Translator == nil {
		writeJSON(w, http.StatusOK, collab.Translation{Text: in.Text, From: in.From, To: in.From.Other(), Source: collab.SourceEcho})
		return
	}
	writeJSON(w, http.StatusOK, s.Translator.Translate(r.Context(), in.Text, in.From))
}

func (s *Server) handlePhrases(w http.ResponseWriter, r *http.Request) {
	cat := guide.PhraseCategory(r.URL.Query().Get("category"))
	if cat == "all" {
		cat = ""
	}
	writeJSON(w, http.StatusOK, guide.Phrases(cat))
}

func (s *Server) handleContacts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, guide.Contacts())
}

func (s *Server) handlePhotoSpots(w http.ResponseWriter, r *http.Request) {
	groups := guide.PhotoSpots(r.URL.Query().Get("city"))
	if groups == nil {
		groups = []guide.PhotoSpotGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handlePhotoLocations(w http.ResponseWriter, r *http.Request) {
	locs := guide.PhotoLocations(r.URL.Query().Get("city"))
	if locs == nil {
		locs = []model.Location{}
	}
	writeJSON(w, http.StatusOK, locs)
}

type eventsResponse struct {
	Events         []guide.Event `json:"events"`
	FeedsUpdatedAt *time.Time    `json:"feeds_updated_at,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := guide.EventFilter{Category: q.Get("category"), City: q.Get("city")}
	resp := eventsResponse{Events: f.Filter(s.events())}

	s.feedMu.RLock()
	if !s.feedAt.IsZero() {
		at := s.feedAt
		resp.FeedsUpdatedAt = &at
	}
	s.feedMu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleICS(w http.ResponseWriter, _ *http.Request) {
	body := ics.Export(s.Catalogue.Days(), s.Config.Flights, s.Engine, s.Config.Trip.Name)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
	_, _ = w.Write([]byte(body))
}
