package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"tripboard/internal/auth"
	"tripboard/internal/collab"
	"tripboard/internal/config"
	"tripboard/internal/dates"
	"tripboard/internal/guide"
	"tripboard/internal/itinerary"
	appLog "tripboard/internal/log"
	"tripboard/internal/widget/alerts"
	"tripboard/internal/widget/expenses"
	"tripboard/internal/widget/packing"
)

// Deps are the pieces the server renders and mutates. All of them are
// required except the collaborator clients, which degrade to "unavailable".
type Deps struct {
	Config     *config.Config
	Engine     *dates.Engine
	Catalogue  *itinerary.Catalogue
	Ledger     *expenses.Ledger
	Packing    *packing.List
	Alerts     *alerts.Board
	Weather    *collab.WeatherClient
	Rates      *collab.RatesClient
	Translator *collab.Translator
}

// Server serves the trip page and its JSON API.
type Server struct {
	Deps
	mux  *http.ServeMux
	auth auth.Credentials

	// Events pulled from calendar feeds by the refresh job.
	feedMu     sync.RWMutex
	feedEvents []guide.Event
	feedAt     time.Time

	// Background weather warm-up started by the page.
	warmMu   sync.Mutex
	warming  bool
	warmedAt time.Time
}

// NewServer constructs a new Server.
func NewServer(d Deps) *Server {
	s := &Server{Deps: d, mux: http.NewServeMux()}
	if ba := d.Config.BasicAuth; ba != nil {
		s.auth = auth.Credentials{Username: ba.Username, Password: ba.Password, PasswordHash: ba.PasswordHash}
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.auth.Enabled() {
		appLog.Info("HTTP basic auth enabled", "user", s.auth.Username, "hashed", s.auth.PasswordHash != "")
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || !s.auth.Check(u, p) {
			if ok {
				appLog.Warn("failed auth attempt", "remote", r.RemoteAddr, "user", u)
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="tripboard", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetFeedEvents replaces the events collected from calendar feeds.
func (s *Server) SetFeedEvents(evs []guide.Event) {
	s.feedMu.Lock()
	s.feedEvents = evs
	s.feedAt = time.Now()
	s.feedMu.Unlock()
}

func (s *Server) events() []guide.Event {
	s.feedMu.RLock()
	feed := s.feedEvents
	s.feedMu.RUnlock()
	return guide.Merge(guide.Events(), feed)
}

// Serve listens on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.Config.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	appLog.Info("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /itinerary.ics", s.handleICS)

	s.mux.HandleFunc("GET /api/now", s.handleNow)
	s.mux.HandleFunc("GET /api/days", s.handleDays)
	s.mux.HandleFunc("GET /api/days/{id}/locations", s.handleLocations)

	s.mux.HandleFunc("GET /api/expenses", s.handleExpenses)
	s.mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	s.mux.HandleFunc("PUT /api/budget", s.handleSetBudget)

	s.mux.HandleFunc("GET /api/packing", s.handlePacking)
	s.mux.HandleFunc("POST /api/packing", s.handleAddPacking)
	s.mux.HandleFunc("POST /api/packing/{id}/toggle", s.handleTogglePacking)
	s.mux.HandleFunc("DELETE /api/packing/{id}", s.handleDeletePacking)

	s.mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	s.mux.HandleFunc("POST /api/alerts/{id}/dismiss", s.handleDismissAlert)

	s.mux.HandleFunc("GET /api/weather", s.handleWeather)
	s.mux.HandleFunc("GET /api/forecast", s.handleForecast)
	s.mux.HandleFunc("GET /api/rate", s.handleRate)
	s.mux.HandleFunc("POST /api/translate", s.handleTranslate)

	s.mux.HandleFunc("GET /api/phrases", s.handlePhrases)
	s.mux.HandleFunc("GET /api/contacts", s.handleContacts)
	s.mux.HandleFunc("GET /api/photo-spots", s.handlePhotoSpots)
	s.mux.HandleFunc("GET /api/photo-spots/locations", s.handlePhotoLocations)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
