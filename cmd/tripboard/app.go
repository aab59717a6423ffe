package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"tripboard/internal/collab"
	"tripboard/internal/config"
	"tripboard/internal/dates"
	"tripboard/internal/ics"
	"tripboard/internal/itinerary"
	appLog "tripboard/internal/log"
	"tripboard/internal/notify"
	"tripboard/internal/store"
	"tripboard/internal/web"
	"tripboard/internal/widget/alerts"
	"tripboard/internal/widget/expenses"
	"tripboard/internal/widget/packing"
)

// app is everything a command needs, wired from one config file.
type app struct {
	cfg    *config.Config
	engine *dates.Engine
	deps   web.Deps
	closer io.Closer
}

type appOptions struct {
	clock dates.Clock
	// alerts opens the alert board. Opening it against an empty store
	// generates and saves alerts, so only commands that show or serve
	// alerts ask for it, and they always attach the notifier.
	alerts bool
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	appLog.SetJSON(cfg.LogJSON)
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	if opts.clock == nil {
		opts.clock = dates.SystemClock{}
	}
	loc := dates.ResolveLocation(cfg.Timezone)
	engine := dates.NewEngine(loc, cfg.Trip.Year, opts.clock)

	p, closer, err := store.New(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", cfg.Store.Driver, cfg.Store.Path, err)
	}

	ns := cfg.Store.Namespace
	settings := expenses.Settings{
		LocalPerHome:  decimal.NewFromFloat(cfg.Trip.LocalPerHome),
		DefaultBudget: decimal.NewFromFloat(cfg.Trip.DefaultBudget),
	}

	deps := web.Deps{
		Config:    cfg,
		Engine:    engine,
		Catalogue: itinerary.Default(),
		Ledger:    expenses.Open(ctx, p, ns, engine, settings),
		Packing:   packing.Open(ctx, p, ns),
		Weather: collab.NewWeatherClient(collab.WeatherOptions{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Retries: cfg.Weather.Retries,
			Loc:     loc,
			Clock:   opts.clock,
		}),
		Rates: collab.NewRatesClient(collab.RatesOptions{
			BaseURL: cfg.Rates.BaseURL,
			Retries: cfg.Rates.Retries,
		}),
		Translator: collab.NewTranslator(collab.TranslatorOptions{
			BaseURL: cfg.Translate.BaseURL,
			APIKey:  cfg.Translate.APIKey,
		}),
	}

	if opts.alerts {
		deps.Alerts = openAlerts(ctx, cfg, p, loc, opts.clock)
	}

	return &app{cfg: cfg, engine: engine, deps: deps, closer: closer}, nil
}

func openAlerts(ctx context.Context, cfg *config.Config, p store.Port, loc *time.Location, clock dates.Clock) *alerts.Board {
	tripStart, err := cfg.TripStart(loc)
	if err != nil {
		appLog.Warn("trip start unparseable; date-based alerts disabled", "start", cfg.Trip.Start)
	}

	opts := alerts.Options{Clock: clock}
	n, err := notify.FromEnvironment(ctx, cfg.Notify.SNSTopicARN, cfg.Trip.Name)
	if err != nil {
		appLog.Error("SNS notifier disabled", err)
	} else if n != nil {
		opts.Notifier = n
	}

	rules := alerts.Rules{TripStart: tripStart, Flights: cfg.Flights, Loc: loc}
	return alerts.Open(ctx, p, cfg.Store.Namespace, rules, opts)
}

func (a *app) Close() error {
	return a.closer.Close()
}

// closeLogged is for defers: the close error is logged, not returned.
func (a *app) closeLogged() {
	if err := a.Close(); err != nil {
		appLog.Error("failed to close store", err)
	}
}

func (a *app) feeds() []ics.Feed {
	feeds := make([]ics.Feed, 0, len(a.cfg.Events))
	for _, e := range a.cfg.Events {
		if e.URL == "" {
			continue
		}
		id := e.ID
		if id == "" {
			id = e.Name
		}
		if id == "" {
			id = e.URL
		}
		feeds = append(feeds, ics.Feed{ID: id, Name: e.Name, URL: e.URL})
	}
	return feeds
}

// feedWindow covers the trip days in the trip zone, end day included.
func (a *app) feedWindow() (ics.Window, error) {
	loc := a.engine.Location()
	start, err := a.cfg.TripStart(loc)
	if err != nil {
		return ics.Window{}, err
	}
	end, err := a.cfg.TripEnd(loc)
	if err != nil {
		return ics.Window{}, err
	}
	return ics.Window{Start: start, End: end.AddDate(0, 0, 1).Add(-1), Loc: loc}, nil
}

func (a *app) cityNames() []string {
	out := make([]string, 0, len(a.cfg.Cities))
	for _, c := range a.cfg.Cities {
		out = append(out, c.Name)
	}
	return out
}

// refresh drops collaborator caches and re-reads the event feeds.
func (a *app) refresh(ctx context.Context, srv *web.Server, fetcher *ics.Fetcher) {
	a.deps.Weather.Purge()
	a.deps.Rates.Purge()
	srv.WarmWeather()

	feeds := a.feeds()
	if len(feeds) == 0 {
		return
	}
	w, err := a.feedWindow()
	if err != nil {
		appLog.Error("event feeds skipped: bad trip dates", err)
		return
	}
	evs, errs := ics.Collect(ctx, fetcher, feeds, w, a.cityNames())
	if len(errs) > 0 && len(evs) == 0 {
		appLog.Warn("no feed events collected", "errors", len(errs))
	}
	srv.SetFeedEvents(evs)
}

func feedCacheDir(cfg *config.Config) string {
	return filepath.Join(cfg.Store.Path, "feed-cache")
}
