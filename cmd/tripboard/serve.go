package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"tripboard/internal/ics"
	appLog "tripboard/internal/log"
	"tripboard/internal/web"
)

func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trip page and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, appOptions{alerts: true})
			if err != nil {
				return err
			}
			defer a.closeLogged()

			appLog.Info("effective config",
				"listen", cfg.Listen,
				"timezone", cfg.Timezone,
				"trip", cfg.Trip.Name,
				"store", cfg.Store.Driver,
				"refresh", cfg.RefreshCron,
				"event_feeds", len(cfg.Events),
			)

			srv := web.NewServer(a.deps)
			if err := os.MkdirAll(feedCacheDir(cfg), 0o755); err != nil {
				appLog.Warn("feed cache dir unavailable", "error", err)
			}
			fetcher := ics.NewFetcher(feedCacheDir(cfg), nil)

			sched := cron.New(cron.WithLocation(a.engine.Location()))
			if _, err := sched.AddFunc(cfg.RefreshCron, func() {
				appLog.Debug("scheduled refresh")
				a.refresh(ctx, srv, fetcher)
			}); err != nil {
				return fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
			}

			go a.refresh(ctx, srv, fetcher)
			sched.Start()
			defer func() {
				<-sched.Stop().Done()
			}()

			return serveUntilDone(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config)")
	return cmd
}

func serveUntilDone(ctx context.Context, srv *web.Server) error {
	err := srv.Serve(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	appLog.Info("tripboard exiting")
	return nil
}
