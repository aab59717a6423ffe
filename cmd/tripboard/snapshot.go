package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"tripboard/internal/capture"
	appLog "tripboard/internal/log"
	"tripboard/internal/web"
)

func newSnapshotCmd(configPath *string) *cobra.Command {
	opts := capture.Options{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the trip page to a PNG with headless Chromium",
		Long: "Render the trip page to a PNG with headless Chromium.\n\n" +
			"Without --url the page is served from a private loopback listener\n" +
			"for the duration of the capture.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.URL != "" {
				return capture.SnapshotPNG(cmd.Context(), opts)
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			// The loopback listener is private to this process.
			cfg.BasicAuth = nil

			a, err := newApp(cmd.Context(), cfg, appOptions{alerts: true})
			if err != nil {
				return err
			}
			defer a.closeLogged()

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("failed to open loopback listener: %w", err)
			}
			hs := &http.Server{
				Handler:           web.NewServer(a.deps).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					appLog.Error("snapshot server stopped", err)
				}
			}()
			defer hs.Close()

			opts.URL = "http://" + ln.Addr().String() + "/"
			if err := capture.SnapshotPNG(cmd.Context(), opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", opts.OutputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.URL, "url", "", "page to capture (default: serve the page locally)")
	cmd.Flags().StringVarP(&opts.OutputPath, "out", "o", "tripboard.png", "output PNG path")
	cmd.Flags().IntVar(&opts.Width, "width", capture.DefaultWidth, "viewport width")
	cmd.Flags().IntVar(&opts.Height, "height", capture.DefaultHeight, "viewport height")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", capture.DefaultTimeout, "capture timeout")
	return cmd
}
