package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tripboard/internal/ics"
)

func newExportICSCmd(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Write the itinerary and flights as an iCalendar file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.closeLogged()

			body := ics.Export(a.deps.Catalogue.Days(), cfg.Flights, a.engine, cfg.Trip.Name)
			if out == "" || out == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
