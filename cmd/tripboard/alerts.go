package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tripboard/internal/model"
)

func newAlertsCmd(configPath *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show travel alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, appOptions{alerts: true})
			if err != nil {
				return err
			}
			defer a.closeLogged()

			list := a.deps.Alerts.Active()
			if all {
				list = a.deps.Alerts.All()
			}
			printAlerts(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include dismissed alerts")

	cmd.AddCommand(&cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, appOptions{alerts: true})
			if err != nil {
				return err
			}
			defer a.closeLogged()

			if err := a.deps.Alerts.Dismiss(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "dismissed", args[0])
			return nil
		},
	})
	return cmd
}

func printAlerts(w io.Writer, list []model.Alert) {
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No alerts."))
		return
	}
	for _, al := range list {
		head := fmt.Sprintf("[%s] %s", al.Urgency, al.Title)
		if al.Dismissed {
			head += " (dismissed)"
		}
		fmt.Fprintln(w, urgencyStyle(al.Urgency).Render(head))
		fmt.Fprintln(w, "  "+al.Message)
		fmt.Fprintln(w, mutedStyle.Render("  id: "+al.ID))
	}
}
