package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tripboard/internal/dates"
	"tripboard/internal/model"
)

func newDaysCmd(configPath *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List itinerary days that are still ahead",
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

			printDays(cmd.OutOrStdout(), a.engine, a.deps.Catalogue.Days(), all)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include days that have already passed")
	return cmd
}

func printDays(w io.Writer, engine *dates.Engine, days []model.Day, all bool) {
	statuses := engine.Statuses(days)
	passed := 0
	for _, st := range statuses {
		if st == dates.StatusPast {
			passed++
		}
	}
	fmt.Fprintln(w, titleStyle.Render("Current time: "+engine.FormatNow()))

	if len(days) > 0 && passed == len(days) && !all {
		fmt.Fprintln(w, todayStyle.Render("Trip completed!"))
		return
	}
	if passed > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d day%s completed", passed, plural(passed))))
	}

	for i, d := range days {
		line := fmt.Sprintf("%-10s %-28s %s", d.ID, d.Date, d.Title)
		switch statuses[i] {
		case dates.StatusPast:
			if all {
				fmt.Fprintln(w, passedStyle.Render(line))
			}
		case dates.StatusToday:
			fmt.Fprintln(w, todayStyle.Render(line+"  (today)"))
		default:
			fmt.Fprintln(w, textStyle.Render(line))
		}
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
