package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	appLog "tripboard/internal/log"

	_ "time/tzdata"
)

const version = "0.1.0"

func main() {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		appLog.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()
	if err != nil {
		appLog.Warn("failed to set GOMAXPROCS", "error", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tripboard",
		Short:         "Trip itinerary dashboard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./tripboard.yaml", "path to YAML config")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newDaysCmd(&configPath))
	root.AddCommand(newAlertsCmd(&configPath))
	root.AddCommand(newExportICSCmd(&configPath))
	root.AddCommand(newSnapshotCmd(&configPath))
	root.AddCommand(newHashPasswordCmd(&configPath))
	return root
}
