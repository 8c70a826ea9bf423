package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/volume-overlay/internal/config"
	"github.com/oshokin/volume-overlay/internal/service/checker"
	"github.com/oshokin/volume-overlay/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// pollInterval between daemon health checks.
	pollInterval time.Duration
	// once performs a single check and exits.
	once bool

	// rootCmd represents the base command for checking daemon health.
	rootCmd = &cobra.Command{
		Use:   "volume-checker [server-address]",
		Short: "Monitor the volume daemon's health.",
		Long: `Monitors the volume daemon: the process must be running and the control
socket must answer policy queries.

Checks repeat on a fixed interval and failures are logged; with --once the
checker performs a single check and exits non-zero on failure, which suits
service health probes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use server address argument if provided, otherwise rely on config.
			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			return checker.Run(ctx, &checker.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				PollInterval:  pollInterval,
				Once:          once,
			})
		},
	}
)

// Execute runs the volume-checker CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		DurationVarP(&pollInterval, "interval", "i", checker.DefaultPollInterval, "interval between health checks")
	rootCmd.Flags().BoolVarP(&once, "once", "o", false, "perform a single check and exit")
}
