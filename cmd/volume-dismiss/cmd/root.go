package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/volume-overlay/internal/config"
	client "github.com/oshokin/volume-overlay/internal/service/client"
	"github.com/oshokin/volume-overlay/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string

	// rootCmd represents the base command for dismissing the overlay.
	rootCmd = &cobra.Command{
		Use:   "volume-dismiss [server-address]",
		Short: "Dismiss the visible volume overlay.",
		Long: `Asks the volume daemon to dismiss the currently visible overlay.

Sends dismiss requests to the daemon continuously until confirmation is received.
Server address can be provided as argument or loaded from configuration file.

This is typically bound to a global shortcut or called by the lock screen.`,
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

			return client.RunDismiss(ctx, &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
			})
		},
	}
)

// Execute runs the volume-dismiss CLI and exits with non-zero status on error.
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
}
