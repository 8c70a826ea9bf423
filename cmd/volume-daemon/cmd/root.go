package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/volume-overlay/internal/config"
	"github.com/oshokin/volume-overlay/internal/service/daemon"
	"github.com/oshokin/volume-overlay/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// settingsFile path to the watched tunable settings file.
	settingsFile string
	// stateFile path where the policy snapshot is persisted.
	stateFile string

	// rootCmd represents the base command for running the volume daemon.
	rootCmd = &cobra.Command{
		Use:   "volume-daemon [listen-address]",
		Short: "Run the volume overlay daemon.",
		Long: `Starts the volume overlay daemon that owns the volume policy and the overlay surfaces.

The daemon watches the tunable settings file for policy changes, hosts the dialog
extension point and serves dismiss/tune/policy requests on a TCP control socket.
Listen address can be provided as argument to override config (e.g., :8585, 0.0.0.0:8585).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &daemon.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				SettingsFile:  settingsFile,
				StateFile:     stateFile,
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the volume-daemon CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&settingsFile, "settings-file", "t", "", "path to the watched tunable settings file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", config.DefaultStateFilename, "path to persist the policy snapshot")
}
