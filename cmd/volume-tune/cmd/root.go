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
	// serverAddress overrides the daemon address from config.
	serverAddress string

	// rootCmd represents the base command for pushing a tunable change.
	rootCmd = &cobra.Command{
		Use:   "volume-tune <key> <value>",
		Short: "Push one tunable change to the volume daemon.",
		Long: `Pushes one tunable key/value pair to the volume daemon.

The daemon rebuilds its volume policy from the change and reports the result.
Recognized keys are sysui_volume_down_silent, sysui_volume_up_silent and
sysui_do_not_disturb; values are integer switches where any non-zero integer
enables the setting and anything unparsable resets it to its default.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return client.RunTune(ctx, &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				Key:           args[0],
				Value:         args[1],
			})
		},
	}
)

// Execute runs the volume-tune CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&serverAddress, "server", "s", "", "daemon control socket address override")
}
