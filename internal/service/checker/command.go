package checker

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/service/common"
)

// Options controls the checker polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional control socket address override.
	ServerAddress string
	// PollInterval defines the interval between daemon health checks.
	PollInterval time.Duration
	// Once performs a single check and exits, used by health probes.
	Once bool
}

const (
	// DefaultPollInterval defines the fixed polling interval for daemon checks.
	DefaultPollInterval = 5 * time.Second

	// baseDaemonExecutable is the daemon's executable name without extension.
	baseDaemonExecutable = "volume-daemon"
)

// Run polls the daemon's health: the process must be present in the process
// table and the control socket must answer a policy query. Failures are
// logged and polling continues; the checker never repairs anything itself.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "volume-checker")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Use default polling interval as it's not user-configurable.
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	// Determine control socket address: command line argument overrides config.
	serverAddress := cfg.ListenAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Detect current system actor for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.NewClient(serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	logger.InfoKV(ctx, "Polling daemon health",
		"server_address", serverAddress,
		"interval", opts.PollInterval.String(),
	)

	if opts.Once {
		return checkOnce(ctx, client, actor)
	}

	// Setup polling ticker with fixed interval.
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	// Main polling loop until context cancellation.
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			if err = checkOnce(ctx, client, actor); err != nil {
				logger.ErrorKV(ctx, "Daemon check failed", "error", err)
			}
		}
	}
}

// checkOnce runs one full health check: process table scan, then a policy
// query over the control socket.
func checkOnce(ctx context.Context, client *common.Client, actor *volume.Actor) error {
	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if !daemonPresent(processList) {
		return fmt.Errorf("%s process not found", daemonExecutable())
	}

	policy, err := client.CurrentPolicy(ctx, actor)
	if err != nil {
		return fmt.Errorf("query policy: %w", err)
	}

	logger.InfoKV(ctx, "Daemon is healthy",
		"volume_down_to_enter_silent", policy.VolumeDownToEnterSilent,
		"volume_up_to_exit_silent", policy.VolumeUpToExitSilent,
		"do_not_disturb_when_silent", policy.DoNotDisturbWhenSilent,
	)

	return nil
}

// daemonPresent scans the process table for the daemon executable.
func daemonPresent(processList []ps.Process) bool {
	expected := daemonExecutable()

	for _, process := range processList {
		if process.Executable() == expected {
			return true
		}
	}

	return false
}

// daemonExecutable returns the platform-specific daemon executable name.
func daemonExecutable() string {
	return baseDaemonExecutable + executableExtension()
}

// executableExtension returns ".exe" on Windows and "" elsewhere.
func executableExtension() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return ".exe"
	}

	return ""
}
