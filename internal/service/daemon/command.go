package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/volume-overlay/internal/api/socket"
	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/extension"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/repository/state"
	"github.com/oshokin/volume-overlay/internal/service/component"
	"github.com/oshokin/volume-overlay/internal/tuner"
)

// Options controls the volume-daemon process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the control socket.
	ListenAddress string
	// SettingsFile provides an optional override for the watched tunable file.
	SettingsFile string
	// StateFile provides an optional override for the policy snapshot path.
	StateFile string
}

// Run starts the daemon and blocks until context is canceled or the control
// socket stops. Loads configuration first, then wires the orchestrator, the
// settings watcher and the control socket.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "volume-daemon")

	// Load configuration first to get daemon settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	// CLI overrides take precedence over the config values.
	listenAddress := settings.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	settingsFile := settings.SettingsFile
	if opts.SettingsFile != "" {
		settingsFile = opts.SettingsFile
	}

	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	// The recording controller is the daemon's presentation sink; every
	// policy push is mirrored into the snapshot file.
	repository := state.NewFileRepository(stateFile)

	if previous, loadErr := repository.Load(ctx); loadErr == nil {
		logger.InfoKV(ctx, "Previous policy snapshot found",
			"timestamp", previous.Timestamp,
			"last_actor", previous.LastActor,
		)
	} else if !errors.Is(loadErr, state.ErrNotFound) {
		logger.WarnKV(ctx, "Failed to read policy snapshot", "error", loadErr)
	}

	sink := newPersistingSink(ctx, repository)

	// Registry events are logged for plugin attach/detach visibility.
	registry := extension.New(extension.WithEventHandler(func(event extension.Event) {
		logger.InfoKV(ctx, "Dialog source changed",
			"event", event.Type.String(),
			"plugin", event.Plugin,
		)
	}))

	orchestrator, err := component.New(ctx, component.Config{
		Controller:     sink,
		Extensions:     registry,
		HasAlertSlider: settings.HasAlertSlider,
	})
	if err != nil {
		return fmt.Errorf("initialise component: %w", err)
	}

	orchestrator.Register()

	// The settings watcher feeds tunable and configuration changes into the
	// orchestrator. Registration dispatches the current values immediately.
	watcher := tuner.New(ctx, settingsFile)
	watcher.AddTunable(orchestrator, volume.TunableKeys()...)
	watcher.AddConfigurationListener(orchestrator)
	watcher.Start()

	server, err := socket.NewServer(listenAddress, newService(orchestrator, sink))
	if err != nil {
		return fmt.Errorf("start control socket: %w", err)
	}

	logger.InfoKV(ctx, "Volume daemon started",
		"listen_address", server.Addr(),
		"settings_file", settingsFile,
		"state_file", stateFile,
		"has_alert_slider", settings.HasAlertSlider,
	)

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve control socket: %w", err)
	}

	orchestrator.Shutdown()
	logger.Info(ctx, "Volume daemon stopped")

	return nil
}
