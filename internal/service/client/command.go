package client

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/service/common"
)

// Options configures the control clients shared by volume-dismiss and
// volume-tune.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides the daemon address from config when specified.
	ServerAddress string

	// Key is the tunable key to push (volume-tune only).
	Key string

	// Value is the raw tunable value to push (volume-tune only).
	Value string
}

// defaultPushInterval defines retry delay when pushing requests to the daemon.
const defaultPushInterval = 1 * time.Second

// RunDismiss asks the daemon to dismiss the visible overlay, retrying until
// success or cancellation.
func RunDismiss(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "volume-dismiss")

	client, actor, err := dial(ctx, opts)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Dismissing the volume overlay", "actor", actor)

	return push(ctx, func() (bool, error) {
		if err := client.DismissNow(ctx, actor); err != nil {
			// Log error but continue retrying for transient failures.
			logger.ErrorKV(ctx, "Dismiss failed", "error", err)
			return false, nil
		}

		logger.Info(ctx, "Overlay dismissed")

		return true, nil
	})
}

// RunTune pushes one tunable key/value pair, retrying until the daemon
// confirms or the context is canceled.
func RunTune(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "volume-tune")

	client, actor, err := dial(ctx, opts)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Pushing tunable change",
		"actor", actor,
		"key", opts.Key,
		"value", opts.Value,
	)

	return push(ctx, func() (bool, error) {
		policy, err := client.ApplyTunable(ctx, actor, opts.Key, opts.Value)
		if err != nil {
			logger.ErrorKV(ctx, "Tunable push failed", "error", err)
			return false, nil
		}

		logger.Infof(ctx, "Policy updated: %s", formatPolicy(policy))

		return true, nil
	})
}

// dial loads settings, detects the actor and builds the control client.
func dial(ctx context.Context, opts *Options) (*common.Client, *volume.Actor, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	// Use daemon address from options if provided, otherwise use config.
	serverAddress := cfg.ListenAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return nil, nil, err
	}

	client, err := common.NewClient(serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, err
	}

	logger.InfoKV(ctx, "Using control socket", "server_address", serverAddress)

	return client, actor, nil
}

// push runs attempt immediately, then on a fixed interval until it reports
// completion, it fails hard, or the context is canceled.
func push(ctx context.Context, attempt func() (bool, error)) error {
	if done, err := attempt(); err != nil {
		return err
	} else if done {
		return nil
	}

	ticker := time.NewTicker(defaultPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := attempt()
			if err != nil {
				return err
			}

			if done {
				return nil
			}
		}
	}
}

// formatPolicy converts a policy to a readable log message.
func formatPolicy(policy volume.Policy) string {
	return fmt.Sprintf("volume-down-to-silent=%t, volume-up-to-exit-silent=%t, dnd-when-silent=%t, debounce=%s",
		policy.VolumeDownToEnterSilent,
		policy.VolumeUpToExitSilent,
		policy.DoNotDisturbWhenSilent,
		policy.VibrateToSilentDebounce,
	)
}
