package integration

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/service/common"
	"github.com/oshokin/volume-overlay/internal/service/daemon"
)

// startDaemon starts the daemon with temporary config and settings files.
// Returns a stop function to gracefully shut it down.
func startDaemon(t *testing.T, addr, settingsPath string) (stop func()) {
	t.Helper()

	// Create cancellable context for daemon lifecycle.
	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "daemon.yaml")

	// Create temporary configuration file.
	require.NoError(
		t,
		config.Save(cfgPath, &config.Config{
			ListenAddress:  addr,
			SettingsFile:   settingsPath,
			StateFile:      filepath.Join(t.TempDir(), "snapshot.json"),
			HasAlertSlider: true,
			Timeout:        5 * time.Second,
		}),
	)

	// Start daemon in background goroutine.
	go func() {
		options := &daemon.Options{
			ConfigPath: cfgPath,
		}

		_ = daemon.Run(ctx, options) //nolint:errcheck // Test teardown closes the socket mid-accept.
	}()

	// Wait briefly for the control socket to start listening.
	time.Sleep(150 * time.Millisecond)

	return func() {
		cancel()
		time.Sleep(100 * time.Millisecond)
	}
}

// writeSettings writes the tunable settings file contents.
func writeSettings(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// TestDaemon_Roundtrip starts the real daemon and exercises the control
// socket plus the settings watcher end to end.
func TestDaemon_Roundtrip(t *testing.T) {
	t.Parallel()

	// Reserve a free port for the test daemon.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	// Seed the settings file before the daemon reads it.
	settingsPath := filepath.Join(t.TempDir(), "tunables.yaml")
	writeSettings(t, settingsPath, "sysui_volume_down_silent: 1\n")

	stop := startDaemon(t, addr, settingsPath)
	defer stop()

	ctx := context.Background()

	c, err := common.NewClient(addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	// Create test actor for audit logging.
	actor := &volume.Actor{
		Hostname: "test-hostname",
		Username: "test-user",
	}

	// The initial policy reflects the seeded settings file.
	policy, err := c.CurrentPolicy(ctx, actor)
	require.NoError(t, err)
	require.True(t, policy.VolumeDownToEnterSilent)
	require.False(t, policy.DoNotDisturbWhenSilent)

	// A pushed tunable takes effect immediately.
	policy, err = c.ApplyTunable(ctx, actor, volume.DoNotDisturbKey, "1")
	require.NoError(t, err)
	require.True(t, policy.DoNotDisturbWhenSilent)

	// Dismiss is accepted.
	require.NoError(t, c.DismissNow(ctx, actor))

	// Rewriting the settings file reaches the policy via the watcher.
	writeSettings(t, settingsPath, "sysui_volume_down_silent: 1\nsysui_volume_up_silent: 1\n")

	require.Eventually(t, func() bool {
		current, queryErr := c.CurrentPolicy(ctx, actor)

		return queryErr == nil && current.VolumeUpToExitSilent
	}, 5*time.Second, 50*time.Millisecond)
}

// TestDaemon_RejectsUnknownTunable verifies control socket diagnostics for
// keys outside the tunable set.
func TestDaemon_RejectsUnknownTunable(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	settingsPath := filepath.Join(t.TempDir(), "tunables.yaml")
	writeSettings(t, settingsPath, "")

	stop := startDaemon(t, addr, settingsPath)
	defer stop()

	c, err := common.NewClient(addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	actor := &volume.Actor{
		Hostname: "test-hostname",
		Username: "test-user",
	}

	_, err = c.ApplyTunable(context.Background(), actor, "sysui_unknown", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown tunable key")
}
