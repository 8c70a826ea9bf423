package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and defaulting for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing socket.
	settings := new(Config)

	err := Validate(settings)
	require.Error(t, err)

	// Bad socket.
	settings = &Config{
		ListenAddress: "bad:address",
	}

	err = Validate(settings)
	require.Error(t, err)

	// Okay; unset fields are defaulted.
	settings = &Config{
		ListenAddress: "127.0.0.1:0",
	}

	err = Validate(settings)
	require.NoError(t, err)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultSettingsFilename, settings.SettingsFile)
	require.Equal(t, DefaultStateFilename, settings.StateFile)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ListenAddress:  "127.0.0.1:8585",
		SettingsFile:   filepath.Join(dir, "tunables.yaml"),
		HasAlertSlider: true,
		LogLevel:       "debug",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.ListenAddress, loaded.ListenAddress)
	require.Equal(t, settings.SettingsFile, loaded.SettingsFile)
	require.True(t, loaded.HasAlertSlider)
	require.Equal(t, "debug", loaded.LogLevel)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
