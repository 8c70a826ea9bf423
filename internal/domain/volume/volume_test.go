package volume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDefaultPolicy verifies the documented defaults and the fixed debounce.
func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	require.False(t, p.VolumeDownToEnterSilent)
	require.False(t, p.VolumeUpToExitSilent)
	require.False(t, p.DoNotDisturbWhenSilent)
	require.Equal(t, 400*time.Millisecond, p.VibrateToSilentDebounce)
}

// TestConfigurationFingerprint asserts that every tracked axis affects the snapshot.
func TestConfigurationFingerprint(t *testing.T) {
	t.Parallel()

	a := Configuration{
		FontScale:  1.0,
		Locale:     "en-US",
		AssetPaths: []string{"/usr/share/themes/dark"},
		UIMode:     "normal",
	}
	b := a.Clone()

	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Locale = "de-DE"
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b = a.Clone()
	b.FontScale = 1.3
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b = a.Clone()
	b.AssetPaths = append(b.AssetPaths, "/usr/share/themes/light")
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b = a.Clone()
	b.UIMode = "night"
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

// TestConfigurationClone ensures the asset slice is copied, not shared.
func TestConfigurationClone(t *testing.T) {
	t.Parallel()

	a := Configuration{AssetPaths: []string{"one"}}
	b := a.Clone()
	b.AssetPaths[0] = "two"

	require.Equal(t, "one", a.AssetPaths[0])
}

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "shell-host",
		Username: "o.shokin",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
	require.Equal(t, "o.shokin@shell-host", a.String())
}
