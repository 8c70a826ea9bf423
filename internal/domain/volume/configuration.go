package volume

import (
	"fmt"
	"strings"
)

// Configuration carries the device-configuration axes the orchestrator
// tracks: font scale, locale, asset paths, and UI mode. Changes on any
// other axis are not interesting and must not reach the controller.
type Configuration struct {
	// FontScale is the global text scaling factor.
	FontScale float64
	// Locale is the active locale tag, e.g. "en-US".
	Locale string
	// AssetPaths lists theme/asset overlay directories in application order.
	AssetPaths []string
	// UIMode names the active UI mode, e.g. "normal" or "night".
	UIMode string
}

// Fingerprint is a comparable snapshot of the tracked configuration axes.
type Fingerprint string

// Fingerprint reduces the configuration to a comparable snapshot covering
// exactly the tracked axes.
func (c Configuration) Fingerprint() Fingerprint {
	return Fingerprint(fmt.Sprintf(
		"%.4f|%s|%s|%s",
		c.FontScale,
		c.Locale,
		strings.Join(c.AssetPaths, ":"),
		c.UIMode,
	))
}

// Clone returns a copy of the configuration with its own asset path slice.
func (c Configuration) Clone() Configuration {
	cloned := c
	if c.AssetPaths != nil {
		cloned.AssetPaths = append([]string(nil), c.AssetPaths...)
	}

	return cloned
}
