package component

import (
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
)

// configTracker stores the last-seen fingerprint of the tracked
// configuration axes. The zero value is unseeded, which makes the first
// comparison always report a change.
type configTracker struct {
	// fingerprint is the stored snapshot of the tracked axes.
	fingerprint volume.Fingerprint
	// seeded reports whether a fingerprint has been recorded yet.
	seeded bool
}

// apply compares the configuration against the stored fingerprint. It
// returns true and updates the tracker when any tracked axis differs; the
// first call after construction always counts as changed.
func (t *configTracker) apply(cfg volume.Configuration) bool {
	fp := cfg.Fingerprint()
	if t.seeded && fp == t.fingerprint {
		return false
	}

	t.fingerprint = fp
	t.seeded = true

	return true
}

// OnConfigurationChanged forwards the event to the controller only when one
// of the tracked axes (font scale, locale, asset paths, UI mode) actually
// differs from the previously recorded fingerprint.
func (c *Component) OnConfigurationChanged(cfg volume.Configuration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.configChanges.apply(cfg) {
		return
	}

	c.controller.OnConfigurationChanged()

	logger.DebugKV(c.ctx, "Configuration change forwarded",
		"locale", cfg.Locale,
		"font_scale", cfg.FontScale,
		"ui_mode", cfg.UIMode,
	)
}
