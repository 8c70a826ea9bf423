package volume

import "time"

// Tunable keys observed from the settings file. Each key maps 1:1 to a
// boolean Policy field. The identifiers are stable and consumed verbatim
// by the tuner service.
const (
	// VolumeDownSilentKey toggles entering silent mode with the volume-down key.
	VolumeDownSilentKey = "sysui_volume_down_silent"
	// VolumeUpSilentKey toggles exiting silent mode with the volume-up key.
	VolumeUpSilentKey = "sysui_volume_up_silent"
	// DoNotDisturbKey toggles engaging do-not-disturb while silent.
	DoNotDisturbKey = "sysui_do_not_disturb"
)

// Documented defaults for the three tunable policy fields.
const (
	// DefaultVolumeDownToEnterSilent is the default for VolumeDownSilentKey.
	DefaultVolumeDownToEnterSilent = false
	// DefaultVolumeUpToExitSilent is the default for VolumeUpSilentKey.
	DefaultVolumeUpToExitSilent = false
	// DefaultDoNotDisturbWhenSilent is the default for DoNotDisturbKey.
	DefaultDoNotDisturbWhenSilent = false
)

// VibrateToSilentDebounce is the fixed debounce between vibrate and silent
// transitions. It is not user-configurable.
const VibrateToSilentDebounce = 400 * time.Millisecond

// Policy is the immutable bundle of silent-mode thresholds pushed to the
// volume controller. It is replaced wholesale on any change; no partial
// mutation is ever visible to the controller.
type Policy struct {
	// VolumeDownToEnterSilent enters silent mode when volume is lowered past minimum.
	VolumeDownToEnterSilent bool
	// VolumeUpToExitSilent exits silent mode when volume is raised.
	VolumeUpToExitSilent bool
	// DoNotDisturbWhenSilent engages do-not-disturb while in silent mode.
	DoNotDisturbWhenSilent bool
	// VibrateToSilentDebounce is the fixed per-policy debounce interval.
	VibrateToSilentDebounce time.Duration
}

// DefaultPolicy returns the policy with all tunable fields at their
// documented defaults and the fixed debounce interval.
func DefaultPolicy() Policy {
	return Policy{
		VolumeDownToEnterSilent: DefaultVolumeDownToEnterSilent,
		VolumeUpToExitSilent:    DefaultVolumeUpToExitSilent,
		DoNotDisturbWhenSilent:  DefaultDoNotDisturbWhenSilent,
		VibrateToSilentDebounce: VibrateToSilentDebounce,
	}
}

// TunableKeys lists the recognized tunable keys in a stable order.
func TunableKeys() []string {
	return []string{
		VolumeDownSilentKey,
		VolumeUpSilentKey,
		DoNotDisturbKey,
	}
}
