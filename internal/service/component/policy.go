package component

import (
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/tuner"
)

// OnTuningChanged translates a tunable change into a policy update. Unknown
// keys are ignored. The raw value is an integer switch: a truthy integer
// enables the field; anything unparsable resolves to the field's documented
// default, not to its previous value. The rebuilt policy reuses the other
// fields and the fixed debounce and is pushed in one SetVolumePolicy call.
func (c *Component) OnTuningChanged(key, rawValue string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.policy

	switch key {
	case volume.VolumeDownSilentKey:
		next.VolumeDownToEnterSilent = tuner.ParseIntegerSwitch(rawValue, volume.DefaultVolumeDownToEnterSilent)
	case volume.VolumeUpSilentKey:
		next.VolumeUpToExitSilent = tuner.ParseIntegerSwitch(rawValue, volume.DefaultVolumeUpToExitSilent)
	case volume.DoNotDisturbKey:
		next.DoNotDisturbWhenSilent = tuner.ParseIntegerSwitch(rawValue, volume.DefaultDoNotDisturbWhenSilent)
	default:
		return
	}

	c.setVolumePolicyLocked(next)
}

// applyCurrentPolicy pushes the current policy to the controller and
// requests the do-not-disturb shortcut tile. Runs once at startup.
func (c *Component) applyCurrentPolicy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.controller.SetVolumePolicy(c.policy)
	c.controller.ShowDNDTile(true)
}

// setVolumePolicyLocked atomically replaces the policy and pushes it to the
// controller. Callers must hold mu.
func (c *Component) setVolumePolicyLocked(next volume.Policy) {
	c.policy = next
	c.controller.SetVolumePolicy(next)

	logger.DebugKV(c.ctx, "Volume policy replaced",
		"volume_down_to_enter_silent", next.VolumeDownToEnterSilent,
		"volume_up_to_exit_silent", next.VolumeUpToExitSilent,
		"do_not_disturb_when_silent", next.DoNotDisturbWhenSilent,
	)
}
