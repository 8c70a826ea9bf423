package controller

import (
	"context"
	"sync"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/plugins"
)

// Recording is the reference Controller implementation. The audio business
// logic itself lives outside this module; this controller records the
// current policy and surfaces lifecycle notifications through the logger so
// the daemon is observable and tests can assert on deliveries.
type Recording struct {
	// ctx carries the named logger for controller events.
	ctx context.Context

	// mu protects all recorded state.
	mu sync.Mutex

	// policy is the last policy pushed by the orchestrator.
	policy volume.Policy
	// policyPushes counts SetVolumePolicy deliveries.
	policyPushes int

	// registered reports whether Register was called.
	registered bool
	// dndTile is the last requested DND shortcut tile state.
	dndTile bool
	// volumeUIEnabled and safetyWarningEnabled mirror SetEnableDialogs.
	volumeUIEnabled      bool
	safetyWarningEnabled bool

	// dismissals counts Dismiss requests.
	dismissals int
	// configChanges counts OnConfigurationChanged notifications.
	configChanges int

	// listener receives controller-driven user-activity signals.
	listener plugins.UserActivityListener
}

// New creates a recording controller logging under the "controller" name.
func New(ctx context.Context) *Recording {
	return &Recording{
		ctx:    logger.WithName(ctx, "controller"),
		policy: volume.DefaultPolicy(),
	}
}

// SetVolumePolicy atomically replaces the current policy.
func (r *Recording) SetVolumePolicy(policy volume.Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.policy = policy
	r.policyPushes++

	logger.InfoKV(r.ctx, "Volume policy updated",
		"volume_down_to_enter_silent", policy.VolumeDownToEnterSilent,
		"volume_up_to_exit_silent", policy.VolumeUpToExitSilent,
		"do_not_disturb_when_silent", policy.DoNotDisturbWhenSilent,
		"vibrate_to_silent_debounce", policy.VibrateToSilentDebounce.String(),
	)
}

// Dismiss hides any visible volume surface.
func (r *Recording) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dismissals++

	logger.Debug(r.ctx, "Dismiss requested")
}

// Register activates the controller.
func (r *Recording) Register() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registered = true

	logger.Info(r.ctx, "Controller registered")
}

// ShowDNDTile requests the combined do-not-disturb shortcut tile.
func (r *Recording) ShowDNDTile(show bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dndTile = show
}

// SetEnableDialogs toggles the volume UI and the safety warning dialog.
func (r *Recording) SetEnableDialogs(volumeUI, safetyWarning bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.volumeUIEnabled = volumeUI
	r.safetyWarningEnabled = safetyWarning
}

// OnConfigurationChanged records an interesting configuration change.
func (r *Recording) OnConfigurationChanged() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configChanges++

	logger.Debug(r.ctx, "Interesting configuration change")
}

// SetUserActivityListener registers the listener for user-activity signals.
func (r *Recording) SetUserActivityListener(listener plugins.UserActivityListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listener = listener
}

// Policy returns the last pushed policy.
func (r *Recording) Policy() volume.Policy {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.policy
}

// PolicyPushes returns the number of SetVolumePolicy deliveries.
func (r *Recording) PolicyPushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.policyPushes
}

// Registered reports whether Register was called.
func (r *Recording) Registered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.registered
}

// DNDTileShown returns the last requested tile state.
func (r *Recording) DNDTileShown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dndTile
}

// Dismissals returns the number of Dismiss requests.
func (r *Recording) Dismissals() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dismissals
}

// ConfigChanges returns the number of configuration-change notifications.
func (r *Recording) ConfigChanges() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.configChanges
}
