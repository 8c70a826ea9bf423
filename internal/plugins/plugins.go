package plugins

import (
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// WindowType classifies the window layer an overlay surface is attached to.
type WindowType int

// WindowTypeVolumeOverlay is the fixed classification used for both the
// volume overlay and the tri-state indicator.
const WindowTypeVolumeOverlay WindowType = 2020

// Dialog is the interactive volume overlay surface. It may be the built-in
// default or supplied by an external plugin. Instances are single-use: after
// Destroy they are never re-initialized.
type Dialog interface {
	// Init attaches the surface to the given window layer and registers the
	// sink for its semantic events.
	Init(windowType WindowType, callback DialogCallback)
	// Destroy releases the surface. The orchestrator guarantees it is called
	// at most once per instance.
	Destroy()
}

// DialogCallback receives semantic events from the active Dialog.
type DialogCallback interface {
	// OnZenSettingsClicked signals that the user asked for the zen settings screen.
	OnZenSettingsClicked()
	// OnZenPrioritySettingsClicked signals that the user asked for the zen
	// priority settings screen.
	OnZenPrioritySettingsClicked()
}

// TriState is the alert-slider status indicator surface, active only on
// devices with the alert-slider capability.
type TriState interface {
	// Init attaches the indicator to the given window layer and registers the
	// listener for user-activity signals.
	Init(windowType WindowType, listener UserActivityListener)
	// Destroy releases the indicator. Called at most once per instance.
	Destroy()
}

// UserActivityListener observes user-activity signals from overlay surfaces.
type UserActivityListener interface {
	OnUserActivity()
}

// Controller owns stream volumes and the audio-domain business logic. The
// orchestrator only pushes policy and lifecycle notifications to it.
type Controller interface {
	// SetVolumePolicy atomically replaces the current volume policy.
	SetVolumePolicy(policy volume.Policy)
	// Dismiss hides any visible volume surface.
	Dismiss()
	// Register activates the controller.
	Register()
	// ShowDNDTile requests the combined do-not-disturb shortcut tile.
	ShowDNDTile(show bool)
	// SetEnableDialogs toggles the volume UI and the safety warning dialog.
	SetEnableDialogs(volumeUI, safetyWarning bool)
	// OnConfigurationChanged notifies the controller that an interesting
	// device-configuration axis changed.
	OnConfigurationChanged()
	// SetUserActivityListener registers the listener for controller-driven
	// user-activity signals.
	SetUserActivityListener(listener UserActivityListener)
}

// Intent names a settings screen the shell can navigate to.
type Intent string

// Settings screens reachable from the overlay.
const (
	// IntentZenSettings opens the zen (do-not-disturb) settings screen.
	IntentZenSettings Intent = "settings/zen"
	// IntentZenPrioritySettings opens the zen priority configuration screen.
	IntentZenPrioritySettings Intent = "settings/zen-priority"
)

// ActivityStarter navigates to settings screens on behalf of the overlay.
type ActivityStarter interface {
	// StartActivity opens the named screen. onlyProvisioned restricts the
	// navigation to fully provisioned devices; dismissShade requests closing
	// any open notification shade first.
	StartActivity(intent Intent, onlyProvisioned, dismissShade bool)
}

// KeyguardMediator receives user-activity notifications to keep the lock
// screen timeout from firing while the user interacts with the overlay.
// It is an optional collaborator; absence is not an error.
type KeyguardMediator interface {
	UserActivity()
}

// MediaManager supplies media session metadata for the overlay text. It may
// be attached after the orchestrator is constructed and may be nil at
// overlay-build time; implementations of the default overlay must tolerate
// that.
type MediaManager interface {
	// NowPlaying returns the current media description and whether any media
	// session is active.
	NowPlaying() (description string, active bool)
}
