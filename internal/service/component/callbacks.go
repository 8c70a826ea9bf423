package component

import (
	"github.com/oshokin/volume-overlay/internal/plugins"
)

// dialogCallbacks routes the active dialog's semantic events to the shell
// facilities. A fresh value is bound on every install, but all of them
// delegate to the same component, so a swap never changes routing behavior.
type dialogCallbacks struct {
	component *Component
}

// OnZenSettingsClicked opens the zen settings screen.
func (cb *dialogCallbacks) OnZenSettingsClicked() {
	cb.component.startSettings(plugins.IntentZenSettings)
}

// OnZenPrioritySettingsClicked opens the zen priority settings screen.
func (cb *dialogCallbacks) OnZenPrioritySettingsClicked() {
	cb.component.startSettings(plugins.IntentZenPrioritySettings)
}

// startSettings forwards a navigation request with the two fixed flags: the
// device must be provisioned and any notification shade is dismissed.
func (c *Component) startSettings(intent plugins.Intent) {
	if c.starter == nil {
		return
	}

	c.starter.StartActivity(intent, true, true)
}

// OnUserActivity forwards user-activity signals from the dialog, the
// tri-state indicator, or the controller to the keyguard mediator. A
// missing mediator is an absent optional collaborator, not an error.
func (c *Component) OnUserActivity() {
	if c.keyguard == nil {
		return
	}

	c.keyguard.UserActivity()
}
