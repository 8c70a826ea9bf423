package dialog

import (
	"sync"

	"github.com/oshokin/volume-overlay/internal/plugins"
)

// SliderPosition is the physical position of the alert slider.
type SliderPosition int

// Alert slider positions, top to bottom.
const (
	// SliderSilent mutes everything.
	SliderSilent SliderPosition = iota
	// SliderVibrate keeps haptics only.
	SliderVibrate
	// SliderRing allows sounds.
	SliderRing
)

// String returns a human-readable position name.
func (p SliderPosition) String() string {
	switch p {
	case SliderSilent:
		return "silent"
	case SliderVibrate:
		return "vibrate"
	case SliderRing:
		return "ring"
	default:
		return "unknown"
	}
}

// TriState is the built-in alert-slider status indicator. Like Overlay it
// holds surface state only; the shell renders it.
type TriState struct {
	mu sync.Mutex

	// windowType is the window layer the indicator was attached to.
	windowType plugins.WindowType
	// listener receives user-activity signals when the slider moves.
	listener plugins.UserActivityListener

	// position is the last observed slider position.
	position SliderPosition

	// initialized is set on Init and cleared on Destroy.
	initialized bool
	// destroyed marks the instance as released.
	destroyed bool
}

// NewTriState creates an unattached indicator with the slider at ring.
func NewTriState() *TriState {
	return &TriState{
		position: SliderRing,
	}
}

// Init attaches the indicator and registers the user-activity listener.
func (t *TriState) Init(windowType plugins.WindowType, listener plugins.UserActivityListener) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.windowType = windowType
	t.listener = listener
	t.initialized = true
}

// Destroy releases the indicator. Signals after Destroy are dropped.
func (t *TriState) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.destroyed = true
	t.initialized = false
	t.listener = nil
}

// SetPosition records a slider movement and signals user activity.
func (t *TriState) SetPosition(position SliderPosition) {
	t.mu.Lock()
	t.position = position
	listener := t.listener
	t.mu.Unlock()

	if listener != nil {
		listener.OnUserActivity()
	}
}

// Position returns the last observed slider position.
func (t *TriState) Position() SliderPosition {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.position
}

// Initialized reports whether the indicator is currently attached.
func (t *TriState) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.initialized
}

// Destroyed reports whether the indicator has been released.
func (t *TriState) Destroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.destroyed
}
