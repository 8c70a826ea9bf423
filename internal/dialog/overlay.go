package dialog

import (
	"sync"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/plugins"
)

// Overlay is the built-in volume dialog. It keeps the surface state the
// hosting shell presents (per-stream importance, automute, silent-mode and
// the media text); presentation itself is delegated to the shell, which
// reads this state through the accessors.
type Overlay struct {
	// mu protects surface state; the orchestrator may be driven from
	// watcher and control-socket goroutines.
	mu sync.Mutex

	// windowType is the window layer the surface was attached to.
	windowType plugins.WindowType
	// callback receives the semantic events raised by the surface.
	callback plugins.DialogCallback

	// streamImportance marks streams whose rows are shown by default.
	streamImportance map[volume.Stream]bool
	// automute mutes inactive streams automatically.
	automute bool
	// silentMode presents the silent-mode toggle on the surface.
	silentMode bool
	// text is the media description shown under the active row.
	text string

	// initialized is set on Init and cleared on Destroy.
	initialized bool
	// destroyed marks the instance as released.
	destroyed bool
}

// NewOverlay creates an unattached built-in overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		streamImportance: make(map[volume.Stream]bool),
	}
}

// Init attaches the overlay to the window layer and registers the event sink.
func (o *Overlay) Init(windowType plugins.WindowType, callback plugins.DialogCallback) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.windowType = windowType
	o.callback = callback
	o.initialized = true
}

// Destroy releases the overlay. Events raised after Destroy are dropped.
func (o *Overlay) Destroy() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.destroyed = true
	o.initialized = false
	o.callback = nil
}

// SetStreamImportant marks whether a stream's row is shown by default.
func (o *Overlay) SetStreamImportant(stream volume.Stream, important bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.streamImportance[stream] = important
}

// SetAutomute toggles automatic muting of inactive streams.
func (o *Overlay) SetAutomute(automute bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.automute = automute
}

// SetSilentMode toggles the silent-mode presentation.
func (o *Overlay) SetSilentMode(silent bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.silentMode = silent
}

// InitText seeds the media text from the manager. A nil manager is a valid
// state: the manager may be attached after the orchestrator is constructed.
func (o *Overlay) InitText(manager plugins.MediaManager) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.text = ""

	if manager == nil {
		return
	}

	if description, active := manager.NowPlaying(); active {
		o.text = description
	}
}

// ClickZenSettings simulates the user tapping the zen settings affordance.
// The shell calls this from its input path.
func (o *Overlay) ClickZenSettings() {
	o.mu.Lock()
	callback := o.callback
	o.mu.Unlock()

	if callback != nil {
		callback.OnZenSettingsClicked()
	}
}

// ClickZenPrioritySettings simulates the user tapping the zen priority affordance.
func (o *Overlay) ClickZenPrioritySettings() {
	o.mu.Lock()
	callback := o.callback
	o.mu.Unlock()

	if callback != nil {
		callback.OnZenPrioritySettingsClicked()
	}
}

// StreamImportant reports whether a stream's row is shown by default.
func (o *Overlay) StreamImportant(stream volume.Stream) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.streamImportance[stream]
}

// Automute reports whether inactive streams are auto-muted.
func (o *Overlay) Automute() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.automute
}

// SilentMode reports whether the silent-mode toggle is presented.
func (o *Overlay) SilentMode() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.silentMode
}

// Text returns the current media description.
func (o *Overlay) Text() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.text
}

// WindowType returns the attached window layer.
func (o *Overlay) WindowType() plugins.WindowType {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.windowType
}

// Initialized reports whether the overlay is currently attached.
func (o *Overlay) Initialized() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.initialized
}

// Destroyed reports whether the overlay has been released.
func (o *Overlay) Destroyed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.destroyed
}
