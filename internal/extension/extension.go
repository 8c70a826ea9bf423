package extension

import (
	"sync"

	"github.com/oshokin/volume-overlay/internal/plugins"
)

// DialogFactory builds the default Dialog when no plugin is attached.
type DialogFactory func() plugins.Dialog

// SwapCallback installs the next Dialog instance. The registry guarantees
// calls are serialized, so the previous instance can be destroyed before the
// new one is initialized without further locking by the consumer.
type SwapCallback func(dialog plugins.Dialog)

// EventType is the kind of registry event.
type EventType int

// Registry events delivered to the optional handler.
const (
	// EventDefaultBuilt is emitted when the default dialog is (re)built.
	EventDefaultBuilt EventType = iota
	// EventPluginAttached is emitted when a plugin dialog replaces the current one.
	EventPluginAttached
	// EventPluginDetached is emitted when a plugin is removed and the default returns.
	EventPluginDetached
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventDefaultBuilt:
		return "default-built"
	case EventPluginAttached:
		return "plugin-attached"
	case EventPluginDetached:
		return "plugin-detached"
	default:
		return "unknown"
	}
}

// Event describes a registry state change.
type Event struct {
	// Type is the kind of change.
	Type EventType
	// Plugin is the attached plugin's name, empty for default events.
	Plugin string
}

// EventHandler observes registry events, e.g. for logging. Handlers must not
// call back into the registry.
type EventHandler func(event Event)

// Option configures the registry.
type Option func(*Registry)

// WithEventHandler registers the observer for registry events.
func WithEventHandler(handler EventHandler) Option {
	return func(r *Registry) {
		r.handler = handler
	}
}

// Registry owns the single extension point for the volume Dialog. At most
// one plugin is attached at a time; when none is, the default factory
// supplies the instance. Every source change invokes the bound swap callback
// synchronously with the instance to install.
type Registry struct {
	// mu serializes source changes and callback dispatch.
	mu sync.Mutex

	// defaultFactory builds the built-in dialog.
	defaultFactory DialogFactory
	// callback installs new instances; set via Bind.
	callback SwapCallback
	// handler observes registry events, may be nil.
	handler EventHandler

	// pluginName is the attached plugin's name, empty when running the default.
	pluginName string
	// pluginActive reports whether a plugin currently supplies the dialog.
	pluginActive bool
}

// New creates an empty registry. Nothing is dispatched until Bind.
func New(opts ...Option) *Registry {
	r := new(Registry)
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Bind registers the default factory and the swap callback, then performs
// the initial dispatch with the default instance. Calling Bind twice
// replaces the consumer and re-dispatches.
func (r *Registry) Bind(defaultFactory DialogFactory, callback SwapCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultFactory = defaultFactory
	r.callback = callback

	r.dispatchDefaultLocked()
}

// AttachPlugin swaps the named plugin dialog in. The previous instance is
// handed over for teardown by the swap callback before this returns.
func (r *Registry) AttachPlugin(name string, dialog plugins.Dialog) {
	if dialog == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pluginName = name
	r.pluginActive = true

	if r.callback != nil {
		r.callback(dialog)
	}

	r.emitLocked(Event{Type: EventPluginAttached, Plugin: name})
}

// DetachPlugin removes the attached plugin and restores the default dialog.
// A detach with no plugin attached is a no-op.
func (r *Registry) DetachPlugin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pluginActive {
		return
	}

	name := r.pluginName
	r.pluginName = ""
	r.pluginActive = false

	r.dispatchDefaultLocked()
	r.emitLocked(Event{Type: EventPluginDetached, Plugin: name})
}

// Rebuild re-dispatches the current source. With the default supplying the
// dialog this installs a fresh default instance, which picks up collaborators
// bound after the previous build. With a plugin attached it is a no-op: the
// plugin instance is externally owned.
func (r *Registry) Rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pluginActive {
		return
	}

	r.dispatchDefaultLocked()
}

// PluginActive reports whether a plugin currently supplies the dialog.
func (r *Registry) PluginActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pluginActive
}

// PluginName returns the attached plugin's name, empty when none.
func (r *Registry) PluginName() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pluginName
}

// dispatchDefaultLocked builds and dispatches the default instance.
// Callers must hold mu.
func (r *Registry) dispatchDefaultLocked() {
	if r.defaultFactory == nil || r.callback == nil {
		return
	}

	r.callback(r.defaultFactory())
	r.emitLocked(Event{Type: EventDefaultBuilt})
}

// emitLocked notifies the handler if one is registered. Callers must hold mu.
func (r *Registry) emitLocked(event Event) {
	if r.handler != nil {
		r.handler(event)
	}
}
