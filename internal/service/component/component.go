package component

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/oshokin/volume-overlay/internal/dialog"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/extension"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/plugins"
)

// Config wires the orchestrator to its collaborators. Controller and
// Extensions are required; the rest are optional and absorbed when absent.
type Config struct {
	// Controller receives policy updates and lifecycle notifications.
	Controller plugins.Controller
	// Extensions is the registry supplying dialog instances.
	Extensions *extension.Registry
	// Starter navigates to settings screens. Optional.
	Starter plugins.ActivityStarter
	// Keyguard receives user-activity notifications. Optional.
	Keyguard plugins.KeyguardMediator
	// HasAlertSlider enables the tri-state indicator. Read once here;
	// never re-evaluated.
	HasAlertSlider bool
	// TriStateFactory overrides the built-in tri-state construction.
	// Optional; used by tests and shells with their own indicator.
	TriStateFactory func() plugins.TriState
}

var (
	// errControllerRequired is returned when no controller is provided.
	errControllerRequired = errors.New("controller must be provided")
	// errExtensionsRequired is returned when no extension registry is provided.
	errExtensionsRequired = errors.New("extension registry must be provided")
)

// Component orchestrates the volume overlay: it owns the single mutable
// policy, the Dialog and TriState ownership slots, the interesting-config
// tracker, and the routing of dialog callbacks to the shell facilities.
type Component struct {
	// ctx carries the named logger for orchestrator events.
	ctx context.Context

	// controller, starter and keyguard are the injected collaborators.
	controller plugins.Controller
	starter    plugins.ActivityStarter
	keyguard   plugins.KeyguardMediator

	// extensions supplies dialog instances through the swap callback.
	extensions *extension.Registry

	// hasAlertSlider gates the tri-state slot; fixed at construction.
	hasAlertSlider bool
	// triStateFactory builds tri-state instances when the slot refreshes.
	triStateFactory func() plugins.TriState

	// mu protects the policy, the ownership slots and the media manager.
	// The original runs on a single UI thread; the daemon delivers events
	// from watcher and socket goroutines, so the slots need a lock here.
	mu sync.Mutex

	// policy is the current volume policy, replaced wholesale on change.
	policy volume.Policy
	// mediaManager is the late-bound media metadata source, may be nil.
	mediaManager plugins.MediaManager

	// activeDialog holds the single live overlay instance, nil when empty.
	activeDialog plugins.Dialog
	// activeTriState holds the single live indicator instance, nil when
	// empty or when the capability is absent.
	activeTriState plugins.TriState

	// configChanges tracks the interesting configuration fingerprint.
	configChanges configTracker
}

// New builds the orchestrator, registers it as the controller's
// user-activity listener, binds the extension registry (which installs the
// default dialog synchronously), and pushes the initial default policy.
func New(ctx context.Context, cfg Config) (*Component, error) {
	if cfg.Controller == nil {
		return nil, errControllerRequired
	}

	if cfg.Extensions == nil {
		return nil, errExtensionsRequired
	}

	c := &Component{
		ctx:             logger.WithName(ctx, "volume-component"),
		controller:      cfg.Controller,
		starter:         cfg.Starter,
		keyguard:        cfg.Keyguard,
		extensions:      cfg.Extensions,
		hasAlertSlider:  cfg.HasAlertSlider,
		triStateFactory: cfg.TriStateFactory,
		policy:          volume.DefaultPolicy(),
	}

	if c.triStateFactory == nil {
		c.triStateFactory = func() plugins.TriState {
			return dialog.NewTriState()
		}
	}

	c.controller.SetUserActivityListener(c)

	// Installs the default dialog (and tri-state, when capable) before New
	// returns, so there is never a window without an active overlay.
	c.extensions.Bind(c.createDefault, c.installDialog)

	c.applyCurrentPolicy()

	return c, nil
}

// Register activates the controller and requests the combined icon for the
// do-not-disturb shortcut tile.
func (c *Component) Register() {
	c.controller.Register()
	c.controller.ShowDNDTile(true)
}

// DismissNow forwards a dismiss request to the controller, independent of
// which dialog is active.
func (c *Component) DismissNow() {
	c.controller.Dismiss()
}

// SetEnableDialogs toggles the volume UI and the safety warning dialog.
func (c *Component) SetEnableDialogs(volumeUI, safetyWarning bool) {
	c.controller.SetEnableDialogs(volumeUI, safetyWarning)
}

// InitDependencies late-binds the media manager used for the default
// overlay's text. The manager may arrive after construction; until then the
// default overlay is built without media text.
func (c *Component) InitDependencies(manager plugins.MediaManager) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mediaManager = manager
}

// DispatchDemoCommand accepts demo-mode commands and ignores them.
func (c *Component) DispatchDemoCommand(string, map[string]string) {}

// Dump is a no-op; the orchestrator contributes nothing to process dumps.
func (c *Component) Dump(io.Writer, ...string) {}

// CurrentPolicy returns the current volume policy.
func (c *Component) CurrentPolicy() volume.Policy {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.policy
}

// ActiveDialog returns the live overlay instance, nil when empty.
func (c *Component) ActiveDialog() plugins.Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.activeDialog
}

// ActiveTriState returns the live indicator instance, nil when empty.
func (c *Component) ActiveTriState() plugins.TriState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.activeTriState
}

// Shutdown destroys the active surfaces with no replacement. Used at end of
// process; safe to call once after which the slots stay empty.
func (c *Component) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeDialog != nil {
		c.activeDialog.Destroy()
		c.activeDialog = nil
	}

	if c.activeTriState != nil {
		c.activeTriState.Destroy()
		c.activeTriState = nil
	}

	logger.Info(c.ctx, "Overlay surfaces released")
}

// installDialog is the single mutation point for the dialog slot. The
// extension registry serializes calls, so the sequence below is strict:
// destroy the previous instance, install, initialize, then refresh the
// tri-state slot the same way.
func (c *Component) installDialog(d plugins.Dialog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeDialog != nil {
		c.activeDialog.Destroy()
		c.activeDialog = nil
	}

	c.activeDialog = d
	d.Init(plugins.WindowTypeVolumeOverlay, &dialogCallbacks{component: c})

	if !c.hasAlertSlider {
		return
	}

	if c.activeTriState != nil {
		c.activeTriState.Destroy()
		c.activeTriState = nil
	}

	ts := c.triStateFactory()
	c.activeTriState = ts
	ts.Init(plugins.WindowTypeVolumeOverlay, c)
}

// createDefault builds the built-in overlay with its fixed configuration:
// the system stream is unimportant for UI purposes, automute is on, silent
// mode is off, and the text comes from the possibly-absent media manager.
func (c *Component) createDefault() plugins.Dialog {
	impl := dialog.NewOverlay()
	impl.SetStreamImportant(volume.StreamSystem, false)
	impl.SetAutomute(true)
	impl.SetSilentMode(false)

	c.mu.Lock()
	manager := c.mediaManager
	c.mu.Unlock()

	impl.InitText(manager)

	return impl
}
