package extension

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/volume-overlay/internal/plugins"
)

// stubDialog is a minimal Dialog implementation for registry tests.
type stubDialog struct {
	// name labels the instance for assertions.
	name string
}

func (d *stubDialog) Init(plugins.WindowType, plugins.DialogCallback) {}

func (d *stubDialog) Destroy() {}

// TestRegistry_BindDispatchesDefault verifies the initial dispatch on Bind.
func TestRegistry_BindDispatchesDefault(t *testing.T) {
	t.Parallel()

	var installed []*stubDialog

	r := New()
	r.Bind(
		func() plugins.Dialog { return &stubDialog{name: "default"} },
		func(d plugins.Dialog) {
			installed = append(installed, d.(*stubDialog))
		},
	)

	require.Len(t, installed, 1)
	require.Equal(t, "default", installed[0].name)
	require.False(t, r.PluginActive())
}

// TestRegistry_AttachDetach walks the plugin swap cycle and checks events.
func TestRegistry_AttachDetach(t *testing.T) {
	t.Parallel()

	var (
		installed []*stubDialog
		events    []Event
	)

	r := New(WithEventHandler(func(e Event) {
		events = append(events, e)
	}))
	r.Bind(
		func() plugins.Dialog { return &stubDialog{name: "default"} },
		func(d plugins.Dialog) {
			installed = append(installed, d.(*stubDialog))
		},
	)

	r.AttachPlugin("fancy", &stubDialog{name: "fancy"})
	require.True(t, r.PluginActive())
	require.Equal(t, "fancy", r.PluginName())

	r.DetachPlugin()
	require.False(t, r.PluginActive())
	require.Empty(t, r.PluginName())

	// Detach without an attached plugin is a no-op.
	r.DetachPlugin()

	require.Len(t, installed, 3)
	require.Equal(t, "default", installed[0].name)
	require.Equal(t, "fancy", installed[1].name)
	require.Equal(t, "default", installed[2].name)

	require.Equal(t, []Event{
		{Type: EventDefaultBuilt},
		{Type: EventPluginAttached, Plugin: "fancy"},
		{Type: EventDefaultBuilt},
		{Type: EventPluginDetached, Plugin: "fancy"},
	}, events)
}

// TestRegistry_NilPluginIgnored asserts that attaching nil does not dispatch.
func TestRegistry_NilPluginIgnored(t *testing.T) {
	t.Parallel()

	var installs int

	r := New()
	r.Bind(
		func() plugins.Dialog { return new(stubDialog) },
		func(plugins.Dialog) { installs++ },
	)

	r.AttachPlugin("ghost", nil)
	require.Equal(t, 1, installs)
	require.False(t, r.PluginActive())
}

// TestRegistry_Rebuild re-dispatches the default and ignores rebuilds while
// a plugin is attached.
func TestRegistry_Rebuild(t *testing.T) {
	t.Parallel()

	var installed []*stubDialog

	r := New()
	r.Bind(
		func() plugins.Dialog { return &stubDialog{name: "default"} },
		func(d plugins.Dialog) {
			installed = append(installed, d.(*stubDialog))
		},
	)

	r.Rebuild()
	require.Len(t, installed, 2)
	require.NotSame(t, installed[0], installed[1])

	r.AttachPlugin("fancy", &stubDialog{name: "fancy"})
	r.Rebuild()

	// The plugin instance stays; no extra install happened.
	require.Len(t, installed, 3)
	require.Equal(t, "fancy", installed[2].name)
}

// TestEventType_String covers the event name mapping.
func TestEventType_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "default-built", EventDefaultBuilt.String())
	require.Equal(t, "plugin-attached", EventPluginAttached.String())
	require.Equal(t, "plugin-detached", EventPluginDetached.String())
	require.Equal(t, "unknown", EventType(99).String())
}
