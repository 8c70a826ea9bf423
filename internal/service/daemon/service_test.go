package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/volume-overlay/internal/controller"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/extension"
	"github.com/oshokin/volume-overlay/internal/service/component"
)

// newTestService wires a service around a real orchestrator with a recording
// controller behind it.
func newTestService(t *testing.T) (*service, *controller.Recording) {
	t.Helper()

	ctx := context.Background()
	sink := controller.New(ctx)

	orchestrator, err := component.New(ctx, component.Config{
		Controller: sink,
		Extensions: extension.New(),
	})
	require.NoError(t, err)

	return newService(orchestrator, nil), sink
}

// TestService_DismissNow forwards the dismiss to the controller.
func TestService_DismissNow(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)

	initiator := &volume.Actor{Hostname: "host-1", Username: "user-1"}
	require.NoError(t, svc.DismissNow(context.Background(), initiator))
	require.Equal(t, 1, sink.Dismissals())
}

// TestService_ApplyTunable applies a change and reports the derived policy.
func TestService_ApplyTunable(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)

	policy, err := svc.ApplyTunable(context.Background(), nil, volume.DoNotDisturbKey, "1")
	require.NoError(t, err)
	require.True(t, policy.DoNotDisturbWhenSilent)
	require.Equal(t, policy, sink.Policy())
}

// TestService_ApplyTunable_UnknownKey rejects keys outside the tunable set.
func TestService_ApplyTunable_UnknownKey(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)

	pushes := sink.PolicyPushes()

	_, err := svc.ApplyTunable(context.Background(), nil, "sysui_unknown", "1")
	require.Error(t, err)
	require.Equal(t, pushes, sink.PolicyPushes())
}

// TestService_CurrentPolicy returns the orchestrator's policy.
func TestService_CurrentPolicy(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	require.Equal(t, volume.DefaultPolicy(), svc.CurrentPolicy(context.Background()))
}
