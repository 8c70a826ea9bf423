package daemon

import (
	"context"
	"fmt"
	"slices"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	"github.com/oshokin/volume-overlay/internal/service/component"
)

// service bridges the control socket to the orchestrator. It is unexported
// to keep the transport decoupled from the implementation.
type service struct {
	// component is the overlay orchestrator receiving the requests.
	component *component.Component
	// sink attributes socket-driven policy pushes to their initiator,
	// may be nil.
	sink *persistingSink
}

// newService wraps the orchestrator for control socket dispatch.
func newService(c *component.Component, sink *persistingSink) *service {
	return &service{component: c, sink: sink}
}

// DismissNow dismisses the visible overlay on behalf of the initiator.
func (s *service) DismissNow(ctx context.Context, initiator *volume.Actor) error {
	logger.InfoKV(ctx, "Overlay dismiss requested", "initiator", initiator)

	s.component.DismissNow()

	return nil
}

// ApplyTunable applies one tunable change and returns the resulting policy.
// Unknown keys are rejected here so remote callers get a diagnostic instead
// of the silent no-op the settings watcher applies.
func (s *service) ApplyTunable(ctx context.Context, initiator *volume.Actor, key, value string) (volume.Policy, error) {
	if !slices.Contains(volume.TunableKeys(), key) {
		return volume.Policy{}, fmt.Errorf("unknown tunable key %q", key)
	}

	logger.InfoKV(ctx, "Tunable change requested",
		"initiator", initiator,
		"key", key,
		"value", value,
	)

	if s.sink != nil {
		s.sink.NoteActor(initiator)
	}

	s.component.OnTuningChanged(key, value)

	return s.component.CurrentPolicy(), nil
}

// CurrentPolicy returns the orchestrator's current volume policy.
func (s *service) CurrentPolicy(context.Context) volume.Policy {
	return s.component.CurrentPolicy()
}
