package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/volume-overlay/internal/controller"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
	repo "github.com/oshokin/volume-overlay/internal/repository/state"
)

// persistingSink wraps the recording controller and writes a policy snapshot
// on every push, so the last applied policy survives daemon restarts even
// when it arrived over the control socket rather than the settings file.
type persistingSink struct {
	*controller.Recording

	// ctx carries the named logger for persistence warnings.
	ctx context.Context
	// repo stores the snapshots.
	repo repo.Repository

	// mu protects lastActor.
	mu sync.Mutex
	// lastActor attributes the next policy push, nil for watcher changes.
	lastActor *volume.Actor
}

// newPersistingSink builds the controller sink backed by the repository.
func newPersistingSink(ctx context.Context, repository repo.Repository) *persistingSink {
	return &persistingSink{
		Recording: controller.New(ctx),
		ctx:       ctx,
		repo:      repository,
	}
}

// NoteActor attributes the next policy push to the given actor. The
// attribution is consumed by that push; later watcher-driven pushes are
// recorded without an actor.
func (s *persistingSink) NoteActor(actor *volume.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActor = actor.Clone()
}

// SetVolumePolicy records the push and persists the snapshot.
func (s *persistingSink) SetVolumePolicy(policy volume.Policy) {
	s.Recording.SetVolumePolicy(policy)

	s.mu.Lock()
	actor := s.lastActor
	s.lastActor = nil
	s.mu.Unlock()

	snapshot := &volume.Snapshot{
		Timestamp: time.Now(),
		LastActor: actor,
		Policy:    policy,
	}

	if err := s.repo.Save(s.ctx, snapshot); err != nil {
		logger.WarnKV(s.ctx, "Failed to persist policy snapshot", "error", err)
	}
}
