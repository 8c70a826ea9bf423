package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	repo "github.com/oshokin/volume-overlay/internal/repository/state"
)

// TestPersistingSink writes a snapshot per push and consumes the actor
// attribution with the push it precedes.
func TestPersistingSink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repository := repo.NewFileRepository(filepath.Join(t.TempDir(), "snapshot.json"))
	sink := newPersistingSink(ctx, repository)

	actor := &volume.Actor{Hostname: "host-1", Username: "user-1"}
	attributed := volume.DefaultPolicy()
	attributed.DoNotDisturbWhenSilent = true

	sink.NoteActor(actor)
	sink.SetVolumePolicy(attributed)

	got, err := repository.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, attributed, got.Policy)
	require.Equal(t, actor, got.LastActor)

	// The attribution is consumed; the next push has no actor.
	sink.SetVolumePolicy(volume.DefaultPolicy())

	got, err = repository.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, volume.DefaultPolicy(), got.Policy)
	require.Nil(t, got.LastActor)

	// The recording side still observed both pushes.
	require.Equal(t, 2, sink.PolicyPushes())
}
