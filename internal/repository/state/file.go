package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// Repository defines persistence operations for the policy snapshot.
type Repository interface {
	Load(ctx context.Context) (*volume.Snapshot, error)
	Save(ctx context.Context, snapshot *volume.Snapshot) error
}

// FileRepository persists the policy snapshot to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON snapshot file.
	path string
	// mu protects concurrent access to the snapshot file.
	mu sync.Mutex
}

// ErrNotFound is returned when the snapshot file does not exist yet.
var ErrNotFound = errors.New("snapshot not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*volume.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var stored fileSnapshot
	if err = json.Unmarshal(contents, &stored); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return fromFile(&stored), nil
}

// Save writes the snapshot to disk using JSON representation.
func (r *FileRepository) Save(_ context.Context, snapshot *volume.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(toFile(snapshot), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

// fileSnapshot is the on-disk form of a policy snapshot.
type fileSnapshot struct {
	Timestamp                 time.Time     `json:"timestamp"`
	LastActor                 *volume.Actor `json:"lastActor,omitempty"`
	VolumeDownToEnterSilent   bool          `json:"volumeDownToEnterSilent"`
	VolumeUpToExitSilent      bool          `json:"volumeUpToExitSilent"`
	DoNotDisturbWhenSilent    bool          `json:"doNotDisturbWhenSilent"`
	VibrateToSilentDebounceMS int64         `json:"vibrateToSilentDebounceMs"`
}

// fromFile converts the on-disk form into the domain snapshot.
func fromFile(stored *fileSnapshot) *volume.Snapshot {
	return &volume.Snapshot{
		Timestamp: stored.Timestamp,
		LastActor: stored.LastActor.Clone(),
		Policy: volume.Policy{
			VolumeDownToEnterSilent: stored.VolumeDownToEnterSilent,
			VolumeUpToExitSilent:    stored.VolumeUpToExitSilent,
			DoNotDisturbWhenSilent:  stored.DoNotDisturbWhenSilent,
			VibrateToSilentDebounce: time.Duration(stored.VibrateToSilentDebounceMS) * time.Millisecond,
		},
	}
}

// toFile converts the domain snapshot into the on-disk form.
func toFile(snapshot *volume.Snapshot) *fileSnapshot {
	return &fileSnapshot{
		Timestamp:                 snapshot.Timestamp,
		LastActor:                 snapshot.LastActor.Clone(),
		VolumeDownToEnterSilent:   snapshot.Policy.VolumeDownToEnterSilent,
		VolumeUpToExitSilent:      snapshot.Policy.VolumeUpToExitSilent,
		DoNotDisturbWhenSilent:    snapshot.Policy.DoNotDisturbWhenSilent,
		VibrateToSilentDebounceMS: snapshot.Policy.VibrateToSilentDebounce.Milliseconds(),
	}
}
