package volume

import "time"

// Snapshot captures the daemon's policy at a specific point in time. It is
// persisted so operators can inspect the last applied policy, including
// changes pushed over the control socket that never reach the settings file.
type Snapshot struct {
	// Timestamp is when the policy was last changed.
	Timestamp time.Time
	// LastActor is the user who triggered the change, nil for changes from
	// the settings watcher.
	LastActor *Actor
	// Policy is the policy that was applied.
	Policy Policy
}

// Clone returns a copy of the snapshot to avoid leaking internal references.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		Timestamp: s.Timestamp,
		LastActor: s.LastActor.Clone(),
		Policy:    s.Policy,
	}
}
