// Package state implements persistence for the policy Snapshot.
//
// The FileRepository stores and loads the snapshot as JSON on disk and
// exposes a Repository interface that the daemon service depends on.
package state
