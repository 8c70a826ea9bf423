// Package volume contains core domain types for the overlay orchestrator.
//
// It defines the immutable Policy pushed to the volume controller, the
// tunable keys it is derived from, the tracked device Configuration with
// its Fingerprint, and small shared values (Actor, Stream).
package volume
