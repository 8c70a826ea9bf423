// Package client defines the shared logic for volume-dismiss and volume-tune.
//
// Both commands connect to the daemon's control socket, push the requested
// operation and retry on transient failures until the daemon confirms.
package client
