// Package daemon runs the volume overlay daemon: the orchestrator, the
// watched settings file and the TCP control socket, wired together and
// torn down on context cancellation.
package daemon
