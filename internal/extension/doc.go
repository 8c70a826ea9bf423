// Package extension implements the overlay's single plugin extension point.
//
// A Registry holds either the default Dialog (built by a factory) or one
// plugin-supplied replacement. Attach, detach, and the initial Bind all
// funnel through one serialized swap callback, which is what lets the
// orchestrator guarantee destroy-before-install ordering.
package extension
