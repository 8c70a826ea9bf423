// Package plugins declares the contracts between the overlay orchestrator
// and its collaborators: the overlay Dialog and TriState surfaces (built-in
// or plugin-supplied), the volume Controller, and the shell facilities for
// navigation, keyguard activity, and media metadata.
//
// Rendering, audio state, and navigation are implemented outside this
// module; only the interfaces the orchestrator calls live here.
package plugins
