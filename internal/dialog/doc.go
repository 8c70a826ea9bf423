// Package dialog provides the built-in overlay surfaces: the default volume
// Overlay and the alert-slider TriState indicator.
//
// Both types hold surface state only; the hosting shell owns presentation
// and drives the input affordances (ClickZenSettings, SetPosition).
package dialog
