// Package component implements the volume overlay orchestrator.
//
// The Component owns the single mutable volume Policy, the Dialog and
// TriState ownership slots, and the interesting-configuration tracker. It
// derives policy updates from tunable changes, swaps plugin-supplied
// dialogs with strict destroy-before-install ordering, filters redundant
// configuration-change notifications, and routes dialog callbacks to the
// navigation and keyguard facilities.
package component
