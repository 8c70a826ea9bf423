// Package checker polls the volume daemon's health: the process must exist
// in the process table and the control socket must answer policy queries.
package checker
