// Package config defines daemon settings used by the volume binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the control socket address, the watched tunable
// settings path and the alert-slider capability flag.
package config
