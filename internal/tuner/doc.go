// Package tuner implements the settings-observation facility.
//
// A Service watches one YAML settings file (via viper/fsnotify) and
// dispatches raw string values for registered tunable keys, plus the
// appearance configuration section. Observer registration always delivers
// the current value synchronously.
package tuner
