package tuner

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
)

// Tunable observes changes to named settings keys.
type Tunable interface {
	// OnTuningChanged delivers the raw string value for an observed key.
	OnTuningChanged(key, value string)
}

// ConfigurationListener observes the appearance section of the settings file.
type ConfigurationListener interface {
	OnConfigurationChanged(cfg volume.Configuration)
}

// Appearance keys in the settings file.
const (
	appearanceFontScaleKey  = "appearance.font_scale"
	appearanceLocaleKey     = "appearance.locale"
	appearanceAssetPathsKey = "appearance.asset_paths"
	appearanceUIModeKey     = "appearance.ui_mode"
)

// DefaultFontScale is the font scale assumed when the settings file has none.
const DefaultFontScale = 1.0

// Service watches a YAML settings file and dispatches tunable and
// appearance changes to registered observers. Registration delivers the
// current value immediately, which is how the initial policy derivation is
// seeded at startup.
type Service struct {
	// ctx carries the named logger for tuner events.
	ctx context.Context

	// v reads the settings file.
	v *viper.Viper
	// path is the watched settings file location.
	path string

	// mu protects observers and the last dispatched values.
	mu sync.Mutex

	// tunables maps settings keys to their observers.
	tunables map[string][]Tunable
	// values holds the last dispatched raw value per key.
	values map[string]string
	// listeners observe the appearance configuration.
	listeners []ConfigurationListener
}

// New creates a tuner backed by the YAML settings file at path. A missing
// file is not an error: all keys read as absent until it appears.
func New(ctx context.Context, path string) *Service {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(appearanceFontScaleKey, DefaultFontScale)

	// Missing settings files are tolerated.
	_ = v.ReadInConfig()

	return &Service{
		ctx:      logger.WithName(ctx, "tuner"),
		v:        v,
		path:     path,
		tunables: make(map[string][]Tunable),
		values:   make(map[string]string),
	}
}

// AddTunable registers an observer for the provided keys and immediately
// delivers each key's current value, absent keys included.
func (s *Service) AddTunable(t Tunable, keys ...string) {
	if t == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		s.tunables[key] = append(s.tunables[key], t)

		value := s.v.GetString(key)
		s.values[key] = value

		t.OnTuningChanged(key, value)
	}
}

// AddConfigurationListener registers an appearance observer and immediately
// delivers the current configuration.
func (s *Service) AddConfigurationListener(l ConfigurationListener) {
	if l == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)

	l.OnConfigurationChanged(s.configurationLocked())
}

// Start begins watching the settings file. Changes are dispatched on the
// watcher goroutine.
func (s *Service) Start() {
	s.v.OnConfigChange(func(fsnotify.Event) {
		s.Reload()
	})
	s.v.WatchConfig()

	logger.InfoKV(s.ctx, "Watching settings", "path", s.path)
}

// Reload re-reads the settings file and dispatches every key whose value
// changed since the last dispatch, plus the appearance configuration.
func (s *Service) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		logger.WarnKV(s.ctx, "Settings reload failed", "path", s.path, "error", err)

		return
	}

	for key, observers := range s.tunables {
		value := s.v.GetString(key)
		if value == s.values[key] {
			continue
		}

		s.values[key] = value

		logger.DebugKV(s.ctx, "Tunable changed", "key", key, "value", value)

		for _, t := range observers {
			t.OnTuningChanged(key, value)
		}
	}

	cfg := s.configurationLocked()
	for _, l := range s.listeners {
		l.OnConfigurationChanged(cfg)
	}
}

// Value returns the current raw value for a key.
func (s *Service) Value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.v.GetString(key)
}

// Configuration returns the current appearance configuration.
func (s *Service) Configuration() volume.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.configurationLocked()
}

// configurationLocked assembles the appearance section. Callers must hold mu.
func (s *Service) configurationLocked() volume.Configuration {
	return volume.Configuration{
		FontScale:  s.v.GetFloat64(appearanceFontScaleKey),
		Locale:     s.v.GetString(appearanceLocaleKey),
		AssetPaths: s.v.GetStringSlice(appearanceAssetPathsKey),
		UIMode:     s.v.GetString(appearanceUIModeKey),
	}
}

// ParseIntegerSwitch interprets a raw settings value as an integer switch:
// any integer other than zero is true, zero is false, and anything
// unparsable (including the empty string) resolves to defaultValue.
func ParseIntegerSwitch(value string, defaultValue bool) bool {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return n != 0
}
