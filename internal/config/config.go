package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon parameters shared by the volume binaries.
type Config struct {
	// ListenAddress is the TCP address the control socket listens on and
	// the clients connect to.
	ListenAddress string `yaml:"listen_addr"`
	// SettingsFile is the path to the watched tunable settings file.
	SettingsFile string `yaml:"settings_file"`
	// StateFile is the path to the JSON file storing the policy snapshot.
	StateFile string `yaml:"state_file"`
	// HasAlertSlider enables the tri-state alert-slider indicator.
	HasAlertSlider bool `yaml:"has_alert_slider"`
	// Timeout is the duration for control socket operations.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level emitted by the daemon logger.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for daemon settings.
	DefaultConfigFilename = "volume-overlay.yaml"

	// DefaultSettingsFilename is the default filename for tunable settings.
	DefaultSettingsFilename = "volume-tunables.yaml"

	// DefaultStateFilename is the default filename for the policy snapshot JSON.
	DefaultStateFilename = "volume-overlay-state.json"

	// DefaultListenAddress is the default control socket address.
	DefaultListenAddress = "127.0.0.1:8585"

	// DefaultTimeout is the default duration for control socket operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is the default daemon log level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errListenSocketRequired is returned when the listen address is missing.
	errListenSocketRequired = errors.New("listen address must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting.
func Validate(settings *Config) error {
	if settings.ListenAddress == "" {
		return errListenSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen socket: %w", err)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	// Set default settings file if not specified
	if settings.SettingsFile == "" {
		settings.SettingsFile = DefaultSettingsFilename
	}

	// Set default state file if not specified
	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	return nil
}
