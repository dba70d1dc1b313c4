package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete monoserve configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Launch   LaunchConfig   `mapstructure:"launch"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig identifies the server executable to coordinate
type ServerConfig struct {
	// Command is the server executable name or path. It is invoked with
	// the caller's argument list as separate argv entries, never through
	// a shell.
	Command string `mapstructure:"command"`
}

// LaunchConfig controls the launch protocol's timing
type LaunchConfig struct {
	// TimeoutSeconds is how long to wait for a spawned server to
	// register itself before giving up (the child is not killed)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// PollIntervalMs is the fixed interval between checks of the child
	// and the registry while waiting
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

// RegistryConfig controls where descriptor files live
type RegistryConfig struct {
	// Dir overrides the registry directory. Empty means the shared
	// default under the system temp root; every process that should
	// share instances must agree on this value.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path. Empty logs to stderr.
	File string `mapstructure:"file"`
}

// Timeout returns the launch timeout as a time.Duration
func (c *LaunchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the poll interval as a time.Duration
func (c *LaunchConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Command: "monoserved",
		},
		Launch: LaunchConfig{
			TimeoutSeconds: 60,
			PollIntervalMs: 500,
		},
		Registry: RegistryConfig{
			Dir: "", // Empty means the shared tempdir default
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("server.command", defaults.Server.Command)

	viper.SetDefault("launch.timeout_seconds", defaults.Launch.TimeoutSeconds)
	viper.SetDefault("launch.poll_interval_ms", defaults.Launch.PollIntervalMs)

	viper.SetDefault("registry.dir", defaults.Registry.Dir)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "monoserve")
	}
	// Fall back to ~/.config/monoserve
	home, err := os.UserHomeDir()
	if err != nil {
		return ".monoserve"
	}
	return filepath.Join(home, ".config", "monoserve")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
