// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and env vars.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataPath locates the bbolt database file.
	DataPath string `koanf:"data_path"`

	// MetricsAddr configures the Prometheus listen address, e.g. ":9090".
	// Empty disables the metrics endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// Season numbers the persisted snapshots and standings.
	Season int `koanf:"season"`

	// BotLimit caps the simulated field kept in the season standings.
	BotLimit int `koanf:"bot_limit"`

	// DefaultBotRating rates simulated participants with no observed rating.
	DefaultBotRating int `koanf:"default_bot_rating"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		DataPath:         "paceline.db",
		MetricsAddr:      ":9090",
		Season:           1,
		BotLimit:         80,
		DefaultBotRating: 900,
	}
}
