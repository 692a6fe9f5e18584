package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/clipboard-historian/")
	v.AddConfigPath("$HOME/.clipboard-historian")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("CLIP_HISTORIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.similarity_threshold", 0.95)
	v.SetDefault("analysis.timeout", "200ms")
	v.SetDefault("analysis.max_content_size", 1024*1024)
	v.SetDefault("analysis.producer_detection", true)
	v.SetDefault("analysis.redundancy_scoring", true)
	v.SetDefault("analysis.log_details", false)

	// History storage defaults
	v.SetDefault("history.backend", "sqlite")
	v.SetDefault("history.sqlite_path", "./data/history.db")
	v.SetDefault("history.mysql_dsn", "user:password@tcp(localhost:3306)/clipboard_historian")
	v.SetDefault("history.retention", "720h")
	v.SetDefault("history.cleanup_frequency", "1h")
	v.SetDefault("history.preview_max_chars", 100)

	// Capture defaults
	v.SetDefault("capture.poll_interval", "500ms")
	v.SetDefault("capture.ignored_apps", []string{})

	// Notification defaults
	v.SetDefault("notify.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
