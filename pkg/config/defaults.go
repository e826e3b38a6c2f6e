package config

import (
	"os"
	"time"

	"github.com/ccollicutt/wmslog/pkg/chart"
)

// Default values for configuration.
const (
	DefaultTimezone        = "Local"
	DefaultLogLevel        = "info"
	DefaultOutput          = "text"
	DefaultChartFormat     = "png"
	DefaultWebhookEncoding = "json"
	DefaultWebhookTimeout  = 10 * time.Second
)

// Environment variable names.
const (
	EnvTimezone = "WMSLOG_TIMEZONE"
	EnvLogLevel = "WMSLOG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timezone: DefaultTimezone,
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		Charts: ChartsConfig{
			Format:   DefaultChartFormat,
			Viewport: chart.DefaultViewport(),
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}
