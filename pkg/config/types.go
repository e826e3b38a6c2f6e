// Package config provides configuration loading and validation for wmslog.
package config

import (
	"time"

	"github.com/ccollicutt/wmslog/pkg/chart"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Timezone is the IANA zone log timestamps are written in.
	// "Local" (the default) uses the machine's zone.
	Timezone string `yaml:"timezone"`

	// LogLevel is the diagnostic log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Output is the report format (text, json, msgpack).
	Output string `yaml:"output"`

	Charts   ChartsConfig    `yaml:"charts"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`

	// location is the resolved Timezone (populated during validation).
	location *time.Location
}

// Location returns the resolved timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// ChartsConfig controls chart rendering.
type ChartsConfig struct {
	// Dir is where chart images are written. Charts are skipped when empty.
	Dir string `yaml:"dir,omitempty"`

	// Format is the image format (png, svg).
	Format string `yaml:"format"`

	// Viewport is the size and margins of each chart.
	Viewport chart.Viewport `yaml:"viewport"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnErrors fires only when error lines were found (default).
	WebhookTriggerOnErrors WebhookTrigger = "on_errors"
	// WebhookTriggerAlways fires after every analysis.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending analysis reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Encoding is the payload encoding (json, msgpack).
	Encoding string `yaml:"encoding,omitempty"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
