package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	HubSpot HubSpotConfig `mapstructure:"hubspot"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HubSpotConfig holds API connection and authentication details
type HubSpotConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	UseOAuth2    bool          `mapstructure:"use_oauth2"`
	OAuth2Token  string        `mapstructure:"oauth2_token"`
	BaseURL      string        `mapstructure:"base_url" validate:"omitempty,url"`
	FormsBaseURL string        `mapstructure:"forms_base_url" validate:"omitempty,url"`
	PortalID     string        `mapstructure:"portal_id" validate:"omitempty,numeric"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// FilterConfig maps filter names to expressions
type FilterConfig map[string]string

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=table json"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
	File   string `mapstructure:"file"`
}
