package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/s0up4200/hubspot/hubspot"
)

var validate = newValidator()

// newValidator reports field names by their mapstructure tag so errors read
// like config keys.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"hubspot.api_key":      "HUBSPOT_API_KEY",
	"hubspot.use_oauth2":   "HUBSPOT_USE_OAUTH2",
	"hubspot.oauth2_token": "HUBSPOT_OAUTH2_TOKEN",
	"hubspot.base_url":     "HUBSPOT_BASE_URL",
	"hubspot.portal_id":    "HUBSPOT_PORTAL_ID",
	"logging.level":        "HUBSPOT_LOG_LEVEL",
}

// Load reads configuration from configPath, or from the standard locations
// when configPath is empty. A missing file is only an error when a path was
// given explicitly; environment variables (and a .env file in the working
// directory) are applied either way.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load() // no error if .env doesn't exist

	v := viper.New()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hubspot"))
		}
		v.AddConfigPath("/etc/hubspot/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("hubspot.base_url", hubspot.DefaultBaseURL)
	v.SetDefault("hubspot.forms_base_url", hubspot.DefaultFormsBaseURL)
	v.SetDefault("hubspot.use_oauth2", false)
	v.SetDefault("hubspot.timeout", "30s")

	v.SetDefault("output.format", "table")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// Validate checks field formats and the authentication invariant. A missing
// API key is not an error here because it may come from the keyring.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %v (%s)", configKey(fe.Namespace()), fe.Value(), fe.Tag())
		}
		return err
	}

	if c.HubSpot.UseOAuth2 {
		if c.HubSpot.OAuth2Token == "" {
			return fmt.Errorf("hubspot.oauth2_token is required when hubspot.use_oauth2 is enabled")
		}
		if c.HubSpot.APIKey != "" {
			return fmt.Errorf("hubspot.api_key must be empty when hubspot.use_oauth2 is enabled")
		}
	}

	for name, expression := range c.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	return nil
}

// configKey strips the root type from a namespace like Config.hubspot.portal_id.
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}

// ResolveCredentials fills a missing API key from the keyring when OAuth2 is off.
func (c *Config) ResolveCredentials() error {
	if c.HubSpot.UseOAuth2 || c.HubSpot.APIKey != "" {
		return nil
	}

	key, err := LoadAPIKey()
	if err != nil {
		if errors.Is(err, ErrNoStoredKey) {
			return nil
		}
		return err
	}
	c.HubSpot.APIKey = key
	return nil
}

// ClientConfig converts the file configuration into a connection configuration.
func (c *Config) ClientConfig(logger *zerolog.Logger) hubspot.Config {
	return hubspot.Config{
		APIKey:      c.HubSpot.APIKey,
		UseOAuth2:   c.HubSpot.UseOAuth2,
		OAuth2Token: c.HubSpot.OAuth2Token,
		BaseURL:     c.HubSpot.BaseURL,
		PortalID:    c.HubSpot.PortalID,
		Logger:      logger,
	}
}

// FilterExpression returns the configured expression for name, or name itself
// when no filter with that name exists.
func (c *Config) FilterExpression(name string) string {
	if expression, ok := c.Filter[name]; ok {
		return expression
	}
	return name
}
