package hubspot

import (
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production API endpoint
	DefaultBaseURL = "https://api.hubapi.com"
	// DefaultFormsBaseURL is the unauthenticated form submission endpoint
	DefaultFormsBaseURL = "https://forms.hubspot.com"

	// APIKeyParam is the query parameter carrying the API key
	APIKeyParam = "hapikey"
	// PortalIDParam is the placeholder and parameter name of the account id
	PortalIDParam = "portal_id"
)

// Config holds the settings every request reads. Empty strings mean "not set".
type Config struct {
	APIKey      string
	UseOAuth2   bool
	OAuth2Token string
	BaseURL     string
	PortalID    string

	// Logger receives one event per request. Nil discards.
	Logger *zerolog.Logger
}

// WithDefaults returns a copy of c with BaseURL and Logger filled in.
func (c Config) WithDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}

// Validate checks the authentication invariant without building a request.
func (c Config) Validate() error {
	if c.UseOAuth2 {
		if !c.oauth2UsageValid() {
			return oauth2ConfigError()
		}
		return nil
	}
	if c.APIKey == "" {
		return &ConfigurationError{Key: "hapikey", Reason: "not configured"}
	}
	return nil
}

// AuthMode reports which authentication strategy the configuration selects.
func (c Config) AuthMode() AuthMode {
	switch {
	case c.UseOAuth2:
		return AuthOAuth2
	case c.APIKey != "":
		return AuthAPIKey
	default:
		return AuthUnconfigured
	}
}

func (c Config) oauth2UsageValid() bool {
	return c.OAuth2Token != "" && c.APIKey == ""
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}
