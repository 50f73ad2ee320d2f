package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
hubspot:
  api_key: demo
  portal_id: "62515"
  timeout: 10s
filter:
  active: isActive
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HubSpot.APIKey != "demo" {
		t.Errorf("api_key = %q", cfg.HubSpot.APIKey)
	}
	if cfg.HubSpot.PortalID != "62515" {
		t.Errorf("portal_id = %q", cfg.HubSpot.PortalID)
	}
	if cfg.HubSpot.Timeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.HubSpot.Timeout)
	}
	if cfg.HubSpot.BaseURL != "https://api.hubapi.com" {
		t.Errorf("base_url default not applied: %q", cfg.HubSpot.BaseURL)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("output.format = %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.FilterExpression("active") != "isActive" {
		t.Errorf("named filter not loaded")
	}
	if cfg.FilterExpression(`has("email")`) != `has("email")` {
		t.Errorf("unnamed expression should pass through")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "hubspot:\n  api_key: from-file\n")

	t.Setenv("HUBSPOT_API_KEY", "from-env")
	t.Setenv("HUBSPOT_PORTAL_ID", "123")
	t.Setenv("HUBSPOT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HubSpot.APIKey != "from-env" {
		t.Errorf("api_key = %q, want env override", cfg.HubSpot.APIKey)
	}
	if cfg.HubSpot.PortalID != "123" {
		t.Errorf("portal_id = %q", cfg.HubSpot.PortalID)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoadOAuth2FromEnv(t *testing.T) {
	t.Setenv("HUBSPOT_USE_OAUTH2", "true")
	t.Setenv("HUBSPOT_OAUTH2_TOKEN", "T")

	cfg, err := Load(writeConfig(t, "logging:\n  level: info\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.HubSpot.UseOAuth2 || cfg.HubSpot.OAuth2Token != "T" {
		t.Errorf("oauth2 settings not applied: %+v", cfg.HubSpot)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "logging:\n  level: loud\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error %q should name logging.level", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HubSpot: HubSpotConfig{APIKey: "demo", BaseURL: "https://api.hubapi.com"},
			Output:  OutputConfig{Format: "table"},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "missing api key is allowed",
			mutate: func(c *Config) { c.HubSpot.APIKey = "" },
		},
		{
			name:    "oauth2 without token",
			mutate:  func(c *Config) { c.HubSpot.UseOAuth2 = true; c.HubSpot.APIKey = "" },
			wantErr: "oauth2_token is required",
		},
		{
			name: "oauth2 with api key",
			mutate: func(c *Config) {
				c.HubSpot.UseOAuth2 = true
				c.HubSpot.OAuth2Token = "T"
			},
			wantErr: "api_key must be empty",
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.HubSpot.BaseURL = "not a url" },
			wantErr: "hubspot.base_url",
		},
		{
			name:    "non numeric portal id",
			mutate:  func(c *Config) { c.HubSpot.PortalID = "abc" },
			wantErr: "hubspot.portal_id",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "output.format",
		},
		{
			name:    "empty named filter",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"broken": " "} },
			wantErr: `filter "broken"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &Config{HubSpot: HubSpotConfig{
		APIKey:   "demo",
		BaseURL:  "http://localhost:8080",
		PortalID: "62515",
	}}

	client := cfg.ClientConfig(&logger)
	if client.APIKey != "demo" || client.BaseURL != "http://localhost:8080" || client.PortalID != "62515" {
		t.Errorf("ClientConfig() = %+v", client)
	}
	if client.Logger != &logger {
		t.Errorf("logger not passed through")
	}
	if err := client.Validate(); err != nil {
		t.Errorf("client config should be valid: %v", err)
	}
}

func useArrayKeyring(t *testing.T) {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	restore := SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
	t.Cleanup(restore)
}

func TestAPIKeyKeyring(t *testing.T) {
	useArrayKeyring(t)

	if _, err := LoadAPIKey(); !errors.Is(err, ErrNoStoredKey) {
		t.Fatalf("LoadAPIKey() on empty keyring = %v, want ErrNoStoredKey", err)
	}

	if err := SaveAPIKey(""); err == nil {
		t.Errorf("SaveAPIKey(\"\") should fail")
	}
	if err := SaveAPIKey("stored"); err != nil {
		t.Fatalf("SaveAPIKey() error = %v", err)
	}

	key, err := LoadAPIKey()
	if err != nil || key != "stored" {
		t.Fatalf("LoadAPIKey() = %q, %v", key, err)
	}

	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() error = %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Errorf("second DeleteAPIKey() error = %v", err)
	}
	if _, err := LoadAPIKey(); !errors.Is(err, ErrNoStoredKey) {
		t.Errorf("key should be gone, got %v", err)
	}
}

func TestResolveCredentials(t *testing.T) {
	useArrayKeyring(t)

	cfg := &Config{}
	if err := cfg.ResolveCredentials(); err != nil {
		t.Fatalf("ResolveCredentials() with empty keyring = %v", err)
	}
	if cfg.HubSpot.APIKey != "" {
		t.Errorf("api key should stay empty")
	}

	if err := SaveAPIKey("stored"); err != nil {
		t.Fatalf("SaveAPIKey() error = %v", err)
	}
	if err := cfg.ResolveCredentials(); err != nil {
		t.Fatalf("ResolveCredentials() error = %v", err)
	}
	if cfg.HubSpot.APIKey != "stored" {
		t.Errorf("api key = %q, want keyring value", cfg.HubSpot.APIKey)
	}

	explicit := &Config{HubSpot: HubSpotConfig{APIKey: "explicit"}}
	if err := explicit.ResolveCredentials(); err != nil || explicit.HubSpot.APIKey != "explicit" {
		t.Errorf("configured key must win, got %q, %v", explicit.HubSpot.APIKey, err)
	}

	oauth := &Config{HubSpot: HubSpotConfig{UseOAuth2: true, OAuth2Token: "T"}}
	if err := oauth.ResolveCredentials(); err != nil || oauth.HubSpot.APIKey != "" {
		t.Errorf("oauth2 must not read the keyring, got %q, %v", oauth.HubSpot.APIKey, err)
	}
}
