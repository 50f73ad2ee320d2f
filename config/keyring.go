package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	serviceName       = "hubspot"
	apiKeyItem        = "api_key"
	envKeyringPass    = "HUBSPOT_KEYRING_PASSWORD"
	envKeyringBackend = "HUBSPOT_KEYRING_BACKEND"
)

// ErrNoStoredKey is returned when the keyring holds no API key.
var ErrNoStoredKey = errors.New("no API key stored - run 'hubspot auth set-key' first")

// openKeyring can be replaced in tests.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring replaces the keyring opener and returns a restore function.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{
		ServiceName:      serviceName,
		FileDir:          keyringFileDir(),
		FilePasswordFunc: keyringFilePassword,
	}
	if os.Getenv(envKeyringBackend) == "file" {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

func keyringFileDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, serviceName, "keyring")
}

func keyringFilePassword(prompt string) (string, error) {
	if pass, ok := os.LookupEnv(envKeyringPass); ok {
		return pass, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// SaveAPIKey stores key in the OS keyring.
func SaveAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}

	return ring.Set(keyring.Item{
		Key:         apiKeyItem,
		Data:        []byte(key),
		Label:       "HubSpot API key",
		Description: "hapikey used by the hubspot CLI",
	})
}

// LoadAPIKey reads the stored API key.
func LoadAPIKey() (string, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return "", fmt.Errorf("failed to open keyring: %w", err)
	}

	item, err := ring.Get(apiKeyItem)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoStoredKey
		}
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return string(item.Data), nil
}

// DeleteAPIKey removes the stored API key. Deleting a missing key is not an error.
func DeleteAPIKey() error {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}

	if err := ring.Remove(apiKeyItem); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	return nil
}
