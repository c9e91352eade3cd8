package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/lruiz/growthspace/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetGeminiKey retrieves the Gemini API key, preferring the environment
// variable over the OS keyring so CI and containers work without one
func GetGeminiKey() (string, error) {
	if key := os.Getenv(constants.GeminiKeyEnvVar); key != "" {
		return key, nil
	}
	return get(constants.KeyringGeminiUser)
}

// SetGeminiKey stores the Gemini API key in the OS keyring
func SetGeminiKey(key string) error {
	return set(constants.KeyringGeminiUser, key)
}

// DeleteGeminiKey removes the Gemini API key from the OS keyring
func DeleteGeminiKey() error {
	return del(constants.KeyringGeminiUser)
}

// GetConnectionString retrieves the remote database connection string
func GetConnectionString() (string, error) {
	return get(constants.KeyringDatabaseUser)
}

// SetConnectionString stores the remote database connection string
func SetConnectionString(connStr string) error {
	return set(constants.KeyringDatabaseUser, connStr)
}

// DeleteConnectionString removes the remote database connection string
func DeleteConnectionString() error {
	return del(constants.KeyringDatabaseUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered, just with nothing stored
	return err == nil || err == keyring.ErrNotFound
}

func get(account string) (string, error) {
	secret, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(account, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(account string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
