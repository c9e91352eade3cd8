package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/keyring"
)

// KeySetCmd stores a secret in the OS keyring.
type KeySetCmd struct {
	Kind   string `arg:"" enum:"gemini,database" help:"Which secret to store (gemini|database)."`
	Secret string `arg:"" help:"The API key or connection string."`
}

func (c *KeySetCmd) Run(ctx *Context) error {
	switch c.Kind {
	case "gemini":
		if err := keyring.SetGeminiKey(c.Secret); err != nil {
			return fmt.Errorf("failed to store Gemini key: %w", err)
		}
		fmt.Println("✓ Gemini API key stored in OS keyring")
	case "database":
		if !strings.HasPrefix(c.Secret, "postgres://") &&
			!strings.HasPrefix(c.Secret, "postgresql://") &&
			!strings.Contains(c.Secret, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if err := keyring.SetConnectionString(c.Secret); err != nil {
			return fmt.Errorf("failed to store connection string: %w", err)
		}
		fmt.Println("✓ Connection string stored in OS keyring")
		fmt.Println("  Remote sync is now active for future runs")
	}
	return nil
}

// KeyDeleteCmd removes a secret from the OS keyring.
type KeyDeleteCmd struct {
	Kind string `arg:"" enum:"gemini,database" help:"Which secret to delete (gemini|database)."`
}

func (c *KeyDeleteCmd) Run(ctx *Context) error {
	var err error
	switch c.Kind {
	case "gemini":
		err = keyring.DeleteGeminiKey()
	case "database":
		err = keyring.DeleteConnectionString()
	}
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("Nothing stored under that name.")
			return nil
		}
		return err
	}
	fmt.Println("✓ Secret deleted from OS keyring")
	return nil
}

// KeyStatusCmd reports which secrets are configured.
type KeyStatusCmd struct{}

func (c *KeyStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		fmt.Printf("   Set %s in the environment to use AI features.\n", constants.GeminiKeyEnvVar)
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.GetGeminiKey(); err == nil {
		fmt.Println("✓ Gemini API key configured")
	} else {
		fmt.Println("ℹ No Gemini API key stored; AI features fall back to canned content")
	}

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Remote database connection string configured")
	} else {
		fmt.Println("ℹ No remote database configured; data stays local")
	}
	return nil
}
