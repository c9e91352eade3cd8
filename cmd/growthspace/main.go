package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/cli"
	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/keyring"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.json for a plain file, anything else is SQLite) or a PostgreSQL connection string." default:"~/.config/growthspace/growthspace.db"`
	User    string `help:"User identifier for remote sync." env:"GROWTHSPACE_USER"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize growthspace storage."`
	Onboard  cli.OnboardCmd  `cmd:"" help:"Set up your profile and starter habits."`
	Day      cli.DayCmd      `cmd:"" help:"Show habits due on a day." default:"1"`
	Done     cli.DoneCmd     `cmd:"" help:"Toggle a habit's completion for a day."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show the weekly completion trend and an AI insight."`
	Log      cli.LogCmd      `cmd:"" help:"Journal free text and review AI habit suggestions."`
	Motivate cli.MotivateCmd `cmd:"" help:"Get a motivation tip for a focus area."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Habit    struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits." default:"1"`
	} `cmd:"" help:"Manage habits."`
	Key struct {
		Set    cli.KeySetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Delete cli.KeyDeleteCmd `cmd:"" help:"Delete a secret from the OS keyring."`
		Status cli.KeyStatusCmd `cmd:"" help:"Show which secrets are configured." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal growth companion for habit tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	provider, err := buildProvider()
	if err != nil {
		apperr.Fatal(err)
	}
	defer provider.Close()

	dir, err := logDir(CLI.Config)
	if err != nil {
		apperr.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: dir,
	}); err != nil {
		apperr.Fatalf("failed to initialize logging: %v", err)
	}

	if err := ctx.Run(&cli.Context{Provider: provider}); err != nil {
		apperr.Fatal(err)
	}
}

// buildProvider selects the storage backend from the --config flag: a
// PostgreSQL connection string (given directly or stored in the keyring)
// means remote sync, a .json path means the plain file store, anything
// else is local SQLite.
func buildProvider() (storage.Provider, error) {
	if isPostgres(CLI.Config) {
		return storage.NewPostgresStore(CLI.Config, CLI.User), nil
	}

	// A connection string in the keyring switches on remote sync without
	// touching the --config flag
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return storage.NewPostgresStore(connStr, CLI.User), nil
	}

	path, err := expandPath(CLI.Config)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".json") {
		return storage.NewJSONStore(path), nil
	}
	return storage.NewSQLiteStore(path), nil
}

// logDir resolves the local directory log files live in. A connection
// string is never a filesystem path, so remote mode logs under the
// default config directory instead.
func logDir(config string) (string, error) {
	if isPostgres(config) {
		config = constants.DefaultConfigPath
	}
	path, err := expandPath(config)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
