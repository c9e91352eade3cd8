package constants

const (
	AppName           = "growthspace"
	DefaultConfigPath = "~/.config/growthspace/growthspace.db"
	Version           = "v0.3.0"

	// Keyring account names
	KeyringGeminiUser   = "gemini-api-key"
	KeyringDatabaseUser = "database-connection"

	// GeminiKeyEnvVar overrides the keyring when set
	GeminiKeyEnvVar = "GEMINI_API_KEY"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Habit defaults applied when a draft leaves fields unset
	DefaultHabitTime = "08:00"
)
