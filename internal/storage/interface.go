package storage

import "github.com/lruiz/growthspace/internal/models"

// Provider is the durable backing for the habit collection and profile.
// Writes are wholesale: the store's copy-on-write collection replaces
// whatever the provider held. Reads happen once at startup.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.UserProfile, error)
	SaveProfile(models.UserProfile) error

	// Habits
	GetAllHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Utils
	GetConfigPath() string
}
