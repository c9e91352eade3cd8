package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/models"
	"github.com/lruiz/growthspace/internal/schedule"
	"github.com/lruiz/growthspace/internal/storage"
)

// Store owns the canonical habit collection and the user profile. Every
// mutation replaces the collection wholesale (copy-on-write) and then writes
// through to the provider; a failed write degrades to session-local
// visibility and is only logged, never surfaced.
type Store struct {
	provider storage.Provider
	habits   []models.Habit
	profile  *models.UserProfile

	// injectable for tests
	now   func() time.Time
	newID func() string
}

func New(provider storage.Provider) *Store {
	return &Store{
		provider: provider,
		habits:   []models.Habit{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load reads the persisted state once at startup
func (s *Store) Load() error {
	habits, err := s.provider.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	s.habits = habits

	profile, err := s.provider.GetProfile()
	if err == nil {
		s.profile = &profile
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	return nil
}

// Habits returns a copy of the collection in insertion order
func (s *Store) Habits() []models.Habit {
	out := make([]models.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// CreateHabit assigns an id, fills field defaults, and appends the habit.
// A draft without a real name refuses the mutation with ErrValidation.
func (s *Store) CreateHabit(draft models.HabitDraft) (models.Habit, error) {
	if !draft.HasName() {
		return models.Habit{}, fmt.Errorf("%w: habit name is required", apperr.ErrValidation)
	}

	habit := models.Habit{
		ID:             s.newID(),
		Name:           strings.TrimSpace(draft.Name),
		Category:       models.CategoryMindset,
		Frequency:      models.FrequencyDaily,
		Time:           constants.DefaultHabitTime,
		Streak:         0,
		CompletedDates: []string{},
		CreatedAt:      s.now(),
	}

	if draft.Category != nil && models.ValidCategory(*draft.Category) {
		habit.Category = *draft.Category
	}
	if draft.Frequency != nil {
		habit.Frequency = *draft.Frequency
	}
	if draft.Time != nil && *draft.Time != "" {
		habit.Time = *draft.Time
	}
	if draft.Description != nil {
		habit.Description = *draft.Description
	}
	if draft.IsOneTime != nil {
		habit.IsOneTime = *draft.IsOneTime
	}
	if draft.StartDate != nil {
		habit.StartDate = *draft.StartDate
	}
	if draft.EndDate != nil {
		habit.EndDate = *draft.EndDate
	}

	habit.SpecificDates = append([]string{}, draft.SpecificDates...)

	// Recurring habits default to every day of the week; one-time habits to
	// no weekdays at all
	switch {
	case len(draft.DaysOfWeek) > 0:
		habit.DaysOfWeek = append([]int{}, draft.DaysOfWeek...)
	case habit.IsOneTime:
		habit.DaysOfWeek = []int{}
	default:
		habit.DaysOfWeek = []int{0, 1, 2, 3, 4, 5, 6}
	}

	next := make([]models.Habit, len(s.habits), len(s.habits)+1)
	copy(next, s.habits)
	s.habits = append(next, habit)
	s.persist()

	return habit.Clone(), nil
}

// UpdateHabit merges draft fields over the stored habit. ID, Streak,
// CompletedDates and CreatedAt are owned by creation and the toggle
// operation and are never touched here.
func (s *Store) UpdateHabit(id string, draft models.HabitDraft) (models.Habit, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
	}

	habit := s.habits[idx].Clone()
	if draft.HasName() {
		habit.Name = strings.TrimSpace(draft.Name)
	}
	if draft.Category != nil && models.ValidCategory(*draft.Category) {
		habit.Category = *draft.Category
	}
	if draft.Frequency != nil {
		habit.Frequency = *draft.Frequency
	}
	if draft.Time != nil {
		habit.Time = *draft.Time
	}
	if draft.Description != nil {
		habit.Description = *draft.Description
	}
	if draft.IsOneTime != nil {
		habit.IsOneTime = *draft.IsOneTime
	}
	if draft.DaysOfWeek != nil {
		habit.DaysOfWeek = append([]int{}, draft.DaysOfWeek...)
	}
	if draft.SpecificDates != nil {
		habit.SpecificDates = append([]string{}, draft.SpecificDates...)
	}
	if draft.StartDate != nil {
		habit.StartDate = *draft.StartDate
	}
	if draft.EndDate != nil {
		habit.EndDate = *draft.EndDate
	}

	s.replaceAt(idx, habit)
	s.persist()

	return habit.Clone(), nil
}

// DeleteHabit removes the habit with the given id. Deleting an id that does
// not exist leaves the collection unchanged and is not an error.
func (s *Store) DeleteHabit(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	next := make([]models.Habit, 0, len(s.habits)-1)
	next = append(next, s.habits[:idx]...)
	next = append(next, s.habits[idx+1:]...)
	s.habits = next
	s.persist()
}

// ToggleCompletion flips the completion state of a habit for a day through
// the occurrence engine and persists the result
func (s *Store) ToggleCompletion(id, day string) (models.Habit, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
	}

	habit := schedule.ToggleCompletion(s.habits[idx], day)
	s.replaceAt(idx, habit)
	s.persist()

	return habit.Clone(), nil
}

// ListDueOn filters the collection through the occurrence engine, preserving
// insertion order
func (s *Store) ListDueOn(date time.Time) []models.Habit {
	due := []models.Habit{}
	for _, h := range s.habits {
		if schedule.IsDueOn(h, date) {
			due = append(due, h.Clone())
		}
	}
	return due
}

// FindHabit resolves an id or an exact name to a habit
func (s *Store) FindHabit(ref string) (models.Habit, error) {
	if idx := s.indexOf(ref); idx >= 0 {
		return s.habits[idx].Clone(), nil
	}
	for _, h := range s.habits {
		if strings.EqualFold(h.Name, ref) {
			return h.Clone(), nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", apperr.ErrNotFound, ref)
}

// Profile returns the onboarded profile, or ErrNotFound before onboarding
func (s *Store) Profile() (models.UserProfile, error) {
	if s.profile == nil {
		return models.UserProfile{}, apperr.ErrNotFound
	}
	return *s.profile, nil
}

// SaveProfile replaces the profile and writes it through
func (s *Store) SaveProfile(profile models.UserProfile) {
	s.profile = &profile
	if err := s.provider.SaveProfile(profile); err != nil {
		logger.Warn("profile write failed, change is session-local", "error", err)
	}
}

func (s *Store) indexOf(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) replaceAt(idx int, habit models.Habit) {
	next := make([]models.Habit, len(s.habits))
	copy(next, s.habits)
	next[idx] = habit
	s.habits = next
}

func (s *Store) persist() {
	if err := s.provider.SaveHabits(s.habits); err != nil {
		logger.Warn("habit write failed, change is session-local", "error", err)
	}
}
