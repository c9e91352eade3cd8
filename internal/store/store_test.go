package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/models"
)

// fakeProvider keeps everything in memory and can simulate write failures
type fakeProvider struct {
	habits       []models.Habit
	profile      *models.UserProfile
	failWrite    bool
	wrapNotFound bool
	saves        int
}

func (f *fakeProvider) Init() error  { return nil }
func (f *fakeProvider) Load() error  { return nil }
func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) GetProfile() (models.UserProfile, error) {
	if f.profile == nil {
		if f.wrapNotFound {
			return models.UserProfile{}, fmt.Errorf("query profile: %w", apperr.ErrNotFound)
		}
		return models.UserProfile{}, apperr.ErrNotFound
	}
	return *f.profile, nil
}

func (f *fakeProvider) SaveProfile(p models.UserProfile) error {
	if f.failWrite {
		return fmt.Errorf("write failed")
	}
	f.profile = &p
	return nil
}

func (f *fakeProvider) GetAllHabits() ([]models.Habit, error) {
	return append([]models.Habit{}, f.habits...), nil
}

func (f *fakeProvider) SaveHabits(habits []models.Habit) error {
	f.saves++
	if f.failWrite {
		return fmt.Errorf("write failed")
	}
	f.habits = append([]models.Habit{}, habits...)
	return nil
}

func (f *fakeProvider) GetConfigPath() string { return "fake" }

func newTestStore() (*Store, *fakeProvider) {
	p := &fakeProvider{}
	s := New(p)
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	}
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, p
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func catPtr(c models.Category) *models.Category { return &c }

func TestLoad_WrappedMissingProfileMeansAbsence(t *testing.T) {
	s, p := newTestStore()
	p.wrapNotFound = true

	if err := s.Load(); err != nil {
		t.Fatalf("a wrapped missing-profile error must read as absence: %v", err)
	}
	if _, err := s.Profile(); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected no profile after load, got %v", err)
	}
}

func TestCreateHabit_Defaults(t *testing.T) {
	s, p := newTestStore()

	habit, err := s.CreateHabit(models.HabitDraft{Name: "Read"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if habit.ID == "" {
		t.Error("expected an assigned id")
	}
	if habit.Category != models.CategoryMindset {
		t.Errorf("expected default category Mindset, got %s", habit.Category)
	}
	if habit.Time != constants.DefaultHabitTime {
		t.Errorf("expected default time %s, got %s", constants.DefaultHabitTime, habit.Time)
	}
	if len(habit.DaysOfWeek) != 7 {
		t.Errorf("expected recurring default of all seven days, got %v", habit.DaysOfWeek)
	}
	if habit.Streak != 0 || len(habit.CompletedDates) != 0 {
		t.Errorf("expected fresh streak and completions, got %+v", habit)
	}
	if p.saves != 1 {
		t.Errorf("expected one durability write, got %d", p.saves)
	}
}

func TestCreateHabit_OneTimeDefaultsToNoWeekdays(t *testing.T) {
	s, _ := newTestStore()

	habit, err := s.CreateHabit(models.HabitDraft{
		Name:          "Dentist",
		IsOneTime:     boolPtr(true),
		SpecificDates: []string{"2026-02-14"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(habit.DaysOfWeek) != 0 {
		t.Errorf("one-time habit should default to an empty day set, got %v", habit.DaysOfWeek)
	}
	if len(habit.SpecificDates) != 1 {
		t.Errorf("expected specific dates preserved, got %v", habit.SpecificDates)
	}
}

func TestCreateHabit_EmptyNameRefused(t *testing.T) {
	s, p := newTestStore()

	for _, name := range []string{"", "   ", "\t"} {
		_, err := s.CreateHabit(models.HabitDraft{Name: name})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("name %q: expected ErrValidation, got %v", name, err)
		}
	}

	if len(s.Habits()) != 0 {
		t.Error("refused creates must leave the collection unchanged")
	}
	if p.saves != 0 {
		t.Error("refused creates must not write")
	}
}

func TestUpdateHabit_PreservesProtectedFields(t *testing.T) {
	s, _ := newTestStore()

	created, _ := s.CreateHabit(models.HabitDraft{Name: "Run"})
	toggled, _ := s.ToggleCompletion(created.ID, "2026-01-15")
	if toggled.Streak != 1 {
		t.Fatalf("setup: expected streak 1, got %d", toggled.Streak)
	}

	updated, err := s.UpdateHabit(created.ID, models.HabitDraft{
		Name:     "Evening run",
		Category: catPtr(models.CategoryHealth),
		Time:     strPtr("19:00"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Evening run" || updated.Category != models.CategoryHealth {
		t.Errorf("expected draft fields merged, got %+v", updated)
	}
	if updated.ID != created.ID {
		t.Error("update must preserve id")
	}
	if updated.Streak != 1 || !updated.CompletedOn("2026-01-15") {
		t.Error("update must never touch streak or completed dates")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must preserve creation timestamp")
	}
}

func TestUpdateHabit_MissingIDFailsLoudly(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.UpdateHabit("nope", models.HabitDraft{Name: "X"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabit_Idempotent(t *testing.T) {
	s, _ := newTestStore()

	created, _ := s.CreateHabit(models.HabitDraft{Name: "Run"})
	s.DeleteHabit(created.ID)
	if len(s.Habits()) != 0 {
		t.Fatal("expected habit removed")
	}

	// Deleting again, or deleting an unknown id, is not an error and leaves
	// the collection unchanged
	s.DeleteHabit(created.ID)
	s.DeleteHabit("never-existed")
	if len(s.Habits()) != 0 {
		t.Error("expected collection unchanged after redundant deletes")
	}
}

func TestListDueOn_InsertionOrder(t *testing.T) {
	s, _ := newTestStore()

	s.CreateHabit(models.HabitDraft{Name: "First", DaysOfWeek: []int{4}})
	s.CreateHabit(models.HabitDraft{Name: "Skipped", DaysOfWeek: []int{2}})
	s.CreateHabit(models.HabitDraft{Name: "Second", DaysOfWeek: []int{4}, Time: strPtr("06:00")})

	// 2026-01-15 is a Thursday (weekday 4)
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	due := s.ListDueOn(date)
	if len(due) != 2 {
		t.Fatalf("expected 2 due habits, got %d", len(due))
	}
	// Not re-sorted by time-of-day: insertion order wins
	if due[0].Name != "First" || due[1].Name != "Second" {
		t.Errorf("expected insertion order, got %s then %s", due[0].Name, due[1].Name)
	}
}

func TestToggleCompletion_RoundTripThroughStore(t *testing.T) {
	s, p := newTestStore()

	created, _ := s.CreateHabit(models.HabitDraft{Name: "Meditate"})
	on, err := s.ToggleCompletion(created.ID, "2026-01-15")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if on.Streak != 1 || !on.CompletedOn("2026-01-15") {
		t.Errorf("expected completion recorded, got %+v", on)
	}

	off, _ := s.ToggleCompletion(created.ID, "2026-01-15")
	if off.Streak != 0 || off.CompletedOn("2026-01-15") {
		t.Errorf("expected completion undone, got %+v", off)
	}

	// create + two toggles
	if p.saves != 3 {
		t.Errorf("expected 3 durability writes, got %d", p.saves)
	}
	if len(p.habits) != 1 || p.habits[0].Streak != 0 {
		t.Errorf("expected persisted state to track toggles, got %+v", p.habits)
	}
}

func TestMutations_SurviveWriteFailure(t *testing.T) {
	s, p := newTestStore()
	p.failWrite = true

	habit, err := s.CreateHabit(models.HabitDraft{Name: "Offline habit"})
	if err != nil {
		t.Fatalf("create should not surface write failures: %v", err)
	}

	// Change stays visible in this session even though the write failed
	if _, err := s.FindHabit(habit.ID); err != nil {
		t.Errorf("expected habit visible in session: %v", err)
	}
	if len(p.habits) != 0 {
		t.Error("failed write must not have persisted anything")
	}
}

func TestFindHabit_ByIDOrName(t *testing.T) {
	s, _ := newTestStore()

	created, _ := s.CreateHabit(models.HabitDraft{Name: "Morning Pages"})

	byID, err := s.FindHabit(created.ID)
	if err != nil || byID.ID != created.ID {
		t.Errorf("lookup by id failed: %v", err)
	}
	byName, err := s.FindHabit("morning pages")
	if err != nil || byName.ID != created.ID {
		t.Errorf("case-insensitive lookup by name failed: %v", err)
	}
	if _, err := s.FindHabit("unknown"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown ref, got %v", err)
	}
}
