package suggest

import (
	"context"
	"testing"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/models"
	"github.com/lruiz/growthspace/internal/store"
)

// stubAI returns canned cards and records call counts
type stubAI struct {
	cards []models.SuggestedCard
	calls int
}

func (s *stubAI) DailyInspiration(ctx context.Context, focus models.Category) (models.MotivationTip, error) {
	return models.MotivationTip{}, apperr.ErrUnavailable
}

func (s *stubAI) AnalyzeProgress(ctx context.Context, habits []models.Habit) (string, error) {
	return "", apperr.ErrUnavailable
}

func (s *stubAI) DecomposeRoutine(ctx context.Context, narrative string) (models.RoutineBreakdown, error) {
	return models.RoutineBreakdown{}, apperr.ErrEmptyResponse
}

func (s *stubAI) SuggestFromLog(ctx context.Context, logText string, habits []models.Habit, today string) ([]models.SuggestedCard, error) {
	s.calls++
	return s.cards, nil
}

// memProvider is the minimal in-memory storage provider for workflow tests
type memProvider struct {
	habits []models.Habit
}

func (m *memProvider) Init() error  { return nil }
func (m *memProvider) Load() error  { return nil }
func (m *memProvider) Close() error { return nil }
func (m *memProvider) GetProfile() (models.UserProfile, error) {
	return models.UserProfile{}, apperr.ErrNotFound
}
func (m *memProvider) SaveProfile(models.UserProfile) error { return nil }
func (m *memProvider) GetAllHabits() ([]models.Habit, error) {
	return append([]models.Habit{}, m.habits...), nil
}
func (m *memProvider) SaveHabits(habits []models.Habit) error {
	m.habits = append([]models.Habit{}, habits...)
	return nil
}
func (m *memProvider) GetConfigPath() string { return "mem" }

func boolPtr(b bool) *bool { return &b }

func createCard(id, name string) models.SuggestedCard {
	return models.SuggestedCard{
		ID:          id,
		Title:       "Add " + name,
		Description: "Suggested from your log",
		Kind:        models.CardSchedule,
		ActionLabel: "Add it",
		SuggestedAction: &models.SuggestedAction{
			Type: models.ActionCreateHabit,
			Payload: models.HabitDraft{
				Name:          name,
				IsOneTime:     boolPtr(true),
				SpecificDates: []string{"2026-02-14"},
			},
		},
	}
}

func newWorkflow(cards ...models.SuggestedCard) (*Workflow, *store.Store, *stubAI) {
	habits := store.New(&memProvider{})
	stub := &stubAI{cards: cards}
	return New(stub, habits), habits, stub
}

func TestRequestSuggestionsFillsBatch(t *testing.T) {
	w, _, stub := newWorkflow(createCard("c1", "Dentist"), createCard("c2", "Gym"))

	got := w.RequestSuggestions(context.Background(), "dentist feb 14, start gym")
	if len(got) != 2 {
		t.Fatalf("expected 2 pending cards, got %d", len(got))
	}
	if stub.calls != 1 {
		t.Fatalf("expected one collaborator call, got %d", stub.calls)
	}
	if w.Done() {
		t.Error("batch with pending cards must not signal completion")
	}
}

// reentrantAI submits again from inside an in-flight request
type reentrantAI struct {
	stubAI
	w *Workflow
}

func (r *reentrantAI) SuggestFromLog(ctx context.Context, logText string, habits []models.Habit, today string) ([]models.SuggestedCard, error) {
	r.calls++
	if r.calls == 1 {
		r.w.RequestSuggestions(ctx, "again")
	}
	return r.cards, nil
}

func TestRequestSuggestionsSuppressedWhileInFlight(t *testing.T) {
	habits := store.New(&memProvider{})
	stub := &reentrantAI{stubAI: stubAI{cards: []models.SuggestedCard{createCard("c1", "Gym")}}}
	w := New(stub, habits)
	stub.w = w

	got := w.RequestSuggestions(context.Background(), "start gym")
	if stub.calls != 1 {
		t.Fatalf("expected the nested submission suppressed, got %d collaborator calls", stub.calls)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected the original batch to survive, got %+v", got)
	}
}

func TestAcceptCreateHabitCard(t *testing.T) {
	w, habits, _ := newWorkflow(createCard("c1", "Dentist"))
	w.RequestSuggestions(context.Background(), "dentist feb 14")

	created, ok := w.Accept("c1")
	if !ok {
		t.Fatal("expected card to be found")
	}
	if created == nil || created.Name != "Dentist" {
		t.Fatalf("expected a created habit, got %+v", created)
	}
	if !created.IsOneTime || len(created.SpecificDates) != 1 {
		t.Errorf("payload fields lost: %+v", created)
	}
	if len(habits.Habits()) != 1 {
		t.Errorf("expected habit in store, got %d", len(habits.Habits()))
	}
}

func TestAcceptLastCardSignalsCompletion(t *testing.T) {
	w, _, _ := newWorkflow(createCard("c1", "A"), createCard("c2", "B"))
	w.RequestSuggestions(context.Background(), "log")

	w.Accept("c1")
	if w.Done() {
		t.Fatal("completion must not fire with a card still pending")
	}
	w.Accept("c2")
	if !w.Done() {
		t.Fatal("completion signal must fire when the batch empties")
	}
}

func TestAcceptWithoutActionIsNoOp(t *testing.T) {
	card := models.SuggestedCard{ID: "plain", Title: "Just advice", Kind: models.CardOptimization}
	w, habits, _ := newWorkflow(card)
	w.RequestSuggestions(context.Background(), "log")

	created, ok := w.Accept("plain")
	if !ok {
		t.Fatal("expected card to be found")
	}
	if created != nil {
		t.Fatalf("action-less card must be a no-op, got %+v", created)
	}
	if len(habits.Habits()) != 0 {
		t.Error("no habit should have been created")
	}
	if !w.Done() {
		t.Error("card must still leave the batch")
	}
}

func TestAcceptModifyActionIsNoOp(t *testing.T) {
	card := models.SuggestedCard{
		ID:    "mod",
		Title: "Tweak",
		SuggestedAction: &models.SuggestedAction{
			Type:    models.ActionModifyHabit,
			Payload: models.HabitDraft{Name: "Whatever"},
		},
	}
	w, habits, _ := newWorkflow(card)
	w.RequestSuggestions(context.Background(), "log")

	created, _ := w.Accept("mod")
	if created != nil || len(habits.Habits()) != 0 {
		t.Error("modify_habit is not handled by accept and must be a no-op")
	}
}

func TestAcceptInvalidPayloadDegradesToNoOp(t *testing.T) {
	card := models.SuggestedCard{
		ID: "bad",
		SuggestedAction: &models.SuggestedAction{
			Type:    models.ActionCreateHabit,
			Payload: models.HabitDraft{Name: "   "},
		},
	}
	w, habits, _ := newWorkflow(card)
	w.RequestSuggestions(context.Background(), "log")

	created, ok := w.Accept("bad")
	if !ok || created != nil {
		t.Error("nameless payload must resolve the card without creating a habit")
	}
	if len(habits.Habits()) != 0 {
		t.Error("no habit should have been created from an invalid payload")
	}
}

func TestDismissRemovesWithoutSideEffects(t *testing.T) {
	w, habits, _ := newWorkflow(createCard("c1", "Dentist"))
	w.RequestSuggestions(context.Background(), "log")

	if !w.Dismiss("c1") {
		t.Fatal("expected card to be dismissed")
	}
	if len(habits.Habits()) != 0 {
		t.Error("dismiss must not create habits")
	}
	if !w.Done() {
		t.Error("dismissing the last card completes the batch")
	}

	if w.Dismiss("c1") {
		t.Error("dismissing an already-resolved card finds nothing")
	}
}
