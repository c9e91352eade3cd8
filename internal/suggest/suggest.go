package suggest

import (
	"context"
	"time"

	"github.com/lruiz/growthspace/internal/ai"
	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/models"
	"github.com/lruiz/growthspace/internal/store"
)

// Workflow holds one transient batch of AI-suggested cards and resolves them
// card by card. Cards are never persisted; the batch is done once every card
// is accepted or dismissed.
type Workflow struct {
	client ai.Client
	habits *store.Store

	cards []models.SuggestedCard
	busy  bool

	now func() time.Time
}

func New(client ai.Client, habits *store.Store) *Workflow {
	return &Workflow{
		client: client,
		habits: habits,
		cards:  []models.SuggestedCard{},
		now:    time.Now,
	}
}

// RequestSuggestions submits free text to the AI collaborator and replaces
// the pending batch with the result. Any collaborator failure fails open to
// an empty batch. A submission while one is already in flight is suppressed.
func (w *Workflow) RequestSuggestions(ctx context.Context, freeText string) []models.SuggestedCard {
	if w.busy {
		logger.Debug("suggestion request suppressed, one already in flight")
		return w.Pending()
	}
	w.busy = true
	defer func() { w.busy = false }()

	today := w.now().Format(constants.DateFormat)
	cards, err := w.client.SuggestFromLog(ctx, freeText, w.habits.Habits(), today)
	if err != nil {
		// The client contract already fails open, but guard anyway
		logger.Warn("suggestion request failed", "error", err)
		cards = []models.SuggestedCard{}
	}

	w.cards = cards
	return w.Pending()
}

// Pending returns the unresolved cards of the current batch
func (w *Workflow) Pending() []models.SuggestedCard {
	out := make([]models.SuggestedCard, len(w.cards))
	copy(out, w.cards)
	return out
}

// Done reports the batch completion signal: every card resolved
func (w *Workflow) Done() bool {
	return len(w.cards) == 0
}

// Accept resolves a card. A create_habit action passes its payload to the
// habit store; any other or absent action is a no-op. The card leaves the
// batch either way.
func (w *Workflow) Accept(cardID string) (*models.Habit, bool) {
	card, ok := w.take(cardID)
	if !ok {
		return nil, false
	}

	action := card.SuggestedAction
	if action == nil || action.Type != models.ActionCreateHabit {
		return nil, true
	}

	habit, err := w.habits.CreateHabit(action.Payload)
	if err != nil {
		// Payload without a usable name: accepted card degrades to a no-op
		logger.Warn("suggested habit rejected", "card", card.ID, "error", err)
		return nil, true
	}

	return &habit, true
}

// Dismiss removes a card from the batch without side effects
func (w *Workflow) Dismiss(cardID string) bool {
	_, ok := w.take(cardID)
	return ok
}

func (w *Workflow) take(cardID string) (models.SuggestedCard, bool) {
	for i, c := range w.cards {
		if c.ID == cardID {
			remaining := make([]models.SuggestedCard, 0, len(w.cards)-1)
			remaining = append(remaining, w.cards[:i]...)
			remaining = append(remaining, w.cards[i+1:]...)
			w.cards = remaining
			return c, true
		}
	}
	return models.SuggestedCard{}, false
}
