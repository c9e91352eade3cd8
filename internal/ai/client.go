package ai

import (
	"context"

	"github.com/lruiz/growthspace/internal/models"
)

// Client is the generative-AI collaborator. Implementations are fallible and
// latent; call sites own a fallback for every method and nothing here may
// reach the terminal as an unhandled failure.
type Client interface {
	// DailyInspiration returns a quote plus a small actionable step for the
	// user's focus area
	DailyInspiration(ctx context.Context, focus models.Category) (models.MotivationTip, error)

	// AnalyzeProgress returns a one-sentence insight about the user's
	// completion data
	AnalyzeProgress(ctx context.Context, habits []models.Habit) (string, error)

	// DecomposeRoutine extracts starter habits and an identity statement
	// from a free-text routine narrative. Returns apperr.ErrEmptyResponse
	// when the model produced no content.
	DecomposeRoutine(ctx context.Context, narrative string) (models.RoutineBreakdown, error)

	// SuggestFromLog proposes habit cards from a journal entry. today gives
	// the model its date context so relative phrases ("tomorrow", "next
	// Friday") resolve to absolute dates. A parse failure or empty response
	// yields an empty slice, never an error.
	SuggestFromLog(ctx context.Context, logText string, habits []models.Habit, today string) ([]models.SuggestedCard, error)
}

// Fallback values used when the collaborator is unreachable or returns
// garbage. The app degrades to these rather than showing an error.
var (
	FallbackTip = models.MotivationTip{
		Quote:      "Success is the product of daily habits.",
		Author:     "James Clear",
		ActionStep: "Start with a habit that takes less than two minutes.",
	}

	FallbackInsight = "Your consistency is the foundation of your success. Keep showing up!"
)
