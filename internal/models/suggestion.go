package models

// CardKind classifies a suggestion card
type CardKind string

const (
	CardOptimization CardKind = "optimization"
	CardSchedule     CardKind = "schedule"
	CardPriority     CardKind = "priority"
)

// ActionKind identifies what accepting a card should do
type ActionKind string

const (
	ActionCreateHabit ActionKind = "create_habit"
	ActionModifyHabit ActionKind = "modify_habit"
)

// SuggestedAction is the structured change a card proposes
type SuggestedAction struct {
	Type    ActionKind `json:"type"`
	Payload HabitDraft `json:"payload"`
}

// SuggestedCard is an ephemeral AI proposal presented for accept-or-dismiss.
// Cards are never persisted; a batch is discarded once every card is resolved.
type SuggestedCard struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Kind            CardKind         `json:"type"`
	ActionLabel     string           `json:"actionLabel"`
	SuggestedAction *SuggestedAction `json:"suggestedAction,omitempty"`
}

// MotivationTip is the daily inspiration payload
type MotivationTip struct {
	Quote      string `json:"quote"`
	Author     string `json:"author"`
	ActionStep string `json:"actionStep"`
}

// RoutineBreakdown is the AI decomposition of a routine narrative into
// starter habits plus an identity statement
type RoutineBreakdown struct {
	Habits   []HabitDraft `json:"habits"`
	Identity string       `json:"identity"`
}
