package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/models"
)

func geminiStub(t *testing.T, candidateText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if candidateText == "" {
			fmt.Fprint(w, `{"candidates": []}`)
			return
		}
		resp := fmt.Sprintf(`{"candidates": [{"content": {"parts": [{"text": %q}]}}]}`, candidateText)
		fmt.Fprint(w, resp)
	}))
}

func TestDailyInspirationParsesResponse(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, `{"quote": "Do it now.", "author": "Someone", "actionStep": "Put your shoes by the door."}`)
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	tip, err := c.DailyInspiration(context.Background(), models.CategoryHealth)
	if err != nil {
		t.Fatalf("daily inspiration: %v", err)
	}
	if tip.Quote != "Do it now." || tip.ActionStep == "" {
		t.Fatalf("unexpected tip: %+v", tip)
	}
}

func TestDailyInspirationHandlesFencedJSON(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, "```json\n{\"quote\": \"Q\", \"author\": \"A\", \"actionStep\": \"S\"}\n```")
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	tip, err := c.DailyInspiration(context.Background(), models.CategoryMindset)
	if err != nil {
		t.Fatalf("daily inspiration: %v", err)
	}
	if tip.Quote != "Q" {
		t.Fatalf("fenced JSON not handled: %+v", tip)
	}
}

func TestDecomposeRoutineEmptyResponse(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, "")
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	_, err := c.DecomposeRoutine(context.Background(), "I wake up at 6 and run.")
	if !errors.Is(err, apperr.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestDecomposeRoutineParsesBreakdown(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, `{"habits": [{"name": "Run", "category": "Health", "daysOfWeek": [1,3,5], "time": "06:00"}], "identity": "I am a person who moves every morning."}`)
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	breakdown, err := c.DecomposeRoutine(context.Background(), "I run before work on Mon/Wed/Fri.")
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if len(breakdown.Habits) != 1 || breakdown.Habits[0].Name != "Run" {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}
	if breakdown.Habits[0].Category == nil || *breakdown.Habits[0].Category != models.CategoryHealth {
		t.Fatalf("expected category pointer set, got %+v", breakdown.Habits[0])
	}
	if breakdown.Identity == "" {
		t.Fatal("expected an identity statement")
	}
}

func TestSuggestFromLogParsesCards(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, `[{"id": "c1", "title": "Visit the dentist", "description": "One-time appointment", "type": "schedule", "actionLabel": "Add it", "suggestedAction": {"type": "create_habit", "payload": {"name": "Dentist", "category": "Health", "isOneTime": true, "specificDates": ["2026-02-14"], "daysOfWeek": []}}}]`)
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	cards, err := c.SuggestFromLog(context.Background(), "dentist on feb 14", nil, "2026-02-01")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	card := cards[0]
	if card.Kind != models.CardSchedule || card.SuggestedAction == nil {
		t.Fatalf("unexpected card: %+v", card)
	}
	payload := card.SuggestedAction.Payload
	if payload.Name != "Dentist" || payload.IsOneTime == nil || !*payload.IsOneTime {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSuggestFromLogMalformedJSONFailsOpen(t *testing.T) {
	t.Parallel()

	ts := geminiStub(t, `this is not json {`)
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	cards, err := c.SuggestFromLog(context.Background(), "some log", nil, "2026-02-01")
	if err != nil {
		t.Fatalf("malformed response must not surface an error, got %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty card list, got %d", len(cards))
	}
}

func TestSuggestFromLogServerErrorFailsOpen(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &GeminiClient{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()}
	cards, err := c.SuggestFromLog(context.Background(), "some log", nil, "2026-02-01")
	if err != nil {
		t.Fatalf("unavailable collaborator must not surface an error, got %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty card list, got %d", len(cards))
	}
}

func TestGenerateWithoutKeyIsUnavailable(t *testing.T) {
	t.Parallel()

	c := &GeminiClient{}
	_, err := c.DailyInspiration(context.Background(), models.CategoryHealth)
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable without an API key, got %v", err)
	}
}
