package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	flashModel     = "gemini-3-flash-preview"
	proModel       = "gemini-3-pro-preview"
)

// GeminiClient talks to the Gemini generateContent REST API
type GeminiClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey: apiKey,
	}
}

// request/response shapes for the generateContent endpoint

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate runs one prompt and returns the raw text of the first candidate.
// jsonMode asks the model for a strict JSON body.
func (c *GeminiClient) generate(ctx context.Context, model, prompt string, jsonMode bool) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", apperr.ErrUnavailable)
	}

	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonMode {
		reqBody.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gemini request failed with status %d", apperr.ErrUnavailable, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperr.ErrEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", apperr.ErrEmptyResponse
	}
	return text, nil
}

func (c *GeminiClient) DailyInspiration(ctx context.Context, focus models.Category) (models.MotivationTip, error) {
	prompt := fmt.Sprintf(`Give me a daily motivational quote and a small actionable "atomic habit" step based on James Clear's principles for someone focusing on %s. Return a JSON object with the string fields "quote", "author" and "actionStep".`, focus)

	text, err := c.generate(ctx, flashModel, prompt, true)
	if err != nil {
		return models.MotivationTip{}, err
	}

	var tip models.MotivationTip
	if err := json.Unmarshal([]byte(stripFences(text)), &tip); err != nil {
		return models.MotivationTip{}, fmt.Errorf("parse inspiration: %w", err)
	}
	return tip, nil
}

func (c *GeminiClient) AnalyzeProgress(ctx context.Context, habits []models.Habit) (string, error) {
	data, err := json.Marshal(habits)
	if err != nil {
		return "", fmt.Errorf("encode habits: %w", err)
	}

	prompt := fmt.Sprintf(`Review my current habits and completion data: %s. Provide a brief, motivating one-sentence insight about my progress or a constructive tip for consistency based on "Atomic Habits" principles.`, data)

	return c.generate(ctx, flashModel, prompt, false)
}

func (c *GeminiClient) DecomposeRoutine(ctx context.Context, narrative string) (models.RoutineBreakdown, error) {
	prompt := fmt.Sprintf(`Analyze this routine narrative: %q.
1. Extract a list of atomic habits. For each, identify: "name", "category" (Health, Mindset, Productivity, Finance, Social), "time" (HH:MM if mentioned), "description", and "daysOfWeek" (array of integers 0-6, 0=Sunday).
2. Create a one-sentence "Identity Statement" (e.g. "I am a person who...") based on these actions.
Return a JSON object with the fields "habits" (array) and "identity" (string).`, narrative)

	text, err := c.generate(ctx, proModel, prompt, true)
	if err != nil {
		return models.RoutineBreakdown{}, err
	}

	var breakdown models.RoutineBreakdown
	if err := json.Unmarshal([]byte(stripFences(text)), &breakdown); err != nil {
		return models.RoutineBreakdown{}, fmt.Errorf("parse routine breakdown: %w", err)
	}
	return breakdown, nil
}

func (c *GeminiClient) SuggestFromLog(ctx context.Context, logText string, habits []models.Habit, today string) ([]models.SuggestedCard, error) {
	data, err := json.Marshal(habits)
	if err != nil {
		return []models.SuggestedCard{}, nil
	}

	prompt := fmt.Sprintf(`User Input: %q. Current Date Context: Today is %s.
Task: Suggest specific "Atomic Habit" optimizations or NEW scheduled events/habits based on the input and the user's existing habits: %s.

CRITICAL SCHEDULING RULES:
- If the user mentions a specific date like "Feb 5", "tomorrow", or "next Friday", calculate that date precisely relative to today.
- For specific events (meetings, visits, appointments): set "isOneTime" true, set "specificDates" to ["YYYY-MM-DD"] with the calculated date, set "daysOfWeek" to an empty array.
- For recurring habits: set "isOneTime" false and set "daysOfWeek" (integers 0-6, 0=Sunday) from the pattern.

Return a JSON array of cards, each with "id", "title", "description", "type" (optimization, schedule or priority), "actionLabel" and "suggestedAction" = {"type": "create_habit", "payload": {habit fields}}.`,
		logText, today, data)

	text, err := c.generate(ctx, flashModel, prompt, true)
	if err != nil {
		// Fails open: the caller gets no suggestions, never an error dialog
		logger.Warn("suggestion request failed", "error", err)
		return []models.SuggestedCard{}, nil
	}

	var cards []models.SuggestedCard
	if err := json.Unmarshal([]byte(stripFences(text)), &cards); err != nil {
		logger.Warn("suggestion response did not parse", "error", err)
		return []models.SuggestedCard{}, nil
	}
	return cards, nil
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
