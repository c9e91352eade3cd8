package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lruiz/growthspace/internal/ai"
	"github.com/lruiz/growthspace/internal/constants"
	"github.com/lruiz/growthspace/internal/keyring"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/models"
	"github.com/lruiz/growthspace/internal/storage"
	"github.com/lruiz/growthspace/internal/store"
)

type Context struct {
	Provider storage.Provider

	// AI may be preset by tests; otherwise it is built from the keyring on
	// first use
	AI ai.Client
}

// loadStore opens the provider and reads the persisted state once
func (ctx *Context) loadStore() (*store.Store, error) {
	if err := ctx.Provider.Load(); err != nil {
		return nil, err
	}
	s := store.New(ctx.Provider)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// aiClient returns the configured AI collaborator. A missing API key still
// yields a client; its calls fail and every call site falls back.
func (ctx *Context) aiClient() ai.Client {
	if ctx.AI != nil {
		return ctx.AI
	}

	key, err := keyring.GetGeminiKey()
	if err != nil {
		logger.Debug("no Gemini API key configured", "error", err)
	}
	ctx.AI = ai.NewGeminiClient(key)
	return ctx.AI
}

func parseWeekdays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	var weekdays []int

	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}

	return weekdays, nil
}

func formatWeekdays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var out []string
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, names[d])
		}
	}
	if len(out) == 0 {
		return "never"
	}
	return strings.Join(out, ",")
}

// parseDate accepts YYYY-MM-DD or the literal "today"
func parseDate(s string) (time.Time, error) {
	if s == "" || s == "today" {
		return time.Now(), nil
	}
	d, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return d, nil
}

func parseCategory(s string) (models.Category, error) {
	for _, c := range models.Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (use Health, Mindset, Productivity, Finance or Social)", s)
}

func describeSchedule(h models.Habit) string {
	if h.IsOneTime {
		if len(h.SpecificDates) == 0 {
			return "one-time (no date)"
		}
		return "on " + strings.Join(h.SpecificDates, ", ")
	}
	s := formatWeekdays(h.DaysOfWeek)
	if h.StartDate != "" {
		s += " from " + h.StartDate
	}
	if h.EndDate != "" {
		s += " until " + h.EndDate
	}
	return s
}
