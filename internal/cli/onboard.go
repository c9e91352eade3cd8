package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/logger"
	"github.com/lruiz/growthspace/internal/models"
)

type OnboardCmd struct {
	SkipAI bool `help:"Skip the AI routine breakdown and start with an empty habit list."`
}

func (c *OnboardCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	var profile models.UserProfile
	var focusRaw []string
	var narrative string

	var focusOptions []huh.Option[string]
	for _, cat := range models.Categories() {
		focusOptions = append(focusOptions, huh.NewOption(string(cat), string(cat)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&profile.Name),
			huh.NewInput().
				Title("Email (optional)").
				Value(&profile.Email),
			huh.NewMultiSelect[string]().
				Title("Which areas do you want to grow in?").
				Options(focusOptions...).
				Value(&focusRaw),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Describe your ideal daily routine in your own words").
				Placeholder("e.g. I want to start the day with a run, journal before bed...").
				Value(&narrative),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if profile.Name == "" {
		return fmt.Errorf("a name is required to finish onboarding")
	}

	for _, raw := range focusRaw {
		cat, err := parseCategory(raw)
		if err != nil {
			return err
		}
		profile.FocusAreas = append(profile.FocusAreas, cat)
	}
	profile.Narrative = narrative
	habits.SaveProfile(profile)

	if c.SkipAI || narrative == "" {
		fmt.Printf("Welcome, %s! Add your first habit with 'growthspace habit add'.\n", profile.Name)
		return nil
	}

	fmt.Println("Breaking your routine down into starter habits...")

	reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	breakdown, err := ctx.aiClient().DecomposeRoutine(reqCtx, narrative)
	if err != nil {
		// Onboarding completes either way; starter habits are a bonus
		if errors.Is(err, apperr.ErrEmptyResponse) {
			fmt.Println("Couldn't extract habits from your routine. Add them manually with 'growthspace habit add'.")
		} else {
			fmt.Println("Routine breakdown is unavailable right now. Add habits manually with 'growthspace habit add'.")
		}
		fmt.Printf("Welcome, %s!\n", profile.Name)
		return nil
	}

	if breakdown.Identity != "" {
		profile.IdentityStatement = breakdown.Identity
		habits.SaveProfile(profile)
	}

	created := 0
	for _, draft := range breakdown.Habits {
		habit, err := habits.CreateHabit(draft)
		if err != nil {
			logger.Debug("skipping suggested starter habit", "err", err)
			continue
		}
		fmt.Printf("  + %s (%s)\n", habit.Name, habit.Category)
		created++
	}

	fmt.Println()
	if profile.IdentityStatement != "" {
		fmt.Printf("Your identity: %s\n", profile.IdentityStatement)
	}
	fmt.Printf("Welcome, %s! Started you off with %d habit(s).\n", profile.Name, created)
	return nil
}
