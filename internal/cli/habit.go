package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/models"
)

var (
	habitNameStyle = lipgloss.NewStyle().Bold(true)
	habitMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	streakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Omit to use the interactive form."`
	Category    string `short:"c" help:"Category (Health|Mindset|Productivity|Finance|Social)."`
	Days        string `short:"w" help:"Comma-separated weekdays (names or 0-6, 0=Sunday)."`
	Time        string `short:"t" help:"Time hint (HH:MM)."`
	Description string `short:"d" help:"Description."`
	OneTime     bool   `help:"One-time habit due only on --on dates."`
	On          string `help:"Comma-separated specific dates (YYYY-MM-DD) for one-time habits."`
	Start       string `help:"Inclusive start date (YYYY-MM-DD)."`
	End         string `help:"Inclusive end date (YYYY-MM-DD)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	if c.Name == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	draft := models.HabitDraft{Name: c.Name}
	if c.Category != "" {
		cat, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		draft.Category = &cat
	}
	if c.Days != "" {
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return err
		}
		draft.DaysOfWeek = days
	}
	if c.Time != "" {
		draft.Time = &c.Time
	}
	if c.Description != "" {
		draft.Description = &c.Description
	}
	if c.OneTime {
		oneTime := true
		draft.IsOneTime = &oneTime
	}
	if c.On != "" {
		for _, d := range strings.Split(c.On, ",") {
			d = strings.TrimSpace(d)
			if _, err := parseDate(d); err != nil {
				return err
			}
			draft.SpecificDates = append(draft.SpecificDates, d)
		}
	}
	if c.Start != "" {
		draft.StartDate = &c.Start
	}
	if c.End != "" {
		draft.EndDate = &c.End
	}

	habit, err := habits.CreateHabit(draft)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return fmt.Errorf("habit name is required")
		}
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

func (c *HabitAddCmd) promptForm() error {
	category := string(models.CategoryMindset)
	var categoryOptions []huh.Option[string]
	for _, cat := range models.Categories() {
		categoryOptions = append(categoryOptions, huh.NewOption(string(cat), string(cat)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&c.Name),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&category),
			huh.NewInput().
				Title("Weekdays (e.g. mon,wed,fri, empty = every day)").
				Value(&c.Days),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&c.Time),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	c.Category = category
	return nil
}

type HabitEditCmd struct {
	Ref         string `arg:"" help:"Habit id or name."`
	Name        string `short:"n" help:"New name."`
	Category    string `short:"c" help:"New category."`
	Days        string `short:"w" help:"New comma-separated weekdays."`
	Time        string `short:"t" help:"New time hint (HH:MM)."`
	Description string `short:"d" help:"New description."`
	Start       string `help:"New inclusive start date (YYYY-MM-DD)."`
	End         string `help:"New inclusive end date (YYYY-MM-DD)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	habit, err := habits.FindHabit(c.Ref)
	if err != nil {
		return err
	}

	draft := models.HabitDraft{Name: c.Name}
	if c.Category != "" {
		cat, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		draft.Category = &cat
	}
	if c.Days != "" {
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return err
		}
		draft.DaysOfWeek = days
	}
	if c.Time != "" {
		draft.Time = &c.Time
	}
	if c.Description != "" {
		draft.Description = &c.Description
	}
	if c.Start != "" {
		draft.StartDate = &c.Start
	}
	if c.End != "" {
		draft.EndDate = &c.End
	}

	updated, err := habits.UpdateHabit(habit.ID, draft)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	// Delete is idempotent: an unknown reference is not an error
	habit, err := habits.FindHabit(c.Ref)
	if err != nil {
		fmt.Println("Nothing to delete.")
		return nil
	}

	habits.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	all := habits.Habits()
	if len(all) == 0 {
		fmt.Println("No habits yet. Add one with 'growthspace habit add'.")
		return nil
	}

	for _, h := range all {
		fmt.Printf("%s  %s\n", habitNameStyle.Render(h.Name), streakStyle.Render(fmt.Sprintf("🔥 %d", h.Streak)))
		fmt.Printf("  %s\n", habitMetaStyle.Render(fmt.Sprintf("%s • %s • %s • id %s",
			h.Category, h.Time, describeSchedule(h), h.ID)))
	}
	return nil
}
