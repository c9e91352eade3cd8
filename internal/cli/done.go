package cli

import (
	"fmt"

	"github.com/lruiz/growthspace/internal/constants"
)

type DoneCmd struct {
	Ref  string `arg:"" help:"Habit id or name."`
	Date string `short:"d" help:"Completion date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	habit, err := habits.FindHabit(c.Ref)
	if err != nil {
		return err
	}

	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	day := date.Format(constants.DateFormat)

	updated, err := habits.ToggleCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	if updated.CompletedOn(day) {
		fmt.Printf("Marked %q done for %s (streak: %d)\n", updated.Name, day, updated.Streak)
	} else {
		fmt.Printf("Unmarked %q for %s (streak: %d)\n", updated.Name, day, updated.Streak)
	}
	return nil
}
