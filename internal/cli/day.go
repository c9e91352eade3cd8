package cli

import (
	"fmt"

	"github.com/lruiz/growthspace/internal/constants"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	day := date.Format(constants.DateFormat)

	due := habits.ListDueOn(date)
	fmt.Printf("Habits due on %s:\n\n", day)

	if len(due) == 0 {
		fmt.Println("  Nothing scheduled")
		return nil
	}

	for _, h := range due {
		marker := "○"
		if h.CompletedOn(day) {
			marker = "✓"
		}
		fmt.Printf("  %s %-30s %s  %s\n", marker, h.Name, h.Time, habitMetaStyle.Render(string(h.Category)))
	}

	return nil
}
