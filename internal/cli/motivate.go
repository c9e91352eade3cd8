package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lruiz/growthspace/internal/ai"
	"github.com/lruiz/growthspace/internal/models"
)

var (
	quoteStyle  = lipgloss.NewStyle().Italic(true)
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

type MotivateCmd struct {
	Focus string `short:"f" help:"Focus area to motivate for; defaults to the profile's first focus area."`
}

func (c *MotivateCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	focus := models.CategoryMindset
	if c.Focus != "" {
		focus, err = parseCategory(c.Focus)
		if err != nil {
			return err
		}
	} else if profile, perr := habits.Profile(); perr == nil {
		focus = profile.PrimaryFocus()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tip, err := ctx.aiClient().DailyInspiration(reqCtx, focus)
	if err != nil {
		tip = ai.FallbackTip
	}

	fmt.Println(quoteStyle.Render(fmt.Sprintf("%q", tip.Quote)))
	fmt.Println(authorStyle.Render("— " + tip.Author))
	fmt.Println()
	fmt.Println(stepStyle.Render("Today: " + tip.ActionStep))
	return nil
}
