package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lruiz/growthspace/internal/ai"
	"github.com/lruiz/growthspace/internal/schedule"
)

var (
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	insightStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("252"))
)

type StatsCmd struct {
	NoInsight bool `help:"Skip the AI progress insight."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	all := habits.Habits()
	if len(all) == 0 {
		fmt.Println("No habits to chart yet.")
		return nil
	}

	fmt.Println("Completions over the last 7 days:")
	fmt.Println()

	trend := schedule.WeeklyTrend(all, time.Now())
	for _, p := range trend {
		bar := strings.Repeat("█", p.Count)
		fmt.Printf("  %s %s  %s %d\n", p.Label, p.Day, barStyle.Render(bar), p.Count)
	}

	if c.NoInsight {
		return nil
	}

	// The insight degrades to a fixed line when the collaborator is
	// unreachable; stats never fails because of it
	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	insight, err := ctx.aiClient().AnalyzeProgress(reqCtx, all)
	if err != nil || insight == "" {
		insight = ai.FallbackInsight
	}
	fmt.Println()
	fmt.Println(insightStyle.Render(insight))

	return nil
}
