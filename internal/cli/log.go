package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lruiz/growthspace/internal/suggest"
	"github.com/lruiz/growthspace/internal/tui"
)

type LogCmd struct {
	Text []string `arg:"" help:"Free-text journal entry, e.g. 'dentist on Feb 14, want to run more'."`
}

func (c *LogCmd) Run(ctx *Context) error {
	habits, err := ctx.loadStore()
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("log text is required")
	}

	workflow := suggest.New(ctx.aiClient(), habits)

	reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("Thinking about your log...")
	cards := workflow.RequestSuggestions(reqCtx, text)
	if len(cards) == 0 {
		// Fail-open contract: no suggestions is a quiet outcome, not an error
		fmt.Println("No suggestions this time.")
		return nil
	}

	p := tea.NewProgram(tui.NewReview(workflow))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("review session failed: %w", err)
	}

	if review, ok := finalModel.(tui.ReviewModel); ok && review.Accepted() > 0 {
		fmt.Printf("Integrated %d suggestion(s) into your habits.\n", review.Accepted())
	}
	return nil
}
