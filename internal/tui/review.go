package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lruiz/growthspace/internal/suggest"
)

// ReviewKeyMap binds the card review actions
type ReviewKeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func DefaultReviewKeyMap() ReviewKeyMap {
	return ReviewKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "accept"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReviewModel walks the user through a suggestion batch one card at a time
// and quits itself once every card is resolved
type ReviewModel struct {
	workflow *suggest.Workflow
	keys     ReviewKeyMap
	status   string
	accepted int
}

func NewReview(workflow *suggest.Workflow) ReviewModel {
	return ReviewModel{
		workflow: workflow,
		keys:     DefaultReviewKeyMap(),
	}
}

// Accepted reports how many cards were integrated during the session
func (m ReviewModel) Accepted() int {
	return m.accepted
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	pending := m.workflow.Pending()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Accept):
		if len(pending) == 0 {
			return m, tea.Quit
		}
		card := pending[0]
		if habit, ok := m.workflow.Accept(card.ID); ok && habit != nil {
			m.accepted++
			m.status = fmt.Sprintf("Added %q", habit.Name)
		} else {
			m.status = "Nothing to add for that card"
		}

	case key.Matches(keyMsg, m.keys.Dismiss):
		if len(pending) == 0 {
			return m, tea.Quit
		}
		m.workflow.Dismiss(pending[0].ID)
		m.status = "Dismissed"
	}

	// Batch resolved: auto-dismiss the presentation surface
	if m.workflow.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m ReviewModel) View() string {
	pending := m.workflow.Pending()
	if len(pending) == 0 {
		return docStyle.Render("All suggestions reviewed.\n")
	}

	card := pending[0]
	body := titleStyle.Render(card.Title) + "\n" +
		kindStyle.Render(string(card.Kind)) + "\n\n" +
		descStyle.Render(card.Description)

	view := cardStyle.Render(body) + "\n"
	if m.status != "" {
		view += statusStyle.Render(m.status) + "\n"
	}
	view += helpStyle.Render(fmt.Sprintf(
		"%d card(s) left • a/enter accept • d dismiss • q quit", len(pending)))

	return docStyle.Render(view)
}
