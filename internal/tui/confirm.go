package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a minimal y/N prompt.
type confirmModel struct {
	message  string
	accepted bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.accepted = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "enter", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return m.message + "\n\n" + promptStyle.Render("Continue? [y/N] ")
}

// Confirm shows the message and asks for explicit affirmation. Any response
// other than y is a decline.
func Confirm(message string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{message: message}).Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}
	return final.(confirmModel).accepted, nil
}
