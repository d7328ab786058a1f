// Package tui implements the Bubble Tea interactive pieces: the repository
// candidate picker and the cost confirmation prompt.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sstitle/public-explanation/internal/explain"
	"github.com/sstitle/public-explanation/internal/resolve"
)

const maxDescriptionWidth = 48

// pickerModel presents ranked search candidates in a table.
type pickerModel struct {
	table      table.Model
	candidates []resolve.Candidate
	choice     int // index into candidates, -1 when cancelled
	done       bool
}

func newPicker(candidates []resolve.Candidate) pickerModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Repository", Width: 32},
		{Title: "Description", Width: maxDescriptionWidth},
		{Title: "Stars", Width: 8},
		{Title: "Size", Width: 9},
		{Title: "Language", Width: 12},
	}

	rows := make([]table.Row, len(candidates))
	for i, c := range candidates {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			c.Repo.FullName(),
			truncate(c.Repo.Describe(), maxDescriptionWidth),
			fmt.Sprintf("%d", c.Repo.Stars),
			fmt.Sprintf("%.1fMB", c.Repo.SizeMB()),
			orDash(c.Repo.Language),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		// One extra row so the header does not eat the last candidate.
		table.WithHeight(len(rows)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = tableHeaderStyle
	styles.Selected = tableSelectedStyle
	t.SetStyles(styles)

	return pickerModel{table: t, candidates: candidates, choice: -1}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.choice = m.table.Cursor()
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	return titleStyle.Render("Repository search results") + "\n" +
		m.table.View() + "\n" +
		helpStyle.Render("↑/↓ move · enter select · q cancel")
}

// PickRepository runs the interactive candidate picker and returns the chosen
// repository. Cancelling yields ErrUserDeclined.
func PickRepository(candidates []resolve.Candidate) (explain.Repository, error) {
	if len(candidates) == 0 {
		return explain.Repository{}, explain.ErrNotFound
	}
	if len(candidates) == 1 {
		return candidates[0].Repo, nil
	}

	final, err := tea.NewProgram(newPicker(candidates)).Run()
	if err != nil {
		return explain.Repository{}, fmt.Errorf("running picker: %w", err)
	}

	m := final.(pickerModel)
	if m.choice < 0 {
		return explain.Repository{}, explain.ErrUserDeclined
	}
	return m.candidates[m.choice].Repo, nil
}

// truncate shortens s to width runes; slicing on runes keeps multibyte
// descriptions valid UTF-8.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
