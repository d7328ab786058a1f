package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorFg     = lipgloss.Color("#f8f8f2")
	colorBorder = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 1, 0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorBorder).
				Bold(true)

	// Styles exported for the CLI layer's status output.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)
