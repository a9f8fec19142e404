package console

import "github.com/charmbracelet/lipgloss"

// Palette shared by the prompts and the terminal chart.
var (
	Primary     = lipgloss.Color("#2196F3")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#8a94a6")
	Warning     = lipgloss.Color("#FFC107")
	Destructive = lipgloss.Color("#e53935")
)

// Theme groups the styles used by the Prompter.
type Theme struct {
	Banner      lipgloss.Style
	Proposition lipgloss.Style
	Prompt      lipgloss.Style
	Hint        lipgloss.Style
	Notice      lipgloss.Style
	Warning     lipgloss.Style
}

// DefaultTheme returns the styles used by NewPrompter.
func DefaultTheme() Theme {
	return Theme{
		Banner:      lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Proposition: lipgloss.NewStyle().Bold(true).PaddingLeft(2).Width(78),
		Prompt:      lipgloss.NewStyle().Foreground(Accent),
		Hint:        lipgloss.NewStyle().Foreground(Muted),
		Notice:      lipgloss.NewStyle(),
		Warning:     lipgloss.NewStyle().Foreground(Warning),
	}
}
