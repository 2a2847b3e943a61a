package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the pre-configured lipgloss styles of the shell.
type Styles struct {
	Title    lipgloss.Style
	Repo     lipgloss.Style
	Prompt   lipgloss.Style
	Answer   lipgloss.Style
	Evidence lipgloss.Style
	Label    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default shell styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")),
		Repo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")),
		Answer: lipgloss.NewStyle().
			PaddingLeft(1),
		Evidence: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			MarginTop(1),
	}
}
