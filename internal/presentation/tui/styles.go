package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles of the reading screen.
type Styles struct {
	Title     lipgloss.Style
	Paragraph lipgloss.Style
	Choice    lipgloss.Style
	Key       lipgloss.Style
	Ended     lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
	Help      lipgloss.Style
	Notice    lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34d399")).MarginBottom(1),
		Paragraph: lipgloss.NewStyle().MarginBottom(1),
		Choice:    lipgloss.NewStyle().PaddingLeft(2),
		Key:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#38bdf8")),
		Ended:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fbbf24")).
			Padding(0, 2),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
	}
}
