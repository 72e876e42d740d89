package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RestartQuestion is the body of the restart confirmation dialog.
const RestartQuestion = "Restart the story from the beginning?"

// Model is the bubbletea model of one reading session.
type Model struct {
	nav    ports.Navigator
	view   domain.View
	styles Styles
	render func(string) (string, error)
	width  int
	notice string
}

// Option configures the Model.
type Option func(*Model)

// WithMarkdown renders paragraphs through a markdown renderer such as NewRenderer.
func WithMarkdown(render func(string) (string, error)) Option {
	return func(m *Model) {
		m.render = render
	}
}

// WithStyles replaces the default palette.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// New creates a Model showing the navigator's current view.
func New(nav ports.Navigator, opts ...Option) Model {
	m := Model{
		nav:    nav,
		view:   nav.View(),
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the full-screen reader and blocks until the reader quits.
func Run(nav ports.Navigator, opts ...Option) error {
	p := tea.NewProgram(New(nav, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the view on screen.
func (m Model) CurrentView() domain.View {
	return m.view
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		m.notice = ""
		if m.view.RestartPrompt {
			return m.updatePrompt(key)
		}
		return m.updateReading(key)
	}
	return m, nil
}

// updatePrompt handles keys while the restart dialog is open.
// Anything but a confirmation dismisses it.
func (m Model) updatePrompt(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		m.view = m.nav.ConfirmRestart()
	default:
		m.view = m.nav.CancelRestart()
	}
	return m, nil
}

func (m Model) updateReading(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "b", "backspace", "left":
		if !m.view.BackEnabled {
			m.notice = "There is nothing to go back to."
			return m, nil
		}
		m.view = m.nav.Back()
	case "r":
		m.view = m.nav.OpenRestart()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx >= len(m.view.Choices) {
				m.notice = fmt.Sprintf("There is no choice %d.", idx+1)
				return m, nil
			}
			m.view = m.nav.Choose(idx)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	switch {
	case m.view.Kind == domain.ViewLoading:
		b.WriteString("Loading...\n")
		return b.String()
	case m.view.IsError():
		b.WriteString(m.styles.Error.Render(strings.ToUpper(m.view.Title)))
		b.WriteString("\n\n")
		b.WriteString(m.wrap(m.view.Message))
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.Title.Render(m.view.Title))
		b.WriteString("\n")
		b.WriteString(m.paragraphs())
	}

	if m.view.RestartPrompt {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(RestartQuestion + "\n\n" + m.styles.Key.Render("y") + " restart   " + m.styles.Key.Render("n") + " keep reading"))
		b.WriteString("\n")
		return b.String()
	}

	for _, c := range m.view.Choices {
		b.WriteString(m.styles.Choice.Render(m.styles.Key.Render(fmt.Sprintf("[%d]", c.Index+1)) + " " + c.Label))
		b.WriteString("\n")
	}
	if m.view.Ended {
		b.WriteString(m.styles.Ended.Render(m.view.Message))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) paragraphs() string {
	texts := make([]string, len(m.view.Paragraphs))
	for i, p := range m.view.Paragraphs {
		texts[i] = strings.Join(p, " ")
	}

	if m.render != nil && len(texts) > 0 {
		if out, err := m.render(strings.Join(texts, "\n\n")); err == nil {
			return out
		}
	}

	var b strings.Builder
	for _, t := range texts {
		b.WriteString(m.styles.Paragraph.Render(m.wrap(t)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) wrap(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width).Render(s)
}

func (m Model) help() string {
	parts := make([]string, 0, 4)
	if n := len(m.view.Choices); n > 0 {
		parts = append(parts, fmt.Sprintf("1-%d choose", n))
	}
	if m.view.BackEnabled {
		parts = append(parts, "b back")
	}
	parts = append(parts, "r restart", "q quit")
	return strings.Join(parts, " • ")
}
