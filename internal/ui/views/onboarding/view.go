package onboarding

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sankalp/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type SubmitMsg struct {
	Target int
	Name   string
	Email  string
}

type CancelMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldGoal
	fieldCount
)

var chipStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Surface1).
	Padding(0, 1)

type Model struct {
	goals  []int
	goal   int
	name   textinput.Model
	email  textinput.Model
	focus  field
	errMsg string
	width  int
	height int
}

// New builds the form; goals is the menu of daily targets.
func New(goals []int) Model {
	name := textinput.New()
	name.Placeholder = "e.g., Rahul"
	name.CharLimit = 64
	name.Prompt = "› "

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Prompt = "› "

	return Model{goals: goals, name: name, email: email}
}

// Open pre-fills the form and focuses the name field.
func (m *Model) Open(name, email string, target int) tea.Cmd {
	m.name.SetValue(name)
	m.email.SetValue(email)
	m.goal = 0
	for i, g := range m.goals {
		if g == target {
			m.goal = i
		}
	}
	m.errMsg = ""
	m.focus = fieldName
	m.email.Blur()
	return m.name.Focus()
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % fieldCount)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, cmd
		case "enter":
			return m.submit()
		}
		if m.focus == fieldGoal {
			switch msg.String() {
			case "left", "h":
				m.goal = (m.goal + len(m.goals) - 1) % len(m.goals)
			case "right", "l":
				m.goal = (m.goal + 1) % len(m.goals)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		m.errMsg = "Please enter your name."
		cmd := m.setFocus(fieldName)
		return m, cmd
	}
	out := SubmitMsg{Target: m.goals[m.goal], Name: name, Email: strings.TrimSpace(m.email.Value())}
	return m, func() tea.Msg { return out }
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	switch f {
	case fieldName:
		return m.name.Focus()
	case fieldEmail:
		return m.email.Focus()
	}
	return nil
}

func (m Model) View() string {
	label := func(f field, text string) string {
		if m.focus == f {
			return theme.Hot.Render(text)
		}
		return theme.Muted.Render(text)
	}

	chips := make([]string, len(m.goals))
	for i, g := range m.goals {
		style := chipStyle
		if i == m.goal {
			style = style.BorderForeground(theme.Saffron).Foreground(theme.Saffron).Bold(true)
		}
		chips[i] = style.Render(fmt.Sprintf("%d", g))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Let’s set your Sankalp") + "\n")
	sb.WriteString(theme.Muted.Render("Tell us your name and choose a daily goal.") + "\n\n")
	sb.WriteString(label(fieldName, "Your Name") + "\n" + m.name.View() + "\n\n")
	sb.WriteString(label(fieldEmail, "Email (optional)") + "\n" + m.email.View() + "\n\n")
	sb.WriteString(label(fieldGoal, "Daily Goal") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n\n")
	if m.errMsg != "" {
		sb.WriteString(theme.Hot.Render(m.errMsg) + "\n")
	}
	sb.WriteString(theme.Muted.Render("tab: next field  ←/→: goal  enter: Continue  esc: back"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.Pane.Width(min(60, max(30, m.width-4))).Render(sb.String()))
}
