package welcome

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"sankalp/internal/ui/theme"
)

// StartMsg is sent when the user leaves the welcome screen.
type StartMsg struct{}

const Markdown = `# Hanuman Chalisa Sankalp

A daily pause for inner peace, positivity, and better health.

- Build a gentle daily habit
- Let the mind settle in bhakti
- Invite courage, focus, and strength

Press **enter** to set your sankalp.
`

const watermark = "जय श्री राम  •  जय सीता राम  •  जय हनुमान  •  जय बजरंगबली"

type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New() Model {
	m := Model{viewport: viewport.New(0, 0)}
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(60),
	)
	m.viewport.SetContent(m.render())
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		if msg.String() == "enter" || msg.String() == " " {
			return m, func() tea.Msg { return StartMsg{} }
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	mark := theme.Muted.Render(watermark)
	body := lipgloss.JoinVertical(lipgloss.Center, mark, m.viewport.View(), mark)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) resize() {
	wrap := m.width - 8
	if wrap > 72 {
		wrap = 72
	}
	if wrap < 20 {
		wrap = 20
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}
	m.viewport.Width = wrap + 4
	m.viewport.Height = m.height - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.viewport.SetContent(m.render())
}

func (m Model) render() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(Markdown); err == nil {
			return out
		}
	}
	return Markdown
}
