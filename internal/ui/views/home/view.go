package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sankalpdto "sankalp/internal/modules/sankalp/dto"
	"sankalp/internal/ui/components"
	"sankalp/internal/ui/theme"
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the daily counter, the mala and the action row. It holds no
// business state of its own; the app model pushes snapshots into it.
type Model struct {
	state      sankalpdto.StateOutput
	filled     int
	phase      string
	hasPointer bool
	pointer    int
	banner     string
	prompt     string

	bar     progress.Model
	spinner spinner.Model
	width   int
	height  int
}

func New() Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Pulse), string(theme.Ember)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Moon
	sp.Style = lipgloss.NewStyle().Foreground(theme.Pulse)

	return Model{bar: bar, spinner: sp, phase: "idle"}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(48, max(10, m.width-8))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) SetState(s sankalpdto.StateOutput, filled int) {
	m.state = s
	m.filled = filled
}

func (m *Model) SetPlayback(phase string, hasPointer bool, pointer int) {
	m.phase = phase
	m.hasPointer = hasPointer
	m.pointer = pointer
}

// SetBanner shows a one-off message above the actions; empty clears it.
func (m *Model) SetBanner(text string) { m.banner = text }

// SetPrompt shows the resume question; empty hides it.
func (m *Model) SetPrompt(text string) { m.prompt = text }

func (m Model) Banner() string { return m.banner }

func (m Model) Prompting() bool { return m.prompt != "" }

func (m Model) Playing() bool { return m.phase == "playing" }

func (m Model) View() string {
	s := m.state
	var sb strings.Builder

	greeting := "Welcome. Your daily connection."
	if s.Name != "" {
		greeting = fmt.Sprintf("Welcome, %s. Your daily connection.", s.Name)
	}
	sb.WriteString(theme.Title.Render("Hanuman Chalisa Sankalp") + "\n")
	sb.WriteString(theme.Muted.Render(greeting) + "\n\n")

	counter := theme.Hot.Render(fmt.Sprintf("%d", s.CompletedToday)) + theme.Muted.Render(fmt.Sprintf(" / %d", s.DailyTarget))
	sb.WriteString(components.Mala(m.filled, m.pointer, m.hasPointer, counter, m.phaseLabel()) + "\n\n")

	fraction := 0.0
	if s.DailyTarget > 0 {
		fraction = float64(s.CompletedToday) / float64(s.DailyTarget)
	}
	sb.WriteString(m.bar.ViewAs(min(fraction, 1)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Today • Streak %d • Lifetime %d", s.Streak, s.TotalCompletedAllTime)) + "\n\n")

	if m.banner != "" {
		sb.WriteString(theme.Hot.Render(m.banner) + "\n\n")
	}

	play := "space: Play Now"
	if m.Playing() {
		play = "space: Pause"
	}
	sb.WriteString(theme.Title.Render(play) + theme.Muted.Render("   +: Mark One   u: Undo") + "\n")
	sb.WriteString(theme.Muted.Render("g: Change Goal / Profile   r: Edit Reminders") + "\n")

	body := sb.String()
	if m.prompt != "" {
		modal := theme.PaneActive.Render(
			theme.Title.Render("Continue sankalp?") + "\n" + m.prompt + "\n\n" +
				theme.Muted.Render("enter/p: Play   n/esc: Not now"))
		body = lipgloss.JoinVertical(lipgloss.Center, body, modal)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(body))
}

func (m Model) phaseLabel() string {
	switch m.phase {
	case "playing":
		return m.spinner.View() + theme.Muted.Render(" playing")
	case "finished":
		return theme.Muted.Render("saving…")
	default:
		return ""
	}
}
