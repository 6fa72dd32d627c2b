package reminders

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reminderdto "sankalp/internal/modules/reminder/dto"
	"sankalp/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) (reminderdto.ListOutput, error)
	Add(ctx context.Context, at string) (reminderdto.ListOutput, error)
	RemoveAt(ctx context.Context, index int) (reminderdto.ListOutput, error)
	Defaults(ctx context.Context) (reminderdto.ListOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	List   reminderdto.ListOutput
	Notice string
	Err    error
}

type BackMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type reminderItem struct {
	r reminderdto.ReminderOutput
}

func (i reminderItem) Title() string       { return i.r.Time }
func (i reminderItem) Description() string { return fmt.Sprintf("daily • #%d", i.r.Index+1) }
func (i reminderItem) FilterValue() string { return i.r.Time }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	input  textinput.Model
	adding bool
	status string
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Saffron).BorderForeground(theme.Saffron)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Pulse).BorderForeground(theme.Saffron)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Motivational Reminders"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("reminder", "reminders")

	in := textinput.New()
	in.Placeholder = "HH:MM"
	in.CharLimit = 5
	in.Prompt = "+ "

	return Model{port: port, list: l, input: in}
}

// Open reloads the list; call it whenever the screen is entered.
func (m *Model) Open() tea.Cmd {
	m.adding = false
	m.status = ""
	return m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.List(ctx) }, "")
}

// Add schedules a reminder at the given time without going through the input.
func (m *Model) Add(at string) tea.Cmd {
	m.adding = false
	return m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.Add(ctx, at) },
		"✅ Reminder Added. We’ll remind you daily with a motivational message!")
}

func (m *Model) Defaults() tea.Cmd {
	m.adding = false
	return m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.Defaults(ctx) },
		"Default seven reminders scheduled.")
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(min(50, m.width), max(5, m.height-6))
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.status = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.status = msg.Notice
		items := make([]list.Item, len(msg.List.Reminders))
		for i, r := range msg.List.Reminders {
			items[i] = reminderItem{r: r}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			case "enter":
				at := m.input.Value()
				m.adding = false
				m.input.Blur()
				return m, m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.Add(ctx, at) },
					"✅ Reminder Added. We’ll remind you daily with a motivational message!")
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return BackMsg{} }
		case "a", "+":
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case "x", "delete":
			item, ok := m.list.SelectedItem().(reminderItem)
			if !ok {
				return m, nil
			}
			idx := item.r.Index
			return m, m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.RemoveAt(ctx, idx) },
				"Removed. This reminder has been removed.")
		case "D":
			return m, m.run(func(ctx context.Context) (reminderdto.ListOutput, error) { return m.port.Defaults(ctx) },
				"Default seven reminders scheduled.")
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Adding reports whether the time input has the keyboard.
func (m Model) Adding() bool { return m.adding }

func (m Model) View() string {
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = theme.Title.Render("Motivational Reminders") + "\n\n" + theme.Muted.Render("No reminders yet.")
	}
	sub := theme.Muted.Render("Short, devotional prompts that help you honor your sankalp, without nagging.")
	footer := theme.Muted.Render("a: add time  x: remove  D: default seven  esc: back")
	if m.adding {
		footer = m.input.View() + theme.Muted.Render("  enter: add  esc: cancel")
	}
	parts := []string{sub, "", body, ""}
	if m.status != "" {
		parts = append(parts, theme.Hot.Render(m.status))
	}
	parts = append(parts, footer)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) run(op func(ctx context.Context) (reminderdto.ListOutput, error), notice string) tea.Cmd {
	return func() tea.Msg {
		out, err := op(context.Background())
		return LoadedMsg{List: out, Notice: notice, Err: err}
	}
}
