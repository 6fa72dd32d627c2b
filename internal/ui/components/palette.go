package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sankalp/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed line, split into a command name and
// its arguments.
type PaletteSubmitMsg struct {
	Name string
	Args []string
}

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteCommand describes one entry the palette can suggest.
type PaletteCommand struct {
	Name  string
	Usage string
	Help  string
}

const maxSuggestions = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Saffron).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Text)
	helpStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a one-line command prompt. It knows only the commands it was
// built with; executing them is the caller's job.
type Palette struct {
	commands []PaletteCommand
	input    textinput.Model
	visible  bool
	width    int
}

func NewPalette(commands []PaletteCommand) Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "mark, play, remind 06:30…"
	ti.CharLimit = 64
	return Palette{commands: commands, input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty line and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Suggestions lists the commands whose name starts with the typed word.
// Once arguments are being typed only the exact command is shown.
func (p Palette) Suggestions() []PaletteCommand {
	line := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, typingArgs := strings.Cut(line, " ")
	var out []PaletteCommand
	for _, c := range p.commands {
		match := strings.HasPrefix(c.Name, word)
		if typingArgs {
			match = c.Name == word
		}
		if match {
			out = append(out, c)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			fields := strings.Fields(strings.ToLower(p.input.Value()))
			p.close()
			if len(fields) == 0 {
				return p, func() tea.Msg { return PaletteCancelMsg{} }
			}
			submit := PaletteSubmitMsg{Name: fields[0], Args: fields[1:]}
			return p, func() tea.Msg { return submit }
		case "tab":
			if s := p.Suggestions(); len(s) > 0 {
				p.input.SetValue(s[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	suggestions := p.Suggestions()
	col := 0
	for _, c := range suggestions {
		col = max(col, lipgloss.Width(c.Usage))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if len(suggestions) == 0 {
		sb.WriteString("\n" + helpStyle.Render("  no such command; esc to close"))
	} else {
		sb.WriteString("\n")
		for _, c := range suggestions {
			pad := strings.Repeat(" ", col-lipgloss.Width(c.Usage)+2)
			sb.WriteString("  " + usageStyle.Render(c.Usage) + pad + helpStyle.Render(c.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
