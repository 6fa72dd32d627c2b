package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"sankalp/internal/ui/components"
)

// paletteAction runs one palette command against the model.
type paletteAction func(m Model, args []string) (tea.Model, tea.Cmd)

type paletteEntry struct {
	components.PaletteCommand
	run paletteAction
}

// paletteEntries is the single list the palette suggests from and
// executePalette dispatches on.
var paletteEntries = []paletteEntry{
	{components.PaletteCommand{Name: "mark", Usage: "mark", Help: "count one recitation"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		m.markSelfWrite()
		return m, m.markCmd()
	}},
	{components.PaletteCommand{Name: "undo", Usage: "undo", Help: "take back the last count"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		m.markSelfWrite()
		return m, m.undoCmd()
	}},
	{components.PaletteCommand{Name: "play", Usage: "play", Help: "play or pause the chalisa"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		return m, m.toggleCmd()
	}},
	{components.PaletteCommand{Name: "goal", Usage: "goal", Help: "change daily target or profile"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		return m.openOnboarding()
	}},
	{components.PaletteCommand{Name: "reminders", Usage: "reminders", Help: "list daily reminders"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		m.screen = screenReminders
		cmd := m.remindersView.Open()
		return m, cmd
	}},
	{components.PaletteCommand{Name: "remind", Usage: "remind <HH:MM>", Help: "add a daily reminder"}, func(m Model, args []string) (tea.Model, tea.Cmd) {
		if len(args) != 1 {
			m.status = "usage: remind <HH:MM>"
			return m, nil
		}
		m.screen = screenReminders
		cmd := m.remindersView.Add(args[0])
		return m, cmd
	}},
	{components.PaletteCommand{Name: "defaults", Usage: "defaults", Help: "restore the default reminder times"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		m.screen = screenReminders
		cmd := m.remindersView.Defaults()
		return m, cmd
	}},
	{components.PaletteCommand{Name: "loop", Usage: "loop <on|off>", Help: "replay until today's target"}, func(m Model, args []string) (tea.Model, tea.Cmd) {
		on, ok := parseOnOff(args)
		if !ok {
			m.status = "usage: loop <on|off>"
			return m, nil
		}
		m.markSelfWrite()
		return m, m.settingsCmd(&on, nil, "auto loop "+args[0])
	}},
	{components.PaletteCommand{Name: "resume", Usage: "resume <on|off>", Help: "offer to continue on return"}, func(m Model, args []string) (tea.Model, tea.Cmd) {
		on, ok := parseOnOff(args)
		if !ok {
			m.status = "usage: resume <on|off>"
			return m, nil
		}
		m.markSelfWrite()
		return m, m.settingsCmd(nil, &on, "resume prompt "+args[0])
	}},
	{components.PaletteCommand{Name: "refresh", Usage: "refresh", Help: "reload today's progress"}, func(m Model, _ []string) (tea.Model, tea.Cmd) {
		cmd := m.reload("refreshed")
		return m, cmd
	}},
}

func paletteCommands() []components.PaletteCommand {
	out := make([]components.PaletteCommand, 0, len(paletteEntries))
	for _, e := range paletteEntries {
		out = append(out, e.PaletteCommand)
	}
	return out
}

func (m Model) executePalette(name string, args []string) (tea.Model, tea.Cmd) {
	for _, e := range paletteEntries {
		if e.Name == name {
			return e.run(m, args)
		}
	}
	m.status = "unknown command: " + name
	return m, nil
}

func parseOnOff(args []string) (bool, bool) {
	if len(args) != 1 {
		return false, false
	}
	switch args[0] {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
