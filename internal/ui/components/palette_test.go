package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var testCommands = []PaletteCommand{
	{Name: "mark", Usage: "mark", Help: "count one recitation"},
	{Name: "remind", Usage: "remind <HH:MM>", Help: "add a daily reminder"},
	{Name: "reminders", Usage: "reminders", Help: "list daily reminders"},
	{Name: "resume", Usage: "resume <on|off>", Help: "offer to continue on return"},
}

func typeInto(p Palette, s string) Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func names(cmds []PaletteCommand) string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return strings.Join(out, ",")
}

func TestPaletteSuggestsByPrefixThenExactName(t *testing.T) {
	p := NewPalette(testCommands)
	p.Open()

	p = typeInto(p, "re")
	if got := names(p.Suggestions()); got != "remind,reminders,resume" {
		t.Fatalf("prefix suggestions = %q", got)
	}
	p = typeInto(p, "mind 06:30")
	if got := names(p.Suggestions()); got != "remind" {
		t.Fatalf("with arguments only the exact command should remain, got %q", got)
	}
	if view := p.View(); !strings.Contains(view, "add a daily reminder") {
		t.Fatalf("view should show the command help:\n%s", view)
	}
}

func TestPaletteTabCompletesAndEnterSplitsArgs(t *testing.T) {
	p := NewPalette(testCommands)
	p.Open()
	p = typeInto(p, "ma")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "mark " {
		t.Fatalf("tab should complete to the first suggestion, got %q", got)
	}

	p = NewPalette(testCommands)
	p.Open()
	p = typeInto(p, "Remind 06:30")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("enter should close the palette and submit")
	}
	submit, ok := cmd().(PaletteSubmitMsg)
	if !ok || submit.Name != "remind" || len(submit.Args) != 1 || submit.Args[0] != "06:30" {
		t.Fatalf("unexpected submit %+v", submit)
	}
}

func TestPaletteEmptyEnterCancels(t *testing.T) {
	p := NewPalette(testCommands)
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("empty line should cancel")
	}
}
