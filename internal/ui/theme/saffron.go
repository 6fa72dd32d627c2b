package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1f1408")
	Mantle   = lipgloss.Color("#2a1a0b")
	Surface0 = lipgloss.Color("#3d2612")
	Surface1 = lipgloss.Color("#5c3a1a")
	Text     = lipgloss.Color("#FFF6E9")
	Subtext0 = lipgloss.Color("#EDC8A3")
	Saffron  = lipgloss.Color("#D96500")
	Ember    = lipgloss.Color("#B94C00")
	Pulse    = lipgloss.Color("#F4A657")
	Track    = lipgloss.Color("#7A5A3A")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Saffron)

	Title = lipgloss.NewStyle().Foreground(Pulse).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Saffron).Bold(true)

	BeadFilled  = lipgloss.NewStyle().Foreground(Ember)
	BeadEmpty   = lipgloss.NewStyle().Foreground(Track)
	BeadPointer = lipgloss.NewStyle().Foreground(Pulse).Bold(true)
)
