package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	playerdto "sankalp/internal/modules/player/dto"
	sankalpdto "sankalp/internal/modules/sankalp/dto"
	apperrors "sankalp/internal/platform/errors"
	"sankalp/internal/ui/components"
	"sankalp/internal/ui/theme"
	homeview "sankalp/internal/ui/views/home"
	onboardingview "sankalp/internal/ui/views/onboarding"
	remindersview "sankalp/internal/ui/views/reminders"
	welcomeview "sankalp/internal/ui/views/welcome"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type trackerPort interface {
	Focus(ctx context.Context) (sankalpdto.StateOutput, error)
	Foreground(ctx context.Context) (sankalpdto.ResumeOutput, error)
	MarkOne(ctx context.Context) (sankalpdto.CompletionOutput, error)
	Undo(ctx context.Context) (sankalpdto.StateOutput, error)
	Onboard(ctx context.Context, target int, name, email string) (sankalpdto.StateOutput, error)
	Settings(ctx context.Context, autoLoop, resumePrompt *bool) (sankalpdto.StateOutput, error)
	GoalOptions() []int
}

type playerPort interface {
	Load(ctx context.Context) error
	Toggle(ctx context.Context) (playerdto.StatusOutput, error)
	Updates() <-chan playerdto.Update
	FilledBeads(completed, target int) int
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenIntro screenID = iota
	screenWelcome
	screenOnboarding
	screenHome
	screenReminders
)

var screenLabels = map[screenID]string{
	screenIntro:      "",
	screenWelcome:    "Welcome",
	screenOnboarding: "Sankalp",
	screenHome:       "Home",
	screenReminders:  "Reminders",
}

const (
	introDelay     = 1200 * time.Millisecond
	selfWriteQuiet = 1500 * time.Millisecond

	goalCompleteBanner = "Jai Hanuman 🙏 Today’s sankalp complete. Your streak grows stronger."
)

// ─── async messages ───────────────────────────────────────────────────────────

type introDoneMsg struct{}

type stateLoadedMsg struct {
	state  sankalpdto.StateOutput
	notice string
	err    error
}

type onboardedMsg struct {
	state sankalpdto.StateOutput
}

type resumeMsg struct {
	out sankalpdto.ResumeOutput
	err error
}

type completionMsg struct {
	out sankalpdto.CompletionOutput
	err error
}

type audioLoadedMsg struct{ err error }

type toggledMsg struct {
	status playerdto.StatusOutput
	err    error
}

type playerUpdateMsg struct {
	update playerdto.Update
	ok     bool
}

type stateChangedMsg struct{ ok bool }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Play      key.Binding
	Mark      key.Binding
	Undo      key.Binding
	Goal      key.Binding
	Reminders key.Binding
	Palette   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Mark:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "mark one")),
		Undo:      key.NewBinding(key.WithKeys("u", "-"), key.WithHelp("u", "undo")),
		Goal:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "goal / profile")),
		Reminders: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reminders")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Mark, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Mark, k.Undo},
		{k.Goal, k.Reminders},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between screens, feeds
// player updates and state reloads into the home view and owns the help
// overlay and command palette. Business logic stays behind the ports.
type Model struct {
	tracker   trackerPort
	player    playerPort
	changes   <-chan struct{}
	audioPath string

	welcomeView    welcomeview.Model
	onboardingView onboardingview.Model
	homeView       homeview.Model
	remindersView  remindersview.Model

	screen     screenID
	introDone  bool
	loaded     bool
	state      sankalpdto.StateOutput
	quietUntil time.Time
	now        func() time.Time

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

// NewModel wires the screens. changes may be nil when no state watcher runs.
func NewModel(tracker trackerPort, player playerPort, reminders remindersview.Port, changes <-chan struct{}, audioPath string) Model {
	return Model{
		tracker:        tracker,
		player:         player,
		changes:        changes,
		audioPath:      audioPath,
		welcomeView:    welcomeview.New(),
		onboardingView: onboardingview.New(tracker.GoalOptions()),
		homeView:       homeview.New(),
		remindersView:  remindersview.New(reminders),
		screen:         screenIntro,
		quietUntil:     time.Now().Add(selfWriteQuiet),
		now:            time.Now,
		keys:           defaultKeys(),
		help:           help.New(),
		palette:        components.NewPalette(paletteCommands()),
		status:         "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(introDelay, func(time.Time) tea.Msg { return introDoneMsg{} }),
		m.focusCmd(""),
		m.loadAudioCmd(),
		m.waitForUpdate(),
		m.waitForChange(),
		m.homeView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.palette.Visible() {
		return m.update(msg)
	}
	// The open palette takes the keyboard. Everything else, such as player
	// updates and watcher wakeups, still reaches the screens so their waits
	// are re-armed.
	var paletteCmd tea.Cmd
	m.palette, paletteCmd = m.palette.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, paletteCmd
	}
	next, cmd := m.update(msg)
	return next, tea.Batch(paletteCmd, cmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 60))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case introDoneMsg:
		m.introDone = true
		return m.route()

	case stateLoadedMsg:
		if msg.err != nil {
			m.status = "state: " + msg.err.Error()
			return m, nil
		}
		m.loaded = true
		m.applyState(msg.state)
		if msg.notice != "" {
			m.status = msg.notice
		}
		if m.screen == screenIntro {
			return m.route()
		}
		return m, nil

	case resumeMsg:
		if msg.err != nil {
			m.status = "state: " + msg.err.Error()
			return m, m.waitForChange()
		}
		m.applyState(msg.out.State)
		if msg.out.Prompt && m.screen == screenHome && !m.homeView.Playing() && m.now().After(m.quietUntil) {
			m.homeView.SetPrompt(fmt.Sprintf("You are at %d/%d. Continue now?", msg.out.State.CompletedToday, msg.out.State.DailyTarget))
		}
		return m, m.waitForChange()

	case completionMsg:
		if msg.err != nil {
			m.status = "mark: " + msg.err.Error()
			return m, nil
		}
		m.applyState(msg.out.State)
		if msg.out.GoalReached {
			m.homeView.SetBanner(goalCompleteBanner)
		}
		m.status = fmt.Sprintf("marked %d/%d", msg.out.State.CompletedToday, msg.out.State.DailyTarget)
		return m, nil

	case audioLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrAudioUnavailable) {
				m.status = "Audio Missing: add MP3 at " + m.audioPath
			} else {
				m.status = "audio: " + msg.err.Error()
			}
		}
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrNotLoaded) {
				m.status = "Audio Missing: add MP3 at " + m.audioPath
			} else {
				m.status = "player: " + msg.err.Error()
			}
			return m, nil
		}
		m.homeView.SetPlayback(msg.status.Phase, msg.status.Playing, msg.status.BeadIndex)
		return m, nil

	case playerUpdateMsg:
		if !msg.ok {
			return m, nil
		}
		u := msg.update
		m.homeView.SetPlayback(u.Phase, u.HasPointer, u.BeadIndex)
		cmds := []tea.Cmd{m.waitForUpdate()}
		if u.Notice != "" {
			m.status = u.Notice
		}
		if c := u.Completion; c != nil {
			if c.GoalReached {
				m.homeView.SetBanner(goalCompleteBanner)
			}
			cmds = append(cmds, m.reload(fmt.Sprintf("completed %d/%d", c.CompletedToday, c.DailyTarget)))
		}
		return m, tea.Batch(cmds...)

	case stateChangedMsg:
		if !msg.ok {
			return m, nil
		}
		return m, m.foregroundCmd()

	case onboardedMsg:
		m.loaded = true
		m.applyState(msg.state)
		return m.goHome(fmt.Sprintf("sankalp set: %d per day", msg.state.DailyTarget))

	case welcomeview.StartMsg:
		return m.openOnboarding()

	case onboardingview.SubmitMsg:
		m.markSelfWrite()
		return m, m.onboardCmd(msg)

	case onboardingview.CancelMsg:
		if m.state.Onboarded {
			return m.goHome("")
		}
		m.screen = screenWelcome
		return m, nil

	case remindersview.BackMsg:
		return m.goHome("")

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Name, msg.Args)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch m.screen {
		case screenIntro:
			m.introDone = true
			return m.route()
		case screenHome:
			return m.updateHomeKeys(msg)
		}
	}

	return m.updateActive(msg)
}

func (m Model) updateHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.homeView.Prompting() {
		switch msg.String() {
		case "enter", "p", "y":
			m.homeView.SetPrompt("")
			return m, m.toggleCmd()
		case "esc", "n":
			m.homeView.SetPrompt("")
		}
		return m, nil
	}

	m.homeView.SetBanner("")
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		return m, m.toggleCmd()
	case key.Matches(msg, m.keys.Mark):
		m.markSelfWrite()
		return m, m.markCmd()
	case key.Matches(msg, m.keys.Undo):
		m.markSelfWrite()
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Goal):
		return m.openOnboarding()
	case key.Matches(msg, m.keys.Reminders):
		m.screen = screenReminders
		cmd := m.remindersView.Open()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		cmd := m.palette.Open()
		return m, cmd
	}
	return m, nil
}

// updateActive forwards msg to the visible screen. Spinner ticks always reach
// the home view so its animation keeps running while other screens show.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenWelcome:
		m.welcomeView, cmd = m.welcomeView.Update(msg)
	case screenOnboarding:
		m.onboardingView, cmd = m.onboardingView.Update(msg)
	case screenReminders:
		m.remindersView, cmd = m.remindersView.Update(msg)
	case screenHome:
		m.homeView, cmd = m.homeView.Update(msg)
	default:
		m.homeView, cmd = m.homeView.Update(msg)
	}
	if _, ok := msg.(tea.KeyMsg); !ok && m.screen != screenHome && m.screen != screenIntro {
		var homeCmd tea.Cmd
		m.homeView, homeCmd = m.homeView.Update(msg)
		cmd = tea.Batch(cmd, homeCmd)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.screen == screenIntro {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Hot.Render("जय हनुमान"))
	}

	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		h := m.help
		h.ShowAll = true
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(h.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenWelcome:
		return m.welcomeView.View()
	case screenOnboarding:
		return m.onboardingView.View()
	case screenReminders:
		return m.remindersView.View()
	default:
		return m.homeView.View()
	}
}

func (m Model) renderTitleBar() string {
	left := theme.Hot.Render("sankalp") + theme.Muted.Render("  "+screenLabels[m.screen])
	right := ""
	if m.state.Onboarded {
		right = theme.Muted.Render(fmt.Sprintf("%s  streak %d", m.state.LastDate, m.state.Streak))
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left+strings.Repeat(" ", gap)+right) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) route() (tea.Model, tea.Cmd) {
	if !m.introDone || !m.loaded || m.screen != screenIntro {
		return m, nil
	}
	if m.state.Onboarded {
		m.screen = screenHome
		return m, nil
	}
	m.screen = screenWelcome
	return m, nil
}

func (m Model) goHome(notice string) (tea.Model, tea.Cmd) {
	m.screen = screenHome
	cmd := m.reload(notice)
	return m, cmd
}

func (m Model) openOnboarding() (tea.Model, tea.Cmd) {
	m.screen = screenOnboarding
	target := m.state.DailyTarget
	cmd := m.onboardingView.Open(m.state.Name, m.state.Email, target)
	return m, cmd
}

func (m *Model) applyState(s sankalpdto.StateOutput) {
	m.state = s
	m.homeView.SetState(s, m.player.FilledBeads(s.CompletedToday, s.DailyTarget))
}

// markSelfWrite keeps the watcher echo of our own write from raising the
// resume prompt.
func (m *Model) markSelfWrite() {
	m.quietUntil = m.now().Add(selfWriteQuiet)
}

// reload re-reads the record. The read rolls over and writes back, so the
// watcher echo is covered by the quiet window too.
func (m *Model) reload(notice string) tea.Cmd {
	m.markSelfWrite()
	return m.focusCmd(notice)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.welcomeView, _ = m.welcomeView.Update(sz)
	m.onboardingView, _ = m.onboardingView.Update(sz)
	m.homeView, _ = m.homeView.Update(sz)
	m.remindersView, _ = m.remindersView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) focusCmd(notice string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.tracker.Focus(context.Background())
		return stateLoadedMsg{state: s, notice: notice, err: err}
	}
}

func (m Model) foregroundCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.Foreground(context.Background())
		return resumeMsg{out: out, err: err}
	}
}

func (m Model) markCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.MarkOne(context.Background())
		return completionMsg{out: out, err: err}
	}
}

func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.tracker.Undo(context.Background())
		return stateLoadedMsg{state: s, notice: "undone", err: err}
	}
}

func (m Model) onboardCmd(in onboardingview.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		s, err := m.tracker.Onboard(context.Background(), in.Target, in.Name, in.Email)
		if err != nil {
			return stateLoadedMsg{err: err}
		}
		return onboardedMsg{state: s}
	}
}

func (m Model) settingsCmd(autoLoop, resumePrompt *bool, notice string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.tracker.Settings(context.Background(), autoLoop, resumePrompt)
		return stateLoadedMsg{state: s, notice: notice, err: err}
	}
}

func (m Model) loadAudioCmd() tea.Cmd {
	return func() tea.Msg {
		return audioLoadedMsg{err: m.player.Load(context.Background())}
	}
}

func (m Model) toggleCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.player.Toggle(context.Background())
		return toggledMsg{status: st, err: err}
	}
}

// waitForUpdate blocks on the player channel; it is re-issued after every
// update so exactly one read is outstanding.
func (m Model) waitForUpdate() tea.Cmd {
	ch := m.player.Updates()
	return func() tea.Msg {
		u, ok := <-ch
		return playerUpdateMsg{update: u, ok: ok}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		_, ok := <-ch
		return stateChangedMsg{ok: ok}
	}
}
