package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/debug"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/form"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/intro"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/results"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/spin"
	"github.com/GabrielMeirinho/mash4gelt/internal/views/status"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayLog
)

// Settings are the timing and logging knobs from configuration.
type Settings struct {
	StepInterval   time.Duration
	LetterInterval time.Duration
	Seed           uint64
	Verbose        bool
}

// eventQueue collects session events during one Update so they are
// handled after the operation that caused them has finished.
type eventQueue struct {
	events []game.Event
}

func (q *eventQueue) push(ev game.Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []game.Event {
	evs := q.events
	q.events = nil
	return evs
}

// stepMsg asks for the next elimination of spin run number run.
type stepMsg struct{ run int }

// Model is the root Bubble Tea model.
type Model struct {
	session  *game.Session
	audio    *audio.Controller
	queue    *eventQueue
	ctx      context.Context
	cancel   context.CancelFunc
	settings Settings

	keys    KeyMap
	help    help.Model
	width   int
	height  int
	overlay Overlay
	run     int

	// Sub-views.
	intro     intro.Model
	form      form.Model
	spin      spin.Model
	results   results.Model
	statusBar status.Model
	log       debug.Model

	startCmd tea.Cmd
}

// New creates the root model around a session in the Intro phase.
func New(session *game.Session, ctrl *audio.Controller, settings Settings) Model {
	ctx, cancel := context.WithCancel(context.Background())
	q := &eventQueue{}
	session.Subscribe(q.push)

	m := Model{
		session:   session,
		audio:     ctrl,
		queue:     q,
		ctx:       ctx,
		cancel:    cancel,
		settings:  settings,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		intro:     intro.New(settings.LetterInterval),
		form:      form.New(),
		spin:      spin.New(),
		results:   results.New(),
		statusBar: status.New(),
		log:       debug.New(),
	}
	m.statusBar.Phase = session.Phase()
	m.statusBar.Music = ctrl.Enabled()
	m.statusBar.Seed = settings.Seed
	m.startCmd = m.intro.Begin()
	return m
}

// Init starts the marquee and the intro music.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd, m.enterPhase(m.session.Phase()))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.intro.Width = msg.Width
		m.form.Width = msg.Width
		m.spin.Width = msg.Width
		m.results.Width = msg.Width
		m.help.Width = msg.Width
		m.log.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		retry := m.gesture()
		next, cmd := m.handleKey(msg)
		return next, tea.Batch(retry, cmd)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, m.gesture()
		}
		return m, nil

	case unlockedMsg:
		if msg.ran {
			m.logf("audio", "retried cue on gesture")
		}
		m.statusBar.Waiting = m.audio.UnlockArmed()
		return m, nil

	case intro.TickMsg:
		var cmd tea.Cmd
		m.intro, cmd = m.intro.Update(msg)
		return m, cmd

	case spin.FrameMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stepMsg:
		if msg.run != m.run || m.session.Phase() != game.Spinning {
			return m, nil
		}
		m.session.AdvanceElimination()
		cmd := m.drain()
		if m.session.Phase() == game.Spinning {
			cmd = tea.Batch(cmd, m.nextStep())
		}
		return m, cmd

	case cuePlayedMsg:
		m.onCuePlayed(msg)
		m.statusBar.Waiting = m.audio.UnlockArmed()
		return m, nil
	}

	if m.session.Phase() == game.Configuring {
		var cmd tea.Cmd
		m.form, cmd, _ = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// unlockedMsg reports that a gesture command ran the pending audio retry.
type unlockedMsg struct{ ran bool }

// gesture hands a pending audio retry to a command, so a slow start never
// holds up input. It returns nil when nothing is armed.
func (m *Model) gesture() tea.Cmd {
	if !m.audio.UnlockArmed() {
		return nil
	}
	ctrl := m.audio
	return func() tea.Msg {
		return unlockedMsg{ran: ctrl.Gesture()}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Music):
		cmd := m.toggleMusic()
		m.statusBar.Music = m.audio.Enabled()
		m.statusBar.Waiting = m.audio.UnlockArmed()
		return m, cmd
	case key.Matches(msg, m.keys.Log):
		if m.overlay == OverlayLog {
			m.overlay = OverlayNone
		} else {
			m.overlay = OverlayLog
		}
		return m, nil
	}

	if m.overlay != OverlayNone {
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.session.Phase() {
	case game.Intro:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Start):
			m.session.Start()
		}

	case game.Configuring:
		cmd = m.handleFormKey(msg)

	case game.Spinning:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Abort):
			m.session.Restart()
		case key.Matches(msg, m.keys.Advance):
			m.session.AdvanceElimination()
		}

	case game.Results:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Again):
			m.session.Restart()
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
		}
	}
	return m, tea.Batch(cmd, m.drain())
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Clear):
		if m.session.Clear() {
			m.form.Err = ""
			m.logf("game", "cleared all options")
			return m.form.Load(m.session.Config())
		}
		return nil

	case key.Matches(msg, m.keys.Spin):
		if _, err := m.session.Spin(); err != nil {
			m.form.Err = err.Error()
			m.logf("err", "%v", err)
		}
		return nil

	case key.Matches(msg, m.keys.Next):
		return m.form.Next()

	case key.Matches(msg, m.keys.Prev):
		return m.form.Prev()
	}

	var (
		cmd    tea.Cmd
		change *form.Change
	)
	m.form, cmd, change = m.form.Update(msg)
	if change != nil {
		if err := m.session.UpdateOption(change.Key, change.Index, change.Value); err != nil {
			m.form.Err = err.Error()
			m.logf("err", "%v", err)
		} else {
			m.form.Err = ""
		}
	}
	return cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.audio.StopAll()
	m.audio.DetachUnlock()
	return m, tea.Quit
}

func (m Model) nextStep() tea.Cmd {
	run := m.run
	return tea.Tick(m.settings.StepInterval, func(time.Time) tea.Msg { return stepMsg{run: run} })
}

// drain handles the events the last session call emitted.
func (m *Model) drain() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.queue.drain() {
		cmds = append(cmds, m.onEvent(ev))
	}
	return tea.Batch(cmds...)
}

func (m *Model) onEvent(ev game.Event) tea.Cmd {
	if ev.Kind == game.Eliminated {
		m.logf("step", "%s: %q out, %d left", ev.Step.Category, ev.Step.Slot.Value, ev.Step.Remaining)
		m.spin.Sync(m.session)
		m.statusBar.SetProgress(m.spin.Progress())
		return m.spin.Highlight(ev.Step)
	}

	m.logf("game", "phase %s", ev.Phase)
	m.statusBar.Phase = ev.Phase
	m.audio.DetachUnlock()
	m.statusBar.Waiting = false

	var cmd tea.Cmd
	switch ev.Phase {
	case game.Intro:
		m.spin.Reset()
		m.form.Err = ""
		cmd = m.intro.Begin()

	case game.Configuring:
		m.intro.Halt()
		m.spin.Reset()
		m.form.Err = ""
		cmd = m.form.Load(m.session.Config())

	case game.Spinning:
		m.run++
		m.spin.Reset()
		m.spin.Sync(m.session)
		m.statusBar.SetProgress(m.spin.Progress())
		cmd = m.nextStep()

	case game.Results:
		m.spin.Sync(m.session)
		m.statusBar.SetProgress(m.spin.Progress())
		m.results.SetResult(ev.Result)
		for _, f := range ev.Result.Fates {
			m.logf("game", "%s = %q", f.Key, f.Value)
		}
	}
	return tea.Batch(cmd, m.enterPhase(ev.Phase))
}

func (m *Model) logf(kind, format string, args ...any) {
	m.log.Addf(kind, format, args...)
	if m.settings.Verbose {
		log.Printf("%s | "+format, append([]any{kind}, args...)...)
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	phase := m.session.Phase()
	var body string
	switch phase {
	case game.Intro:
		body = m.intro.View()
	case game.Configuring:
		body = m.form.View()
	case game.Spinning:
		body = m.spin.View()
	case game.Results:
		body = m.results.View()
	}
	if m.overlay == OverlayLog {
		body = lipgloss.Place(m.width, max(m.height-6, 0), lipgloss.Center, lipgloss.Center, m.log.View())
	}

	sections := []string{m.statusBar.View()}
	if phase != game.Intro {
		sections = append(sections, " "+intro.Inline())
	}
	sections = append(sections,
		body,
		theme.StyleDimmed.Render(" "+m.help.ShortHelpView(m.keys.HelpFor(phase))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Phase returns the session phase; handy for tests and the CLI.
func (m Model) Phase() game.Phase {
	return m.session.Phase()
}

func (m Model) String() string {
	return fmt.Sprintf("mash(%s)", m.session.Phase())
}
