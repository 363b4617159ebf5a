// Package intro renders the M-A-S-H marquee. On the intro screen one
// letter at a time lights up; later screens show the letters as a small
// inline title.
package intro

import (
	"strings"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Letters is the marquee order.
var Letters = []string{"M", "A", "S", "H"}

const (
	LabelStart = "Start"
	tagline    = "Mansion · Apartment · Shack · House"
)

// TickMsg advances the marquee. Gen ties it to one tick chain so a reset
// does not leave two chains running.
type TickMsg struct{ Gen int }

// Model holds the marquee state.
type Model struct {
	Lit      int
	Active   bool
	Interval time.Duration
	Width    int

	gen int
}

// New creates a marquee that lights a letter every interval.
func New(interval time.Duration) Model {
	return Model{Interval: interval}
}

// Begin starts a fresh tick chain from the first letter.
func (m *Model) Begin() tea.Cmd {
	m.gen++
	m.Lit = 0
	m.Active = true
	return m.tick()
}

// Halt stops the glow; pending ticks become no-ops.
func (m *Model) Halt() {
	m.gen++
	m.Active = false
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.Interval, func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

// Update handles marquee ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if t, ok := msg.(TickMsg); ok && t.Gen == m.gen && m.Active {
		m.Lit = (m.Lit + 1) % len(Letters)
		return m, m.tick()
	}
	return m, nil
}

func chip(letter string, lit bool) string {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder())
	if lit {
		return style.
			Foreground(theme.ColorBright).
			Background(theme.LetterColor(letter)).
			BorderForeground(theme.LetterColor(letter)).
			Render(letter)
	}
	return style.
		Foreground(theme.LetterColor(letter)).
		BorderForeground(theme.ColorBorder).
		Render(letter)
}

// View renders the hero marquee with the start prompt.
func (m Model) View() string {
	chips := make([]string, len(Letters))
	for i, l := range Letters {
		chips[i] = chip(l, m.Active && i == m.Lit)
	}
	hero := lipgloss.JoinHorizontal(lipgloss.Center, chips...)
	start := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 3).
		Foreground(theme.ColorBright).
		Background(theme.ColorIntro).
		Render(LabelStart)

	body := lipgloss.JoinVertical(lipgloss.Center,
		hero,
		theme.StyleDimmed.Render(tagline),
		"",
		start,
		theme.StyleDimmed.Render("press enter"),
	)
	if m.Width > 0 {
		return lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, body)
	}
	return body
}

// Inline renders the letters as a compact title.
func Inline() string {
	var b strings.Builder
	for _, l := range Letters {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.LetterColor(l)).Render(l))
	}
	return b.String()
}
