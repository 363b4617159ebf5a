// Package debug provides a scrollable log of game and audio events,
// shown as an overlay.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxEntries = 200

// Entry is a single event log line.
type Entry struct {
	Time    time.Time
	Kind    string // "game", "step", "audio", "err"
	Message string
}

// Model holds debug log state.
type Model struct {
	Entries []Entry
	vp      viewport.Model
}

// New creates an empty debug model.
func New() Model {
	return Model{vp: viewport.New(60, 10)}
}

// Add appends a log entry, caps the buffer and scrolls to the newest line.
func (m *Model) Add(kind, message string) {
	m.Entries = append(m.Entries, Entry{
		Time:    time.Now(),
		Kind:    kind,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	m.refresh()
	m.vp.GotoBottom()
}

// Addf is Add with formatting.
func (m *Model) Addf(kind, format string, args ...any) {
	m.Add(kind, fmt.Sprintf(format, args...))
}

// Resize fits the viewport inside a panel of the given outer size.
func (m *Model) Resize(width, height int) {
	m.vp.Width = max(width-8, 20)
	m.vp.Height = max(height-8, 3)
	m.refresh()
}

func (m *Model) refresh() {
	lines := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		ts := theme.StyleDimmed.Render(e.Time.Format("15:04:05.000"))
		kind := lipgloss.NewStyle().Foreground(kindColor(e.Kind)).Width(5).Render(e.Kind)
		lines[i] = ts + " " + kind + " " + e.Message
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

// Update scrolls the log.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// AtBottom reports whether the newest entry is visible.
func (m Model) AtBottom() bool {
	return m.vp.AtBottom()
}

// View renders the log as an overlay panel.
func (m Model) View() string {
	title := theme.StyleHeader.Render(" EVENT LOG ")
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries", len(m.Entries)))

	body := m.vp.View()
	if len(m.Entries) == 0 {
		body = theme.StyleDimmed.Render("  No events recorded yet.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

func kindColor(kind string) lipgloss.Color {
	switch kind {
	case "game":
		return theme.ColorConfiguring
	case "step":
		return theme.ColorSpinning
	case "audio":
		return theme.ColorActive
	case "err":
		return theme.ColorDanger
	default:
		return theme.ColorDimmed
	}
}
