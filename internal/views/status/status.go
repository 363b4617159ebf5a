package status

import (
	"fmt"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

const (
	LabelMusicOn  = "🔊 Music on"
	LabelMusicOff = "🔇 Music off"
)

// Model holds the status bar state.
type Model struct {
	Music   bool
	Waiting bool // a cue is waiting for the next key press
	Phase   game.Phase
	Steps   int
	Total   int
	Seed    uint64
	Width   int
}

// New creates a status bar model.
func New() Model {
	return Model{Music: true}
}

// SetProgress updates the elimination counter.
func (m *Model) SetProgress(steps, total int) {
	m.Steps = steps
	m.Total = total
}

// MusicLabel returns the toggle label for the current mute state.
func (m Model) MusicLabel() string {
	if m.Music {
		return LabelMusicOn
	}
	return LabelMusicOff
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	musicColor := theme.ColorHealthy
	if !m.Music {
		musicColor = theme.ColorDimmed
	}
	music := lipgloss.NewStyle().Foreground(musicColor).Render(m.MusicLabel())
	if m.Music && m.Waiting {
		music += lipgloss.NewStyle().Foreground(theme.ColorWarning).Render(" (press any key)")
	}

	phase := lipgloss.NewStyle().Bold(true).Foreground(theme.PhaseColor(m.Phase.String())).Render(m.Phase.String())

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := phase + sep + music
	if m.Phase == game.Spinning || m.Phase == game.Results {
		content += sep + fmt.Sprintf("step %d/%d", m.Steps, m.Total)
	}
	if m.Seed != 0 {
		content += sep + theme.StyleDimmed.Render(fmt.Sprintf("seed %d", m.Seed))
	}

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)

	return bar
}
