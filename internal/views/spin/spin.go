// Package spin renders the elimination round: every category with its
// options, eliminated ones struck out, the latest highlighted option
// marked, and a spring-animated pointer that slides to each new pick.
package spin

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	fps        = 60
	optionCell = 20
	labelWidth = 16
)

// Source is the slice of the session the view reads from.
type Source interface {
	Config() game.Config
	Elimination(key string) (*game.Elimination, bool)
	Active() (string, bool)
	Steps() int
}

// FrameMsg drives the pointer animation.
type FrameMsg struct{}

type row struct {
	key   string
	label string
	pool  *game.Elimination
}

// Model holds the elimination view state.
type Model struct {
	rows   []row
	active string
	last   game.Step
	steps  int
	total  int

	spring    harmonica.Spring
	pos, vel  float64
	target    float64
	animating bool

	Width int
}

// New creates the view.
func New() Model {
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 7.0, 0.55),
	}
}

// Reset forgets the previous run.
func (m *Model) Reset() {
	m.rows = nil
	m.active = ""
	m.last = game.Step{}
	m.steps = 0
	m.total = 0
	m.pos, m.vel, m.target = 0, 0, 0
	m.animating = false
}

// Sync copies the pools from the session.
func (m *Model) Sync(src Source) {
	cfg := src.Config()
	m.rows = m.rows[:0]
	m.total = 0
	for _, cat := range cfg.Categories {
		pool, ok := src.Elimination(cat.Key)
		if !ok {
			continue
		}
		m.rows = append(m.rows, row{key: cat.Key, label: cat.Label, pool: pool})
		if n := len(pool.Options); n > 1 {
			m.total += n - 1
		}
	}
	m.active, _ = src.Active()
	m.steps = src.Steps()
}

// Highlight records the latest elimination and aims the pointer at it.
func (m *Model) Highlight(step game.Step) tea.Cmd {
	m.last = step
	m.target = float64(step.Slot.Index * optionCell)
	if m.animating {
		return nil
	}
	m.animating = true
	return frame()
}

// Progress returns steps taken and steps needed for the whole run.
func (m Model) Progress() (int, int) {
	return m.steps, m.total
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return FrameMsg{} })
}

// Update advances the pointer spring.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(FrameMsg); !ok || !m.animating {
		return m, nil
	}
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
	if math.Abs(m.pos-m.target) < 0.05 && math.Abs(m.vel) < 0.05 {
		m.pos, m.vel = m.target, 0
		m.animating = false
		return m, nil
	}
	return m, frame()
}

// Pointer returns the current pointer column.
func (m Model) Pointer() int {
	return int(math.Round(m.pos))
}

// View renders all categories.
func (m Model) View() string {
	var lines []string
	labelStyle := lipgloss.NewStyle().Width(labelWidth)
	cell := lipgloss.NewStyle().Width(optionCell)

	for _, r := range m.rows {
		label := theme.CategoryIcon(r.key) + " " + r.label
		if r.key == m.active {
			label = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorActive).Render(label)
		} else {
			label = theme.StyleDimmed.Render(label)
		}

		cells := []string{labelStyle.Render(label)}
		for i, opt := range r.pool.Options {
			cells = append(cells, cell.Render(m.renderOption(r, i, opt)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

		if r.key == m.last.Category && r.key == m.active {
			pointer := strings.Repeat(" ", labelWidth+max(m.Pointer(), 0)) + "▲"
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorHighlight).Render(pointer))
		}
	}

	progress := theme.StyleDimmed.Render(fmt.Sprintf("step %d/%d", m.steps, m.total))
	lines = append(lines, "", progress)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderOption(r row, i int, opt string) string {
	alive := r.pool.Alive(i)
	switch {
	case r.key == m.last.Category && i == m.last.Slot.Index:
		return theme.StyleHighlight.Render("✗ " + opt)
	case !alive:
		return theme.StyleEliminated.Render(opt)
	case r.pool.Resolved():
		return theme.StyleSurvivor.Render("✓ " + opt)
	default:
		return opt
	}
}
