// Package form renders the option editor shown while configuring: one
// text input per option slot, grouped by category.
package form

import (
	"fmt"
	"strings"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	LabelLead  = "Choose your options before we spin the wheel of fate."
	LabelClear = "Clear"
	LabelSpin  = "Spin wheel of luck!"

	inputWidth = 18
	charLimit  = 40
	labelWidth = 16
)

// Change is one edit the player made to an option.
type Change struct {
	Key   string
	Index int
	Value string
}

type field struct {
	key   string
	index int
	input textinput.Model
}

type section struct {
	key    string
	label  string
	locked bool
	static []string
	fields []int // indexes into Model.fields
}

// Model holds the editor state.
type Model struct {
	sections []section
	fields   []field
	focus    int
	Err      string
	Width    int
}

// New creates an empty editor; call Load to fill it.
func New() Model {
	return Model{}
}

// ID names the input for an option slot, e.g. "partner-0".
func ID(key string, index int) string {
	return fmt.Sprintf("%s-%d", key, index)
}

// Load rebuilds the inputs from cfg, keeping focus on the same slot when
// it still exists.
func (m *Model) Load(cfg game.Config) tea.Cmd {
	prevKey, prevIndex, hadFocus := m.Focused()

	m.sections = nil
	m.fields = nil
	m.focus = 0
	for _, cat := range cfg.Categories {
		s := section{key: cat.Key, label: cat.Label, locked: cat.Locked}
		if cat.Locked {
			s.static = append([]string(nil), cat.Options...)
			m.sections = append(m.sections, s)
			continue
		}
		for i, opt := range cat.Options {
			ti := textinput.New()
			ti.Prompt = ""
			ti.CharLimit = charLimit
			ti.Width = inputWidth
			ti.Placeholder = fmt.Sprintf("option %d", i+1)
			if i < len(cat.Defaults) && cat.Defaults[i] != "" {
				ti.Placeholder = cat.Defaults[i]
			}
			ti.SetValue(opt)
			if hadFocus && cat.Key == prevKey && i == prevIndex {
				m.focus = len(m.fields)
			}
			s.fields = append(s.fields, len(m.fields))
			m.fields = append(m.fields, field{key: cat.Key, index: i, input: ti})
		}
		m.sections = append(m.sections, s)
	}
	return m.focusCurrent()
}

func (m *Model) focusCurrent() tea.Cmd {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[m.focus].input.Focus()
}

// Focused returns the slot being edited.
func (m Model) Focused() (key string, index int, ok bool) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return "", 0, false
	}
	f := m.fields[m.focus]
	return f.key, f.index, true
}

// Value returns the text of an input.
func (m Model) Value(key string, index int) (string, bool) {
	for _, f := range m.fields {
		if f.key == key && f.index == index {
			return f.input.Value(), true
		}
	}
	return "", false
}

// Next moves focus to the following input, wrapping around.
func (m *Model) Next() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.focus = (m.focus + 1) % len(m.fields)
	return m.focusCurrent()
}

// Prev moves focus to the previous input, wrapping around.
func (m *Model) Prev() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
	return m.focusCurrent()
}

// Update forwards msg to the focused input and reports the edit, if any.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, *Change) {
	if len(m.fields) == 0 {
		return m, nil, nil
	}
	f := &m.fields[m.focus]
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if after := f.input.Value(); after != before {
		return m, cmd, &Change{Key: f.key, Index: f.index, Value: after}
	}
	return m, cmd, nil
}

// View renders the editor.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.StyleHeader.Render(LabelLead) + "\n\n")

	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(theme.ColorDimmed)
	cell := lipgloss.NewStyle().
		Width(inputWidth+2).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false)

	for _, s := range m.sections {
		label := labelStyle.Render(theme.CategoryIcon(s.key) + " " + s.label)
		var cells []string
		if s.locked {
			for _, opt := range s.static {
				cells = append(cells, cell.BorderForeground(theme.ColorBorder).Render(theme.StyleDimmed.Render(opt)))
			}
		}
		for _, idx := range s.fields {
			f := m.fields[idx]
			border := theme.ColorBorder
			if idx == m.focus {
				border = theme.ColorConfiguring
			}
			cells = append(cells, cell.BorderForeground(border).Render(f.input.View()))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, append([]string{label}, cells...)...) + "\n")
	}

	button := lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(theme.ColorBright)
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		button.Background(theme.ColorBorder).Render(LabelClear),
		"  ",
		button.Background(theme.ColorSpinning).Render(LabelSpin),
	)
	b.WriteString("\n" + actions)
	if m.Err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.ColorDanger).Render(m.Err))
	}
	return b.String()
}
