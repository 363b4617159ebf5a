// Package results renders the final fate as markdown through Glamour.
package results

import (
	"fmt"
	"strings"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/GabrielMeirinho/mash4gelt/internal/theme"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	LabelTitle  = "Your MASH fate"
	LabelAction = "Start again"

	defaultWrap = 72
)

// Model holds the rendered result.
type Model struct {
	Result   game.Result
	Markdown string
	rendered string
	Width    int
}

// New creates an empty results view.
func New() Model {
	return Model{}
}

// SetResult renders res. If Glamour fails the raw markdown is shown.
func (m *Model) SetResult(res game.Result) {
	m.Result = res
	m.Markdown = Markdown(res)

	wrap := defaultWrap
	if m.Width > 10 && m.Width-4 < wrap {
		wrap = m.Width - 4
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.rendered, err = r.Render(m.Markdown)
	}
	if err != nil {
		m.rendered = m.Markdown
	}
}

// Markdown writes the fate as a short story followed by a table.
func Markdown(res game.Result) string {
	var b strings.Builder
	b.WriteString("# " + LabelTitle + "\n\n")
	if story := Story(res); story != "" {
		b.WriteString(story + "\n\n")
	}
	b.WriteString("| Category | Fate |\n|---|---|\n")
	for _, f := range res.Fates {
		fmt.Fprintf(&b, "| %s | %s |\n", escape(f.Label), escape(f.Value))
	}
	return b.String()
}

// Story phrases the stock categories as a sentence. Custom categories
// only appear in the table.
func Story(res game.Result) string {
	v := res.Map()
	var parts []string
	if home, ok := v[game.HousingKey]; ok {
		parts = append(parts, "You will live in a "+bold(home))
	}
	if p, ok := v["partner"]; ok {
		parts = append(parts, "with "+bold(p))
	}
	if c, ok := v["career"]; ok {
		parts = append(parts, "working as a "+bold(c))
	}
	if c, ok := v["city"]; ok {
		parts = append(parts, "in "+bold(c))
	}
	if s, ok := v["salary"]; ok {
		parts = append(parts, "earning "+bold(s)+" a year")
	}
	if k, ok := v["children"]; ok {
		parts = append(parts, "raising "+bold(k)+" children")
	}
	if c, ok := v["vehicle"]; ok {
		parts = append(parts, "and driving a "+bold(c))
	}
	if len(parts) == 0 {
		return ""
	}
	if _, ok := v[game.HousingKey]; !ok {
		parts[0] = "You will live " + parts[0]
	}
	return strings.Join(parts, ", ") + "."
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func bold(s string) string {
	return "**" + escape(s) + "**"
}

// escape keeps player text literal inside markdown.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// View renders the fate and the restart prompt.
func (m Model) View() string {
	action := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(theme.ColorBright).
		Background(theme.ColorResults).
		Render(LabelAction)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.rendered,
		action+theme.StyleDimmed.Render("  enter: tweak and replay  r: back to intro"),
	)
}
