// Package theme provides the Lip Gloss palette and reusable styles for the
// MASH TUI. It is a leaf package with no internal imports to avoid import
// cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Crayon colors for the marquee letters.
var (
	ColorM = lipgloss.Color("#ef4444")
	ColorA = lipgloss.Color("#f59e0b")
	ColorS = lipgloss.Color("#22c55e")
	ColorH = lipgloss.Color("#3b82f6")
)

// Elimination colors.
var (
	ColorHighlight  = lipgloss.Color("#f43f5e")
	ColorEliminated = lipgloss.Color("#4b5563")
	ColorSurvivor   = lipgloss.Color("#16a34a")
	ColorActive     = lipgloss.Color("#a855f7")
)

// Phase colors.
var (
	ColorIntro       = lipgloss.Color("#f472b6")
	ColorConfiguring = lipgloss.Color("#06b6d4")
	ColorSpinning    = lipgloss.Color("#d97706")
	ColorResults     = lipgloss.Color("#16a34a")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorDefault = lipgloss.Color("#9ca3af")
)

// LetterColor returns the crayon color for a marquee letter.
func LetterColor(letter string) lipgloss.Color {
	switch letter {
	case "M":
		return ColorM
	case "A":
		return ColorA
	case "S":
		return ColorS
	case "H":
		return ColorH
	default:
		return ColorDefault
	}
}

// PhaseColor returns the color for a phase name.
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "intro":
		return ColorIntro
	case "configuring":
		return ColorConfiguring
	case "spinning":
		return ColorSpinning
	case "results":
		return ColorResults
	default:
		return ColorDefault
	}
}

// CategoryIcon returns the glyph shown next to a category label.
func CategoryIcon(key string) string {
	switch key {
	case "mash":
		return "🏠"
	case "partner":
		return "❤️"
	case "career":
		return "📂"
	case "city":
		return "🏙️"
	case "salary":
		return "💰"
	case "children":
		return "👶"
	case "vehicle":
		return "🚗"
	default:
		return "•"
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleEliminated = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorEliminated)

	StyleHighlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	StyleSurvivor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSurvivor)
)
