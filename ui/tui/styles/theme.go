package styles

import (
	"rtop/internal/markup"

	"github.com/charmbracelet/lipgloss"
)

var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	Special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	Muted     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}

	BrandColor = lipgloss.Color("#1E90FF")

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(BrandColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BrandColor)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(Muted)

	ActiveTabStyle = TabStyle.
			Bold(true).
			Foreground(Highlight)

	FlashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("220"))
)

// markupColors maps markup color names to terminal colors.
var markupColors = map[string]lipgloss.TerminalColor{
	markup.ColorGreen:     lipgloss.Color("2"),
	markup.ColorRed:       lipgloss.Color("1"),
	markup.ColorBlue:      lipgloss.Color("4"),
	markup.ColorYellow:    lipgloss.Color("3"),
	markup.ColorGreenGrey: lipgloss.Color("108"),
}

// ForAttrs returns the style for a markup attribute set.
func ForAttrs(a markup.Attrs) lipgloss.Style {
	s := lipgloss.NewStyle()
	if a.Reverse {
		s = s.Reverse(true)
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if c, ok := markupColors[a.Color]; ok {
		s = s.Foreground(c)
	}
	return s
}

// ForStatus colors an engine status label.
func ForStatus(status string) lipgloss.Style {
	switch status {
	case "WARN":
		return StatusStyle.Foreground(lipgloss.Color("220")) // Gold
	case "CRIT":
		return StatusStyle.Foreground(lipgloss.Color("196")) // Red
	default:
		return StatusStyle.Foreground(lipgloss.Color("46")) // Green
	}
}

// PaneBorder returns the border color for a pane.
func PaneBorder(focused bool) lipgloss.TerminalColor {
	if focused {
		return Highlight
	}
	return BrandColor
}
