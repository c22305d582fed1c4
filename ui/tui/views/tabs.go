package views

import (
	"fmt"
	"math"
	"strings"

	"rtop/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// TabZone is the bubblezone id of the tab at index i.
func TabZone(i int) string {
	return fmt.Sprintf("tab_%d", i)
}

// RenderTabs draws the page tabs and, below them, an indicator whose
// position follows the animated value indicator (a fractional tab index).
func RenderTabs(tabs []string, active int, indicator float64, width int) (string, string) {
	if len(tabs) == 0 {
		return "", ""
	}
	rendered := make([]string, len(tabs))
	starts := make([]int, len(tabs))
	widths := make([]int, len(tabs))
	x := 0
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		style := styles.TabStyle
		if i == active {
			style = styles.ActiveTabStyle
		}
		r := style.Render(label)
		rendered[i] = zone.Mark(TabZone(i), r)
		starts[i] = x
		widths[i] = lipgloss.Width(r)
		x += widths[i]
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	pos := math.Max(0, math.Min(indicator, float64(len(tabs)-1)))
	i0 := int(math.Floor(pos))
	i1 := min(i0+1, len(tabs)-1)
	frac := pos - float64(i0)
	start := int(math.Round(float64(starts[i0]) + frac*float64(starts[i1]-starts[i0])))
	size := int(math.Round(float64(widths[i0]) + frac*float64(widths[i1]-widths[i0])))

	if width > 0 {
		start = min(start, width)
		size = min(size, width-start)
	}
	bar := strings.Repeat(" ", start) +
		lipgloss.NewStyle().Foreground(styles.Highlight).Render(strings.Repeat("▔", max(size, 0)))
	return line, bar
}
