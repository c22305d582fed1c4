package views

import (
	"fmt"
	"strings"

	"rtop/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// PaneZone is the bubblezone id of the pane at index i.
func PaneZone(i int) string {
	return fmt.Sprintf("pane_%d", i)
}

// RenderPane draws a rounded box of exactly p.W x p.H cells with the title
// set into the top border.
func RenderPane(p PaneProps) string {
	if p.W < 2 || p.H < 2 {
		return blank(p.W, p.H)
	}
	innerW, innerH := p.W-2, p.H-2
	border := lipgloss.RoundedBorder()
	color := lipgloss.NewStyle().Foreground(styles.PaneBorder(p.Focused))

	title := ""
	if innerW > 2 {
		title = ansi.Truncate(" "+p.Title+" ", innerW-1, "…")
	}
	fill := innerW - 1 - ansi.StringWidth(title)
	if innerW < 1 {
		fill, title = max(innerW, 0), ""
	}
	titleStyle := styles.TitleStyle
	if p.Focused {
		titleStyle = titleStyle.Reverse(true)
	}
	var top string
	if innerW >= 1 {
		top = color.Render(border.TopLeft+border.Top) + titleStyle.Render(title) +
			color.Render(strings.Repeat(border.Top, max(fill, 0))+border.TopRight)
	} else {
		top = color.Render(border.TopLeft + border.TopRight)
	}

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(styles.PaneBorder(p.Focused)).
		Render(RenderMarkup(p.Body, innerW, innerH))
	if innerH == 0 {
		body = color.Render(border.BottomLeft + strings.Repeat(border.Bottom, innerW) + border.BottomRight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// renderBody composes panes row by row. Panes sharing a Y origin are joined
// horizontally.
func renderBody(panes []PaneProps) string {
	var rows []string
	var current []string
	y := -1
	for i, p := range panes {
		if p.Y != y && len(current) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
		y = p.Y
		current = append(current, zone.Mark(PaneZone(i), RenderPane(p)))
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
