package views

import (
	"fmt"
	"strings"

	"rtop/ui/tui/state"
	"rtop/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderHeader draws the single header line: badge and platform on the left,
// load average centered, status and clock on the right. The center is dropped
// when the line is too narrow.
func RenderHeader(s state.AppState, props ViewProps) string {
	width := props.Width
	if width <= 0 {
		return ""
	}

	left := styles.BadgeStyle.Render(" rtop ")
	if props.Platform != "" {
		left += lipgloss.NewStyle().Foreground(styles.Muted).Render(" for " + props.Platform)
	}

	var right string
	if !s.Loaded() {
		right = props.SpinnerView + " collecting"
	} else {
		overall := s.Overall
		if overall == "" {
			overall = "OK"
		}
		right = styles.ForStatus(overall).Render(overall)
	}
	if props.Clock != "" {
		right += " " + props.Clock
	}

	var center string
	if s.Stats != nil && s.Loaded() {
		center = fmt.Sprintf("Load Average: %.2f %.2f %.2f", s.Stats.LoadAvg1, s.Stats.LoadAvg5, s.Stats.LoadAvg15)
	}

	lw, rw, cw := lipgloss.Width(left), lipgloss.Width(right), lipgloss.Width(center)
	if lw+rw+cw+2 > width {
		center, cw = "", 0
	}
	if lw+rw+1 > width {
		return fitLine(left, width)
	}

	if center == "" {
		return left + strings.Repeat(" ", width-lw-rw) + right
	}
	// Center against the full width, then shift right if it would overlap the left side.
	cx := max((width-cw)/2, lw+1)
	if cx+cw+1 > width-rw {
		cx = width - rw - cw - 1
	}
	line := left + strings.Repeat(" ", cx-lw) + center
	return line + strings.Repeat(" ", width-ansi.StringWidth(line)-rw) + right
}

// RenderFooter shows the flash message or error above the help line.
func RenderFooter(s state.AppState, props ViewProps) string {
	var status string
	switch {
	case s.Err != nil:
		status = styles.ForStatus("CRIT").Render("error: " + s.Err.Error())
	case s.Flash != "":
		status = styles.FlashStyle.Render(s.Flash)
	}
	if props.Width > 0 {
		status = fitLine(status, props.Width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, props.HelpView)
}
