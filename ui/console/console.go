package console

import (
	"fmt"
	"io"
	"strings"

	"rtop/internal/collector"
	"rtop/internal/markup"
	"rtop/internal/output"
	"rtop/internal/widget"
	"rtop/ui/tui/components"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	colorReset     = "\033[0m"
	colorRed       = "\033[31m"
	colorGreen     = "\033[32m"
	colorYellow    = "\033[33m"
	colorBlue      = "\033[34m"
	colorCyan      = "\033[36m"
	colorGreenGrey = "\033[38;5;108m"

	attrBold      = "\033[1m"
	attrUnderline = "\033[4m"
	attrReverse   = "\033[7m"
)

var markupColors = map[string]string{
	markup.ColorGreen:     colorGreen,
	markup.ColorRed:       colorRed,
	markup.ColorBlue:      colorBlue,
	markup.ColorYellow:    colorYellow,
	markup.ColorGreenGrey: colorGreenGrey,
}

// Print renders the dashboard view to the writer in a highly compact format.
func Print(w io.Writer, view output.DashboardView) {
	title := "RTOP REPORT"
	if view.Hostname != "" {
		title += " " + view.Hostname
	}
	fmt.Fprintf(w, "%s%s %s%s\n", colorCyan, "■", title, colorReset)

	for _, sec := range view.Sections {
		// Section Header
		fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ "+sec.Title, colorReset)

		for _, it := range sec.Items {
			// Compact Label (max 20 cells)
			label := truncate.StringWithTail(it.Label, 20, "...")

			// Value Formatting
			valStr := ""
			switch {
			case it.Note != "":
				valStr = truncate.StringWithTail(it.Note, 25, "...")
			case it.Unit != "":
				valStr = fmt.Sprintf("%.1f%s", it.Value, it.Unit)
			default:
				valStr = fmt.Sprintf("%.2f", it.Value)
			}

			// Dots leader
			dots := strings.Repeat("·", max(22-runewidth.StringWidth(label), 1))

			// Format: "  Label............... ValueStatus"
			fmt.Fprintf(w, "  %s%s %10s%s\n", label, colorCyan+dots+colorReset, valStr, statusMarker(it.Status))
		}
	}

	// Single-line Summary
	overall := view.Overall
	if overall == "" {
		overall = "OK"
	}
	fmt.Fprintf(w, "%s─ Summary%s: %s%s%s\n\n", colorCyan, colorReset, colorFor(overall), overall, colorReset)
}

func statusMarker(status string) string {
	color := colorFor(status)
	switch status {
	case "":
		return ""
	case "WARN":
		return fmt.Sprintf(" %s!%s", color, colorReset)
	case "CRIT":
		return fmt.Sprintf(" %sX%s", color, colorReset)
	case "OK":
		return fmt.Sprintf(" %s✓%s", color, colorReset)
	default:
		return fmt.Sprintf(" %s%s%s", color, status[:1], colorReset)
	}
}

func colorFor(status string) string {
	switch status {
	case "WARN":
		return colorYellow
	case "CRIT":
		return colorRed
	default:
		return colorGreen
	}
}

// RenderMarkup converts markup text into ANSI escape sequences. Every span
// resets the terminal state first so attributes never leak.
func RenderMarkup(text string) string {
	var b strings.Builder
	for i, line := range markup.Lines(markup.Parse(text)) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, sp := range line {
			codes := ansiFor(sp.Attrs)
			if codes == "" {
				b.WriteString(sp.Text)
				continue
			}
			b.WriteString(codes)
			b.WriteString(sp.Text)
			b.WriteString(colorReset)
		}
	}
	return b.String()
}

func ansiFor(a markup.Attrs) string {
	var codes string
	if a.Reverse {
		codes += attrReverse
	}
	if a.Bold {
		codes += attrBold
	}
	if a.Underline {
		codes += attrUnderline
	}
	codes += markupColors[a.Color]
	return codes
}

// PrintChart draws samples as a braille chart of the given size, label
// included.
func PrintChart(w io.Writer, title string, samples []int, columns, rows int) {
	chart := widget.NewChart(columns, rows, true)
	fmt.Fprintf(w, "%s─ %s%s\n", colorCyan, title, colorReset)
	fmt.Fprintln(w, RenderMarkup(chart.Display(samples)))
}

// PrintProcesses prints the top processes by CPU as a table of the given
// size, header row included.
func PrintProcesses(w io.Writer, stats *collector.RawStats, rows, width int) error {
	table, err := components.New("processes", components.Options{})
	if err != nil {
		return err
	}
	table.Update(stats)
	fmt.Fprintf(w, "%s─ %s%s\n", colorCyan, table.Title(), colorReset)
	fmt.Fprintln(w, RenderMarkup(table.Display(rows, width)))
	return nil
}
