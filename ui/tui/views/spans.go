package views

import (
	"strings"

	"rtop/internal/markup"
	"rtop/ui/tui/styles"

	"github.com/charmbracelet/x/ansi"
)

// RenderMarkup turns markup text into exactly height lines of exactly width
// cells. Longer lines are clipped, shorter ones padded with spaces.
func RenderMarkup(text string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := markup.Lines(markup.Parse(text))

	out := make([]string, height)
	for i := range out {
		var b strings.Builder
		if i < len(lines) {
			for _, sp := range lines[i] {
				b.WriteString(styles.ForAttrs(sp.Attrs).Render(sp.Text))
			}
		}
		out[i] = fitLine(b.String(), width)
	}
	return strings.Join(out, "\n")
}

// fitLine clips or pads an already styled line to width cells.
func fitLine(line string, width int) string {
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}
