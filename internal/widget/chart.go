package widget

import (
	"fmt"
	"math"
	"strings"
)

// braille maps the fill levels of two horizontally adjacent samples to an
// 8-dot Braille glyph. The first index is the older sample (left dot column),
// the second the newer one (right dot column). Dots fill from the bottom.
var braille = [5][5]rune{
	{' ', '⢀', '⢠', '⢰', '⢸'},
	{'⡀', '⣀', '⣠', '⣰', '⣸'},
	{'⡄', '⣄', '⣤', '⣴', '⣼'},
	{'⡆', '⣆', '⣦', '⣶', '⣾'},
	{'⡇', '⣇', '⣧', '⣷', '⣿'},
}

// subRows is the number of vertical dot rows in one character cell.
const subRows = 4

// Chart renders a percentage time series as a Braille sparkline. Each
// character column holds two samples and each character row four levels, so a
// chart of c columns shows the most recent 2c-1 samples.
type Chart struct {
	columns   int
	rows      int
	showLabel bool
}

// NewChart returns a chart of columns x rows glyph cells. With showLabel set,
// Display adds one line above the glyph rows holding the latest value.
func NewChart(columns, rows int, showLabel bool) *Chart {
	return &Chart{columns: columns, rows: rows, showLabel: showLabel}
}

// Resize changes the rendered dimensions from the next Display on.
func (c *Chart) Resize(columns, rows int) {
	c.columns = columns
	c.rows = rows
}

func (c *Chart) Columns() int { return c.columns }
func (c *Chart) Rows() int    { return c.rows }

// ShowLabel reports whether Display emits the percentage line.
func (c *Chart) ShowLabel() bool { return c.showLabel }

// Window returns the number of trailing samples Display reads.
func (c *Chart) Window() int {
	if c.columns <= 0 {
		return 0
	}
	return 2*c.columns - 1
}

// quarters converts a percentage into a height in sub-rows, never below one so
// that any real sample leaves a visible dot.
func (c *Chart) quarters(sample int) int {
	sample = clamp(sample, 0, 100)
	q := int(math.Round(float64(sample) / 100 * float64(c.rows) * subRows))
	if q < 1 {
		q = 1
	}
	return q
}

// Display renders samples, oldest first, into rows joined by newlines. The
// newest sample is on the right edge. samples is only read.
func (c *Chart) Display(samples []int) string {
	if c.columns <= 0 || c.rows <= 0 {
		return ""
	}

	window := samples
	if w := c.Window(); len(window) > w {
		window = window[len(window)-w:]
	}

	// Heights newest first; a chart column pairs heights[i] (newer, right)
	// with heights[i+1] (older, left). An unpaired oldest sample gets a blank
	// left column.
	heights := make([]int, len(window))
	for i := range window {
		heights[i] = c.quarters(window[len(window)-1-i])
	}
	glyphCols := (len(heights) + 1) / 2
	pad := c.columns - glyphCols

	lines := make([]string, 0, c.rows+1)
	if c.showLabel && len(window) > 0 {
		lines = append(lines, c.label(window[len(window)-1]))
	}

	for r := c.rows - 1; r >= 0; r-- {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", pad))
		for col := glyphCols - 1; col >= 0; col-- {
			newer := fill(heights[2*col], r)
			older := 0
			if 2*col+1 < len(heights) {
				older = fill(heights[2*col+1], r)
			}
			b.WriteRune(braille[older][newer])
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// label right-aligns "<value>%" in the chart width. A narrow chart drops the
// percent sign, then the whole label; digits are never cut.
func (c *Chart) label(value int) string {
	s := fmt.Sprintf("%d%%", clamp(value, 0, 100))
	if len(s) > c.columns {
		s = strings.TrimSuffix(s, "%")
	}
	if len(s) > c.columns {
		s = ""
	}
	return strings.Repeat(" ", c.columns-len(s)) + s
}

// fill returns how many of the four sub-rows of character row r (0 = bottom)
// are covered by a bar of the given height.
func fill(height, r int) int {
	return clamp(height-subRows*r, 0, subRows)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
