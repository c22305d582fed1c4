package components

import (
	"math"
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
	"rtop/internal/history"
	"rtop/internal/markup"
	"rtop/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
)

func init() {
	Register("cpu", NewCPUWidget)
	Register("memory", NewMemoryWidget)
}

// ChartWidget plots one percentage metric as a Braille sparkline. The chart
// is tinted by the metric's threshold status.
type ChartWidget struct {
	title      string
	value      func(*collector.RawStats) float64
	thresholds engine.Thresholds
	smooth     bool

	chart   *widget.Chart
	series  *history.Series
	prev    float64
	hasPrev bool
	seen    time.Time
}

func NewCPUWidget(opts Options) Widget {
	return newChartWidget("CPU Usage", func(s *collector.RawStats) float64 { return s.CPUUsage },
		opts.Thresholds.CPU, opts.SmoothCPU, opts)
}

func NewMemoryWidget(opts Options) Widget {
	return newChartWidget("Memory Usage", func(s *collector.RawStats) float64 { return s.RAMUsage },
		opts.Thresholds.Memory, false, opts)
}

func newChartWidget(title string, value func(*collector.RawStats) float64, t engine.Thresholds, smooth bool, opts Options) *ChartWidget {
	return &ChartWidget{
		title:      title,
		value:      value,
		thresholds: t,
		smooth:     smooth,
		chart:      widget.NewChart(0, 0, opts.ShowPercentage),
		series:     history.NewSeries(opts.HistorySize),
	}
}

func (c *ChartWidget) Title() string {
	return c.title
}

// Update appends one sample per distinct collection. A snapshot already seen
// (same CollectedAt) is ignored so slow-metric refreshes do not duplicate
// points.
func (c *ChartWidget) Update(stats *collector.RawStats) {
	if stats == nil || stats.CollectedAt.IsZero() || stats.CollectedAt.Equal(c.seen) {
		return
	}
	c.seen = stats.CollectedAt

	raw := c.value(stats)
	v := raw
	if c.smooth && c.hasPrev {
		v = (raw + c.prev) / 2
	}
	c.prev, c.hasPrev = raw, true
	c.series.Push(int(math.Round(v)))
}

func (c *ChartWidget) Resize(height, width int) {
	rows := height
	if c.chart.ShowLabel() {
		rows--
	}
	c.chart.Resize(width, rows)
}

func (c *ChartWidget) Display(height, width int) string {
	c.Resize(height, width)
	text := c.chart.Display(c.series.Values())
	if text == "" {
		return ""
	}
	last, ok := c.series.Last()
	if !ok {
		return text
	}
	return markup.Wrap(colorForStatus(engine.StatusFor(float64(last), c.thresholds)), text)
}

func (c *ChartWidget) HandleKey(key string) tea.Cmd {
	return nil
}

// Samples returns the retained history, oldest first.
func (c *ChartWidget) Samples() []int {
	return c.series.Values()
}

func colorForStatus(status string) string {
	switch status {
	case engine.StatusCritical:
		return markup.ColorRed
	case engine.StatusWarning:
		return markup.ColorYellow
	default:
		return markup.ColorGreen
	}
}
