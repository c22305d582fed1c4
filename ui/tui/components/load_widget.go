package components

import (
	"fmt"
	"math"
	"time"

	"rtop/internal/collector"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
)

func init() {
	Register("load", NewLoadWidget)
}

// LoadWidget draws the 1-minute load average as a line chart with axes. The
// Y range grows with the data and never drops below the core count.
type LoadWidget struct {
	chart    linechart.Model
	history  []float64
	capacity int
	cores    int
	current  [3]float64
	seen     time.Time

	width, height int

	// dimensions the current chart was built with
	builtW, builtH int
	yMax           float64
	built          bool
}

func NewLoadWidget(opts Options) Widget {
	return &LoadWidget{
		history:  make([]float64, 0, opts.HistorySize),
		capacity: max(opts.HistorySize, 2),
	}
}

func (l *LoadWidget) Title() string {
	return "Load Average"
}

func (l *LoadWidget) Push(value float64) {
	l.history = append(l.history, value)
	if len(l.history) > l.capacity {
		l.history = l.history[1:]
	}
}

func (l *LoadWidget) Update(stats *collector.RawStats) {
	if stats == nil || stats.CollectedAt.IsZero() || stats.CollectedAt.Equal(l.seen) {
		return
	}
	l.seen = stats.CollectedAt
	l.cores = stats.CPUCores
	l.current = [3]float64{stats.LoadAvg1, stats.LoadAvg5, stats.LoadAvg15}
	l.Push(stats.LoadAvg1)
}

func (l *LoadWidget) Resize(height, width int) {
	l.width, l.height = width, height
}

// points is how many trailing samples fit the plot area.
func (l *LoadWidget) points() []float64 {
	n := min(len(l.history), max(l.width-6, 2))
	return l.history[len(l.history)-n:]
}

func (l *LoadWidget) ceiling(points []float64) float64 {
	top := math.Max(float64(l.cores), 1)
	for _, v := range points {
		top = math.Max(top, v)
	}
	return math.Ceil(top)
}

func (l *LoadWidget) Display(height, width int) string {
	l.Resize(height, width)
	// One line for the summary, the rest for the chart.
	chartHeight := height - 1
	if width < 10 || chartHeight < 4 {
		return l.summary()
	}

	points := l.points()
	yMax := l.ceiling(points)
	if !l.built || yMax != l.yMax || l.builtW != width || l.builtH != chartHeight {
		// width, height, minX, maxX, minY, maxY
		l.chart = linechart.New(width, chartHeight, 0, float64(max(width-6, 2)-1), 0, yMax)
		l.yMax = yMax
		l.builtW, l.builtH = width, chartHeight
		l.built = true
	}

	l.chart.Clear()
	for i := 0; i < len(points)-1; i++ {
		l.chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: points[i]},
			canvas.Float64Point{X: float64(i + 1), Y: points[i+1]},
		)
	}
	l.chart.DrawXYAxisAndLabel()

	return l.summary() + "\n" + l.chart.View()
}

func (l *LoadWidget) summary() string {
	return fmt.Sprintf("%.2f %.2f %.2f", l.current[0], l.current[1], l.current[2])
}

func (l *LoadWidget) HandleKey(key string) tea.Cmd {
	return nil
}
