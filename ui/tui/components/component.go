package components

import (
	"rtop/internal/collector"
	"rtop/internal/engine"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Widget is a pane on a dashboard page. Display returns text using the
// markup convention; the view layer turns it into styled terminal output.
type Widget interface {
	Title() string
	Update(stats *collector.RawStats)
	Display(height, width int) string
	Resize(height, width int)
	HandleKey(key string) tea.Cmd
}

// Options carries the settings a widget factory may need.
type Options struct {
	Thresholds     engine.Config
	HistorySize    int
	ShowPercentage bool
	SmoothCPU      bool
	Terminator     collector.ProcessTerminator
	Logger         *log.Logger
}

// Factory builds a fresh widget instance.
type Factory func(opts Options) Widget

// ProcessTerminatedMsg reports the outcome of a terminate request.
type ProcessTerminatedMsg struct {
	PID  int32
	Name string
	Err  error
}
