package components

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rtop/internal/collector"
	"rtop/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

func init() {
	Register("processes", NewProcessWidget)
}

const (
	colName   = "Name"
	colPID    = "PID"
	colUser   = "User"
	colCPU    = "CPU%"
	colMem    = "MEM%"
	colRSS    = "Resident"
	colStatus = "State"
)

const terminateTimeout = 2 * time.Second

// ProcessWidget is a sortable, scrollable process table.
type ProcessWidget struct {
	list   *widget.ListView
	term   collector.ProcessTerminator
	logger *log.Logger
	seen   int
}

func NewProcessWidget(opts Options) Widget {
	list := widget.NewListView(0, 0, nil, colName, []string{colPID, colUser, colStatus, colCPU, colMem, colRSS})
	list.SortBy(colCPU)
	return &ProcessWidget{
		list:   list,
		term:   opts.Terminator,
		logger: opts.Logger,
	}
}

// Title includes the process count once a snapshot has arrived.
func (p *ProcessWidget) Title() string {
	if p.seen == 0 {
		return "Process List"
	}
	return fmt.Sprintf("Process List (%d)", p.seen)
}

// Update replaces the table contents with the snapshot's process list. The
// cursor and scroll position carry over.
func (p *ProcessWidget) Update(stats *collector.RawStats) {
	if stats == nil || stats.Processes == nil {
		return
	}
	items := make([]widget.ListItem, 0, len(stats.Processes))
	for _, proc := range stats.Processes {
		items = append(items, widget.NewListItem(proc.Name, map[string]string{
			colPID:    strconv.FormatInt(int64(proc.PID), 10),
			colUser:   proc.User,
			colStatus: proc.Status,
			colCPU:    fmt.Sprintf("%.1f", proc.CPU),
			colMem:    fmt.Sprintf("%.1f", proc.Memory),
			colRSS:    humanize.IBytes(proc.RSS),
		}))
	}
	p.list.UpdateItems(items)
	p.seen = len(items)
}

func (p *ProcessWidget) Resize(height, width int) {
	p.list.Resize(height, width)
}

func (p *ProcessWidget) Display(height, width int) string {
	p.list.Resize(height, width)
	return p.list.Display()
}

func (p *ProcessWidget) HandleKey(key string) tea.Cmd {
	switch key {
	case "down", "j":
		p.list.SelectNext()
	case "up", "k":
		p.list.SelectPrevious()
	case "pgdown", "ctrl+f":
		p.list.PageDown()
	case "pgup", "ctrl+b":
		p.list.PageUp()
	case "home", "g":
		p.list.JumpToFirst()
	case "end", "G":
		p.list.JumpToLast()
	case "c":
		p.list.SortBy(colCPU)
	case "m":
		p.list.SortBy(colMem)
	case "n":
		p.list.SortBy(colName)
	case "p":
		p.list.SortBy(colPID)
	case "r":
		p.list.ReverseSort()
	case "x":
		return p.terminateSelected()
	}
	return nil
}

// List exposes the underlying table.
func (p *ProcessWidget) List() *widget.ListView {
	return p.list
}

func (p *ProcessWidget) terminateSelected() tea.Cmd {
	item, ok := p.list.Select()
	if !ok || p.term == nil {
		return nil
	}
	pid64, err := strconv.ParseInt(item.Fields[colPID], 10, 32)
	if err != nil {
		return nil
	}
	pid := int32(pid64)
	term := p.term
	if p.logger != nil {
		p.logger.Info("terminating process", "pid", pid, "name", item.Name)
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), terminateTimeout)
		defer cancel()
		return ProcessTerminatedMsg{PID: pid, Name: item.Name, Err: term.Terminate(ctx, pid)}
	}
}
