package components

import (
	"fmt"
	"strings"
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
	"rtop/internal/markup"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

func init() {
	Register("host", NewHostWidget)
}

// HostWidget lists static host facts and the current threshold report.
type HostWidget struct {
	thresholds engine.Config
	stats      collector.RawStats
	results    []engine.CheckResult
	scroll     int
}

func NewHostWidget(opts Options) Widget {
	return &HostWidget{thresholds: opts.Thresholds}
}

func (h *HostWidget) Title() string {
	return "Host"
}

func (h *HostWidget) Update(stats *collector.RawStats) {
	if stats == nil {
		return
	}
	h.stats = *stats
	h.results = engine.Evaluate(stats, h.thresholds)
}

func (h *HostWidget) Resize(height, width int) {}

func (h *HostWidget) lines() []string {
	s := h.stats
	platform := strings.TrimSpace(s.Platform + " " + s.PlatformVersion)
	rows := [][2]string{
		{"Hostname", s.Hostname},
		{"Platform", platform},
		{"Kernel", s.KernelVersion},
		{"Uptime", formatUptime(s.Uptime)},
		{"CPU", fmt.Sprintf("%s (%d cores)", s.CPUModel, s.CPUCores)},
		{"Load", fmt.Sprintf("%.2f %.2f %.2f", s.LoadAvg1, s.LoadAvg5, s.LoadAvg15)},
		{"Memory", fmt.Sprintf("%s / %s", humanize.IBytes(s.RAMUsed), humanize.IBytes(s.RAMTotal))},
		{"Swap", fmt.Sprintf("%s / %s", humanize.IBytes(s.SwapUsed), humanize.IBytes(s.SwapTotal))},
		{"Processes", fmt.Sprintf("%d", len(s.Processes))},
	}

	out := make([]string, 0, len(rows)+len(h.results)+1)
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%-10s %s", r[0], r[1]))
	}
	if len(h.results) > 0 {
		out = append(out, "")
		for _, r := range h.results {
			status := markup.Wrap(colorForStatus(r.Status), fmt.Sprintf("%-4s", r.Status))
			out = append(out, fmt.Sprintf("%s %s %.1f", status, r.Name, r.Value))
		}
	}
	return out
}

func (h *HostWidget) Display(height, width int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	lines := h.lines()
	h.scroll = min(h.scroll, max(len(lines)-height, 0))
	end := min(h.scroll+height, len(lines))
	visible := lines[h.scroll:end]

	out := make([]string, len(visible))
	for i, line := range visible {
		if markup.Strip(line) != line {
			// Truncating inside a tag pair would unbalance it; status lines
			// are short and left whole for the view layer to clip.
			out[i] = line
			continue
		}
		out[i] = truncate.StringWithTail(line, uint(width), "…")
	}
	return strings.Join(out, "\n")
}

func (h *HostWidget) HandleKey(key string) tea.Cmd {
	switch key {
	case "down", "j":
		h.scroll++
	case "up", "k":
		h.scroll = max(h.scroll-1, 0)
	case "home", "g":
		h.scroll = 0
	}
	return nil
}

func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	days := int(d.Hours()) / 24
	rem := d - time.Duration(days)*24*time.Hour
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, rem.Truncate(time.Minute))
	}
	return rem.Truncate(time.Second).String()
}
