package output

import (
	"fmt"
	"strings"

	"rtop/internal/collector"
	"rtop/internal/engine"

	"github.com/dustin/go-humanize"
)

// Section constants to avoid hardcoded strings
const (
	SectionCPU    = "cpu"
	SectionMemory = "memory"
	SectionHost   = "host"
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Value  float64
	Unit   string
	Status string
	Note   string
}

type Section struct {
	ID    string // cpu/memory/host
	Title string
	Items []Item
}

type DashboardView struct {
	Sections []Section
	Overall  string
	Hostname string
}

// BuildDashboard converts checker + collector data into report sections.
func BuildDashboard(results []engine.CheckResult, stats *collector.RawStats) DashboardView {
	if stats == nil {
		stats = &collector.RawStats{}
	}
	sec := map[string]*Section{
		SectionCPU:    {ID: SectionCPU, Title: "CPU"},
		SectionMemory: {ID: SectionMemory, Title: "Memory"},
		SectionHost:   {ID: SectionHost, Title: "Host"},
	}

	for _, r := range results {
		name := strings.ToLower(r.Name)

		it := Item{
			Key:    strings.ReplaceAll(name, " ", "_"),
			Label:  r.Name,
			Value:  r.Value,
			Unit:   "%",
			Status: r.Status,
		}

		switch {
		case strings.Contains(name, "load"):
			it.Unit = ""
			sec[SectionCPU].Items = append(sec[SectionCPU].Items, it)
		case strings.Contains(name, "cpu"):
			sec[SectionCPU].Items = append(sec[SectionCPU].Items, it)
		case strings.Contains(name, "ram"), strings.Contains(name, "swap"):
			sec[SectionMemory].Items = append(sec[SectionMemory].Items, it)
		}
	}

	// ------------------------------------------------------------------------
	// Informational metrics that have no threshold
	// ------------------------------------------------------------------------

	sec[SectionCPU].Items = append(sec[SectionCPU].Items,
		Item{Label: "CPU Model", Note: stats.CPUModel},
		Item{Label: "Cores", Note: fmt.Sprint(stats.CPUCores)},
		Item{Label: "Load Avg", Note: fmt.Sprintf("%.2f %.2f %.2f", stats.LoadAvg1, stats.LoadAvg5, stats.LoadAvg15)},
	)
	for i, usage := range stats.CPUPerCore {
		sec[SectionCPU].Items = append(sec[SectionCPU].Items, Item{
			Label: fmt.Sprintf("Core %d", i),
			Value: usage,
			Unit:  "%",
		})
	}

	sec[SectionMemory].Items = append(sec[SectionMemory].Items,
		Item{Label: "Total", Note: humanize.IBytes(stats.RAMTotal)},
		Item{Label: "Used", Note: humanize.IBytes(stats.RAMUsed)},
		Item{Label: "Available", Note: humanize.IBytes(stats.RAMAvailable)},
		Item{Label: "Cached", Note: humanize.IBytes(stats.RAMCached)},
		Item{Label: "Swap", Note: humanize.IBytes(stats.SwapUsed) + " / " + humanize.IBytes(stats.SwapTotal)},
	)

	platform := strings.TrimSpace(stats.Platform + " " + stats.PlatformVersion)
	sec[SectionHost].Items = append(sec[SectionHost].Items,
		Item{Label: "Hostname", Note: stats.Hostname},
		Item{Label: "Platform", Note: platform},
		Item{Label: "Kernel", Note: stats.KernelVersion},
		Item{Label: "Uptime", Note: stats.Uptime.String()},
		Item{Label: "Processes", Note: fmt.Sprint(stats.Procs)},
	)

	return DashboardView{
		Sections: []Section{
			*sec[SectionCPU],
			*sec[SectionMemory],
			*sec[SectionHost],
		},
		Overall:  engine.Overall(results),
		Hostname: stats.Hostname,
	}
}

func (v DashboardView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
