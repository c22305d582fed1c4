package output

import (
	"context"
	"fmt"
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
	"rtop/internal/history"
)

// PipelinePayload is one complete report: the merged snapshot, its threshold
// results and the samples gathered on the way.
type PipelinePayload struct {
	Stats   *collector.RawStats
	Results []engine.CheckResult

	CPUHistory    *history.Series
	MemoryHistory *history.Series
}

// DataCollector defines the interface for collecting raw system stats.
type DataCollector interface {
	GetFastMetrics(ctx context.Context) (*collector.RawStats, error)
	GetSlowMetrics(ctx context.Context) (*collector.RawStats, error)
}

// PipelineOptions controls how many fast samples are taken. CPU usage is a
// delta between reads, so at least two samples are always taken.
type PipelineOptions struct {
	Samples  int
	Interval time.Duration
	Engine   engine.Config
}

// RunPipeline executes the report pipeline: Sample -> Collect slow -> Merge -> Evaluate.
func RunPipeline(ctx context.Context, col DataCollector, opts PipelineOptions) (*PipelinePayload, error) {
	samples := max(opts.Samples, 2)
	cpuHist := history.NewSeries(samples)
	memHist := history.NewSeries(samples)

	// 1. Sample fast metrics
	var fast *collector.RawStats
	for i := 0; i < samples; i++ {
		if i > 0 && opts.Interval > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Interval):
			}
		}
		stats, err := col.GetFastMetrics(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect fast: %w", err)
		}
		fast = stats
		cpuHist.Push(int(stats.CPUUsage + 0.5))
		memHist.Push(int(stats.RAMUsage + 0.5))
	}

	// 2. Collect slow metrics
	slow, err := col.GetSlowMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect slow: %w", err)
	}

	// 3. Merge & evaluate
	merged := collector.Merge(fast, slow)
	return &PipelinePayload{
		Stats:         merged,
		Results:       engine.Evaluate(merged, opts.Engine),
		CPUHistory:    cpuHist,
		MemoryHistory: memHist,
	}, nil
}
