package services

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
)

type CPUResult struct {
	TotalUsage float64
	PerCore    []float64
	Model      string
	Cores      int
	Load1      float64
	Load5      float64
	Load15     float64
}

type CPUSensor struct {
	model string
}

func NewCPUSensor() *CPUSensor {
	return &CPUSensor{}
}

func (s *CPUSensor) Name() string {
	return "CPU"
}

// Connect primes the utilisation counters so the first Collect reports the
// usage since connect instead of since boot.
func (s *CPUSensor) Connect(ctx context.Context) error {
	if _, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		return fmt.Errorf("failed to prime cpu counters: %w", err)
	}
	info, err := cpu.InfoWithContext(ctx)
	s.model = "Unknown"
	if err == nil && len(info) > 0 {
		s.model = info[0].ModelName
	}
	return nil
}

func (s *CPUSensor) Disconnect(ctx context.Context) error {
	return nil
}

func (s *CPUSensor) Collect(ctx context.Context) (any, error) {
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(total) == 0 {
		return nil, fmt.Errorf("failed to get total cpu percent: %w", err)
	}

	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get per-core cpu percent: %w", err)
	}

	res := CPUResult{
		TotalUsage: total[0],
		PerCore:    perCore,
		Model:      s.model,
		Cores:      len(perCore),
	}

	// Load average is not available everywhere (Windows); leave it zero.
	if avg, err := load.AvgWithContext(ctx); err == nil {
		res.Load1, res.Load5, res.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	return res, nil
}
