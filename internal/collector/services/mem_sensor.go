package services

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

type MemResult struct {
	UsedPercent float64
	Total       uint64
	Used        uint64
	Free        uint64
	Available   uint64
	Cached      uint64
	Buffers     uint64
	SwapUsage   float64
	SwapTotal   uint64
	SwapUsed    uint64
}

type MemSensor struct{}

func NewMemSensor() *MemSensor {
	return &MemSensor{}
}

func (s *MemSensor) Name() string {
	return "Memory"
}

func (s *MemSensor) Connect(ctx context.Context) error {
	return nil
}

func (s *MemSensor) Disconnect(ctx context.Context) error {
	return nil
}

func (s *MemSensor) Collect(ctx context.Context) (any, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get virtual memory: %w", err)
	}

	swapStat, swapErr := mem.SwapMemoryWithContext(ctx)
	swapUsage := 0.0
	swapTotal := v.SwapTotal
	swapUsed := v.SwapTotal - v.SwapFree
	if swapErr == nil && swapStat != nil {
		swapUsage = swapStat.UsedPercent
		swapTotal = swapStat.Total
		swapUsed = swapStat.Used
	}

	return MemResult{
		UsedPercent: v.UsedPercent,
		Total:       v.Total,
		Used:        v.Used,
		Free:        v.Free,
		Available:   v.Available,
		Cached:      v.Cached,
		Buffers:     v.Buffers,
		SwapUsage:   swapUsage,
		SwapTotal:   swapTotal,
		SwapUsed:    swapUsed,
	}, nil
}
