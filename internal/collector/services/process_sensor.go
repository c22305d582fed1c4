package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

type ProcessInfo struct {
	PID    int32   `json:"pid"`
	Name   string  `json:"name,omitempty"`
	User   string  `json:"user,omitempty"`
	Status string  `json:"status,omitempty"`
	CPU    float64 `json:"cpu_percent"`
	Memory float32 `json:"memory_percent"`
	RSS    uint64  `json:"rss_bytes,omitempty"`
}

type ProcessResult struct {
	Processes []ProcessInfo `json:"processes"`
}

// ProcessSensor enumerates running processes. CPU usage is measured between
// consecutive Collect calls, so the sensor keeps process handles alive.
type ProcessSensor struct {
	limit   int
	handles map[int32]*process.Process
}

// NewProcessSensor returns a sensor reporting at most limit processes; zero
// means no limit.
func NewProcessSensor(limit int) *ProcessSensor {
	return &ProcessSensor{
		limit:   limit,
		handles: make(map[int32]*process.Process),
	}
}

func (s *ProcessSensor) Name() string {
	return "Process"
}

func (s *ProcessSensor) Connect(ctx context.Context) error {
	return nil
}

func (s *ProcessSensor) Disconnect(ctx context.Context) error {
	s.handles = make(map[int32]*process.Process)
	return nil
}

func (s *ProcessSensor) Collect(ctx context.Context) (any, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pids: %w", err)
	}

	processes := make([]ProcessInfo, 0, len(pids))
	alive := make(map[int32]*process.Process, len(pids))

	for _, pid := range pids {
		if s.limit > 0 && len(processes) >= s.limit {
			break
		}
		p, ok := s.handles[pid]
		if !ok {
			p, err = process.NewProcessWithContext(ctx, pid)
			if err != nil {
				continue
			}
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Exited between listing and inspection.
			continue
		}
		alive[pid] = p

		cpuPct, _ := p.PercentWithContext(ctx, 0)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		user, _ := p.UsernameWithContext(ctx)
		status, _ := p.StatusWithContext(ctx)

		var rss uint64
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rss = mi.RSS
		}

		processes = append(processes, ProcessInfo{
			PID:    pid,
			Name:   name,
			User:   user,
			Status: strings.Join(status, ","),
			CPU:    cpuPct,
			Memory: memPct,
			RSS:    rss,
		})
	}
	s.handles = alive

	return ProcessResult{Processes: processes}, nil
}

// TerminateProcess sends SIGTERM (or the platform equivalent) to pid.
func TerminateProcess(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}
