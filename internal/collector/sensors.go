package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rtop/internal/collector/services"

	"github.com/sourcegraph/conc"
)

// ============================================================================
// DATA STRUCTURES
// ============================================================================

// RawStats represents a snapshot of system metrics. A fast collection fills
// the CPU, load and memory fields; a slow collection fills host and process
// fields. Merge combines the two.
type RawStats struct {
	// CPU Metrics
	CPUUsage   float64   // Overall CPU utilization percentage (0-100)
	CPUPerCore []float64 // Per-core CPU utilization
	CPUModel   string    // CPU model name
	CPUCores   int       // Number of logical CPU cores
	LoadAvg1   float64   // 1-minute load average
	LoadAvg5   float64   // 5-minute load average
	LoadAvg15  float64   // 15-minute load average

	// RAM Metrics (bytes)
	RAMUsage     float64
	RAMTotal     uint64
	RAMUsed      uint64
	RAMAvailable uint64
	RAMCached    uint64

	// Swap Metrics (bytes)
	SwapUsage float64
	SwapTotal uint64
	SwapUsed  uint64

	// Host Metrics
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Uptime          time.Duration
	Procs           uint64

	// Process Metrics
	Processes []ProcessStat

	CollectedAt time.Time
}

// ProcessStat is one row of the process table.
type ProcessStat struct {
	PID    int32
	Name   string
	User   string
	Status string
	CPU    float64
	Memory float64
	RSS    uint64
}

// ============================================================================
// INTERFACE DEFINITION
// ============================================================================

// StatsProvider defines the contract for any system metrics collector.
type StatsProvider interface {
	GetFastMetrics(ctx context.Context) (*RawStats, error)
	GetSlowMetrics(ctx context.Context) (*RawStats, error)
}

// ProcessTerminator is implemented by providers that can signal processes.
type ProcessTerminator interface {
	Terminate(ctx context.Context, pid int32) error
}

// ============================================================================
// CONCRETE IMPLEMENTATION
// ============================================================================

// SystemCollector gathers metrics through gopsutil-backed sensors.
type SystemCollector struct {
	cfg CollectorConfig

	fastMu sync.Mutex
	cpu    *services.CPUSensor
	mem    *services.MemSensor

	slowMu sync.Mutex
	host   *services.HostSensor
	proc   *services.ProcessSensor

	terminate func(ctx context.Context, pid int32) error
}

type sensorResult struct {
	value any
	err   error
}

func NewSystemCollector(cfg CollectorConfig) *SystemCollector {
	return &SystemCollector{
		cfg:       cfg,
		cpu:       services.NewCPUSensor(),
		mem:       services.NewMemSensor(),
		host:      services.NewHostSensor(),
		proc:      services.NewProcessSensor(cfg.ProcessLimit),
		terminate: services.TerminateProcess,
	}
}

// Config returns the configuration the collector was built with.
func (s *SystemCollector) Config() CollectorConfig {
	return s.cfg
}

// Connect primes every sensor. Call once before the first collection.
func (s *SystemCollector) Connect(ctx context.Context) error {
	for _, sensor := range s.sensors() {
		if err := sensor.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect %s sensor: %w", sensor.Name(), err)
		}
	}
	return nil
}

// Close disconnects every sensor.
func (s *SystemCollector) Close(ctx context.Context) error {
	var firstErr error
	for _, sensor := range s.sensors() {
		if err := sensor.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to disconnect %s sensor: %w", sensor.Name(), err)
		}
	}
	return firstErr
}

func (s *SystemCollector) sensors() []services.Sensor {
	return []services.Sensor{s.cpu, s.mem, s.host, s.proc}
}

// GetFastMetrics collects high-frequency metrics (CPU, load, memory).
func (s *SystemCollector) GetFastMetrics(ctx context.Context) (*RawStats, error) {
	s.fastMu.Lock()
	defer s.fastMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.FastMetricsTimeout)
	defer cancel()

	var cpuRes, memRes sensorResult
	var wg conc.WaitGroup
	wg.Go(collectInto(ctx, s.cpu, &cpuRes))
	wg.Go(collectInto(ctx, s.mem, &memRes))
	wg.Wait()

	if cpuRes.err != nil {
		return nil, fmt.Errorf("failed to get CPU metrics: %w", cpuRes.err)
	}
	if memRes.err != nil {
		return nil, fmt.Errorf("failed to get memory metrics: %w", memRes.err)
	}

	c := cpuRes.value.(services.CPUResult)
	m := memRes.value.(services.MemResult)

	return &RawStats{
		CPUUsage:     c.TotalUsage,
		CPUPerCore:   c.PerCore,
		CPUModel:     c.Model,
		CPUCores:     c.Cores,
		LoadAvg1:     c.Load1,
		LoadAvg5:     c.Load5,
		LoadAvg15:    c.Load15,
		RAMUsage:     m.UsedPercent,
		RAMTotal:     m.Total,
		RAMUsed:      m.Used,
		RAMAvailable: m.Available,
		RAMCached:    m.Cached,
		SwapUsage:    m.SwapUsage,
		SwapTotal:    m.SwapTotal,
		SwapUsed:     m.SwapUsed,
		CollectedAt:  time.Now(),
	}, nil
}

// GetSlowMetrics collects low-frequency metrics (host info, process table).
// A failed host lookup is not fatal; a failed process listing is.
func (s *SystemCollector) GetSlowMetrics(ctx context.Context) (*RawStats, error) {
	s.slowMu.Lock()
	defer s.slowMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SlowMetricsTimeout)
	defer cancel()

	var hostRes, procRes sensorResult
	var wg conc.WaitGroup
	if s.cfg.EnableHostMetrics {
		wg.Go(collectInto(ctx, s.host, &hostRes))
	}
	if s.cfg.EnableProcessMetrics {
		wg.Go(collectInto(ctx, s.proc, &procRes))
	}
	wg.Wait()

	if procRes.err != nil {
		return nil, fmt.Errorf("failed to get process metrics: %w", procRes.err)
	}

	stats := &RawStats{CollectedAt: time.Now()}
	if h, ok := hostRes.value.(services.HostResult); ok && hostRes.err == nil {
		stats.Hostname = h.Hostname
		stats.OS = h.OS
		stats.Platform = h.Platform
		stats.PlatformVersion = h.PlatformVersion
		stats.KernelVersion = h.KernelVersion
		stats.Uptime = time.Duration(h.Uptime) * time.Second
		stats.Procs = h.Procs
	}
	if p, ok := procRes.value.(services.ProcessResult); ok {
		stats.Processes = make([]ProcessStat, 0, len(p.Processes))
		for _, info := range p.Processes {
			stats.Processes = append(stats.Processes, ProcessStat{
				PID:    info.PID,
				Name:   info.Name,
				User:   info.User,
				Status: info.Status,
				CPU:    info.CPU,
				Memory: float64(info.Memory),
				RSS:    info.RSS,
			})
		}
	}
	return stats, nil
}

// Terminate asks the operating system to stop pid.
func (s *SystemCollector) Terminate(ctx context.Context, pid int32) error {
	return s.terminate(ctx, pid)
}

// collectInto returns a task storing the sensor's reading in dst. A panicking
// sensor is re-raised by conc.WaitGroup.Wait on the caller's goroutine.
func collectInto(ctx context.Context, sensor services.Sensor, dst *sensorResult) func() {
	return func() {
		value, err := sensor.Collect(ctx)
		*dst = sensorResult{value: value, err: err}
	}
}

// Merge overlays a slow snapshot onto a fast one. Either may be nil; the
// result is a fresh value and neither input is modified.
func Merge(fast, slow *RawStats) *RawStats {
	out := &RawStats{}
	if fast != nil {
		*out = *fast
	}
	if slow == nil {
		return out
	}
	out.Hostname = slow.Hostname
	out.OS = slow.OS
	out.Platform = slow.Platform
	out.PlatformVersion = slow.PlatformVersion
	out.KernelVersion = slow.KernelVersion
	out.Uptime = slow.Uptime
	out.Procs = slow.Procs
	out.Processes = slow.Processes
	if fast == nil {
		out.CollectedAt = slow.CollectedAt
	}
	return out
}
