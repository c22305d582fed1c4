package engine

import (
	"fmt"

	"rtop/internal/collector"
)

const (
	StatusHealthy  = "OK"
	StatusWarning  = "WARN"
	StatusCritical = "CRIT"
)

// Thresholds defines warning and critical levels for a metric.
type Thresholds struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// Config holds the thresholds Evaluate checks against. Load is expressed per
// logical core.
type Config struct {
	CPU    Thresholds
	Memory Thresholds
	Swap   Thresholds
	Load   Thresholds
}

func DefaultConfig() Config {
	return Config{
		CPU:    Thresholds{Warning: 70.0, Critical: 90.0},
		Memory: Thresholds{Warning: 70.0, Critical: 90.0},
		Swap:   Thresholds{Warning: 50.0, Critical: 80.0},
		Load:   Thresholds{Warning: 1.0, Critical: 2.0},
	}
}

type CheckResult struct {
	Name   string
	Value  float64
	Status string
}

func getStatus(value float64, t Thresholds) string {
	if value > t.Critical {
		return StatusCritical
	}
	if value > t.Warning {
		return StatusWarning
	}
	return StatusHealthy
}

// StatusFor classifies a single reading.
func StatusFor(value float64, t Thresholds) string {
	return getStatus(value, t)
}

func Evaluate(stats *collector.RawStats, cfg Config) []CheckResult {
	if stats == nil {
		return nil
	}
	var result []CheckResult

	// CPU
	result = append(result, CheckResult{
		Name:   "CPU Usage",
		Value:  stats.CPUUsage,
		Status: getStatus(stats.CPUUsage, cfg.CPU),
	})

	// RAM
	result = append(result, CheckResult{
		Name:   "RAM Usage",
		Value:  stats.RAMUsage,
		Status: getStatus(stats.RAMUsage, cfg.Memory),
	})

	// Swap (only if configured on the host)
	if stats.SwapTotal > 0 {
		result = append(result, CheckResult{
			Name:   "Swap Usage",
			Value:  stats.SwapUsage,
			Status: getStatus(stats.SwapUsage, cfg.Swap),
		})
	}

	// Load per core (only when the core count is known)
	if stats.CPUCores > 0 {
		perCore := stats.LoadAvg1 / float64(stats.CPUCores)
		result = append(result, CheckResult{
			Name:   "Load per Core",
			Value:  perCore,
			Status: getStatus(perCore, cfg.Load),
		})
	}

	return result
}

// Overall returns the worst status among results.
func Overall(results []CheckResult) string {
	worst := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusCritical:
			return StatusCritical
		case StatusWarning:
			worst = StatusWarning
		}
	}
	return worst
}

// Explain returns one human readable line per non-healthy result.
func Explain(results []CheckResult) []string {
	var lines []string
	for _, r := range results {
		switch r.Status {
		case StatusCritical:
			lines = append(lines, fmt.Sprintf("%s critical: %.1f", r.Name, r.Value))
		case StatusWarning:
			lines = append(lines, fmt.Sprintf("%s warning: %.1f", r.Name, r.Value))
		}
	}
	return lines
}

// Validate checks that warning does not exceed critical.
func (t Thresholds) Validate() error {
	if t.Warning < 0 || t.Critical < 0 {
		return fmt.Errorf("thresholds must not be negative (warning %.1f, critical %.1f)", t.Warning, t.Critical)
	}
	if t.Warning > t.Critical {
		return fmt.Errorf("warning %.1f exceeds critical %.1f", t.Warning, t.Critical)
	}
	return nil
}
