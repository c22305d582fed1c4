package config

import (
	"fmt"
	"time"

	"rtop/internal/collector"
	"rtop/internal/engine"
)

// MaxWidgetsPerPage bounds how many panes a single page can tile.
const MaxWidgetsPerPage = 4

// Config is the user-facing configuration, decoded from YAML.
type Config struct {
	FastInterval   time.Duration   `yaml:"fast_interval"`
	SlowInterval   time.Duration   `yaml:"slow_interval"`
	HistorySize    int             `yaml:"history_size"`
	SmoothCPU      bool            `yaml:"smooth_cpu"`
	ProcessLimit   int             `yaml:"process_limit"`
	ShowPercentage bool            `yaml:"show_percentage"`
	LogFile        string          `yaml:"log_file"`
	Thresholds     ThresholdConfig `yaml:"thresholds"`
	Pages          [][]string      `yaml:"pages"`

	// Source is the highest-priority file that contributed to this config.
	Source string `yaml:"-"`
}

type ThresholdConfig struct {
	CPU    engine.Thresholds `yaml:"cpu"`
	Memory engine.Thresholds `yaml:"memory"`
	Swap   engine.Thresholds `yaml:"swap"`
	Load   engine.Thresholds `yaml:"load"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	col := collector.DefaultCollectorConfig()
	eng := engine.DefaultConfig()
	return &Config{
		FastInterval:   col.FastPollInterval,
		SlowInterval:   col.SlowPollInterval,
		HistorySize:    col.HistoryCapacity,
		SmoothCPU:      true,
		ProcessLimit:   col.ProcessLimit,
		ShowPercentage: true,
		Thresholds: ThresholdConfig{
			CPU:    eng.CPU,
			Memory: eng.Memory,
			Swap:   eng.Swap,
			Load:   eng.Load,
		},
		Pages: [][]string{
			{"cpu", "memory", "processes"},
			{"load", "host"},
		},
	}
}

// ValidationError reports the first invalid field found by Validate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

// Validate checks the configuration for internal consistency. Widget names
// are checked against the registry by the caller.
func (c *Config) Validate() error {
	if c.FastInterval <= 0 {
		return &ValidationError{Field: "fast_interval", Message: "must be positive"}
	}
	if c.SlowInterval <= 0 {
		return &ValidationError{Field: "slow_interval", Message: "must be positive"}
	}
	if c.HistorySize < 2 {
		return &ValidationError{Field: "history_size", Message: "must be at least 2"}
	}
	if c.ProcessLimit < 0 {
		return &ValidationError{Field: "process_limit", Message: "must not be negative"}
	}

	checks := []struct {
		field string
		t     engine.Thresholds
	}{
		{"thresholds.cpu", c.Thresholds.CPU},
		{"thresholds.memory", c.Thresholds.Memory},
		{"thresholds.swap", c.Thresholds.Swap},
		{"thresholds.load", c.Thresholds.Load},
	}
	for _, chk := range checks {
		if err := chk.t.Validate(); err != nil {
			return &ValidationError{Field: chk.field, Message: err.Error()}
		}
	}

	if len(c.Pages) == 0 {
		return &ValidationError{Field: "pages", Message: "must contain at least one page"}
	}
	for i, page := range c.Pages {
		field := fmt.Sprintf("pages[%d]", i)
		if len(page) == 0 {
			return &ValidationError{Field: field, Message: "must contain at least one widget"}
		}
		if len(page) > MaxWidgetsPerPage {
			return &ValidationError{Field: field, Message: fmt.Sprintf("has %d widgets, at most %d allowed", len(page), MaxWidgetsPerPage)}
		}
		for _, name := range page {
			if name == "" {
				return &ValidationError{Field: field, Message: "contains an empty widget name"}
			}
		}
	}
	return nil
}

// Collector derives the collector settings.
func (c *Config) Collector() collector.CollectorConfig {
	return collector.DefaultCollectorConfig().
		WithFastPollInterval(c.FastInterval).
		WithSlowPollInterval(max(c.SlowInterval, c.FastInterval)).
		WithProcessLimit(c.ProcessLimit).
		WithHistoryCapacity(c.HistorySize)
}

// Engine derives the threshold settings.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		CPU:    c.Thresholds.CPU,
		Memory: c.Thresholds.Memory,
		Swap:   c.Thresholds.Swap,
		Load:   c.Thresholds.Load,
	}
}

// WidgetNames returns every widget name referenced by the pages, in order of
// first appearance.
func (c *Config) WidgetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, page := range c.Pages {
		for _, name := range page {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
