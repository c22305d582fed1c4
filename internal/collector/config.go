package collector

import "time"

// CollectorConfig contains configurable parameters for the system collector.
// Use DefaultCollectorConfig() to get sensible defaults, then override as needed.
type CollectorConfig struct {
	// Timeout settings
	FastMetricsTimeout time.Duration // Timeout for fast metrics collection (default: 2s)
	SlowMetricsTimeout time.Duration // Timeout for slow metrics collection (default: 10s)

	// Polling intervals for the TUI
	FastPollInterval time.Duration // How often to poll cpu/load/memory (default: 333ms)
	SlowPollInterval time.Duration // How often to poll host/processes (default: 2s)

	// Collection limits
	ProcessLimit    int // Maximum processes to report, 0 for all (default: 0)
	HistoryCapacity int // Samples retained per history series (default: 512)

	// Feature flags
	EnableProcessMetrics bool // Whether to enumerate processes (default: true)
	EnableHostMetrics    bool // Whether to collect host info (default: true)
}

// DefaultCollectorConfig returns a CollectorConfig with sensible defaults.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		// Timeouts
		FastMetricsTimeout: 2 * time.Second,
		SlowMetricsTimeout: 10 * time.Second,

		// Polling
		FastPollInterval: 333 * time.Millisecond,
		SlowPollInterval: 2 * time.Second,

		// Limits
		ProcessLimit:    0,
		HistoryCapacity: 512,

		// Features
		EnableProcessMetrics: true,
		EnableHostMetrics:    true,
	}
}

// WithFastTimeout returns a copy of the config with modified fast timeout.
func (c CollectorConfig) WithFastTimeout(d time.Duration) CollectorConfig {
	c.FastMetricsTimeout = d
	return c
}

// WithSlowTimeout returns a copy of the config with modified slow timeout.
func (c CollectorConfig) WithSlowTimeout(d time.Duration) CollectorConfig {
	c.SlowMetricsTimeout = d
	return c
}

// WithFastPollInterval returns a copy of the config with modified fast poll interval.
func (c CollectorConfig) WithFastPollInterval(d time.Duration) CollectorConfig {
	c.FastPollInterval = d
	return c
}

// WithSlowPollInterval returns a copy of the config with modified slow poll interval.
func (c CollectorConfig) WithSlowPollInterval(d time.Duration) CollectorConfig {
	c.SlowPollInterval = d
	return c
}

// WithProcessLimit returns a copy of the config with modified process limit.
func (c CollectorConfig) WithProcessLimit(n int) CollectorConfig {
	c.ProcessLimit = n
	return c
}

// WithHistoryCapacity returns a copy of the config with modified history capacity.
func (c CollectorConfig) WithHistoryCapacity(n int) CollectorConfig {
	c.HistoryCapacity = n
	return c
}

// WithProcessMetrics returns a copy of the config with process enumeration enabled/disabled.
func (c CollectorConfig) WithProcessMetrics(enabled bool) CollectorConfig {
	c.EnableProcessMetrics = enabled
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c CollectorConfig) Validate() error {
	if c.FastMetricsTimeout <= 0 {
		return &ConfigError{Field: "FastMetricsTimeout", Message: "must be positive"}
	}
	if c.SlowMetricsTimeout <= 0 {
		return &ConfigError{Field: "SlowMetricsTimeout", Message: "must be positive"}
	}
	if c.FastPollInterval <= 0 {
		return &ConfigError{Field: "FastPollInterval", Message: "must be positive"}
	}
	if c.SlowPollInterval < c.FastPollInterval {
		return &ConfigError{Field: "SlowPollInterval", Message: "must not be shorter than FastPollInterval"}
	}
	if c.ProcessLimit < 0 {
		return &ConfigError{Field: "ProcessLimit", Message: "must not be negative"}
	}
	if c.HistoryCapacity <= 0 {
		return &ConfigError{Field: "HistoryCapacity", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
