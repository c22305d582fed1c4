package collector

import (
	"testing"
	"time"
)

func TestDefaultCollectorConfig(t *testing.T) {
	cfg := DefaultCollectorConfig()

	// Check default timeouts
	if cfg.FastMetricsTimeout != 2*time.Second {
		t.Errorf("Expected FastMetricsTimeout 2s, got %v", cfg.FastMetricsTimeout)
	}
	if cfg.SlowMetricsTimeout != 10*time.Second {
		t.Errorf("Expected SlowMetricsTimeout 10s, got %v", cfg.SlowMetricsTimeout)
	}

	// Check polling defaults
	if cfg.FastPollInterval != 333*time.Millisecond {
		t.Errorf("Expected FastPollInterval 333ms, got %v", cfg.FastPollInterval)
	}
	if cfg.SlowPollInterval != 2*time.Second {
		t.Errorf("Expected SlowPollInterval 2s, got %v", cfg.SlowPollInterval)
	}

	// Check limits
	if cfg.ProcessLimit != 0 {
		t.Errorf("Expected ProcessLimit 0, got %d", cfg.ProcessLimit)
	}
	if cfg.HistoryCapacity != 512 {
		t.Errorf("Expected HistoryCapacity 512, got %d", cfg.HistoryCapacity)
	}

	// Check feature flags
	if !cfg.EnableProcessMetrics {
		t.Error("Expected EnableProcessMetrics to be true by default")
	}
	if !cfg.EnableHostMetrics {
		t.Error("Expected EnableHostMetrics to be true by default")
	}
}

func TestCollectorConfig_Validate(t *testing.T) {
	valid := DefaultCollectorConfig()

	tests := []struct {
		name    string
		cfg     CollectorConfig
		field   string
		wantErr bool
	}{
		{name: "valid default config", cfg: valid},
		{name: "invalid fast timeout", cfg: valid.WithFastTimeout(0), field: "FastMetricsTimeout", wantErr: true},
		{name: "invalid slow timeout", cfg: valid.WithSlowTimeout(-time.Second), field: "SlowMetricsTimeout", wantErr: true},
		{name: "invalid fast interval", cfg: valid.WithFastPollInterval(0), field: "FastPollInterval", wantErr: true},
		{
			name:    "slow faster than fast",
			cfg:     valid.WithFastPollInterval(time.Second).WithSlowPollInterval(500 * time.Millisecond),
			field:   "SlowPollInterval",
			wantErr: true,
		},
		{name: "negative process limit", cfg: valid.WithProcessLimit(-1), field: "ProcessLimit", wantErr: true},
		{name: "zero history", cfg: valid.WithHistoryCapacity(0), field: "HistoryCapacity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cerr.Field)
			}
		})
	}
}

func TestCollectorConfig_WithMethods(t *testing.T) {
	cfg := DefaultCollectorConfig()

	// Test WithFastTimeout
	newCfg := cfg.WithFastTimeout(5 * time.Second)
	if newCfg.FastMetricsTimeout != 5*time.Second {
		t.Errorf("WithFastTimeout failed, got %v", newCfg.FastMetricsTimeout)
	}
	// Original should be unchanged
	if cfg.FastMetricsTimeout != 2*time.Second {
		t.Error("WithFastTimeout mutated original config")
	}

	// Test WithSlowTimeout
	newCfg = cfg.WithSlowTimeout(60 * time.Second)
	if newCfg.SlowMetricsTimeout != 60*time.Second {
		t.Errorf("WithSlowTimeout failed, got %v", newCfg.SlowMetricsTimeout)
	}

	// Test WithFastPollInterval
	newCfg = cfg.WithFastPollInterval(500 * time.Millisecond)
	if newCfg.FastPollInterval != 500*time.Millisecond {
		t.Errorf("WithFastPollInterval failed, got %v", newCfg.FastPollInterval)
	}

	// Test WithProcessLimit
	newCfg = cfg.WithProcessLimit(25)
	if newCfg.ProcessLimit != 25 {
		t.Errorf("WithProcessLimit failed, got %d", newCfg.ProcessLimit)
	}

	// Test WithProcessMetrics
	newCfg = cfg.WithProcessMetrics(false)
	if newCfg.EnableProcessMetrics {
		t.Error("WithProcessMetrics(false) failed")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "config error: TestField test message"
	if err.Error() != expected {
		t.Errorf("Expected error '%s', got '%s'", expected, err.Error())
	}
}

func TestCollectorConfig_Chaining(t *testing.T) {
	cfg := DefaultCollectorConfig().
		WithFastTimeout(3 * time.Second).
		WithSlowTimeout(30 * time.Second).
		WithSlowPollInterval(5 * time.Second).
		WithHistoryCapacity(64)

	if cfg.FastMetricsTimeout != 3*time.Second {
		t.Errorf("Chained FastMetricsTimeout failed")
	}
	if cfg.SlowMetricsTimeout != 30*time.Second {
		t.Errorf("Chained SlowMetricsTimeout failed")
	}
	if cfg.SlowPollInterval != 5*time.Second {
		t.Errorf("Chained SlowPollInterval failed")
	}
	if cfg.HistoryCapacity != 64 {
		t.Errorf("Chained HistoryCapacity failed")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Chained config should be valid, got error: %v", err)
	}
}
