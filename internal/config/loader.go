package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order.
var ConfigPaths = []string{
	"./.rtop.yaml",               // Project-specific config (highest priority)
	"~/.config/rtop/config.yaml", // User config
	"/etc/rtop/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging.
type Loader struct {
	configPaths []string
	getenv      func(string) string
	warnings    []string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// Warnings returns problems with optional config files that were skipped
// during the last LoadConfig call.
func (l *Loader) Warnings() []string {
	return l.warnings
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.rtop.yaml
// 4. ~/.config/rtop/config.yaml
// 5. /etc/rtop/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	l.warnings = nil
	cfg := DefaultConfig()

	if customPath != "" {
		customPath = expandPath(customPath)
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(cfg, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
		cfg.Source = customPath
	} else {
		// Lowest priority first so later files override earlier ones.
		paths := slices.Clone(l.configPaths)
		slices.Reverse(paths)

		for _, path := range paths {
			expandedPath := expandPath(path)
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(cfg, expandedPath); err != nil {
				l.warnings = append(l.warnings, fmt.Sprintf("failed to load config from %s: %v", expandedPath, err))
				continue
			}
			cfg.Source = expandedPath
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes a YAML file over cfg. Keys absent from the file keep
// their current value; a present pages list replaces the existing one.
func (l *Loader) loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - path is validated or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	envMappings := map[string]func(string) error{
		"RTOP_FAST_INTERVAL": func(v string) error { return parseDuration(v, &cfg.FastInterval) },
		"RTOP_SLOW_INTERVAL": func(v string) error { return parseDuration(v, &cfg.SlowInterval) },
		"RTOP_HISTORY_SIZE":  func(v string) error { return parseInt(v, &cfg.HistorySize) },
		"RTOP_LOG_FILE":      func(v string) error { cfg.LogFile = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched.
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// validateConfigPath validates that a config path is safe to read.
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}
	return nil
}

// expandPath expands a leading ~ to the home directory. The path is returned
// unchanged when the home directory cannot be determined.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
