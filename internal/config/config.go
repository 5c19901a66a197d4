// Package config provides configuration types and defaults for tresse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/tresse/internal/log"
)

// Config holds all configuration options for tresse.
type Config struct {
	DBPath          string        `mapstructure:"db_path"`
	AutoRefresh     bool          `mapstructure:"auto_refresh"`
	RefreshDebounce time.Duration `mapstructure:"refresh_debounce"`
	Log             LogConfig     `mapstructure:"log"`
	Cache           CacheConfig   `mapstructure:"cache"`
	Tracing         TracingConfig `mapstructure:"tracing"`
}

// LogConfig holds debug logging configuration.
type LogConfig struct {
	// Debug enables file-backed debug logging.
	// Equivalent to the --debug flag or the TRESSE_DEBUG environment variable.
	Debug bool `mapstructure:"debug"`

	// Path is the log file location.
	// Default: debug.log in the working directory. TRESSE_LOG overrides.
	Path string `mapstructure:"path"`
}

// CacheConfig holds profile name cache settings.
type CacheConfig struct {
	// Disabled bypasses the profile name cache so every resolution
	// hits the store directly.
	Disabled bool `mapstructure:"disabled"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/tresse/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/tresse/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tresse", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoRefresh:     true,
		RefreshDebounce: 500 * time.Millisecond,
		Log: LogConfig{
			Debug: false,
			Path:  "", // Falls back to debug.log in the working directory
		},
		Cache: CacheConfig{
			Disabled: false,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the full configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if cfg.RefreshDebounce < 0 {
		return fmt.Errorf("refresh_debounce must not be negative, got %v", cfg.RefreshDebounce)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// OTLPEndpoint is required when Exporter is "otlp" and tracing is on.
	// FilePath is not: the default traces path is derived at runtime.
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Tresse Configuration

# Path to the conversations database or its project directory
# (default: .tresse/conversations.db in the current directory)
# db_path: /path/to/project

# Rebuild the index automatically when the database changes (watch command)
auto_refresh: true

# How long to wait after a database change before rebuilding.
# Rapid write bursts (e.g. an import) coalesce into a single rebuild.
refresh_debounce: 500ms

# Debug logging
# log:
#   debug: false      # Enable debug logging (same as --debug or TRESSE_DEBUG)
#   path: debug.log   # Log file location (TRESSE_LOG overrides)

# Profile name cache
# cache:
#   disabled: false   # Bypass the cache so every resolution hits the store

# Distributed tracing configuration
# Enables end-to-end visibility into index rebuild flows
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/tresse/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: Enable tracing with file export
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/tresse/traces/traces.jsonl
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
