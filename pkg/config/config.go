// Package config loads the checks configuration from YAML and applies
// CHECKS_* environment overrides on top of it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"digital.vasic.checks/pkg/env"
	"digital.vasic.checks/pkg/logging"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatZap     = "zap"
)

// Report formats.
const (
	ReportJSON     = "json"
	ReportMarkdown = "markdown"
)

// Diagnostics output targets besides a file path.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputNone   = "none"
)

// Config is the complete toolkit configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Report      ReportConfig      `yaml:"report"`
	Monitor     MonitorConfig     `yaml:"monitor"`
	Suites      SuitesConfig      `yaml:"suites"`
}

// LogConfig selects the structured logger.
type LogConfig struct {
	// Format is one of console, json or zap.
	Format string `yaml:"format" env:"LOG_FORMAT"`

	// Level is the minimum level: debug, info, warn or error.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// Verbose enables debug output on the console logger.
	Verbose bool `yaml:"verbose" env:"VERBOSE"`

	// Output is a JSON Lines log file. The json format writes only
	// there (stdout when empty); the console format writes there in
	// addition to the console.
	Output string `yaml:"output" env:"LOG_OUTPUT"`
}

// DiagnosticsConfig selects where failed checks are reported.
type DiagnosticsConfig struct {
	// Output is stderr, stdout, none, or a file path.
	Output string `yaml:"output" env:"DIAGNOSTICS_OUTPUT"`

	// Log additionally forwards diagnostics to the logger.
	Log bool `yaml:"log" env:"DIAGNOSTICS_LOG"`
}

// ReportConfig controls report files written after a run.
type ReportConfig struct {
	// Dir is the output directory. Empty disables reports.
	Dir string `yaml:"dir" env:"REPORT_DIR"`

	// Formats lists the per-suite report formats to write.
	Formats []string `yaml:"formats" env:"REPORT_FORMATS" envSeparator:","`

	// History is a JSON Lines file that every suite result is
	// appended to. Empty disables history.
	History string `yaml:"history" env:"REPORT_HISTORY"`

	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty" env:"REPORT_PRETTY"`
}

// MonitorConfig controls the live monitor server.
type MonitorConfig struct {
	// Enabled starts the monitor server around checks run.
	Enabled bool `yaml:"enabled" env:"MONITOR_ENABLED"`

	Addr string `yaml:"addr" env:"MONITOR_ADDR"`
}

// SuitesConfig filters which registered suites run.
type SuitesConfig struct {
	// Include lists suite IDs. Empty means all.
	Include []string `yaml:"include,omitempty" env:"SUITES" envSeparator:","`

	// Categories restricts runs to the given categories.
	Categories []string `yaml:"categories,omitempty" env:"CATEGORIES" envSeparator:","`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: FormatConsole,
			Level:  "info",
		},
		Diagnostics: DiagnosticsConfig{
			Output: OutputStderr,
		},
		Report: ReportConfig{
			Dir:     "results",
			Formats: []string{ReportJSON, ReportMarkdown},
			Pretty:  true,
		},
		Monitor: MonitorConfig{
			Addr: "localhost:8090",
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read config %s: %w", path, err,
		)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Empty input yields the
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv overrides fields from variables named by the env tags,
// scoped by the loader's prefix. Process variables win over values
// loaded from a .env file.
func (c *Config) ApplyEnv(loader env.Loader) error {
	err := envparse.ParseWithOptions(c, envparse.Options{
		Prefix:      loader.Prefix(),
		Environment: loader.Environ(),
	})
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.Report.Formats = compactList(c.Report.Formats)
	c.Suites.Include = compactList(c.Suites.Include)
	c.Suites.Categories = compactList(c.Suites.Categories)
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error

	switch c.Log.Format {
	case FormatConsole, FormatJSON, FormatZap:
	default:
		errs = append(errs, fmt.Errorf(
			"log.format: unsupported format %q", c.Log.Format,
		))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if strings.TrimSpace(c.Diagnostics.Output) == "" {
		errs = append(errs, errors.New("diagnostics.output: must not be empty"))
	}
	for _, f := range c.Report.Formats {
		if f != ReportJSON && f != ReportMarkdown {
			errs = append(errs, fmt.Errorf(
				"report.formats: unsupported format %q", f,
			))
		}
	}
	if c.Monitor.Enabled && c.Monitor.Addr == "" {
		errs = append(errs, errors.New("monitor.addr: required when monitor is enabled"))
	}

	return errors.Join(errs...)
}

// compactList trims entries and drops empty ones, so "a, b," reads
// as [a b].
func compactList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, part := range in {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
