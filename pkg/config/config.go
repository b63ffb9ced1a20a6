// Package config provides TOML-based configuration for mincer-manifest.
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration. Every field has a default, so an
// absent config file yields the same manifest as a bare invocation.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`

	// ProbeTimeout bounds each external tool query. Zero means no timeout.
	ProbeTimeout Duration `toml:"probe_timeout"`

	Output  OutputConfig  `toml:"output"`
	Scripts ScriptsConfig `toml:"scripts"`
	Metrics MetricsConfig `toml:"metrics"`
}

// OutputConfig controls manifest serialization.
type OutputConfig struct {
	// Format is "json" or "yaml".
	Format string `toml:"format"`
}

// ScriptsConfig controls which directory entries count as scripts.
type ScriptsConfig struct {
	Extensions []string `toml:"extensions"`
}

// MetricsConfig lists measurement tools probed after the built-in ones.
type MetricsConfig struct {
	Extra []ExtraTool `toml:"extra"`
}

// ExtraTool describes one additional executable to probe.
type ExtraTool struct {
	// Name is the executable looked up on PATH.
	Name string `toml:"name"`

	// Label is the manifest entry. Defaults to Name.
	Label string `toml:"label"`

	// Query, when set, is run as Name's arguments and each output line
	// becomes "Label::<line>".
	Query []string `toml:"query"`
}

// Validate checks the configuration for values the generator cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want json or yaml)", c.Output.Format)
	}
	if len(c.Scripts.Extensions) == 0 {
		return fmt.Errorf("scripts.extensions must not be empty")
	}
	for i, ext := range c.Scripts.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("scripts.extensions[%d] is empty", i)
		}
	}
	for i, t := range c.Metrics.Extra {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("metrics.extra[%d]: name is required", i)
		}
	}
	return nil
}
