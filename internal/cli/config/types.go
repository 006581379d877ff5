// Package config loads CLI configuration from file, environment
// variables, and flags via koanf.
package config

import "github.com/leapstack-labs/ddlint/pkg/lint"

// Default configuration values.
const (
	DefaultOutput   = "auto"
	DefaultSeverity = "info"
)

// Config is the resolved CLI configuration.
type Config struct {
	// OutputFormat selects the rendering mode: auto, text, markdown,
	// json, html, or plain.
	OutputFormat string `koanf:"output"`

	// Verbose enables extra diagnostic output.
	Verbose bool `koanf:"verbose"`

	// Severity is the minimum severity reported: error, warning, or info.
	Severity string `koanf:"severity"`

	// Lint holds analyzer configuration.
	Lint *LintConfig `koanf:"lint"`
}

// LintConfig configures the analyzer: disabled rules, severity
// overrides, and per-rule options.
type LintConfig struct {
	// Disabled lists rule IDs to skip.
	Disabled []string `koanf:"disabled"`

	// Severity maps rule IDs to overriding severity names.
	Severity map[string]string `koanf:"severity"`

	// Rules holds per-rule options keyed by rule ID.
	Rules map[string]map[string]any `koanf:"rules"`
}

// ToLintConfig converts the file/env representation into the analyzer's
// runtime configuration. Unknown severity names are ignored.
func (lc *LintConfig) ToLintConfig() *lint.Config {
	cfg := lint.NewConfig()
	if lc == nil {
		return cfg
	}
	for _, id := range lc.Disabled {
		cfg.Disable(id)
	}
	for id, name := range lc.Severity {
		if sev, ok := lint.ParseSeverity(name); ok {
			cfg.SetSeverity(id, sev)
		}
	}
	for id, opts := range lc.Rules {
		cfg.SetRuleOptions(id, opts)
	}
	return cfg
}
