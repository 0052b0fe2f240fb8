// Package config provides configuration management for the earlylint CLI.
//
// Values come from, lowest to highest precedence: built-in defaults, a YAML
// file (.earlylint.yaml or earlylint.yaml, searched upward from the working
// directory), EARLYLINT_* environment variables and command-line flags.
package config

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/fix"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose  bool       `koanf:"verbose"`
	Output   string     `koanf:"output"`
	Severity string     `koanf:"severity"` // Minimum severity reported and failing the run
	Jobs     int        `koanf:"jobs"`     // Parallel file workers, 0 means GOMAXPROCS
	DocsURL  string     `koanf:"docs_url"`
	Lint     LintConfig `koanf:"lint"`
	Fix      FixConfig  `koanf:"fix"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-"`
}

// LintConfig configures rule selection.
//
//	lint:
//	  disabled: [unseparated-literal-suffix]
//	  severity:
//	    double-negation: error
//	  rules:
//	    redundant-closure-call:
//	      stop_at_nested_closures: true
type LintConfig struct {
	Disabled []string                  `koanf:"disabled"`
	Severity map[string]string         `koanf:"severity"`
	Rules    map[string]map[string]any `koanf:"rules"`
}

// FixConfig configures which suggestions `earlylint fix` applies.
type FixConfig struct {
	// Applicability is the least trustworthy level applied:
	// machine-applicable or maybe-incorrect.
	Applicability string `koanf:"applicability"`
}

// Default configuration values.
const (
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultSeverity      = "hint"
	DefaultJobs          = 0
	DefaultApplicability = "machine-applicable"
)

// ConfigFileNames are searched, in order, in every directory walked upward.
var ConfigFileNames = []string{".earlylint.yaml", ".earlylint.yml", "earlylint.yaml", "earlylint.yml"}

// Defaults returns a configuration holding only default values.
func Defaults() *Config {
	return &Config{
		Output:   DefaultOutput,
		Severity: DefaultSeverity,
		Jobs:     DefaultJobs,
		Fix:      FixConfig{Applicability: DefaultApplicability},
	}
}

// SeverityThreshold returns the parsed severity threshold.
func (c *Config) SeverityThreshold() core.Severity {
	if s, ok := core.ParseSeverity(c.Severity); ok {
		return s
	}
	return core.SeverityHint
}

// LintConfig builds the engine configuration. disable and only come from
// command flags and take precedence over the file.
func (c *Config) LintConfig(disable, only []string) *lint.Config {
	lc := lint.NewConfig()
	lc.DocsBaseURL = c.DocsURL

	for _, id := range c.Lint.Disabled {
		lc.Disable(strings.TrimSpace(id))
	}
	for id, sev := range c.Lint.Severity {
		if s, ok := core.ParseSeverity(sev); ok {
			lc.SetSeverity(id, s)
		}
	}
	for id, opts := range c.Lint.Rules {
		lc.SetRuleOptions(id, opts)
	}

	for _, id := range disable {
		lc.Disable(strings.TrimSpace(id))
	}
	if len(only) > 0 {
		ids := make([]string, 0, len(only))
		for _, id := range only {
			ids = append(ids, strings.TrimSpace(id))
		}
		lc.Only(ids...)
	}
	return lc
}

// FixOptions builds the fix options from fix.applicability.
func (c *Config) FixOptions() fix.Options {
	if a, ok := core.ParseApplicability(c.Fix.Applicability); ok && a == core.MaybeIncorrect {
		return fix.IncludeUnsafe()
	}
	return fix.SafeOnly()
}
