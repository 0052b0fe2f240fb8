package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
)

var validOutputs = []string{"auto", "text", "markdown", "md", "json", "yaml", "yml"}

// Validate checks that every value in the configuration can be used.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validOutputs, strings.ToLower(c.Output)) {
		errs = append(errs, fmt.Errorf("output: unknown format %q (want one of auto, text, markdown, json, yaml)", c.Output))
	}
	if _, ok := core.ParseSeverity(c.Severity); !ok {
		errs = append(errs, fmt.Errorf("severity: unknown level %q (want error, warning, info or hint)", c.Severity))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}

	ids := make([]string, 0, len(c.Lint.Severity))
	for id := range c.Lint.Severity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := core.ParseSeverity(c.Lint.Severity[id]); !ok {
			errs = append(errs, fmt.Errorf("lint.severity.%s: unknown level %q", id, c.Lint.Severity[id]))
		}
	}

	switch a, ok := core.ParseApplicability(c.Fix.Applicability); {
	case !ok:
		errs = append(errs, fmt.Errorf("fix.applicability: unknown value %q", c.Fix.Applicability))
	case a != core.MachineApplicable && a != core.MaybeIncorrect:
		errs = append(errs, fmt.Errorf("fix.applicability: %s suggestions cannot be applied", a))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// UnknownRules returns the rule IDs referenced by the configuration that
// known does not recognize, sorted.
func (c *Config) UnknownRules(known func(id string) bool) []string {
	seen := make(map[string]bool)
	check := func(id string) {
		id = strings.TrimSpace(id)
		if id != "" && id != "all" && !known(id) {
			seen[id] = true
		}
	}
	for _, id := range c.Lint.Disabled {
		check(id)
	}
	for id := range c.Lint.Severity {
		check(id)
	}
	for id := range c.Lint.Rules {
		check(id)
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
