package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context for cmd. A non-empty format
// overrides the configured output mode, as --format does on every command.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.Output)
	if format != "" {
		mode = output.Mode(format)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// warnUnknownRules logs rule IDs in the config or flags that match no
// registered rule. They are ignored, not fatal.
func (c *CommandContext) warnUnknownRules(extra ...[]string) {
	known := func(id string) bool {
		_, ok := lint.ByID(id)
		return ok
	}
	for _, id := range c.Cfg.UnknownRules(known) {
		c.Logger.Warn("unknown rule in configuration", "rule", id)
	}
	for _, ids := range extra {
		for _, id := range ids {
			if id != "all" && !known(id) {
				c.Logger.Warn("unknown rule on command line", "rule", id)
			}
		}
	}
}
