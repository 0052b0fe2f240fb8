package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter configuration file",
		Long: `Write a .earlylint.yaml with the default settings and a commented list of
every rule, its default severity and its options.`,
		Example: `  # Initialize in current directory
  earlylint init

  # Initialize another directory
  earlylint init path/to/crate

  # Overwrite an existing config
  earlylint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cc := NewCommandContext(cmd, "")
	r := cc.Renderer

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var buf bytes.Buffer
	if err := renderConfig(&buf); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	cc.Logger.Debug("wrote config", "path", configPath)

	r.Success("Created " + configPath)
	if !r.IsStructured() {
		r.Println("")
		r.Println("Next steps:")
		r.Println("  1. Adjust severities and disabled rules in " + config.ConfigFileNames[0])
		r.Println("  2. Run 'earlylint check' to lint the crate")
		r.Println("  3. Run 'earlylint fix --write' to apply safe suggestions")
	}
	return nil
}
