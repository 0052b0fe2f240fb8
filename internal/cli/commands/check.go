package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// ErrLintIssues is returned when diagnostics at or above the severity
// threshold were reported, or a file could not be parsed.
var ErrLintIssues = errors.New("lint issues found")

// watchDebounce is how long the watcher waits for writes to settle.
const watchDebounce = 100 * time.Millisecond

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format  string   // Output format override
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
	Watch   bool     // Re-run when files change
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint"},
		Short:   "Lint source files",
		Long: `Parse source files and report lint diagnostics.

Directories are walked for *.rs files, skipping hidden directories and
target/. Findings can be silenced inline with
"// earlylint:allow(rule-id)" on the offending line or the line above,
or for a whole file with "// earlylint:allow-file(rule-id)".

Output adapts to environment:
  - Terminal: Styled output with source excerpts
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format

The command fails when any diagnostic at or above --severity remains.`,
		Example: `  # Lint the current directory
  earlylint check

  # Lint specific files
  earlylint check src/main.rs src/lib.rs

  # Only report warnings and errors, as JSON
  earlylint check --severity warning --format json

  # Run a single rule
  earlylint check --rule double-negation

  # Re-lint on every change
  earlylint check --watch src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-run")
	cmd.Flags().String("severity", "", "Minimum severity: error, warning, info, hint")
	cmd.Flags().IntP("jobs", "j", 0, "Files analyzed in parallel (0 = number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, r := range lint.All() {
		ids = append(ids, r.ID()+"\t"+r.Description())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	cc.warnUnknownRules(opts.Disable, opts.Rules)

	if opts.Watch {
		return runWatch(cmd.Context(), cc, args, opts)
	}

	doc, err := checkOnce(cmd.Context(), cc, args, opts)
	if err != nil {
		return err
	}
	if err := renderCheck(cc.Renderer, doc); err != nil {
		return err
	}
	if doc.failed() {
		return ErrLintIssues
	}
	return nil
}

// checkResult pairs the serializable output with the loaded sources needed
// for excerpts in text and markdown mode.
type checkResult struct {
	Output  output.CheckOutput
	Reports []fileReport
}

func (c checkResult) failed() bool {
	return c.Output.Summary.TotalIssues > 0 || c.Output.Summary.ParseErrors > 0
}

func checkOnce(ctx context.Context, cc *CommandContext, args []string, opts *CheckOptions) (checkResult, error) {
	files, err := collectFiles(args)
	if err != nil {
		return checkResult{}, err
	}

	lintCfg := cc.Cfg.LintConfig(opts.Disable, opts.Rules)
	reports, err := lintFiles(ctx, files, lintCfg, cc.Cfg.Jobs, cc.Logger)
	if err != nil {
		return checkResult{}, err
	}

	threshold := cc.Cfg.SeverityThreshold()
	res := checkResult{
		Output: output.CheckOutput{
			Summary: output.CheckSummary{FilesChecked: len(files)},
			Files:   make([]output.FileResult, 0),
		},
	}

	for _, rep := range reports {
		rep.Diagnostics = filterBySeverity(rep.Diagnostics, threshold)
		if rep.Err == nil && len(rep.Diagnostics) == 0 {
			continue
		}

		fr := output.FileResult{Path: rep.Path, Diagnostics: make([]output.DiagnosticOutput, 0, len(rep.Diagnostics))}
		if rep.Err != nil {
			fr.ParseError = rep.Err.Error()
			res.Output.Summary.ParseErrors++
		}
		for _, d := range rep.Diagnostics {
			res.Output.Summary.Add(d)
			fr.Diagnostics = append(fr.Diagnostics, output.NewDiagnosticOutput(d))
		}
		if len(rep.Diagnostics) > 0 {
			res.Output.Summary.FilesWithIssues++
		}
		res.Output.Files = append(res.Output.Files, fr)
		res.Reports = append(res.Reports, rep)
	}
	return res, nil
}

func renderCheck(r *output.Renderer, res checkResult) error {
	if ok, err := r.Structured(res.Output); ok {
		return err
	}

	if !res.failed() {
		r.Success(fmt.Sprintf("No lint issues found in %d files", res.Output.Summary.FilesChecked))
		return nil
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, rep := range res.Reports {
		if markdown {
			r.Println(output.FormatHeader(2, "`"+rep.Path+"`"))
			r.Println("")
		}
		if rep.Err != nil {
			r.Error(rep.Err.Error())
		}
		var lines output.LineSource
		if rep.Source != nil {
			lines = rep.Source
		}
		for _, d := range rep.Diagnostics {
			r.RenderDiagnostic(rep.Path, lines, d)
		}
		if markdown {
			r.Println("")
		}
	}
	r.RenderSummary(res.Output.Summary)
	return nil
}

// runWatch checks once, then again after every settled change to a
// source file until ctx is cancelled.
func runWatch(ctx context.Context, cc *CommandContext, args []string, opts *CheckOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if err := watchTree(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	run := func() {
		res, err := checkOnce(ctx, cc, args, opts)
		if err != nil {
			cc.Renderer.Error(err.Error())
			return
		}
		if err := renderCheck(cc.Renderer, res); err != nil {
			cc.Logger.Error("render failed", "error", err)
		}
	}

	run()
	cc.Logger.Info("watching for changes", "paths", roots)
	watchLoop(ctx, watcher, watchDebounce, cc.Logger, func(changed string) {
		cc.Logger.Info("change detected", "path", changed)
		run()
	})
	return nil
}

// watchTree adds root, or root's directory when it is a file, and every
// non-skipped subdirectory to the watcher.
func watchTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// watchLoop calls run once writes to source files have been quiet for
// debounce. New directories are added to the watcher as they appear.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration, logger *slog.Logger, run func(changed string)) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(w, event.Name)
					continue
				}
			}
			if filepath.Ext(event.Name) != SourceExt {
				continue
			}

			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			run(changed)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
