package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/fix"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format  string
	Disable []string
	Rules   []string
	Write   bool // Rewrite files instead of printing a diff
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply suggested rewrites",
		Long: `Apply the suggestions attached to lint diagnostics.

By default only machine-applicable suggestions are used and the result is
printed as a unified diff. Pass --write to rewrite the files in place and
--unsafe to also apply suggestions that may change meaning. Suggestions
containing placeholders are never applied.

When two suggestions overlap, the one starting first wins and the other is
reported as skipped; run fix again to pick it up.`,
		Example: `  # Preview fixes for the current directory
  earlylint fix

  # Rewrite files
  earlylint fix --write src/

  # Include maybe-incorrect suggestions
  earlylint fix --unsafe --write`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Fix only specific rules")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Write fixes back to the files")
	cmd.Flags().Bool("unsafe", false, "Also apply maybe-incorrect suggestions")
	cmd.Flags().String("severity", "", "Minimum severity to fix: error, warning, info, hint")
	cmd.Flags().IntP("jobs", "j", 0, "Files analyzed in parallel (0 = number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	cc.warnUnknownRules(opts.Disable, opts.Rules)
	r := cc.Renderer

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	lintCfg := cc.Cfg.LintConfig(opts.Disable, opts.Rules)
	reports, err := lintFiles(cmd.Context(), files, lintCfg, cc.Cfg.Jobs, cc.Logger)
	if err != nil {
		return err
	}

	fixOpts := cc.Cfg.FixOptions()
	threshold := cc.Cfg.SeverityThreshold()
	doc := output.FixOutput{Files: make([]output.FixFileResult, 0), Written: opts.Write}
	failed := 0

	for _, rep := range reports {
		if rep.Err != nil {
			failed++
			r.Error(rep.Err.Error())
			continue
		}

		before := rep.Source.Text
		res, err := fix.Apply(before, filterBySeverity(rep.Diagnostics, threshold), fixOpts)
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			return fmt.Errorf("fix %s: %w", rep.Path, err)
		}

		fr := fixFileResult(rep.Path, res)
		doc.Applied += len(res.Applied)
		doc.Skipped += len(res.Skipped)
		if !res.Changed() && len(res.Skipped) == 0 {
			continue
		}

		if res.Changed() {
			if opts.Write {
				content := res.Text
				if rep.Source.HadBOM {
					content = "\uFEFF" + content
				}
				if err := fix.WriteFile(rep.Path, content); err != nil {
					return err
				}
				cc.Logger.Debug("wrote fixes", "path", rep.Path, "applied", len(res.Applied))
			} else {
				fr.Diff = fix.Diff(rep.Path, before, res.Text)
			}
		}
		doc.Files = append(doc.Files, fr)
	}

	if err := renderFix(r, doc); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d files could not be parsed: %w", failed, ErrLintIssues)
	}
	return nil
}

func fixFileResult(path string, res *fix.Result) output.FixFileResult {
	fr := output.FixFileResult{Path: path, Applied: make([]output.FixEntry, 0, len(res.Applied))}
	for _, a := range res.Applied {
		fr.Applied = append(fr.Applied, output.FixEntry{
			RuleID:        a.RuleID,
			Label:         a.Label,
			Applicability: a.Applicability.String(),
			Line:          a.Pos.Line,
			Column:        a.Pos.Column,
		})
	}
	for _, s := range res.Skipped {
		fr.Skipped = append(fr.Skipped, output.FixSkipped{
			RuleID: s.RuleID,
			Label:  s.Label,
			Line:   s.Pos.Line,
			Reason: s.Reason,
		})
	}
	return fr
}

func renderFix(r *output.Renderer, doc output.FixOutput) error {
	if ok, err := r.Structured(doc); ok {
		return err
	}
	if doc.Applied == 0 && doc.Skipped == 0 {
		r.Success("Nothing to fix")
		return nil
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()

	for _, f := range doc.Files {
		switch {
		case f.Diff != "" && markdown:
			r.Println(output.FormatHeader(2, "`"+f.Path+"`"))
			r.Println("")
			r.Println(output.FormatCodeBlock("diff", f.Diff))
			r.Println("")
		case f.Diff != "":
			r.Printf("%s", f.Diff)
		case len(f.Applied) > 0:
			r.Printf("%s %s\n", styles.Success.Render(fmt.Sprintf("fixed %d", len(f.Applied))), styles.FilePath.Render(f.Path))
		}
		for _, s := range f.Skipped {
			r.Printf("%s %s:%d [%s] %s\n", styles.Muted.Render("skipped"), f.Path, s.Line, s.RuleID, s.Reason)
		}
	}

	verb := "Would apply"
	if doc.Written {
		verb = "Applied"
	}
	summary := fmt.Sprintf("%s %d fixes, skipped %d", verb, doc.Applied, doc.Skipped)
	if markdown {
		r.Println("**" + summary + "**")
		return nil
	}
	r.Println(styles.Bold.Render(summary))
	return nil
}
