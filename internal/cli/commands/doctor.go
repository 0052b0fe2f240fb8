package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// maxCheckDetails caps the locations kept per health check.
const maxCheckDetails = 10

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format override
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [paths...]",
		Short: "Summarize the lint health of a crate",
		Long: `Run every enabled rule over the given paths and report one health
check per rule, a health score (0-100) and recommendations.

Unlike check, doctor ignores --severity and never fails on findings.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # Health report for the current crate
  earlylint doctor

  # Output as JSON
  earlylint doctor src --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// DoctorOutput is the structured output of the doctor command.
type DoctorOutput struct {
	Summary         CrateSummary  `json:"summary" yaml:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks" yaml:"health_checks"`
	Score           int           `json:"score" yaml:"score"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
	IssueCount      int           `json:"issue_count" yaml:"issue_count"`
}

// CrateSummary contains source-level statistics.
type CrateSummary struct {
	Files        int `json:"files" yaml:"files"`
	Lines        int `json:"lines" yaml:"lines"`
	ParseErrors  int `json:"parse_errors" yaml:"parse_errors"`
	RulesEnabled int `json:"rules_enabled" yaml:"rules_enabled"`
	Fixable      int `json:"fixable" yaml:"fixable"`
}

// HealthCheck is the result of one rule across all files.
type HealthCheck struct {
	RuleID     string   `json:"rule_id" yaml:"rule_id"`
	Name       string   `json:"name" yaml:"name"`
	Group      string   `json:"group" yaml:"group"`
	Status     string   `json:"status" yaml:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count" yaml:"issue_count"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string, opts *DoctorOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	cc.warnUnknownRules()
	r := cc.Renderer

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Warning("No source files found")
		return nil
	}

	lintCfg := cc.Cfg.LintConfig(nil, nil)
	reports, err := lintFiles(cmd.Context(), files, lintCfg, cc.Cfg.Jobs, cc.Logger)
	if err != nil {
		return err
	}

	out := buildDoctorOutput(reports, lintCfg)

	if ok, err := r.Structured(out); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		renderDoctorMarkdown(r, out)
		return nil
	}
	renderDoctorText(r, out)
	return nil
}

// buildDoctorOutput folds reports into one health check per enabled rule,
// ordered by category then ID.
func buildDoctorOutput(reports []fileReport, cfg *lint.Config) *DoctorOutput {
	out := &DoctorOutput{Summary: CrateSummary{Files: len(reports)}}

	byRule := make(map[string]*HealthCheck)
	var infos []core.RuleInfo
	for _, rule := range lint.All() {
		if cfg.IsDisabled(rule.ID()) {
			continue
		}
		info := lint.GetRuleInfo(rule)
		infos = append(infos, info)
		byRule[info.ID] = &HealthCheck{
			RuleID: info.ID,
			Name:   info.Name,
			Group:  string(info.Category),
			Status: "pass",
		}
	}
	out.Summary.RulesEnabled = len(infos)

	for _, rep := range reports {
		if rep.Source != nil {
			out.Summary.Lines += rep.Source.LineCount()
		}
		if rep.Err != nil {
			out.Summary.ParseErrors++
		}
		for _, d := range rep.Diagnostics {
			check, ok := byRule[d.RuleID]
			if !ok {
				continue
			}
			check.IssueCount++
			out.IssueCount++
			if d.AutoFixable {
				out.Summary.Fixable++
			}
			switch {
			case d.Severity == core.SeverityError:
				check.Status = "error"
			case check.Status == "pass":
				check.Status = "warn"
			}
			if len(check.Details) < maxCheckDetails {
				check.Details = append(check.Details, fmt.Sprintf("%s:%d:%d %s", rep.Path, d.Pos.Line, d.Pos.Column, d.Message))
			}
		}
	}

	order := core.Categories()
	slices.SortStableFunc(infos, func(a, b core.RuleInfo) int {
		if d := slices.Index(order, a.Category) - slices.Index(order, b.Category); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})
	for _, info := range infos {
		out.HealthChecks = append(out.HealthChecks, *byRule[info.ID])
	}

	out.Score = calculateHealthScore(out.HealthChecks, out.Summary.Files)
	out.Recommendations = generateRecommendations(out.HealthChecks)
	return out
}

// calculateHealthScore computes a health score from 0-100. Each issue
// costs points, errors double. Larger crates pay less per issue.
func calculateHealthScore(checks []HealthCheck, fileCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if fileCount > 10 {
		basePenalty = 3.0
	}
	if fileCount > 50 {
		basePenalty = 2.0
	}
	if fileCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations returns the fix advice of failing rules, most
// frequent first, at most five.
func generateRecommendations(checks []HealthCheck) []string {
	failing := slices.DeleteFunc(slices.Clone(checks), func(c HealthCheck) bool { return c.IssueCount == 0 })
	slices.SortStableFunc(failing, func(a, b HealthCheck) int { return b.IssueCount - a.IssueCount })

	var recommendations []string
	seen := make(map[string]bool)
	for _, check := range failing {
		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

// getRecommendation returns the documented fix for a rule, falling back
// to its description.
func getRecommendation(ruleID string) string {
	rule, ok := lint.ByID(ruleID)
	if !ok {
		return ""
	}
	advice := rule.Fix()
	if advice == "" {
		advice = rule.Description()
	}
	return fmt.Sprintf("%s: %s", ruleID, advice)
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("earlylint Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Crate Summary"))
	r.Printf("   Files: %d | Lines: %d | Parse errors: %d\n", out.Summary.Files, out.Summary.Lines, out.Summary.ParseErrors)
	r.Printf("   Rules enabled: %d | Fixable: %d\n", out.Summary.RulesEnabled, out.Summary.Fixable)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + output.TitleCase(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s", icon, check.RuleID)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", check.IssueCount-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "earlylint Health Report"))
	r.Println("")

	r.Println(output.FormatHeader(2, "Crate Summary"))
	r.Println("")
	r.Printf("- **Files**: %d\n", out.Summary.Files)
	r.Printf("- **Lines**: %d\n", out.Summary.Lines)
	r.Printf("- **Parse errors**: %d\n", out.Summary.ParseErrors)
	r.Printf("- **Rules enabled**: %d\n", out.Summary.RulesEnabled)
	r.Printf("- **Fixable**: %d\n", out.Summary.Fixable)
	r.Println("")

	r.Println(output.FormatHeader(2, "Health Checks"))
	r.Println("")

	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(output.FormatHeader(3, output.TitleCase(currentGroup)))
			r.Println("")
		}

		r.Printf("- **[%s]** `%s`", strings.ToUpper(check.Status), check.RuleID)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Health Score"))
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(output.FormatHeader(2, "Recommendations"))
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}
