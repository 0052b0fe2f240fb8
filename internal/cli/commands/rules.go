package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	Verbose  bool   // Show full documentation
	Format   string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by category (style, complexity, pedantic).
Use --verbose to see full documentation including rationale.

Output adapts to environment:
  - Terminal: Table with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  earlylint rules

  # Show details for a specific rule
  earlylint rules double-negation

  # List pedantic rules only
  earlylint rules --category pedantic

  # Output as YAML
  earlylint rules --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeRuleIDs(nil, nil, "")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category: style, complexity, pedantic")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// RulesOutput is the structured output for rules listing.
type RulesOutput struct {
	Rules []core.RuleInfo `json:"rules" yaml:"rules"`
	Count RulesCount      `json:"count" yaml:"count"`
}

// RulesCount counts rules per category.
type RulesCount struct {
	Style      int `json:"style" yaml:"style"`
	Complexity int `json:"complexity" yaml:"complexity"`
	Pedantic   int `json:"pedantic" yaml:"pedantic"`
	Total      int `json:"total" yaml:"total"`
}

// RuleDetail is the structured output for a single rule.
type RuleDetail struct {
	core.RuleInfo    `yaml:",inline"`
	DocumentationURL string `json:"documentation_url" yaml:"documentation_url"`
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	r := cc.Renderer

	rules := lint.AllRules()
	if opts.Category != "" {
		cat, ok := core.ParseCategory(opts.Category)
		if !ok {
			return fmt.Errorf("unknown category %q (want style, complexity or pedantic)", opts.Category)
		}
		rules = slices.DeleteFunc(rules, func(ri core.RuleInfo) bool { return ri.Category != cat })
	}

	// Sort by category display order, then ID
	order := core.Categories()
	slices.SortStableFunc(rules, func(a, b core.RuleInfo) int {
		if d := slices.Index(order, a.Category) - slices.Index(order, b.Category); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})

	out := RulesOutput{Rules: rules}
	for _, rule := range rules {
		switch rule.Category {
		case core.CategoryStyle:
			out.Count.Style++
		case core.CategoryComplexity:
			out.Count.Complexity++
		case core.CategoryPedantic:
			out.Count.Pedantic++
		}
	}
	out.Count.Total = len(rules)

	if ok, err := r.Structured(out); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		listRulesMarkdown(r, rules, opts.Verbose)
		return nil
	}
	listRulesText(r, rules, opts.Verbose)
	return nil
}

// listRulesText outputs rules as a table.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	header := table.Row{"Rule", "Category", "Severity", "Checks"}
	if verbose {
		header = append(header, "Description")
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 5, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		})
	}
	t.AppendHeader(header)

	for _, rule := range rules {
		row := table.Row{
			rule.ID,
			output.TitleCase(string(rule.Category)),
			styles.Severity(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
			strings.Join(rule.Kinds, ", "),
		}
		if verbose {
			row = append(row, rule.Description)
		}
		t.AppendRow(row)
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'earlylint rules <rule-id>' for detailed documentation"))
	r.Println("")
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")

	var current core.Category
	for _, rule := range rules {
		if rule.Category != current {
			if current != "" {
				r.Println("")
			}
			current = rule.Category
			r.Println(output.FormatHeader(2, output.TitleCase(string(current))))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Description, rule.DefaultSeverity.String())
		if verbose && rule.Rationale != "" {
			r.Println("  > " + strings.ReplaceAll(rule.Rationale, "\n", " "))
		}
	}
	r.Println("")
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	r := cc.Renderer

	rule, ok := lint.ByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	detail := RuleDetail{
		RuleInfo:         lint.GetRuleInfo(rule),
		DocumentationURL: docURL(cc.Cfg.DocsURL, ruleID),
	}

	if ok, err := r.Structured(detail); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		showRuleMarkdown(r, detail)
		return nil
	}
	showRuleText(r, detail)
	return nil
}

func docURL(base, ruleID string) string {
	if base == "" {
		return lint.BuildDocURL(ruleID)
	}
	return lint.BuildDocURLWith(base, ruleID)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule RuleDetail) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Category"), output.TitleCase(string(rule.Category)))
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), styles.Severity(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Checks"), strings.Join(rule.Kinds, ", "))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}

	r.Println(styles.Muted.Render("  " + rule.DocumentationURL))
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule RuleDetail) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("**Category:** %s | **Severity:** `%s` | **Checks:** %s\n\n",
		output.TitleCase(string(rule.Category)), rule.DefaultSeverity.String(), strings.Join(rule.Kinds, ", "))
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(output.FormatHeader(2, "Bad Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("rust", rule.BadExample))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(output.FormatHeader(2, "Good Example"))
		r.Println("")
		r.Println(output.FormatCodeBlock("rust", rule.GoodExample))
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(output.FormatHeader(2, "How to Fix"))
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(output.FormatHeader(2, "Configuration"))
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}

	r.Printf("[Documentation](%s)\n", rule.DocumentationURL)
}
