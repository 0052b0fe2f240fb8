package lint

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/source"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

// Analyzer runs registered lint rules against syntax nodes.
//
// An Analyzer holds no per-file state; one value may serve many files, but a
// single Check or Analyze call is synchronous.
type Analyzer struct {
	config *Config
	src    source.Map
	logger *slog.Logger
	rules  []Rule // nil means the global registry
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for recovered rule failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRules pins the analyzer to a fixed rule set instead of the registry.
func WithRules(rules ...Rule) Option {
	return func(a *Analyzer) {
		a.rules = slices.Clone(rules)
		sortByID(a.rules)
	}
}

// NewAnalyzer creates a new analyzer for one source. config may be nil.
func NewAnalyzer(config *Config, src source.Map, opts ...Option) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{
		config: config,
		src:    src,
		logger: discardLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Check dispatches a single node to every enabled rule subscribed to one of
// its kinds, in ascending rule ID order. Expression checks are skipped when
// the node comes from an external macro expansion.
func (a *Analyzer) Check(node syntax.Node) []Diagnostic {
	if node == nil {
		return nil
	}

	var kinds []Kind
	for _, k := range KindsOf(node) {
		if k == KindExpr && a.inExternalMacro(node) {
			continue
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range a.candidates() {
		if !subscribes(rule, kinds) || a.config.IsDisabled(rule.ID()) {
			continue
		}
		a.run(rule, node, &diagnostics)
	}
	return diagnostics
}

// Analyze walks the tree rooted at root depth-first and checks every node.
// Diagnostics are returned in traversal order.
func (a *Analyzer) Analyze(root syntax.Node) []Diagnostic {
	var diagnostics []Diagnostic
	syntax.Walk(root, func(n syntax.Node) bool {
		diagnostics = append(diagnostics, a.Check(n)...)
		return true
	})
	return diagnostics
}

// AnalyzeFile checks a whole file and drops diagnostics silenced by
// `earlylint:allow(...)` comments.
func (a *Analyzer) AnalyzeFile(file *syntax.File) []Diagnostic {
	if file == nil {
		return nil
	}
	diags := a.Analyze(file)
	return ParseSuppressions(file.Comments).Filter(diags)
}

// Rules returns the rules this analyzer would run, disabled ones excluded.
func (a *Analyzer) Rules() []Rule {
	var rules []Rule
	for _, r := range a.candidates() {
		if !a.config.IsDisabled(r.ID()) {
			rules = append(rules, r)
		}
	}
	return rules
}

func (a *Analyzer) candidates() []Rule {
	if a.rules != nil {
		return a.rules
	}
	return All()
}

func (a *Analyzer) inExternalMacro(node syntax.Node) bool {
	if a.src == nil {
		return node.Span().FromExpansion
	}
	return a.src.InExternalMacro(node.Span())
}

// run executes one rule on one node. A panicking rule is logged and its
// partial output for this node is discarded.
func (a *Analyzer) run(rule Rule, node syntax.Node, out *[]Diagnostic) {
	var local []Diagnostic
	pass := &Pass{
		Source:   a.src,
		Options:  a.config.GetRuleOptions(rule.ID()),
		Logger:   a.logger.With("rule", rule.ID()),
		rule:     rule,
		severity: a.config.GetSeverity(rule.ID(), rule.DefaultSeverity()),
		docsURL:  a.docURL(rule.ID()),
		out:      &local,
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("rule panicked",
				"rule", rule.ID(),
				"node", fmt.Sprintf("%T", node),
				"pos", node.Pos().String(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			return
		}
		*out = append(*out, local...)
	}()

	rule.Check(pass, node)
}

func (a *Analyzer) docURL(ruleID string) string {
	if a.config.DocsBaseURL != "" {
		return BuildDocURLWith(a.config.DocsBaseURL, ruleID)
	}
	return BuildDocURL(ruleID)
}

func subscribes(rule Rule, kinds []Kind) bool {
	for _, k := range rule.Kinds() {
		if slices.Contains(kinds, k) {
			return true
		}
	}
	return false
}

// CountBySeverity tallies diagnostics per severity.
func CountBySeverity(diags []Diagnostic) map[core.Severity]int {
	counts := make(map[core.Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}

// AtLeast reports whether any diagnostic is at least as severe as threshold.
// Lower Severity values are more severe.
func AtLeast(diags []Diagnostic, threshold core.Severity) bool {
	for _, d := range diags {
		if d.Severity <= threshold {
			return true
		}
	}
	return false
}
