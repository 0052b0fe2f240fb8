package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/source"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// =============================================================================
// Rule Interface
// =============================================================================

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "redundant-pattern"
	ID() string

	// Name returns the human-readable name, e.g., "style.redundant_pattern"
	Name() string

	// Category returns the informational category: style, complexity or pedantic
	Category() core.Category

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Kinds returns the node kinds the rule inspects
	Kinds() []Kind

	// Check inspects a node and reports findings through the pass.
	Check(pass *Pass, node syntax.Node)

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	kinds := make([]string, 0, len(r.Kinds()))
	for _, k := range r.Kinds() {
		kinds = append(kinds, string(k))
	}
	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Category:        r.Category(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Kinds:           kinds,
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Category() core.Category        { return w.def.Category }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) Kinds() []Kind                  { return w.def.Kinds }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Check(pass *Pass, node syntax.Node) {
	if w.def.Check != nil {
		w.def.Check(pass, node)
	}
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}

// =============================================================================
// Pass
// =============================================================================

// Pass carries everything one rule invocation may use. A Pass is created per
// rule and per node; rules must not retain it.
type Pass struct {
	// Source answers snippet and macro-expansion queries for spans.
	Source source.Map
	// Options holds the rule's configured options (may be nil).
	Options map[string]any
	// Logger is never nil.
	Logger *slog.Logger

	rule     Rule
	severity core.Severity
	docsURL  string
	out      *[]Diagnostic
}

// NewPass creates a pass for rule that appends reports to out.
// It is exported for hosts and tests that drive a rule directly.
func NewPass(rule Rule, src source.Map, opts map[string]any, out *[]Diagnostic) *Pass {
	return &Pass{
		Source:   src,
		Options:  opts,
		Logger:   discardLogger,
		rule:     rule,
		severity: rule.DefaultSeverity(),
		docsURL:  BuildDocURL(rule.ID()),
		out:      out,
	}
}

// Severity returns the effective severity of the running rule.
func (p *Pass) Severity() core.Severity {
	return p.severity
}

// Snippet returns the source text for span. ok is false when the text is not
// recoverable (macro-expanded or out of range).
func (p *Pass) Snippet(span token.Span) (string, bool) {
	if p.Source == nil {
		return "", false
	}
	return p.Source.Snippet(span)
}

// InExternalMacro reports whether span was produced by a macro expansion.
func (p *Pass) InExternalMacro(span token.Span) bool {
	if p.Source == nil {
		return span.FromExpansion
	}
	return p.Source.InExternalMacro(span)
}

// Report records a diagnostic. Rule identity, category, severity, positions
// and remediation metadata are filled in from the running rule.
func (p *Pass) Report(d Diagnostic) {
	d.RuleID = p.rule.ID()
	d.Category = p.rule.Category()
	d.Severity = p.severity
	d.Pos = d.Span.Start
	d.EndPos = d.Span.End
	d.DocumentationURL = p.docsURL
	d.ImpactScore = ImpactFor(p.severity).Int()
	for _, s := range d.Suggestions {
		if s.Applicability == core.MachineApplicable {
			d.AutoFixable = true
			break
		}
	}
	*p.out = append(*p.out, d)
}

// Reportf records a diagnostic with only a span and a formatted message.
func (p *Pass) Reportf(span token.Span, format string, args ...any) {
	p.Report(Diagnostic{Span: span, Message: fmt.Sprintf(format, args...)})
}
