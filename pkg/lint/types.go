package lint

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// =============================================================================
// Node Kinds
// =============================================================================

// Kind names a class of syntax node a rule subscribes to.
type Kind string

// Node kinds dispatched by the Analyzer.
const (
	// KindExpr is any expression node.
	KindExpr Kind = "expr"
	// KindPat is any pattern node.
	KindPat Kind = "pat"
	// KindFn is a function or closure signature (*syntax.FnDecl, *syntax.Closure).
	KindFn Kind = "fn"
	// KindGenerics is a generic parameter list (*syntax.Generics).
	KindGenerics Kind = "generics"
	// KindBlock is a statement block (*syntax.Block).
	KindBlock Kind = "block"
)

// Kinds returns all node kinds in dispatch order.
func Kinds() []Kind {
	return []Kind{KindExpr, KindPat, KindFn, KindGenerics, KindBlock}
}

// KindsOf returns the kinds a node is dispatched under. A closure is both an
// expression and a function signature.
func KindsOf(node syntax.Node) []Kind {
	switch node.(type) {
	case *syntax.Closure:
		return []Kind{KindExpr, KindFn}
	case *syntax.FnDecl:
		return []Kind{KindFn}
	case *syntax.Generics:
		return []Kind{KindGenerics}
	case *syntax.Block:
		return []Kind{KindBlock}
	case syntax.Expr:
		return []Kind{KindExpr}
	case syntax.Pat:
		return []Kind{KindPat}
	}
	return nil
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Pass and the node.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "double-negation"
	Name        string        // Human-readable name, e.g., "style.double_negation"
	Category    core.Category // style, complexity or pedantic
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Kinds       []Kind        // Node kinds the rule inspects
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects one node and reports findings through the pass.
// The node is one of the kinds the rule subscribed to; rules type-switch on it
// and ignore shapes they do not handle.
type CheckFunc func(pass *Pass, node syntax.Node)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Category core.Category
	Severity core.Severity
	Message  string
	Span     token.Span
	Pos      token.Position
	EndPos   token.Position // End of the problematic range
	Help     string         // Optional: free-form help line

	// Alternative rewrites for the span, in preference order.
	Suggestions []Suggestion

	// Remediation metadata
	DocumentationURL string // URL to rule documentation
	ImpactScore      int    // 0-100
	AutoFixable      bool   // true if a suggestion is MachineApplicable
}

// Suggestion is one proposed rewrite.
type Suggestion struct {
	Label         string
	Applicability core.Applicability
	Edits         []TextEdit
}

// TextEdit replaces the text covered by Span with NewText.
type TextEdit struct {
	Span    token.Span
	NewText string
}

// Replace builds a single-edit suggestion.
func Replace(label string, span token.Span, newText string, app core.Applicability) Suggestion {
	return Suggestion{
		Label:         label,
		Applicability: app,
		Edits:         []TextEdit{{Span: span, NewText: newText}},
	}
}
