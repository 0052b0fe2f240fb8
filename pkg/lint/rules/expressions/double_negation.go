package expressions

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(DoubleNegation)
}

// DoubleNegation flags `--x`, which is not a decrement.
var DoubleNegation = lint.RuleDef{
	ID:          "double-negation",
	Name:        "style.double_negation",
	Category:    core.CategoryStyle,
	Description: "Arithmetic negation applied twice is a no-op that looks like a decrement.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindExpr},
	Check:       checkDoubleNegation,
	BadExample:  "let y = --x;",
	GoodExample: "let y = x;",
}

func checkDoubleNegation(pass *lint.Pass, node syntax.Node) {
	outer, ok := node.(*syntax.Unary)
	if !ok || outer.Op != syntax.UnNeg {
		return
	}
	if inner, ok := syntax.StripParens(outer.X).(*syntax.Unary); ok && inner.Op == syntax.UnNeg {
		pass.Reportf(outer.Span(), "`--x` could be misinterpreted as pre-decrement by C programmers, is usually a no-op")
	}
}
