package literals

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(ZeroPrefixedLiteral)
}

// ZeroPrefixedLiteral flags decimal literals written with a leading zero,
// which C programmers read as octal.
var ZeroPrefixedLiteral = lint.RuleDef{
	ID:          "zero-prefixed-literal",
	Name:        "complexity.zero_prefixed_literal",
	Category:    core.CategoryComplexity,
	Description: "Decimal integer literals should not start with `0`.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindExpr},
	Check:       checkZeroPrefixed,
	Rationale: "In C, `0123` is octal (83). Here it is the decimal 123, " +
		"so the leading zero is either noise or a bug.",
	BadExample:  "let x = 0123;",
	GoodExample: "let x = 123;\nlet y = 0o123;",
	Fix:         "Remove the leading zeros, or use the `0o` prefix for an octal constant.",
}

func checkZeroPrefixed(pass *lint.Pass, node syntax.Node) {
	l, ok := decompose(pass, node)
	if !ok || l.lit.Kind != syntax.LitInt || l.prefix != "" {
		return
	}
	if l.lit.Value == 0 || !strings.HasPrefix(l.text, "0") {
		return
	}

	trimmed := strings.TrimLeft(l.text, "0_")
	span := l.lit.Span()
	pass.Report(lint.Diagnostic{
		Span:    span,
		Message: "this is a decimal constant",
		Suggestions: []lint.Suggestion{
			lint.Replace("if you mean to use a decimal constant, remove the `0` to avoid confusion",
				span, trimmed, core.MaybeIncorrect),
			lint.Replace("if you mean to use an octal constant, use `0o`",
				span, "0o"+trimmed, core.MaybeIncorrect),
		},
	})
}
