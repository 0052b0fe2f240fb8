package literals

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(MixedCaseHexLiteral)
}

// MixedCaseHexLiteral flags hex literals mixing `a-f` and `A-F`.
var MixedCaseHexLiteral = lint.RuleDef{
	ID:          "mixed-case-hex-literal",
	Name:        "style.mixed_case_hex_literal",
	Category:    core.CategoryStyle,
	Description: "Hexadecimal literals should use one letter case for their digits.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindExpr},
	Check:       checkMixedCaseHex,
	Rationale:   "Mixed casing makes hex constants hard to read and compare.",
	BadExample:  "let y = 0x1a9BAcD;",
	GoodExample: "let y = 0x1A9BACD;",
}

func checkMixedCaseHex(pass *lint.Pass, node syntax.Node) {
	l, ok := decompose(pass, node)
	if !ok || l.prefix != "0x" {
		return
	}

	var lower, upper bool
	for i := 0; i < len(l.digits); i++ {
		switch c := l.digits[i]; {
		case c >= 'a' && c <= 'f':
			lower = true
		case c >= 'A' && c <= 'F':
			upper = true
		}
		if lower && upper {
			pass.Reportf(l.lit.Span(), "inconsistent casing in hexadecimal literal")
			return
		}
	}
}
