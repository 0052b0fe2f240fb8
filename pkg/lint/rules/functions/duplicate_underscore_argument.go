package functions

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

func init() {
	lint.Register(DuplicateUnderscoreArgument)
}

// DuplicateUnderscoreArgument flags parameter lists holding both `x` and `_x`.
var DuplicateUnderscoreArgument = lint.RuleDef{
	ID:          "duplicate-underscore-argument",
	Name:        "style.duplicate_underscore_argument",
	Category:    core.CategoryStyle,
	Description: "Parameters should not differ only by a leading underscore.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindFn},
	Check:       checkDuplicateUnderscore,
	Rationale:   "`a` and `_a` side by side are easy to confuse in the body and in generated documentation.",
	BadExample:  "fn foo(a: i32, _a: i32) {}",
	GoodExample: "fn bar(a: i32, _b: i32) {}",
}

func checkDuplicateUnderscore(pass *lint.Pass, node syntax.Node) {
	var params []syntax.Pat
	switch n := node.(type) {
	case *syntax.FnDecl:
		for _, p := range n.Params {
			params = append(params, p.Pat)
		}
	case *syntax.Closure:
		for _, p := range n.Params {
			params = append(params, p.Pat)
		}
	default:
		return
	}

	// Names are registered in parameter order, so `_a` only matches an
	// earlier `a`.
	seen := make(map[string]token.Span)
	for _, p := range params {
		id, ok := ast.SimpleBinding(p)
		if !ok {
			continue
		}
		base, underscored := strings.CutPrefix(id.Name, "_")
		if !underscored {
			seen[id.Name] = id.Span()
			continue
		}
		if span, ok := seen[base]; ok {
			pass.Reportf(span,
				"`%s` already exists, having another argument having almost the same name makes code comprehension and documentation more difficult",
				base)
		}
	}
}
