package patterns

import (
	"fmt"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(RedundantPattern)
}

// RedundantPattern flags `name @ _` bindings.
var RedundantPattern = lint.RuleDef{
	ID:          "redundant-pattern",
	Name:        "style.redundant_pattern",
	Category:    core.CategoryStyle,
	Description: "A binding with a `@ _` subpattern is the same as the bare binding.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindPat},
	Check:       checkRedundantPattern,
	BadExample:  "match v { Some(y @ _) => y, None => 0 }",
	GoodExample: "match v { Some(y) => y, None => 0 }",
	Fix:         "Drop the `@ _` part.",
}

func checkRedundantPattern(pass *lint.Pass, node syntax.Node) {
	pat, ok := node.(*syntax.IdentPat)
	if !ok || pat.Sub == nil || !ast.IsWildcard(pat.Sub) {
		return
	}

	binding := pat.Name
	switch {
	case pat.ByRef && pat.Mutable:
		binding = "ref mut " + binding
	case pat.ByRef:
		binding = "ref " + binding
	case pat.Mutable:
		binding = "mut " + binding
	}

	pass.Report(lint.Diagnostic{
		Span:    pat.Span(),
		Message: fmt.Sprintf("the `%s @ _` pattern can be written as just `%s`", pat.Name, pat.Name),
		Suggestions: []lint.Suggestion{
			lint.Replace("try", pat.Span(), binding, core.MachineApplicable),
		},
	})
}
