package literals

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(UnseparatedLiteralSuffix)
}

// UnseparatedLiteralSuffix flags type suffixes glued to the digits, as in `123u32`.
var UnseparatedLiteralSuffix = lint.RuleDef{
	ID:          "unseparated-literal-suffix",
	Name:        "pedantic.unseparated_literal_suffix",
	Category:    core.CategoryPedantic,
	Description: "Numeric literal type suffixes should be separated from the digits by an underscore.",
	Severity:    core.SeverityHint,
	Kinds:       []lint.Kind{lint.KindExpr},
	Check:       checkUnseparatedSuffix,
	Rationale:   "`123832i32` is harder to read than `123_832_i32`: the suffix blends into the digits.",
	BadExample:  "let y = 123832i32;",
	GoodExample: "let y = 123832_i32;",
	Fix:         "Insert `_` before the suffix.",
}

func checkUnseparatedSuffix(pass *lint.Pass, node syntax.Node) {
	l, ok := decompose(pass, node)
	if !ok || l.suffix == "" {
		return
	}
	body := l.body()
	if strings.HasSuffix(body, "_") {
		return
	}

	kind := "integer"
	if l.isFloat() {
		kind = "float"
	}
	pass.Report(lint.Diagnostic{
		Span:    l.lit.Span(),
		Message: fmt.Sprintf("%s type suffix should be separated by an underscore", kind),
		Suggestions: []lint.Suggestion{
			lint.Replace("add an underscore", l.lit.Span(), body+"_"+l.suffix, core.MachineApplicable),
		},
	})
}
