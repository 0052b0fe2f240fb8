package closures_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/closures"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/internal/ruletest"
)

const (
	inlineMsg = "Try not to call a closure in the expression where it is declared."
	windowMsg = "Closure called just once immediately after it was declared"
)

func TestRedundantClosureCall_Inline(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		wantDiag bool
		wantFix  string // empty: no suggestion
	}{
		{"constant body", "(|| 42)()", true, "42"},
		{"block body", "(|| { 1 + 2 })()", true, "{ 1 + 2 }"},
		{"move closure", "(move || v.len())()", true, "v.len()"},
		{"with parameters", "(|x| x + 1)(1)", true, ""},
		{"explicit return", "(|x| { return x; })(1)", false, ""},
		{"try operator", "(|| foo()?)()", false, ""},
		{"return deep inside", "(|| { if c { return 1; } 2 })()", false, ""},
		{"named closure", "f()", false, ""},
		{"double parens are not stripped", "((|| 1))()", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ruletest.InFn("let a = " + tt.expr + ";")
			diags := ruletest.Run(t, closures.RedundantClosureCall, src)
			if !tt.wantDiag {
				assert.Empty(t, diags)
				return
			}

			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, inlineMsg, d.Message)
			assert.Equal(t, tt.expr, ruletest.Snippet(src, d))
			if tt.wantFix == "" {
				assert.Empty(t, d.Suggestions)
				return
			}
			require.Len(t, d.Suggestions, 1)
			s := d.Suggestions[0]
			assert.Equal(t, "Try doing something like: ", s.Label)
			assert.Equal(t, core.MachineApplicable, s.Applicability)
			assert.Contains(t, ruletest.Apply(src, s), "let a = "+tt.wantFix+";")
		})
	}
}

func TestRedundantClosureCall_NestedClosures(t *testing.T) {
	src := ruletest.InFn("let a = (|| { let g = || { return 1; }; g() })();")

	t.Run("descends into nested closures by default", func(t *testing.T) {
		assert.Empty(t, ruletest.Run(t, closures.RedundantClosureCall, src))
	})

	for _, v := range []any{true, "true"} {
		t.Run(fmt.Sprintf("stop at nested closures %T", v), func(t *testing.T) {
			diags := ruletest.RunWithOptions(t, closures.RedundantClosureCall, src,
				map[string]any{closures.OptStopAtNestedClosures: v})
			require.Len(t, diags, 1)
			assert.Equal(t, inlineMsg, diags[0].Message)
		})
	}
}

func TestRedundantClosureCall_DeclareThenCall(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSpan string // empty: no diagnostic
	}{
		{"assign from call", "let f = || 1;\nx = f();", "x = f()"},
		{"closure with params", "let f = |a| a;\nx = f(2);", "x = f(2)"},
		{"different callee", "let f = || 1;\ny = g();", ""},
		{"let instead of assignment", "let f = || 1;\nlet x = f();", ""},
		{"not adjacent", "let f = || 1;\nfoo();\nx = f();", ""},
		{"not a closure", "let f = g;\nx = f();", ""},
		{"bare call", "let f = || 1;\nf();", ""},
		{"compound assignment", "let f = || 1;\nx += f();", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ruletest.InFn(tt.body)
			diags := ruletest.Run(t, closures.RedundantClosureCall, src)
			if tt.wantSpan == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, windowMsg, diags[0].Message)
			assert.Equal(t, tt.wantSpan, ruletest.Snippet(src, diags[0]))
			assert.Equal(t, 3, diags[0].Pos.Line)
			assert.Empty(t, diags[0].Suggestions)
		})
	}
}
