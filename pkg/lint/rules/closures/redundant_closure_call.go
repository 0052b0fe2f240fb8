package closures

import (
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(RedundantClosureCall)
}

// RedundantClosureCall flags closures that are called right where they are
// declared, either inline or on the statement after their `let`.
var RedundantClosureCall = lint.RuleDef{
	ID:          "redundant-closure-call",
	Name:        "complexity.redundant_closure_call",
	Category:    core.CategoryComplexity,
	Description: "Closures should not be called immediately after being declared.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindExpr, lint.KindBlock},
	Check:       checkRedundantClosureCall,
	ConfigKeys:  []string{OptStopAtNestedClosures},
	Rationale:   "Calling a closure on the spot only adds indirection; the body can be written inline.",
	BadExample:  "let a = (|| 42)();",
	GoodExample: "let a = 42;",
	Fix:         "Inline the closure body. Closures containing `return` or `?` are left alone.",
}

// OptStopAtNestedClosures makes the early-exit search skip closures nested in
// the called closure's body.
const OptStopAtNestedClosures = "stop_at_nested_closures"

func checkRedundantClosureCall(pass *lint.Pass, node syntax.Node) {
	switch n := node.(type) {
	case *syntax.Call:
		checkInlineCall(pass, n)
	case *syntax.Block:
		checkDeclareThenCall(pass, n)
	}
}

// checkInlineCall handles `(|| body)()`.
func checkInlineCall(pass *lint.Pass, call *syntax.Call) {
	closure, ok := syntax.Unparen(call.Fun).(*syntax.Closure)
	if !ok {
		return
	}
	stop := lint.GetBoolOption(pass.Options, OptStopAtNestedClosures, false)
	if ast.ContainsReturn(closure.Body, stop) {
		return
	}

	d := lint.Diagnostic{
		Span:    call.Span(),
		Message: "Try not to call a closure in the expression where it is declared.",
	}
	if len(closure.Params) == 0 {
		app := core.MachineApplicable
		hint, ok := pass.Snippet(closure.Body.Span())
		if !ok {
			hint, app = "..", core.HasPlaceholders
		}
		d.Suggestions = []lint.Suggestion{
			lint.Replace("Try doing something like: ", call.Span(), hint, app),
		}
	}
	pass.Report(d)
}

// checkDeclareThenCall handles
//
//	let f = || ...;
//	x = f();
func checkDeclareThenCall(pass *lint.Pass, block *syntax.Block) {
	for i := 0; i+1 < len(block.Stmts); i++ {
		name, ok := closureBinding(block.Stmts[i])
		if !ok {
			continue
		}
		semi, ok := block.Stmts[i+1].(*syntax.SemiStmt)
		if !ok {
			continue
		}
		assign, ok := semi.X.(*syntax.Assign)
		if !ok {
			continue
		}
		call, ok := assign.RHS.(*syntax.Call)
		if !ok {
			continue
		}
		if callee, ok := call.Fun.(*syntax.Path); ok && callee.First() == name {
			pass.Reportf(semi.X.Span(), "Closure called just once immediately after it was declared")
		}
	}
}

// closureBinding matches `let name = <closure>;` and returns name.
func closureBinding(stmt syntax.Stmt) (string, bool) {
	let, ok := stmt.(*syntax.LetStmt)
	if !ok || let.Init == nil {
		return "", false
	}
	if _, ok := let.Init.(*syntax.Closure); !ok {
		return "", false
	}
	id, ok := let.Pat.(*syntax.IdentPat)
	if !ok {
		return "", false
	}
	return id.Name, true
}
