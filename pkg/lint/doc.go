// Package lint provides the early-pass rule engine: the diagnostic and
// suggestion model, the rule registry and the Analyzer that dispatches syntax
// nodes to rules.
//
// # Architecture
//
// The engine sees only the node model (pkg/syntax) and a source.Map for
// snippet lookup. It never imports a parser; any front-end that produces
// pkg/syntax trees can host it.
//
//  1. Root package (pkg/lint/): Diagnostic, Rule, RuleDef, Pass, registry, Config, Analyzer
//  2. Rule catalog (pkg/lint/rules/...): one package per concern, registered via init()
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/earlylint/pkg/lint/rules"
//
// # Rule Categories
//
//   - style: code that is correct but unidiomatic
//   - complexity: code that does something simple in a roundabout way
//   - pedantic: stricter checks with occasional false positives
//
// Categories are informational; severity decides how a finding is treated.
//
// # Using the Registry
//
//	rules := lint.All()
//	rule, ok := lint.ByID("redundant-pattern")
//	exprRules := lint.ByKind(lint.KindExpr)
//
// # Configuration
//
//	config := lint.NewConfig()
//	config.Disable("unseparated-literal-suffix")
//	config.SetSeverity("double-negation", core.SeverityError)
//	config.SetRuleOptions("builtin-type-shadow", map[string]any{"extra_types": []string{"String"}})
//
// # Running
//
//	analyzer := lint.NewAnalyzer(config, file, lint.WithLogger(logger))
//	diags := analyzer.AnalyzeFile(tree)
//
// A host with its own traversal calls Analyzer.Check once per node instead.
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "my-rule",
//		Name:        "style.my_rule",
//		Category:    core.CategoryStyle,
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Kinds:       []lint.Kind{lint.KindExpr},
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
