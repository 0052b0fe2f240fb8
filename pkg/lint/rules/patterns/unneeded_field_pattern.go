package patterns

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

func init() {
	lint.Register(UnneededFieldPattern)
}

// UnneededFieldPattern flags struct pattern fields bound to `_`.
var UnneededFieldPattern = lint.RuleDef{
	ID:          "unneeded-field-pattern",
	Name:        "style.unneeded_field_pattern",
	Category:    core.CategoryStyle,
	Description: "Struct pattern fields matched with `_` can be replaced by `..`.",
	Severity:    core.SeverityWarning,
	Kinds:       []lint.Kind{lint.KindPat},
	Check:       checkUnneededFieldPattern,
	Rationale:   "Listing ignored fields one by one adds noise; `..` says the same thing.",
	BadExample:  "let Point { x: _, y: _, z } = p;",
	GoodExample: "let Point { z, .. } = p;",
}

const wildcardFieldMsg = "You matched a field with a wildcard pattern. Consider using `..` instead"

func checkUnneededFieldPattern(pass *lint.Pass, node syntax.Node) {
	pat, ok := node.(*syntax.StructPat)
	if !ok || len(pat.Fields) == 0 {
		return
	}
	typeName := ast.PathName(pat.Path)

	wilds := 0
	for _, f := range pat.Fields {
		if ast.IsWildcard(f.Pat) {
			wilds++
		}
	}
	if wilds == 0 {
		return
	}

	if wilds == len(pat.Fields) {
		pass.Report(lint.Diagnostic{
			Span:    pat.Span(),
			Message: "All the struct fields are matched to a wildcard pattern, consider using `..`.",
			Help:    fmt.Sprintf("Try with `%s { .. }` instead", typeName),
			Suggestions: []lint.Suggestion{
				lint.Replace("use `..`", pat.Span(), pathText(pass, pat)+" { .. }", core.MaybeIncorrect),
			},
		})
		return
	}

	for _, f := range pat.Fields {
		if !ast.IsWildcard(f.Pat) {
			continue
		}
		wilds--
		if wilds > 0 {
			pass.Reportf(f.Span(), wildcardFieldMsg)
			continue
		}

		kept := keptFields(pass, pat)
		pass.Report(lint.Diagnostic{
			Span:    f.Span(),
			Message: wildcardFieldMsg,
			Help:    fmt.Sprintf("Try with `%s`", restPattern(typeName, kept)),
			Suggestions: []lint.Suggestion{
				lint.Replace("use `..`", pat.Span(), restPattern(pathText(pass, pat), kept), core.MaybeIncorrect),
			},
		})
	}
}

// keptFields returns the source text of every non-wildcard field whose text
// is recoverable.
func keptFields(pass *lint.Pass, pat *syntax.StructPat) []string {
	var kept []string
	for _, f := range pat.Fields {
		if ast.IsWildcard(f.Pat) {
			continue
		}
		if text, ok := pass.Snippet(f.Span()); ok {
			kept = append(kept, text)
		}
	}
	return kept
}

func restPattern(name string, fields []string) string {
	if len(fields) == 0 {
		return name + " { .. }"
	}
	return fmt.Sprintf("%s { %s, .. }", name, strings.Join(fields, ", "))
}

// pathText prefers the written path so qualified names survive the rewrite.
func pathText(pass *lint.Pass, pat *syntax.StructPat) string {
	if pat.Path != nil {
		if text, ok := pass.Snippet(pat.Path.Span()); ok && text != "" {
			return text
		}
	}
	return ast.PathName(pat.Path)
}
