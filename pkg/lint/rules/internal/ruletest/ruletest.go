// Package ruletest runs single lint rules over source text in tests.
package ruletest

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/internal/testutil"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/parser"
	"github.com/leapstack-labs/earlylint/pkg/source"
)

// Run parses src as a file and returns the diagnostics of def alone.
func Run(t testing.TB, def lint.RuleDef, src string) []lint.Diagnostic {
	t.Helper()
	return RunWithOptions(t, def, src, nil)
}

// RunWithOptions is Run with rule options.
func RunWithOptions(t testing.TB, def lint.RuleDef, src string, opts map[string]any) []lint.Diagnostic {
	t.Helper()
	file, err := parser.Parse("test.rs", src)
	require.NoError(t, err)

	cfg := lint.NewConfig()
	if opts != nil {
		cfg.SetRuleOptions(def.ID, opts)
	}
	a := lint.NewAnalyzer(cfg, source.NewFile("test.rs", []byte(src)),
		lint.WithRules(lint.WrapRuleDef(def)),
		lint.WithLogger(testutil.NewTestLogger(t)))
	return a.AnalyzeFile(file)
}

// InFn wraps statements in a function body.
func InFn(body string) string {
	return "fn main() {\n" + body + "\n}\n"
}

// Snippet returns the text of src covered by the diagnostic.
func Snippet(src string, d lint.Diagnostic) string {
	return src[d.Span.Start.Offset:d.Span.End.Offset]
}

// Apply returns src with every edit of s applied.
func Apply(src string, s lint.Suggestion) string {
	edits := slices.Clone(s.Edits)
	slices.SortFunc(edits, func(a, b lint.TextEdit) int {
		return b.Span.Start.Offset - a.Span.Start.Offset
	})
	for _, e := range edits {
		src = src[:e.Span.Start.Offset] + e.NewText + src[e.Span.End.Offset:]
	}
	return src
}

// Messages lists diagnostic messages in order.
func Messages(diags []lint.Diagnostic) []string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return msgs
}
