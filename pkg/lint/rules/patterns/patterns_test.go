package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/internal/ruletest"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/patterns"
)

const wildcardFieldMsg = "You matched a field with a wildcard pattern. Consider using `..` instead"

func TestUnneededFieldPattern_AllWildcards(t *testing.T) {
	src := ruletest.InFn("let S { a: _, b: _ } = s;")
	diags := ruletest.Run(t, patterns.UnneededFieldPattern, src)

	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "All the struct fields are matched to a wildcard pattern, consider using `..`.", d.Message)
	assert.Equal(t, "Try with `S { .. }` instead", d.Help)
	assert.Equal(t, "S { a: _, b: _ }", ruletest.Snippet(src, d))
	require.Len(t, d.Suggestions, 1)
	assert.Equal(t, core.MaybeIncorrect, d.Suggestions[0].Applicability)
	assert.Contains(t, ruletest.Apply(src, d.Suggestions[0]), "let S { .. } = s;")
}

func TestUnneededFieldPattern_SomeWildcards(t *testing.T) {
	src := ruletest.InFn("match p { Point { x: _, y, z: _, w: 1 } => {} }")
	diags := ruletest.Run(t, patterns.UnneededFieldPattern, src)

	require.Len(t, diags, 2)
	assert.Equal(t, []string{wildcardFieldMsg, wildcardFieldMsg}, ruletest.Messages(diags))

	first, last := diags[0], diags[1]
	assert.Equal(t, "x: _", ruletest.Snippet(src, first))
	assert.Empty(t, first.Help)
	assert.Empty(t, first.Suggestions)

	assert.Equal(t, "z: _", ruletest.Snippet(src, last))
	assert.Equal(t, "Try with `Point { y, w: 1, .. }`", last.Help)
	require.Len(t, last.Suggestions, 1)
	assert.Contains(t, ruletest.Apply(src, last.Suggestions[0]), "match p { Point { y, w: 1, .. } => {} }")
}

func TestUnneededFieldPattern_QualifiedPath(t *testing.T) {
	src := ruletest.InFn("let geo::Point { x: _, y } = p;")
	diags := ruletest.Run(t, patterns.UnneededFieldPattern, src)

	require.Len(t, diags, 1)
	assert.Equal(t, "Try with `Point { y, .. }`", diags[0].Help)
	assert.Contains(t, ruletest.Apply(src, diags[0].Suggestions[0]), "let geo::Point { y, .. } = p;")
}

func TestUnneededFieldPattern_NoDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		pat  string
	}{
		{"no wildcards", "S { a, b }"},
		{"rest only", "S { .. }"},
		{"nested wildcard is not a field wildcard", "S { a: (_, _) }"},
		{"tuple struct", "S(_, _)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ruletest.InFn("let " + tt.pat + " = s;")
			assert.Empty(t, ruletest.Run(t, patterns.UnneededFieldPattern, src))
		})
	}
}

func TestRedundantPattern(t *testing.T) {
	tests := []struct {
		name    string
		pat     string
		wantMsg string
		wantFix string
	}{
		{"plain", "y @ _", "the `y @ _` pattern can be written as just `y`", "y"},
		{"ref", "ref y @ _", "the `y @ _` pattern can be written as just `y`", "ref y"},
		{"ref mut", "ref mut val @ _", "the `val @ _` pattern can be written as just `val`", "ref mut val"},
		{"mut", "mut y @ _", "the `y @ _` pattern can be written as just `y`", "mut y"},
		{"real subpattern", "y @ 1..=5", "", ""},
		{"no subpattern", "y", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ruletest.InFn("match v { " + tt.pat + " => {} }")
			diags := ruletest.Run(t, patterns.RedundantPattern, src)
			if tt.wantMsg == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, tt.wantMsg, d.Message)
			assert.Equal(t, tt.pat, ruletest.Snippet(src, d))
			require.Len(t, d.Suggestions, 1)
			assert.Equal(t, "try", d.Suggestions[0].Label)
			assert.Equal(t, core.MachineApplicable, d.Suggestions[0].Applicability)
			assert.Equal(t, tt.wantFix, d.Suggestions[0].Edits[0].NewText)
		})
	}
}

func TestRedundantPattern_Nested(t *testing.T) {
	src := ruletest.InFn("if let Some(x @ _) = opt {}")
	diags := ruletest.Run(t, patterns.RedundantPattern, src)
	require.Len(t, diags, 1)
	assert.Contains(t, ruletest.Apply(src, diags[0].Suggestions[0]), "if let Some(x) = opt {}")
}
