package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/fix"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/earlylint/pkg/parser"
	"github.com/leapstack-labs/earlylint/pkg/source"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

func lintSource(t *testing.T, src string) []lint.Diagnostic {
	t.Helper()
	file, err := parser.Parse("main.rs", src)
	require.NoError(t, err)
	return lint.NewAnalyzer(nil, source.NewFile("main.rs", []byte(src))).AnalyzeFile(file)
}

func span(start, end int) token.Span {
	return token.Span{
		Start: token.Position{Line: 1, Column: start + 1, Offset: start},
		End:   token.Position{Line: 1, Column: end + 1, Offset: end},
	}
}

func TestApply_SuffixFixIsIdempotent(t *testing.T) {
	src := "fn main() {\n    let a = 1u8;\n    let b = 2.5f32;\n    let c = (|| 7)();\n}\n"

	res, err := fix.Apply(src, lintSource(t, src), fix.Options{})
	require.NoError(t, err)
	assert.Equal(t, "fn main() {\n    let a = 1_u8;\n    let b = 2.5_f32;\n    let c = 7;\n}\n", res.Text)
	assert.Len(t, res.Applied, 3)
	assert.True(t, res.Changed())

	again := lintSource(t, res.Text)
	assert.Empty(t, again, "fixed text lints clean")

	res2, err := fix.Apply(res.Text, again, fix.Options{})
	require.ErrorIs(t, err, fix.ErrNoFixes)
	assert.Equal(t, res.Text, res2.Text)
	assert.False(t, res2.Changed())
}

func TestApply_Applicability(t *testing.T) {
	src := "fn main() {\n    let n = 0123;\n}\n"
	diags := lintSource(t, src)
	require.Len(t, diags, 1)

	t.Run("safe only", func(t *testing.T) {
		res, err := fix.Apply(src, diags, fix.SafeOnly())
		require.ErrorIs(t, err, fix.ErrNoFixes)
		assert.Equal(t, src, res.Text)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, "zero-prefixed-literal", res.Skipped[0].RuleID)
		assert.Equal(t, "applicability is maybe-incorrect", res.Skipped[0].Reason)
	})

	t.Run("unsafe takes the first allowed suggestion", func(t *testing.T) {
		res, err := fix.Apply(src, diags, fix.IncludeUnsafe())
		require.NoError(t, err)
		assert.Equal(t, "fn main() {\n    let n = 123;\n}\n", res.Text)
		require.Len(t, res.Applied, 1)
		assert.Equal(t, core.MaybeIncorrect, res.Applied[0].Applicability)
	})
}

func TestApply_Conflicts(t *testing.T) {
	src := "abcdef"
	diags := []lint.Diagnostic{
		{
			RuleID: "outer",
			Span:   span(0, 4),
			Suggestions: []lint.Suggestion{
				lint.Replace("outer", span(0, 4), "X", core.MachineApplicable),
			},
		},
		{
			RuleID: "inner",
			Span:   span(2, 3),
			Suggestions: []lint.Suggestion{
				lint.Replace("inner", span(2, 3), "Y", core.MachineApplicable),
			},
		},
		{
			RuleID: "tail",
			Span:   span(5, 6),
			Suggestions: []lint.Suggestion{
				lint.Replace("tail", span(5, 6), "Z", core.MachineApplicable),
			},
		},
		{
			RuleID: "placeholder",
			Span:   span(4, 5),
			Suggestions: []lint.Suggestion{
				lint.Replace("placeholder", span(4, 5), "..", core.HasPlaceholders),
			},
		},
		{
			RuleID:      "empty",
			Span:        span(4, 4),
			Suggestions: []lint.Suggestion{{Label: "nothing", Applicability: core.MachineApplicable}},
		},
		{
			RuleID: "out of range",
			Span:   span(9, 12),
			Suggestions: []lint.Suggestion{
				lint.Replace("oob", span(9, 12), "!", core.MachineApplicable),
			},
		},
	}

	res, err := fix.Apply(src, diags, fix.Options{})
	require.NoError(t, err)
	assert.Equal(t, "XeZ", res.Text)

	var applied []string
	for _, a := range res.Applied {
		applied = append(applied, a.RuleID)
	}
	assert.Equal(t, []string{"outer", "tail"}, applied)

	reasons := map[string]string{}
	for _, s := range res.Skipped {
		reasons[s.RuleID] = s.Reason
	}
	assert.Equal(t, map[string]string{
		"placeholder":  "applicability is has-placeholders",
		"empty":        "fix has no edits",
		"inner":        "conflicts with previously applied edits",
		"out of range": "edit span out of range",
	}, reasons)
}

func TestApply_InsertionsDoNotConflict(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "a", Span: span(1, 1), Suggestions: []lint.Suggestion{lint.Replace("a", span(1, 1), "_", core.MachineApplicable)}},
		{RuleID: "b", Span: span(3, 3), Suggestions: []lint.Suggestion{lint.Replace("b", span(3, 3), "_", core.MachineApplicable)}},
	}
	res, err := fix.Apply("abcd", diags, fix.Options{})
	require.NoError(t, err)
	assert.Equal(t, "a_bc_d", res.Text)
}

func TestDiff(t *testing.T) {
	before := "fn main() {\n    let a = 1u8;\n}\n"
	after := "fn main() {\n    let a = 1_u8;\n}\n"

	diff := fix.Diff("main.rs", before, after)
	assert.Contains(t, diff, "--- a/main.rs")
	assert.Contains(t, diff, "+++ b/main.rs")
	assert.Contains(t, diff, "-    let a = 1u8;")
	assert.Contains(t, diff, "+    let a = 1_u8;")

	assert.Empty(t, fix.Diff("main.rs", before, before))
}
