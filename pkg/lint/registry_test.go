package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

func TestRegistry(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)

	lint.Register(lint.RuleDef{
		ID:          "second-rule",
		Name:        "style.second",
		Category:    core.CategoryStyle,
		Description: "Second.",
		Severity:    core.SeverityWarning,
		Kinds:       []lint.Kind{lint.KindPat},
		ConfigKeys:  []string{"threshold"},
		Rationale:   "because",
	})
	lint.Register(lint.RuleDef{
		ID:       "first-rule",
		Name:     "complexity.first",
		Category: core.CategoryComplexity,
		Severity: core.SeverityHint,
		Kinds:    []lint.Kind{lint.KindExpr, lint.KindBlock},
	})

	assert.Equal(t, 2, lint.Count())

	t.Run("All is sorted by ID", func(t *testing.T) {
		var ids []string
		for _, r := range lint.All() {
			ids = append(ids, r.ID())
		}
		assert.Equal(t, []string{"first-rule", "second-rule"}, ids)
	})

	t.Run("ByID", func(t *testing.T) {
		r, ok := lint.ByID("second-rule")
		require.True(t, ok)
		assert.Equal(t, "style.second", r.Name())
		_, ok = lint.ByID("missing")
		assert.False(t, ok)
	})

	t.Run("ByCategory", func(t *testing.T) {
		rules := lint.ByCategory(core.CategoryComplexity)
		require.Len(t, rules, 1)
		assert.Equal(t, "first-rule", rules[0].ID())
		assert.Empty(t, lint.ByCategory(core.CategoryPedantic))
	})

	t.Run("ByKind", func(t *testing.T) {
		require.Len(t, lint.ByKind(lint.KindBlock), 1)
		require.Len(t, lint.ByKind(lint.KindPat), 1)
		assert.Empty(t, lint.ByKind(lint.KindGenerics))
	})

	t.Run("AllRules metadata", func(t *testing.T) {
		infos := lint.AllRules()
		require.Len(t, infos, 2)
		assert.Equal(t, []string{"expr", "block"}, infos[0].Kinds)
		assert.Equal(t, core.RuleInfo{
			ID:              "second-rule",
			Name:            "style.second",
			Category:        core.CategoryStyle,
			Description:     "Second.",
			DefaultSeverity: core.SeverityWarning,
			ConfigKeys:      []string{"threshold"},
			Kinds:           []string{"pat"},
			Rationale:       "because",
		}, infos[1])
	})

	t.Run("re-registering replaces", func(t *testing.T) {
		lint.Register(lint.RuleDef{ID: "first-rule", Name: "renamed"})
		assert.Equal(t, 2, lint.Count())
		r, _ := lint.ByID("first-rule")
		assert.Equal(t, "renamed", r.Name())
	})

	lint.Clear()
	assert.Zero(t, lint.Count())
}
