package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   core.Severity
		wantOK bool
	}{
		{"error", core.SeverityError, true},
		{"WARNING", core.SeverityWarning, true},
		{"warn", core.SeverityWarning, true},
		{" info ", core.SeverityInfo, true},
		{"hint", core.SeverityHint, true},
		{"fatal", core.SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := core.ParseSeverity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", core.SeverityError.String())
	assert.Equal(t, "hint", core.SeverityHint.String())
	assert.Equal(t, "unknown", core.Severity(42).String())
}

func TestSeverityText(t *testing.T) {
	t.Run("rule info decodes", func(t *testing.T) {
		in := core.RuleInfo{ID: "double-negation", Category: core.CategoryStyle, DefaultSeverity: core.SeverityHint}
		data, err := json.Marshal(in)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"default_severity":"hint"`)

		var out core.RuleInfo
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, core.SeverityHint, out.DefaultSeverity)
	})

	t.Run("unknown value", func(t *testing.T) {
		var s core.Severity
		err := s.UnmarshalText([]byte("fatal"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown severity "fatal"`)
	})
}

func TestApplicabilityRoundTrip(t *testing.T) {
	for _, a := range []core.Applicability{
		core.MachineApplicable, core.MaybeIncorrect, core.HasPlaceholders, core.Unspecified,
	} {
		got, ok := core.ParseApplicability(a.String())
		require.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}

	got, ok := core.ParseApplicability("safe")
	assert.True(t, ok)
	assert.Equal(t, core.MachineApplicable, got)

	_, ok = core.ParseApplicability("whatever")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := core.ParseCategory("Pedantic")
	assert.True(t, ok)
	assert.Equal(t, core.CategoryPedantic, c)

	_, ok = core.ParseCategory("nursery")
	assert.False(t, ok)
}

func TestRuleInfoJSON(t *testing.T) {
	info := core.RuleInfo{
		ID:              "double-negation",
		Name:            "Double negation",
		Category:        core.CategoryStyle,
		DefaultSeverity: core.SeverityWarning,
		Kinds:           []string{"expr"},
	}
	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"default_severity":"warning"`)
	assert.Contains(t, string(data), `"category":"style"`)
	assert.NotContains(t, string(data), "config_keys")
}
