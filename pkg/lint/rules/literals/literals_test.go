package literals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/internal/ruletest"
	"github.com/leapstack-labs/earlylint/pkg/lint/rules/literals"
)

func TestUnseparatedLiteralSuffix(t *testing.T) {
	tests := []struct {
		name    string
		lit     string
		wantMsg string // empty means no diagnostic
		wantFix string
	}{
		{"integer suffix", "123u32", "integer type suffix should be separated by an underscore", "123_u32"},
		{"signed suffix", "7i64", "integer type suffix should be separated by an underscore", "7_i64"},
		{"float suffix", "1.5f32", "float type suffix should be separated by an underscore", "1.5_f32"},
		{"integer digits with float suffix", "2f64", "float type suffix should be separated by an underscore", "2_f64"},
		{"hex with suffix", "0x1Au8", "integer type suffix should be separated by an underscore", "0x1A_u8"},
		{"separated", "123_u32", "", ""},
		{"double separator", "1__u8", "", ""},
		{"no suffix", "123", "", ""},
		{"float without suffix", "1.5e3", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ruletest.InFn("let x = " + tt.lit + ";")
			diags := ruletest.Run(t, literals.UnseparatedLiteralSuffix, src)
			if tt.wantMsg == "" {
				assert.Empty(t, diags)
				return
			}

			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, tt.wantMsg, d.Message)
			assert.Equal(t, core.SeverityHint, d.Severity)
			assert.Equal(t, tt.lit, ruletest.Snippet(src, d))
			require.Len(t, d.Suggestions, 1)
			s := d.Suggestions[0]
			assert.Equal(t, "add an underscore", s.Label)
			assert.Equal(t, core.MachineApplicable, s.Applicability)
			assert.True(t, d.AutoFixable)

			fixed := ruletest.Apply(src, s)
			assert.Contains(t, fixed, "let x = "+tt.wantFix+";")
			assert.Empty(t, ruletest.Run(t, literals.UnseparatedLiteralSuffix, fixed), "fix is idempotent")
		})
	}
}

func TestMixedCaseHexLiteral(t *testing.T) {
	tests := []struct {
		lit      string
		wantDiag bool
	}{
		{"0x1a9BAcD", true},
		{"0xabc_DEF", true},
		{"0xaBu8", true},
		{"0x1a9bacd", false},
		{"0x1A9BACD", false},
		{"0x1a_u8", false},
		{"0b1010", false},
		{"123", false},
		{"1e5", false},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			src := ruletest.InFn("let y = " + tt.lit + ";")
			diags := ruletest.Run(t, literals.MixedCaseHexLiteral, src)
			if !tt.wantDiag {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, "inconsistent casing in hexadecimal literal", diags[0].Message)
			assert.Equal(t, tt.lit, ruletest.Snippet(src, diags[0]))
			assert.Empty(t, diags[0].Suggestions)
			assert.False(t, diags[0].AutoFixable)
		})
	}
}

func TestZeroPrefixedLiteral(t *testing.T) {
	tests := []struct {
		lit       string
		wantFixes []string // nil means no diagnostic
	}{
		{"0123", []string{"123", "0o123"}},
		{"0_123", []string{"123", "0o123"}},
		{"00_7", []string{"7", "0o7"}},
		{"0123u32", []string{"123u32", "0o123u32"}},
		{"0", nil},
		{"00", nil},
		{"0x0", nil},
		{"0x10", nil},
		{"0o17", nil},
		{"0b10", nil},
		{"10", nil},
		{"0.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			src := ruletest.InFn("let x = " + tt.lit + ";")
			diags := ruletest.Run(t, literals.ZeroPrefixedLiteral, src)
			if tt.wantFixes == nil {
				assert.Empty(t, diags)
				return
			}

			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, "this is a decimal constant", d.Message)
			require.Len(t, d.Suggestions, 2)
			assert.Equal(t, "if you mean to use a decimal constant, remove the `0` to avoid confusion", d.Suggestions[0].Label)
			assert.Equal(t, "if you mean to use an octal constant, use `0o`", d.Suggestions[1].Label)
			for i, s := range d.Suggestions {
				assert.Equal(t, core.MaybeIncorrect, s.Applicability)
				require.Len(t, s.Edits, 1)
				assert.Equal(t, tt.wantFixes[i], s.Edits[0].NewText)
			}
			assert.False(t, d.AutoFixable)
		})
	}
}

func TestLiteralsInPatterns(t *testing.T) {
	src := ruletest.InFn("match x { 0123 => {}, _ => {} }")
	diags := ruletest.Run(t, literals.ZeroPrefixedLiteral, src)
	require.Len(t, diags, 1)
	assert.Equal(t, "0123", ruletest.Snippet(src, diags[0]))
}
