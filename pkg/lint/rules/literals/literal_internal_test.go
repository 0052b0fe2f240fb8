package literals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// fixedText answers every snippet query with the same text.
type fixedText struct {
	text string
	ok   bool
}

func (f fixedText) Snippet(token.Span) (string, bool) { return f.text, f.ok }
func (f fixedText) InExternalMacro(token.Span) bool   { return false }

func TestDecompose(t *testing.T) {
	tests := []struct {
		name   string
		lit    *syntax.Lit
		src    fixedText
		want   literal
		wantOK bool
	}{
		{
			name:   "hex with suffix",
			lit:    &syntax.Lit{Kind: syntax.LitInt, Suffix: "u8"},
			src:    fixedText{"0xFFu8", true},
			want:   literal{text: "0xFFu8", prefix: "0x", digits: "FF", suffix: "u8"},
			wantOK: true,
		},
		{
			name:   "float keeps no prefix",
			lit:    &syntax.Lit{Kind: syntax.LitFloat, Suffix: "f32"},
			src:    fixedText{"0.5_f32", true},
			want:   literal{text: "0.5_f32", digits: "0.5_", suffix: "f32"},
			wantOK: true,
		},
		{
			name: "snippet unavailable",
			lit:  &syntax.Lit{Kind: syntax.LitInt},
			src:  fixedText{"", false},
		},
		{
			name: "empty snippet",
			lit:  &syntax.Lit{Kind: syntax.LitInt},
			src:  fixedText{"", true},
		},
		{
			name: "macro fragment",
			lit:  &syntax.Lit{Kind: syntax.LitInt, Suffix: "u8"},
			src:  fixedText{"$x!u8", true},
		},
		{
			name: "suffix longer than text",
			lit:  &syntax.Lit{Kind: syntax.LitInt, Suffix: "usize"},
			src:  fixedText{"1u8", true},
		},
		{
			name: "suffix equal to text",
			lit:  &syntax.Lit{Kind: syntax.LitInt, Suffix: "u8"},
			src:  fixedText{"u8", true},
		},
		{
			name: "suffix does not terminate text",
			lit:  &syntax.Lit{Kind: syntax.LitInt, Suffix: "u8"},
			src:  fixedText{"12u16", true},
		},
		{
			name: "not numeric",
			lit:  &syntax.Lit{Kind: syntax.LitStr},
			src:  fixedText{`"s"`, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []lint.Diagnostic
			pass := lint.NewPass(lint.WrapRuleDef(ZeroPrefixedLiteral), tt.src, nil, &out)
			got, ok := decompose(pass, tt.lit)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				tt.want.lit = tt.lit
				assert.Equal(t, tt.want, got)
				assert.Equal(t, got.text, got.body()+got.suffix)
			}
		})
	}
}
