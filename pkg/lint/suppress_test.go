package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/earlylint/pkg/token"
)

func comment(kind token.CommentKind, text string, line int) *token.Comment {
	return &token.Comment{
		Kind: kind,
		Text: text,
		Span: token.Span{
			Start: token.Position{Line: line, Column: 1},
			End:   token.Position{Line: line, Column: len(text) + 1},
		},
	}
}

func TestSuppressions(t *testing.T) {
	s := ParseSuppressions([]*token.Comment{
		comment(token.LineComment, "// earlylint:allow(double-negation, redundant-pattern)", 3),
		comment(token.BlockComment, "/* earlylint:allow-file(builtin-type-shadow) */", 1),
		comment(token.LineComment, "// earlylint:allow(all)", 10),
		comment(token.LineComment, "// earlylint:allow(unterminated", 20),
		comment(token.LineComment, "// just a comment mentioning earlylint:allow(x)", 30),
	})

	tests := []struct {
		name string
		rule string
		line int
		want bool
	}{
		{"same line", "double-negation", 3, true},
		{"next line", "redundant-pattern", 4, true},
		{"two lines below", "double-negation", 5, false},
		{"other rule", "zero-prefixed-literal", 3, false},
		{"file wide", "builtin-type-shadow", 99, true},
		{"all", "zero-prefixed-literal", 11, true},
		{"unterminated list is ignored", "unterminated", 20, false},
		{"directive must lead the comment", "x", 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Allows(tt.rule, tt.line))
		})
	}
}

func TestSuppressions_Filter(t *testing.T) {
	diags := []Diagnostic{
		{RuleID: "a", Pos: token.Position{Line: 1}},
		{RuleID: "b", Pos: token.Position{Line: 1}},
		{RuleID: "a", Pos: token.Position{Line: 5}},
	}

	none := ParseSuppressions(nil)
	assert.Len(t, none.Filter(diags), 3)

	s := ParseSuppressions([]*token.Comment{comment(token.LineComment, "// earlylint:allow(a)", 1)})
	kept := s.Filter(diags)
	assert.Equal(t, []Diagnostic{diags[1], diags[2]}, kept)
	assert.Len(t, diags, 3, "input is not modified")
}
