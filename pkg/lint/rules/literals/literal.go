package literals

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
)

// literal is a numeric literal split into its written parts.
// text == prefix + digits + suffix always holds.
type literal struct {
	lit    *syntax.Lit
	text   string
	prefix string // "0x", "0o", "0b" or ""
	digits string // may end with separators
	suffix string
}

// decompose recovers the written form of a numeric literal. It reports false
// when the node is not a numeric literal, its text is unavailable or empty,
// the text contains '!' (a macro fragment), or the parsed suffix does not
// terminate the text.
func decompose(pass *lint.Pass, node syntax.Node) (literal, bool) {
	lit, ok := node.(*syntax.Lit)
	if !ok || !lit.IsNumeric() {
		return literal{}, false
	}
	text, ok := pass.Snippet(lit.Span())
	if !ok || text == "" || strings.ContainsRune(text, '!') {
		return literal{}, false
	}

	suffix := lit.Suffix
	if suffix != "" && (len(suffix) >= len(text) || !strings.HasSuffix(text, suffix)) {
		pass.Logger.Debug("literal suffix does not match source text",
			"text", text, "suffix", suffix)
		return literal{}, false
	}
	body := text[:len(text)-len(suffix)]

	var prefix string
	if lit.Kind == syntax.LitInt && len(body) >= 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'o', 'b':
			prefix = body[:2]
		}
	}

	return literal{
		lit:    lit,
		text:   text,
		prefix: prefix,
		digits: body[len(prefix):],
		suffix: suffix,
	}, true
}

// body is the literal without its suffix.
func (l literal) body() string {
	return l.prefix + l.digits
}

func (l literal) isFloat() bool {
	return l.lit.Kind == syntax.LitFloat
}
