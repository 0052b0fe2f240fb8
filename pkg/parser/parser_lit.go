package parser

import (
	"math"
	"math/bits"
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// intSuffixes and floatSuffixes are the valid numeric type suffixes.
var (
	intSuffixes = map[string]bool{
		"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
		"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	}
	floatSuffixes = map[string]bool{"f32": true, "f64": true}
)

// parseLiteral parses a literal token into a Lit.
func (p *Parser) parseLiteral() *syntax.Lit {
	tok := p.token
	lit := &syntax.Lit{Symbol: tok.Literal}

	switch tok.Type {
	case token.INT, token.FLOAT:
		p.decodeNumber(tok, lit)
	case token.STRING:
		lit.Kind = syntax.LitStr
	case token.CHAR:
		lit.Kind = syntax.LitChar
	case token.TRUE, token.FALSE:
		lit.Kind = syntax.LitBool
		if tok.Type == token.TRUE {
			lit.Value = 1
		}
	default:
		p.errorf(ErrExpectedExpr, describe(tok))
	}

	p.nextToken()
	lit.Base = syntax.Base{Loc: tok.Span}
	return lit
}

// decodeNumber fills kind, value, suffix and symbol of a numeric literal.
func (p *Parser) decodeNumber(tok token.Token, lit *syntax.Lit) {
	text := tok.Literal
	suffix := tok.Suffix
	body := strings.TrimSuffix(text, suffix)
	lit.Symbol = body
	lit.Suffix = suffix

	base, digits := splitBasePrefix(body)

	switch {
	case tok.Type == token.FLOAT:
		lit.Kind = syntax.LitFloat
		if suffix != "" && !floatSuffixes[suffix] {
			p.errorf(ErrInvalidSuffix, suffix)
		}
		return
	case floatSuffixes[suffix]:
		if base != 10 {
			p.errorf(ErrInvalidSuffix, suffix)
		}
		lit.Kind = syntax.LitFloat
		return
	case suffix != "" && !intSuffixes[suffix]:
		p.errorf(ErrInvalidSuffix, suffix)
	}

	lit.Kind = syntax.LitInt
	value, ok, sawDigit := parseUintSaturating(digits, base)
	if !ok {
		p.errorf(ErrInvalidDigit, base)
	}
	if !sawDigit {
		p.errorf(ErrInvalidNumber, text)
	}
	lit.Value = value
}

// splitBasePrefix returns the base of an integer body and its digits.
func splitBasePrefix(body string) (uint64, string) {
	if len(body) >= 2 && body[0] == '0' {
		switch body[1] {
		case 'x':
			return 16, body[2:]
		case 'o':
			return 8, body[2:]
		case 'b':
			return 2, body[2:]
		}
	}
	return 10, body
}

// parseUintSaturating parses digits (with `_` separators) in base. Values
// beyond the uint64 range saturate. ok is false on a digit invalid for the
// base; sawDigit is false when there are no digits at all.
func parseUintSaturating(digits string, base uint64) (value uint64, ok, sawDigit bool) {
	saturated := false
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			continue
		}
		d, valid := digitValue(c)
		if !valid || d >= base {
			return 0, false, sawDigit
		}
		sawDigit = true
		if saturated {
			continue
		}
		hi, lo := bits.Mul64(value, base)
		sum, carry := bits.Add64(lo, d, 0)
		if hi != 0 || carry != 0 {
			value = math.MaxUint64
			saturated = true
			continue
		}
		value = sum
	}
	return value, true, sawDigit
}

func digitValue(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
