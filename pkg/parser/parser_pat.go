package parser

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Patterns.
//
//	pat        → ['|'] pat_no_alt ('|' pat_no_alt)*
//	pat_no_alt → '_' | '..' | '&' ['mut'] pat_no_alt
//	           | '(' pat,* ')' | '[' pat,* ']'
//	           | ['ref'] ['mut'] name ['@' pat_no_alt]
//	           | lit_pat [('..=' | '..') lit_pat]
//	           | path ['(' pat,* ')' | '{' field_pats '}']
//	field_pats → (name ':' pat | ['ref'] ['mut'] name),* [',' '..']

// parsePat parses a pattern including top-level alternatives.
func (p *Parser) parsePat() syntax.Pat {
	start := p.token.Span.Start
	p.match(token.PIPE)
	first := p.parsePatNoAlt()
	if !p.check(token.PIPE) {
		return first
	}
	alts := []syntax.Pat{first}
	for p.match(token.PIPE) {
		alts = append(alts, p.parsePatNoAlt())
	}
	return &syntax.OrPat{Base: p.base(start), Alts: alts}
}

// parsePatNoAlt parses a pattern without top-level `|`, as in closure
// parameters.
//
//nolint:gocyclo // one case per pattern form
func (p *Parser) parsePatNoAlt() syntax.Pat {
	start := p.token.Span.Start

	switch {
	case p.check(token.UNDERSCORE):
		p.nextToken()
		return &syntax.WildPat{Base: p.base(start)}

	case p.check(token.DOTDOT):
		p.nextToken()
		return &syntax.RestPat{Base: p.base(start)}

	case p.check(token.DOTDOTEQ):
		p.nextToken()
		hi := p.parseLitPatExpr()
		return &syntax.RangePat{Base: p.base(start), Hi: hi, Inclusive: true}

	case p.check(token.AMP) || p.check(token.ANDAND):
		double := p.check(token.ANDAND)
		p.nextToken()
		mutable := p.match(token.MUT)
		inner := p.parsePatNoAlt()
		if double {
			inner = &syntax.RefPat{Base: p.base(start), Mutable: mutable, Pat: inner}
			mutable = false
		}
		return &syntax.RefPat{Base: p.base(start), Mutable: mutable, Pat: inner}

	case p.check(token.LPAREN):
		elems, trailingComma := p.parsePatList(token.LPAREN, token.RPAREN)
		if len(elems) == 1 && !trailingComma {
			if _, rest := elems[0].(*syntax.RestPat); !rest {
				return elems[0]
			}
		}
		return &syntax.TuplePat{Base: p.base(start), Elems: elems}

	case p.check(token.LBRACKET):
		elems, _ := p.parsePatList(token.LBRACKET, token.RBRACKET)
		return &syntax.SlicePat{Base: p.base(start), Elems: elems}

	case p.check(token.REF) || p.check(token.MUT):
		return p.parseIdentPat()

	case p.check(token.MINUS) || p.check(token.INT) || p.check(token.FLOAT) ||
		p.check(token.STRING) || p.check(token.CHAR) || p.check(token.TRUE) || p.check(token.FALSE):
		lo := p.parseLitPatExpr()
		return p.finishRangePat(start, lo, &syntax.LitPat{Base: p.base(start), X: lo})

	case p.check(token.IDENT) && !p.checkPeek(token.PATHSEP) && !p.checkPeek(token.LPAREN) &&
		!p.checkPeek(token.LBRACE) && !p.checkPeek(token.BANG) &&
		!p.checkPeek(token.DOTDOTEQ) && !p.checkPeek(token.DOTDOT):
		return p.parseIdentPat()

	case p.isPathStart() || p.check(token.LT):
		var path *syntax.Path
		if p.check(token.LT) {
			path = p.parseTypeNoBounds().Path
		} else {
			path = p.parsePath(false)
		}
		switch {
		case p.check(token.LPAREN):
			elems, _ := p.parsePatList(token.LPAREN, token.RPAREN)
			return &syntax.TupleStructPat{Base: p.base(start), Path: path, Elems: elems}
		case p.check(token.LBRACE):
			return p.parseStructPat(start, path)
		case p.check(token.BANG):
			p.nextToken()
			p.skipTokenTree()
			return &syntax.PathPat{Base: p.base(start), Path: path}
		default:
			return p.finishRangePat(start, path, &syntax.PathPat{Base: p.base(start), Path: path})
		}
	}

	p.errorf(ErrExpectedPattern, describe(p.token))
	return nil
}

// finishRangePat turns `lo ..= hi` into a RangePat, or returns single.
func (p *Parser) finishRangePat(start token.Position, lo syntax.Expr, single syntax.Pat) syntax.Pat {
	if !p.check(token.DOTDOTEQ) && !p.check(token.DOTDOT) {
		return single
	}
	inclusive := p.check(token.DOTDOTEQ)
	p.nextToken()
	rp := &syntax.RangePat{Lo: lo, Inclusive: inclusive}
	if p.isLitPatStart() || p.isPathStart() {
		if p.isPathStart() {
			rp.Hi = p.parsePath(false)
		} else {
			rp.Hi = p.parseLitPatExpr()
		}
	}
	rp.Base = p.base(start)
	return rp
}

func (p *Parser) isLitPatStart() bool {
	switch p.token.Type {
	case token.MINUS, token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE:
		return true
	}
	return false
}

// parseLitPatExpr parses a literal, optionally negated, in pattern position.
func (p *Parser) parseLitPatExpr() syntax.Expr {
	start := p.token.Span.Start
	if p.match(token.MINUS) {
		x := p.parseLiteral()
		return &syntax.Unary{Base: p.base(start), Op: syntax.UnNeg, X: x}
	}
	if p.isPathStart() {
		return p.parsePath(false)
	}
	return p.parseLiteral()
}

// parseIdentPat parses `ref mut name @ sub`.
func (p *Parser) parseIdentPat() *syntax.IdentPat {
	start := p.token.Span.Start
	pat := &syntax.IdentPat{}
	pat.ByRef = p.match(token.REF)
	pat.Mutable = p.match(token.MUT)
	if p.check(token.SELFVALUE) {
		pat.Name = "self"
		p.nextToken()
	} else {
		pat.Name = p.expectIdent()
	}
	if p.match(token.AT) {
		pat.Sub = p.parsePatNoAlt()
	}
	pat.Base = p.base(start)
	return pat
}

// parsePatList parses `open pat,* close` and reports a trailing comma.
func (p *Parser) parsePatList(open, closing token.TokenType) ([]syntax.Pat, bool) {
	p.expect(open)
	var elems []syntax.Pat
	trailingComma := false
	for !p.check(closing) {
		elems = append(elems, p.parsePat())
		trailingComma = p.match(token.COMMA)
		if !trailingComma {
			break
		}
	}
	p.expect(closing)
	return elems, trailingComma
}

// parseStructPat parses the `{ fields }` of a struct pattern.
func (p *Parser) parseStructPat(start token.Position, path *syntax.Path) *syntax.StructPat {
	pat := &syntax.StructPat{Path: path}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) {
		p.skipAttributes()
		if p.match(token.DOTDOT) {
			pat.Rest = true
			break
		}
		pat.Fields = append(pat.Fields, p.parseFieldPat())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	pat.Base = p.base(start)
	return pat
}

func (p *Parser) parseFieldPat() *syntax.FieldPat {
	start := p.token.Span.Start

	// name: pat  (including tuple indices `0: x`)
	if (p.check(token.IDENT) || p.check(token.INT)) && p.checkPeek(token.COLON) {
		name := p.token.Literal
		p.nextToken()
		p.nextToken()
		sub := p.parsePat()
		return &syntax.FieldPat{Base: p.base(start), Name: name, Pat: sub}
	}

	// Shorthand: [ref] [mut] name
	ident := p.parseIdentPat()
	return &syntax.FieldPat{Base: p.base(start), Name: ident.Name, Pat: ident, Shorthand: true}
}
