package parser

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Paths, types and generic parameter lists.
//
//	path        → ['::'] segment ('::' segment)*
//	segment     → name [generic_args]
//	generic_args→ ['::'] '<' (type | lifetime | const | name '=' type),* '>'
//	type        → '&' [lifetime] ['mut'] type | '*' ('const'|'mut') type
//	            | '(' type,* ')' | '[' type [';' expr] ']' | '!' | '_'
//	            | 'impl' bounds | 'dyn' bounds | 'fn' '(' type,* ')' ['->' type]
//	            | qualified_path | path
//	generics    → '<' (lifetime [':' bounds] | 'const' name ':' type ['=' expr]
//	            |      name [':' bounds] ['=' type]),* '>'

// isPathStart reports whether the current token can begin a path.
func (p *Parser) isPathStart() bool {
	switch p.token.Type {
	case token.IDENT, token.SELFVALUE, token.SELFTYPE, token.CRATE, token.SUPER, token.PATHSEP:
		return true
	}
	return false
}

// parsePath parses a path. In expression context generic arguments require
// the turbofish `::<`; in type context a bare `<` opens them.
func (p *Parser) parsePath(typeContext bool) *syntax.Path {
	start := p.token.Span.Start
	path := &syntax.Path{}
	if p.match(token.PATHSEP) {
		path.Global = true
	}

	for {
		path.Segments = append(path.Segments, p.parsePathSegment(typeContext))
		if !p.check(token.PATHSEP) {
			break
		}
		// `::<` is handled by the segment; `::{`/`::*` only occur in `use`.
		if !p.isSegmentName(p.peek) {
			break
		}
		p.nextToken()
	}

	path.Base = p.base(start)
	return path
}

func (p *Parser) isSegmentName(tok token.Token) bool {
	switch tok.Type {
	case token.IDENT, token.SELFVALUE, token.SELFTYPE, token.CRATE, token.SUPER:
		return true
	}
	return false
}

func (p *Parser) parsePathSegment(typeContext bool) *syntax.PathSegment {
	start := p.token.Span.Start
	if !p.isSegmentName(p.token) {
		p.errorf(ErrUnexpectedToken, describe(p.token), "identifier")
	}
	seg := &syntax.PathSegment{Name: p.token.Literal}
	p.nextToken()

	switch {
	case p.check(token.PATHSEP) && p.checkPeek(token.LT):
		p.nextToken()
		seg.Args = p.parseGenericArgs()
	case typeContext && p.check(token.LT):
		seg.Args = p.parseGenericArgs()
	case typeContext && p.check(token.LPAREN):
		// Fn(A, B) -> C sugar.
		seg.Args = p.parseTypeList(token.LPAREN, token.RPAREN)
		if p.match(token.RARROW) {
			seg.Args = append(seg.Args, p.parseTypeNoBounds())
		}
	}

	seg.Base = p.base(start)
	return seg
}

// parseGenericArgs parses `<...>` generic arguments. Lifetimes and const
// arguments are consumed but not recorded.
func (p *Parser) parseGenericArgs() []*syntax.Ty {
	p.expect(token.LT)
	var args []*syntax.Ty
	for !p.checkCloseAngle() {
		switch {
		case p.check(token.LIFETIME):
			p.nextToken()
		case p.check(token.IDENT) && (p.checkPeek(token.ASSIGN) || p.checkPeek(token.COLON)):
			// Associated type binding `Item = T` or bound `Item: Trait`.
			p.nextToken()
			if p.match(token.COLON) {
				args = append(args, p.parseBounds()...)
			} else {
				p.nextToken()
				args = append(args, p.parseType())
			}
		case p.check(token.LBRACE):
			p.skipTokenTree()
		case p.check(token.INT) || p.check(token.FLOAT) || p.check(token.MINUS) ||
			p.check(token.TRUE) || p.check(token.FALSE) || p.check(token.CHAR) || p.check(token.STRING):
			p.parseUnary()
		default:
			args = append(args, p.parseType())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expectCloseAngle()
	return args
}

// parseTypeList parses `open type,* close`.
func (p *Parser) parseTypeList(open, closing token.TokenType) []*syntax.Ty {
	p.expect(open)
	var out []*syntax.Ty
	for !p.check(closing) {
		out = append(out, p.parseType())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(closing)
	return out
}

// parseType parses a type, including `impl A + B` / `dyn A + B` bounds.
func (p *Parser) parseType() *syntax.Ty {
	return p.parseTypeWith(true)
}

// parseTypeNoBounds parses a type where a trailing `+` is not part of it.
func (p *Parser) parseTypeNoBounds() *syntax.Ty {
	return p.parseTypeWith(false)
}

//nolint:gocyclo // one case per type form
func (p *Parser) parseTypeWith(allowPlus bool) *syntax.Ty {
	start := p.token.Span.Start
	ty := &syntax.Ty{}

	switch {
	case p.check(token.AMP) || p.check(token.ANDAND):
		double := p.check(token.ANDAND)
		p.nextToken()
		ty.Kind = syntax.TyRef
		if p.check(token.LIFETIME) {
			ty.Lifetime = p.token.Literal
			p.nextToken()
		}
		ty.Mutable = p.match(token.MUT)
		inner := p.parseTypeNoBounds()
		if double {
			inner = &syntax.Ty{Base: p.base(start), Kind: syntax.TyRef, Elems: []*syntax.Ty{inner}}
		}
		ty.Elems = []*syntax.Ty{inner}

	case p.check(token.STAR):
		p.nextToken()
		ty.Kind = syntax.TyPtr
		if !p.match(token.CONST) {
			ty.Mutable = p.match(token.MUT)
			if !ty.Mutable {
				p.errorf(ErrUnexpectedToken, describe(p.token), "`const` or `mut`")
			}
		}
		ty.Elems = []*syntax.Ty{p.parseTypeNoBounds()}

	case p.check(token.LPAREN):
		p.nextToken()
		ty.Kind = syntax.TyTuple
		trailingComma := false
		for !p.check(token.RPAREN) {
			ty.Elems = append(ty.Elems, p.parseType())
			trailingComma = p.match(token.COMMA)
			if !trailingComma {
				break
			}
		}
		p.expect(token.RPAREN)
		if len(ty.Elems) == 1 && !trailingComma {
			// Parenthesized type.
			inner := ty.Elems[0]
			inner.Loc = p.spanFrom(start)
			return inner
		}

	case p.check(token.LBRACKET):
		p.nextToken()
		ty.Kind = syntax.TySlice
		ty.Elems = []*syntax.Ty{p.parseType()}
		if p.match(token.SEMICOLON) {
			ty.Kind = syntax.TyArray
			ty.Len = p.parseExpr()
		}
		p.expect(token.RBRACKET)

	case p.check(token.BANG):
		p.nextToken()
		ty.Kind = syntax.TyNever

	case p.check(token.UNDERSCORE):
		p.nextToken()
		ty.Kind = syntax.TyInfer

	case p.check(token.IMPL):
		p.nextToken()
		ty.Kind = syntax.TyImpl
		p.fillBoundsType(ty, allowPlus)

	case p.checkIdent("dyn") && !p.checkPeek(token.PATHSEP):
		p.nextToken()
		ty.Kind = syntax.TyDyn
		p.fillBoundsType(ty, allowPlus)

	case p.check(token.FN) || p.check(token.UNSAFE) || p.checkIdent("extern"):
		p.match(token.UNSAFE)
		if p.checkIdent("extern") {
			p.nextToken()
			p.match(token.STRING)
		}
		p.expect(token.FN)
		ty.Kind = syntax.TyFn
		ty.Elems = p.parseFnPointerParams()
		if p.match(token.RARROW) {
			ty.Ret = p.parseTypeNoBounds()
		}

	case p.check(token.FOR) && p.checkPeek(token.LT):
		// Higher-ranked `for<'a> Fn(&'a T)`.
		p.nextToken()
		p.skipGenericParamsLoosely()
		return p.parseTypeWith(allowPlus)

	case p.check(token.LT):
		// Qualified path `<T as Trait>::Name`.
		p.nextToken()
		qself := p.parseType()
		ty.Elems = []*syntax.Ty{qself}
		if p.match(token.AS) {
			ty.Elems = append(ty.Elems, p.parseType())
		}
		p.expectCloseAngle()
		p.expect(token.PATHSEP)
		ty.Kind = syntax.TyPath
		ty.Path = p.parsePath(true)

	case p.isPathStart():
		ty.Kind = syntax.TyPath
		ty.Path = p.parsePath(true)
		if p.check(token.BANG) {
			// Type macro such as `vec_type!(...)`.
			p.nextToken()
			p.skipTokenTree()
		}

	default:
		p.errorf(ErrExpectedType, describe(p.token))
	}

	ty.Base = p.base(start)
	return ty
}

// parseFnPointerParams parses `(name: T, U, ...)` of a fn pointer type.
func (p *Parser) parseFnPointerParams() []*syntax.Ty {
	p.expect(token.LPAREN)
	var out []*syntax.Ty
	for !p.check(token.RPAREN) {
		if (p.check(token.IDENT) || p.check(token.UNDERSCORE)) && p.checkPeek(token.COLON) {
			p.nextToken()
			p.nextToken()
		}
		out = append(out, p.parseType())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return out
}

// fillBoundsType parses the bounds of an `impl`/`dyn` type. The first trait
// bound becomes the type's path; the rest are kept as elements.
func (p *Parser) fillBoundsType(ty *syntax.Ty, allowPlus bool) {
	var bounds []*syntax.Ty
	if allowPlus {
		bounds = p.parseBounds()
	} else if b := p.parseBound(); b != nil {
		bounds = []*syntax.Ty{b}
	}
	for _, b := range bounds {
		if ty.Path == nil && b.Kind == syntax.TyPath {
			ty.Path = b.Path
			continue
		}
		ty.Elems = append(ty.Elems, b)
	}
}

// parseBounds parses `bound + bound + ...`. Lifetime bounds are consumed but
// not recorded.
func (p *Parser) parseBounds() []*syntax.Ty {
	var out []*syntax.Ty
	for {
		if b := p.parseBound(); b != nil {
			out = append(out, b)
		}
		if !p.match(token.PLUS) {
			return out
		}
		if !p.isBoundStart() {
			return out
		}
	}
}

func (p *Parser) isBoundStart() bool {
	return p.isPathStart() || p.check(token.LIFETIME) || p.check(token.QUESTION) ||
		p.check(token.LPAREN) || p.check(token.FOR) || p.check(token.LT) || p.check(token.FN)
}

func (p *Parser) parseBound() *syntax.Ty {
	switch {
	case p.check(token.LIFETIME):
		p.nextToken()
		return nil
	case p.check(token.QUESTION):
		// ?Sized
		p.nextToken()
		return p.parseTypeNoBounds()
	case p.check(token.LPAREN):
		p.nextToken()
		b := p.parseBound()
		p.expect(token.RPAREN)
		return b
	default:
		return p.parseTypeNoBounds()
	}
}

// skipGenericParamsLoosely consumes a `<...>` list without building nodes.
func (p *Parser) skipGenericParamsLoosely() {
	p.expect(token.LT)
	depth := 1
	for depth > 0 {
		switch p.token.Type {
		case token.LT:
			depth++
		case token.GT:
			depth--
		case token.SHR:
			depth -= 2
		case token.EOF:
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(token.GT))
		}
		p.nextToken()
	}
}

// parseGenerics parses an optional generic parameter list.
func (p *Parser) parseGenerics() *syntax.Generics {
	if !p.check(token.LT) {
		return nil
	}
	start := p.token.Span.Start
	p.nextToken()

	g := &syntax.Generics{}
	for !p.checkCloseAngle() {
		p.skipAttributes()
		g.Params = append(g.Params, p.parseGenericParam())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expectCloseAngle()
	g.Base = p.base(start)
	return g
}

func (p *Parser) parseGenericParam() *syntax.GenericParam {
	start := p.token.Span.Start
	param := &syntax.GenericParam{}

	switch {
	case p.check(token.LIFETIME):
		param.Kind = syntax.GenericLifetime
		param.Name = p.token.Literal[1:]
		p.nextToken()
		if p.match(token.COLON) {
			for p.check(token.LIFETIME) {
				p.nextToken()
				if !p.match(token.PLUS) {
					break
				}
			}
		}

	case p.check(token.CONST):
		p.nextToken()
		param.Kind = syntax.GenericConst
		param.Name = p.expectIdent()
		p.expect(token.COLON)
		param.Type = p.parseType()
		if p.match(token.ASSIGN) {
			if p.check(token.LBRACE) {
				param.Value = p.parseBlockExpr()
			} else {
				param.Value = p.parseUnary()
			}
		}

	default:
		param.Kind = syntax.GenericType
		param.Name = p.expectIdent()
		if p.match(token.COLON) && !p.checkCloseAngle() && !p.check(token.COMMA) {
			param.Bounds = p.parseBounds()
		}
		if p.match(token.ASSIGN) {
			param.Default = p.parseType()
		}
	}

	param.Base = p.base(start)
	return param
}

// skipWhereClause consumes an optional `where` clause. Predicates are not
// recorded.
func (p *Parser) skipWhereClause() {
	if !p.match(token.WHERE) {
		return
	}
	for !p.check(token.LBRACE) && !p.check(token.SEMICOLON) && !p.check(token.EOF) && !p.check(token.ASSIGN) {
		if p.check(token.FOR) && p.checkPeek(token.LT) {
			p.nextToken()
			p.skipGenericParamsLoosely()
		}
		if p.check(token.LIFETIME) {
			p.nextToken()
		} else {
			p.parseType()
		}
		p.expect(token.COLON)
		if p.check(token.LIFETIME) {
			for p.check(token.LIFETIME) {
				p.nextToken()
				if !p.match(token.PLUS) {
					break
				}
			}
		} else if p.isBoundStart() {
			p.parseBounds()
		}
		if !p.match(token.COMMA) {
			break
		}
	}
}
