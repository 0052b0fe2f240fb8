package parser

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Items.
//
//	item    → attr* [vis] item_kind
//	vis     → 'pub' ['(' ('crate' | 'super' | 'self' | 'in' path) ')']
//	fn      → ['const'] ['async'] ['unsafe'] ['extern' [string]] 'fn' name [generics]
//	          '(' params ')' ['->' type] [where] (block | ';')
//	struct  → 'struct' name [generics] [where] ('{' fields '}' | '(' types ')' ';' | ';')
//	enum    → 'enum' name [generics] [where] '{' variants '}'
//	impl    → ['unsafe'] 'impl' [generics] ['!'] type ['for' type] [where] '{' item* '}'
//	trait   → ['unsafe'] 'trait' name [generics] [':' bounds] [where] '{' item* '}'
//	type    → 'type' name [generics] [':' bounds] [where] ['=' type] ';'
//	const   → ('const' | 'static' ['mut']) name ':' type ['=' expr] ';'
//	mod     → 'mod' name ('{' item* '}' | ';')
//	use     → 'use' tree ';' | 'extern' 'crate' name ['as' name] ';'
//	macro   → path '!' [name] delimited [';']

// parseItems parses items until the closing token.
func (p *Parser) parseItems(closing token.TokenType) []syntax.Item {
	var items []syntax.Item
	for {
		p.skipAttributes()
		if p.check(closing) {
			return items
		}
		if p.check(token.EOF) {
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(closing))
		}
		if p.match(token.SEMICOLON) {
			continue
		}
		if item := p.parseItem(); item != nil {
			items = append(items, item)
		}
	}
}

// isItemStart reports whether the current token starts an item inside a
// block.
func (p *Parser) isItemStart() bool {
	switch p.token.Type {
	case token.FN, token.STRUCT, token.ENUM, token.TRAIT, token.IMPL, token.MOD,
		token.USE, token.STATIC, token.TYPE, token.PUB:
		return true
	case token.CONST:
		return p.checkPeek(token.IDENT) || p.checkPeek(token.UNDERSCORE) ||
			p.checkPeek(token.FN) || p.checkPeek(token.UNSAFE)
	case token.UNSAFE:
		return p.checkPeek(token.FN) || p.checkPeek(token.IMPL) || p.checkPeek(token.TRAIT)
	case token.IDENT:
		switch p.token.Literal {
		case "macro_rules":
			return p.checkPeek(token.BANG)
		case "async":
			return p.checkPeek(token.FN) || p.checkPeek(token.UNSAFE)
		case "extern":
			return true
		}
	}
	return false
}

// parseItem parses one item. It returns nil for items that carry nothing
// the engine inspects (extern blocks).
//
//nolint:gocyclo // one case per item kind
func (p *Parser) parseItem() syntax.Item {
	start := p.token.Span.Start
	p.skipAttributes()
	pub := p.parseVisibility()

	switch {
	case p.check(token.FN):
		return p.parseFn(start, pub, false, false)

	case p.check(token.CONST) && (p.checkPeek(token.FN) || p.checkPeek(token.UNSAFE) || p.checkPeek(token.IDENT) && p.peek.Literal == "async"):
		p.nextToken()
		p.skipIdent("async")
		unsafe := p.match(token.UNSAFE)
		p.skipExternABI()
		return p.parseFn(start, pub, true, unsafe)

	case p.checkIdent("async"):
		p.nextToken()
		unsafe := p.match(token.UNSAFE)
		p.skipExternABI()
		return p.parseFn(start, pub, false, unsafe)

	case p.check(token.UNSAFE) && p.checkPeek(token.IMPL):
		p.nextToken()
		return p.parseImpl(start)

	case p.check(token.UNSAFE) && p.checkPeek(token.TRAIT):
		p.nextToken()
		return p.parseTrait(start, pub)

	case p.check(token.UNSAFE):
		p.nextToken()
		p.skipExternABI()
		return p.parseFn(start, pub, false, true)

	case p.checkIdent("extern") && p.checkPeek(token.CRATE):
		p.skipToSemicolon()
		return &syntax.UseDecl{Base: p.base(start), Pub: pub}

	case p.checkIdent("extern") && (p.checkPeek(token.FN) || (p.checkPeek(token.STRING) && p.checkPeek2(token.FN))):
		p.skipExternABI()
		return p.parseFn(start, pub, false, false)

	case p.checkIdent("extern"):
		// extern "C" { ... }
		p.nextToken()
		p.match(token.STRING)
		if !p.check(token.LBRACE) {
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(token.LBRACE))
		}
		p.skipTokenTree()
		return nil

	case p.check(token.STRUCT):
		return p.parseStruct(start, pub)

	case p.checkIdent("union") && p.checkPeek(token.IDENT):
		return p.parseStruct(start, pub)

	case p.check(token.ENUM):
		return p.parseEnum(start, pub)

	case p.check(token.IMPL):
		return p.parseImpl(start)

	case p.check(token.TRAIT):
		return p.parseTrait(start, pub)

	case p.check(token.TYPE):
		return p.parseTypeAlias(start, pub)

	case p.check(token.CONST) || p.check(token.STATIC):
		return p.parseConst(start, pub)

	case p.check(token.MOD):
		return p.parseMod(start, pub)

	case p.check(token.USE):
		p.skipToSemicolon()
		return &syntax.UseDecl{Base: p.base(start), Pub: pub}

	case p.isPathStart():
		return p.parseMacroItem(start)
	}

	p.errorf(ErrExpectedItem, describe(p.token))
	return nil
}

// parseVisibility consumes an optional visibility qualifier.
func (p *Parser) parseVisibility() bool {
	if !p.match(token.PUB) {
		return false
	}
	if p.check(token.LPAREN) && (p.checkPeek(token.CRATE) || p.checkPeek(token.SUPER) ||
		p.checkPeek(token.SELFVALUE) || p.checkPeek(token.IN)) {
		p.skipTokenTree()
	}
	return true
}

func (p *Parser) skipIdent(kw string) {
	if p.checkIdent(kw) {
		p.nextToken()
	}
}

// skipExternABI consumes `extern "abi"`.
func (p *Parser) skipExternABI() {
	if p.checkIdent("extern") {
		p.nextToken()
		p.match(token.STRING)
	}
}

// skipToSemicolon consumes tokens up to and including the next `;` at the
// current nesting level.
func (p *Parser) skipToSemicolon() {
	for !p.check(token.SEMICOLON) {
		switch p.token.Type {
		case token.LBRACE, token.LPAREN, token.LBRACKET:
			p.skipTokenTree()
		case token.EOF:
			p.errorf(ErrExpectedSemicolon, describe(p.token))
		default:
			p.nextToken()
		}
	}
	p.nextToken()
}

func (p *Parser) parseFn(start token.Position, pub, isConst, unsafe bool) *syntax.FnDecl {
	p.expect(token.FN)
	fn := &syntax.FnDecl{Pub: pub, Const: isConst, Unsafe: unsafe}
	fn.Name = p.expectIdent()
	fn.Generics = p.parseGenerics()
	fn.Params = p.parseParams()
	if p.match(token.RARROW) {
		fn.Ret = p.parseTypeNoBounds()
	}
	p.skipWhereClause()
	if !p.match(token.SEMICOLON) {
		fn.Body = p.parseBlock()
	}
	fn.Base = p.base(start)
	return fn
}

// parseParams parses `(param, ...)`, including the `self` receiver forms.
func (p *Parser) parseParams() []*syntax.Param {
	p.expect(token.LPAREN)
	var params []*syntax.Param
	for !p.check(token.RPAREN) {
		p.skipAttributes()
		params = append(params, p.parseParam())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() *syntax.Param {
	start := p.token.Span.Start

	if p.isSelfParam() {
		for !p.check(token.SELFVALUE) {
			p.nextToken() // & 'a mut
		}
		p.nextToken()
		param := &syntax.Param{SelfParam: true}
		if p.match(token.COLON) {
			param.Type = p.parseType()
		}
		param.Base = p.base(start)
		return param
	}

	param := &syntax.Param{Pat: p.parsePatNoAlt()}
	p.expect(token.COLON)
	param.Type = p.parseType()
	param.Base = p.base(start)
	return param
}

// isSelfParam reports whether the current tokens spell a `self` receiver.
func (p *Parser) isSelfParam() bool {
	switch p.token.Type {
	case token.SELFVALUE:
		return true
	case token.MUT:
		return p.checkPeek(token.SELFVALUE)
	case token.AMP:
		switch p.peek.Type {
		case token.SELFVALUE:
			return true
		case token.MUT:
			return p.checkPeek2(token.SELFVALUE)
		case token.LIFETIME:
			return p.checkPeek2(token.SELFVALUE) || p.checkPeek2(token.MUT)
		}
	}
	return false
}

func (p *Parser) parseStruct(start token.Position, pub bool) *syntax.StructDecl {
	p.nextToken() // struct / union
	s := &syntax.StructDecl{Pub: pub}
	s.Name = p.expectIdent()
	s.Generics = p.parseGenerics()
	p.skipWhereClause()

	switch {
	case p.match(token.SEMICOLON):
		s.Unit = true
	case p.check(token.LPAREN):
		s.Tuple = true
		s.Fields = p.parseTupleFields()
		p.skipWhereClause()
		p.expect(token.SEMICOLON)
	default:
		s.Fields = p.parseNamedFields()
	}
	s.Base = p.base(start)
	return s
}

func (p *Parser) parseNamedFields() []*syntax.StructField {
	p.expect(token.LBRACE)
	var fields []*syntax.StructField
	for !p.check(token.RBRACE) {
		p.skipAttributes()
		fstart := p.token.Span.Start
		f := &syntax.StructField{Pub: p.parseVisibility()}
		f.Name = p.expectIdent()
		p.expect(token.COLON)
		f.Type = p.parseType()
		f.Base = p.base(fstart)
		fields = append(fields, f)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return fields
}

func (p *Parser) parseTupleFields() []*syntax.StructField {
	p.expect(token.LPAREN)
	var fields []*syntax.StructField
	for !p.check(token.RPAREN) {
		p.skipAttributes()
		fstart := p.token.Span.Start
		f := &syntax.StructField{Pub: p.parseVisibility()}
		f.Type = p.parseType()
		f.Base = p.base(fstart)
		fields = append(fields, f)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return fields
}

func (p *Parser) parseEnum(start token.Position, pub bool) *syntax.EnumDecl {
	p.expect(token.ENUM)
	e := &syntax.EnumDecl{Pub: pub}
	e.Name = p.expectIdent()
	e.Generics = p.parseGenerics()
	p.skipWhereClause()

	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) {
		p.skipAttributes()
		vstart := p.token.Span.Start
		v := &syntax.Variant{Name: p.expectIdent()}
		switch {
		case p.check(token.LPAREN):
			v.Tuple = true
			v.Fields = p.parseTupleFields()
		case p.check(token.LBRACE):
			v.Fields = p.parseNamedFields()
		}
		if p.match(token.ASSIGN) {
			v.Discriminant = p.parseExpr()
		}
		v.Base = p.base(vstart)
		e.Variants = append(e.Variants, v)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	e.Base = p.base(start)
	return e
}

func (p *Parser) parseImpl(start token.Position) *syntax.ImplBlock {
	p.expect(token.IMPL)
	impl := &syntax.ImplBlock{}
	// `impl<T>` generics vs `impl <T as Trait>::X`; the latter is rare
	// enough to ignore.
	impl.Generics = p.parseGenerics()
	p.match(token.CONST)
	p.match(token.BANG)

	first := p.parseTypeNoBounds()
	if p.match(token.FOR) {
		impl.Trait = first
		impl.SelfType = p.parseTypeNoBounds()
	} else {
		impl.SelfType = first
	}
	p.skipWhereClause()

	p.expect(token.LBRACE)
	impl.Items = p.parseItems(token.RBRACE)
	p.expect(token.RBRACE)
	impl.Base = p.base(start)
	return impl
}

func (p *Parser) parseTrait(start token.Position, pub bool) *syntax.TraitDecl {
	p.expect(token.TRAIT)
	t := &syntax.TraitDecl{Pub: pub}
	t.Name = p.expectIdent()
	t.Generics = p.parseGenerics()
	if p.match(token.COLON) {
		p.parseBounds()
	}
	p.skipWhereClause()

	p.expect(token.LBRACE)
	t.Items = p.parseItems(token.RBRACE)
	p.expect(token.RBRACE)
	t.Base = p.base(start)
	return t
}

func (p *Parser) parseTypeAlias(start token.Position, pub bool) *syntax.TypeAlias {
	p.expect(token.TYPE)
	alias := &syntax.TypeAlias{Pub: pub}
	alias.Name = p.expectIdent()
	alias.Generics = p.parseGenerics()
	if p.match(token.COLON) {
		p.parseBounds()
	}
	p.skipWhereClause()
	if p.match(token.ASSIGN) {
		alias.Type = p.parseType()
	}
	p.skipWhereClause()
	p.expect(token.SEMICOLON)
	alias.Base = p.base(start)
	return alias
}

func (p *Parser) parseConst(start token.Position, pub bool) *syntax.ConstItem {
	c := &syntax.ConstItem{Pub: pub}
	if p.match(token.STATIC) {
		c.Static = true
		c.Mutable = p.match(token.MUT)
	} else {
		p.expect(token.CONST)
	}
	if p.match(token.UNDERSCORE) {
		c.Name = "_"
	} else {
		c.Name = p.expectIdent()
	}
	if p.match(token.COLON) {
		c.Type = p.parseType()
	}
	if p.match(token.ASSIGN) {
		c.Value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	c.Base = p.base(start)
	return c
}

func (p *Parser) parseMod(start token.Position, pub bool) *syntax.ModDecl {
	p.expect(token.MOD)
	m := &syntax.ModDecl{Pub: pub, Name: p.expectIdent()}
	if !p.match(token.SEMICOLON) {
		p.expect(token.LBRACE)
		m.Items = p.parseItems(token.RBRACE)
		p.expect(token.RBRACE)
	}
	m.Base = p.base(start)
	return m
}

// parseMacroItem parses an item-position macro invocation such as
// `macro_rules! name { ... }` or `thread_local! { ... }`.
func (p *Parser) parseMacroItem(start token.Position) *syntax.MacroItem {
	path := p.parsePath(false)
	p.expect(token.BANG)
	if p.check(token.IDENT) {
		p.nextToken()
	}
	delim := p.token.Type
	if delim != token.LPAREN && delim != token.LBRACKET && delim != token.LBRACE {
		p.errorf(ErrUnexpectedToken, describe(p.token), "macro delimiter")
	}
	p.skipTokenTree()
	if delim != token.LBRACE {
		p.expect(token.SEMICOLON)
	}
	return &syntax.MacroItem{Base: p.base(start), Path: path}
}
