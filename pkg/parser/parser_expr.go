package parser

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Binary precedence levels (lowest to highest):
//
//	precOrOr    = 1  (||)
//	precAndAnd  = 2  (&&)
//	precCompare = 3  (== != < > <= >=)
//	precBitOr   = 4  (|)
//	precBitXor  = 5  (^)
//	precBitAnd  = 6  (&)
//	precShift   = 7  (<< >>)
//	precAdd     = 8  (+ -)
//	precMul     = 9  (* / %)
//	precCast    = 10 (as)
//
// Assignment and ranges sit below all binary operators; unary operators and
// postfix forms bind tighter than `as`.
const (
	precNone = iota
	precOrOr
	precAndAnd
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precCast
)

// binaryPrecedence returns the precedence of t as an infix operator.
func binaryPrecedence(t token.TokenType) int {
	switch t {
	case token.OROR:
		return precOrOr
	case token.ANDAND:
		return precAndAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return precCompare
	case token.PIPE:
		return precBitOr
	case token.CARET:
		return precBitXor
	case token.AMP:
		return precBitAnd
	case token.SHL, token.SHR:
		return precShift
	case token.PLUS, token.MINUS:
		return precAdd
	case token.STAR, token.SLASH, token.PERCENT:
		return precMul
	case token.AS:
		return precCast
	default:
		return precNone
	}
}

// compoundAssignOps maps compound assignment tokens to their operators.
var compoundAssignOps = map[token.TokenType]token.TokenType{
	token.PLUSEQ:    token.PLUS,
	token.MINUSEQ:   token.MINUS,
	token.STAREQ:    token.STAR,
	token.SLASHEQ:   token.SLASH,
	token.PERCENTEQ: token.PERCENT,
	token.CARETEQ:   token.CARET,
	token.AMPEQ:     token.AMP,
	token.PIPEEQ:    token.PIPE,
	token.SHLEQ:     token.SHL,
	token.SHREQ:     token.SHR,
}

// canBeginExpr reports whether tok can start an expression.
func canBeginExpr(tok token.Token) bool {
	switch tok.Type {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE,
		token.IDENT, token.SELFVALUE, token.SELFTYPE, token.CRATE, token.SUPER, token.PATHSEP,
		token.LPAREN, token.LBRACKET, token.LBRACE,
		token.MINUS, token.BANG, token.STAR, token.AMP, token.ANDAND,
		token.PIPE, token.OROR, token.MOVE,
		token.IF, token.MATCH, token.WHILE, token.LOOP, token.FOR, token.UNSAFE,
		token.RETURN, token.BREAK, token.CONTINUE,
		token.DOTDOT, token.DOTDOTEQ, token.LIFETIME, token.LT, token.UNDERSCORE:
		return true
	}
	return false
}

// parseExpr parses a full expression including assignment.
func (p *Parser) parseExpr() syntax.Expr {
	start := p.token.Span.Start
	lhs := p.parseRange()

	if p.match(token.ASSIGN) {
		rhs := p.parseExpr()
		return &syntax.Assign{Base: p.base(start), LHS: lhs, RHS: rhs}
	}
	if op, ok := compoundAssignOps[p.token.Type]; ok {
		p.nextToken()
		rhs := p.parseExpr()
		return &syntax.AssignOp{Base: p.base(start), Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs
}

// parseExprNoStruct parses an expression with struct literals disabled.
func (p *Parser) parseExprNoStruct() syntax.Expr {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

// parseExprAllowStruct parses an expression inside delimiters, where struct
// literals are allowed again.
func (p *Parser) parseExprAllowStruct() syntax.Expr {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

// parseRange parses `lo..hi`, `lo..`, `..hi`, `..` and the inclusive forms.
func (p *Parser) parseRange() syntax.Expr {
	start := p.token.Span.Start

	var lo syntax.Expr
	if !p.check(token.DOTDOT) && !p.check(token.DOTDOTEQ) {
		lo = p.parseBinary(precOrOr)
		if !p.check(token.DOTDOT) && !p.check(token.DOTDOTEQ) {
			return lo
		}
	}

	inclusive := p.check(token.DOTDOTEQ)
	p.nextToken()
	var hi syntax.Expr
	if canBeginExpr(p.token) && !(p.noStruct && p.check(token.LBRACE)) {
		hi = p.parseBinary(precOrOr)
	}
	return &syntax.Range{Base: p.base(start), Lo: lo, Hi: hi, Inclusive: inclusive}
}

// parseBinary implements precedence climbing over binary operators.
func (p *Parser) parseBinary(minPrec int) syntax.Expr {
	start := p.token.Span.Start
	left := p.parseUnary()

	for {
		prec := binaryPrecedence(p.token.Type)
		if prec == precNone || prec < minPrec {
			return left
		}

		if p.match(token.AS) {
			ty := p.parseTypeNoBounds()
			left = &syntax.Cast{Base: p.base(start), X: left, Type: ty}
			continue
		}

		op := p.token.Type
		p.nextToken()
		right := p.parseBinary(prec + 1)
		left = &syntax.Binary{Base: p.base(start), Op: op, X: left, Y: right}
	}
}

// parseUnary parses prefix operators.
func (p *Parser) parseUnary() syntax.Expr {
	start := p.token.Span.Start

	switch p.token.Type {
	case token.MINUS:
		p.nextToken()
		x := p.parseUnary()
		return &syntax.Unary{Base: p.base(start), Op: syntax.UnNeg, X: x}

	case token.BANG:
		p.nextToken()
		x := p.parseUnary()
		return &syntax.Unary{Base: p.base(start), Op: syntax.UnNot, X: x}

	case token.STAR:
		p.nextToken()
		x := p.parseUnary()
		return &syntax.Unary{Base: p.base(start), Op: syntax.UnDeref, X: x}

	case token.AMP, token.ANDAND:
		double := p.check(token.ANDAND)
		p.nextToken()
		mutable := p.match(token.MUT)
		x := p.parseUnary()
		if double {
			x = &syntax.Ref{Base: p.base(start), Mutable: mutable, X: x}
			mutable = false
		}
		return &syntax.Ref{Base: p.base(start), Mutable: mutable, X: x}

	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

// parsePostfix parses `?`, method calls, field access, calls and indexing.
func (p *Parser) parsePostfix(x syntax.Expr) syntax.Expr {
	start := x.Pos()

	for {
		switch p.token.Type {
		case token.QUESTION:
			p.nextToken()
			x = &syntax.Try{Base: p.base(start), X: x}

		case token.DOT:
			p.nextToken()
			x = p.parseDotSuffix(start, x)

		case token.LPAREN:
			args := p.parseCallArgs()
			x = &syntax.Call{Base: p.base(start), Fun: x, Args: args}

		case token.LBRACKET:
			p.nextToken()
			idx := p.parseExprAllowStruct()
			p.expect(token.RBRACKET)
			x = &syntax.Index{Base: p.base(start), X: x, Index: idx}

		default:
			return x
		}
	}
}

// parseDotSuffix parses what follows a `.`: a method call, a named field or a
// tuple index.
func (p *Parser) parseDotSuffix(start token.Position, x syntax.Expr) syntax.Expr {
	switch p.token.Type {
	case token.IDENT:
		name := p.token.Literal
		p.nextToken()
		if p.check(token.PATHSEP) && p.checkPeek(token.LT) {
			p.nextToken()
			p.parseGenericArgs()
		}
		if p.check(token.LPAREN) {
			args := p.parseCallArgs()
			return &syntax.MethodCall{Base: p.base(start), Recv: x, Method: name, Args: args}
		}
		return &syntax.Field{Base: p.base(start), X: x, Name: name}

	case token.INT:
		name := p.token.Literal
		p.nextToken()
		return &syntax.Field{Base: p.base(start), X: x, Name: name}

	case token.FLOAT:
		// `t.0.1` lexes the indices as one float literal.
		lit := p.token.Literal
		tokStart := p.token.Span.Start
		p.nextToken()
		for i := 0; i < len(lit); i++ {
			if lit[i] != '.' {
				continue
			}
			mid := tokStart
			mid.Offset += i
			mid.Column += i
			first := &syntax.Field{Base: syntax.Base{Loc: token.Span{Start: start, End: mid}}, X: x, Name: lit[:i]}
			return &syntax.Field{Base: p.base(start), X: first, Name: lit[i+1:]}
		}
		return &syntax.Field{Base: p.base(start), X: x, Name: lit}

	default:
		p.errorf(ErrUnexpectedToken, describe(p.token), "field or method name")
		return nil
	}
}

// parseCallArgs parses `(expr, ...)`.
func (p *Parser) parseCallArgs() []syntax.Expr {
	p.expect(token.LPAREN)
	var args []syntax.Expr
	for !p.check(token.RPAREN) {
		args = append(args, p.parseExprAllowStruct())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parsePrimary parses literals, paths, groups and block-like expressions.
//
//nolint:gocyclo // one case per primary form
func (p *Parser) parsePrimary() syntax.Expr {
	start := p.token.Span.Start

	switch p.token.Type {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE:
		return p.parseLiteral()

	case token.LPAREN:
		return p.parseParenOrTuple()

	case token.LBRACKET:
		return p.parseArray()

	case token.LBRACE, token.UNSAFE:
		return p.parseBlockExpr()

	case token.IF:
		return p.parseIf()

	case token.MATCH:
		return p.parseMatch()

	case token.WHILE, token.LOOP, token.FOR:
		return p.parseLoop("")

	case token.LIFETIME:
		if !p.checkPeek(token.COLON) {
			p.errorf(ErrExpectedExpr, describe(p.token))
		}
		label := p.token.Literal
		p.nextToken()
		p.nextToken()
		if p.check(token.LBRACE) {
			return p.parseBlockExpr()
		}
		return p.parseLoop(label)

	case token.PIPE, token.OROR, token.MOVE:
		return p.parseClosure()

	case token.RETURN:
		p.nextToken()
		ret := &syntax.Return{}
		if canBeginExpr(p.token) && !(p.noStruct && p.check(token.LBRACE)) {
			ret.X = p.parseExpr()
		}
		ret.Base = p.base(start)
		return ret

	case token.BREAK:
		p.nextToken()
		brk := &syntax.Break{}
		if p.check(token.LIFETIME) {
			brk.Label = p.token.Literal
			p.nextToken()
		}
		if canBeginExpr(p.token) && !(p.noStruct && p.check(token.LBRACE)) {
			brk.X = p.parseExpr()
		}
		brk.Base = p.base(start)
		return brk

	case token.CONTINUE:
		p.nextToken()
		cont := &syntax.Continue{}
		if p.check(token.LIFETIME) {
			cont.Label = p.token.Literal
			p.nextToken()
		}
		cont.Base = p.base(start)
		return cont

	case token.UNDERSCORE:
		p.nextToken()
		return &syntax.Path{
			Base:     p.base(start),
			Segments: []*syntax.PathSegment{{Base: p.base(start), Name: "_"}},
		}

	case token.LT:
		// Qualified path expression `<T as Trait>::f`.
		ty := p.parseTypeNoBounds()
		return ty.Path

	default:
		if p.isPathStart() {
			return p.parsePathExpr()
		}
	}

	p.errorf(ErrExpectedExpr, describe(p.token))
	return nil
}

// parsePathExpr parses a path, a macro invocation or a struct literal.
func (p *Parser) parsePathExpr() syntax.Expr {
	start := p.token.Span.Start
	path := p.parsePath(false)

	switch {
	case p.check(token.BANG) && (p.checkPeek(token.LPAREN) || p.checkPeek(token.LBRACKET) || p.checkPeek(token.LBRACE)):
		p.nextToken()
		delim := p.token.Type
		p.skipTokenTree()
		return &syntax.MacroCall{Base: p.base(start), Path: path, Delim: delim}

	case p.check(token.LBRACE) && !p.noStruct && p.looksLikeStructLit():
		return p.parseStructLit(start, path)
	}
	return path
}

// looksLikeStructLit reports whether the `{` at the current token opens a
// struct literal body rather than a block.
func (p *Parser) looksLikeStructLit() bool {
	switch p.peek.Type {
	case token.RBRACE, token.DOTDOT:
		return true
	case token.IDENT, token.INT:
		return p.checkPeek2(token.COLON) || p.checkPeek2(token.COMMA) || p.checkPeek2(token.RBRACE)
	}
	return false
}

func (p *Parser) parseStructLit(start token.Position, path *syntax.Path) *syntax.StructLit {
	lit := &syntax.StructLit{Path: path}
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) {
		if p.match(token.DOTDOT) {
			if !p.check(token.RBRACE) {
				lit.Rest = p.parseExpr()
			}
			break
		}
		fstart := p.token.Span.Start
		field := &syntax.FieldInit{Name: p.token.Literal}
		if !p.check(token.IDENT) && !p.check(token.INT) {
			p.errorf(ErrUnexpectedToken, describe(p.token), "field name")
		}
		p.nextToken()
		if p.match(token.COLON) {
			field.Value = p.parseExpr()
		} else {
			field.Shorthand = true
		}
		field.Base = p.base(fstart)
		lit.Fields = append(lit.Fields, field)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	lit.Base = p.base(start)
	return lit
}

func (p *Parser) parseParenOrTuple() syntax.Expr {
	start := p.token.Span.Start
	p.expect(token.LPAREN)

	var elems []syntax.Expr
	trailingComma := false
	for !p.check(token.RPAREN) {
		elems = append(elems, p.parseExprAllowStruct())
		trailingComma = p.match(token.COMMA)
		if !trailingComma {
			break
		}
	}
	p.expect(token.RPAREN)

	if len(elems) == 1 && !trailingComma {
		return &syntax.Paren{Base: p.base(start), X: elems[0]}
	}
	return &syntax.Tuple{Base: p.base(start), Elems: elems}
}

func (p *Parser) parseArray() syntax.Expr {
	start := p.token.Span.Start
	p.expect(token.LBRACKET)

	arr := &syntax.Array{}
	for !p.check(token.RBRACKET) {
		arr.Elems = append(arr.Elems, p.parseExprAllowStruct())
		if len(arr.Elems) == 1 && p.match(token.SEMICOLON) {
			arr.Repeat = p.parseExprAllowStruct()
			break
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	arr.Base = p.base(start)
	return arr
}

// parseBlockExpr parses `{ ... }` or `unsafe { ... }`.
func (p *Parser) parseBlockExpr() *syntax.BlockExpr {
	start := p.token.Span.Start
	unsafe := p.match(token.UNSAFE)
	block := p.parseBlock()
	return &syntax.BlockExpr{Base: p.base(start), Unsafe: unsafe, Block: block}
}

// parseCond parses an `if`/`while` condition, which may be a `let` chain.
func (p *Parser) parseCond() syntax.Expr {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()

	start := p.token.Span.Start
	cond := p.parseCondOperand()
	for p.check(token.ANDAND) {
		p.nextToken()
		rhs := p.parseCondOperand()
		cond = &syntax.Binary{Base: p.base(start), Op: token.ANDAND, X: cond, Y: rhs}
	}
	return cond
}

func (p *Parser) parseCondOperand() syntax.Expr {
	start := p.token.Span.Start
	if !p.match(token.LET) {
		return p.parseBinary(precOrOr)
	}
	pat := p.parsePat()
	p.expect(token.ASSIGN)
	x := p.parseBinary(precCompare)
	return &syntax.LetExpr{Base: p.base(start), Pat: pat, X: x}
}

func (p *Parser) parseIf() *syntax.If {
	start := p.token.Span.Start
	p.expect(token.IF)

	n := &syntax.If{}
	n.Cond = p.parseCond()
	n.Then = p.parseBlock()
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlockExpr()
		}
	}
	n.Base = p.base(start)
	return n
}

func (p *Parser) parseMatch() *syntax.Match {
	start := p.token.Span.Start
	p.expect(token.MATCH)

	m := &syntax.Match{X: p.parseExprNoStruct()}
	p.expect(token.LBRACE)
	for !p.check(token.RBRACE) {
		p.skipAttributes()
		m.Arms = append(m.Arms, p.parseArm())
	}
	p.expect(token.RBRACE)
	m.Base = p.base(start)
	return m
}

func (p *Parser) parseArm() *syntax.Arm {
	start := p.token.Span.Start
	arm := &syntax.Arm{Pat: p.parsePat()}
	if p.match(token.IF) {
		arm.Guard = p.parseExprAllowStruct()
	}
	p.expect(token.FATARROW)

	blockBody := p.check(token.LBRACE) || (p.check(token.UNSAFE) && p.checkPeek(token.LBRACE))
	arm.Body = p.parseExprAllowStruct()
	arm.Base = p.base(start)

	if !p.match(token.COMMA) && !blockBody && !p.check(token.RBRACE) {
		p.errorf(ErrUnexpectedToken, describe(p.token), "`,` or `}`")
	}
	return arm
}

// parseLoop parses `while`, `loop` and `for` with an optional label.
func (p *Parser) parseLoop(label string) syntax.Expr {
	start := p.token.Span.Start

	switch p.token.Type {
	case token.WHILE:
		p.nextToken()
		cond := p.parseCond()
		body := p.parseBlock()
		return &syntax.While{Base: p.base(start), Label: label, Cond: cond, Body: body}

	case token.LOOP:
		p.nextToken()
		body := p.parseBlock()
		return &syntax.Loop{Base: p.base(start), Label: label, Body: body}

	case token.FOR:
		p.nextToken()
		pat := p.parsePat()
		p.expect(token.IN)
		iter := p.parseExprNoStruct()
		body := p.parseBlock()
		return &syntax.For{Base: p.base(start), Label: label, Pat: pat, Iter: iter, Body: body}
	}

	p.errorf(ErrUnexpectedToken, describe(p.token), "loop")
	return nil
}

// parseClosure parses `[move] |params| [-> T] body`.
func (p *Parser) parseClosure() *syntax.Closure {
	start := p.token.Span.Start
	c := &syntax.Closure{Move: p.match(token.MOVE)}

	if !p.match(token.OROR) {
		p.expect(token.PIPE)
		for !p.check(token.PIPE) {
			pstart := p.token.Span.Start
			param := &syntax.ClosureParam{Pat: p.parsePatNoAlt()}
			if p.match(token.COLON) {
				param.Type = p.parseTypeNoBounds()
			}
			param.Base = p.base(pstart)
			c.Params = append(c.Params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.PIPE)
	}

	if p.match(token.RARROW) {
		c.Ret = p.parseTypeNoBounds()
		c.Body = p.parseBlockExpr()
	} else {
		c.Body = p.parseExpr()
	}
	c.Base = p.base(start)
	return c
}
