package parser

import (
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Blocks and statements.
//
//	block → '{' stmt* '}'
//	stmt  → ';'
//	      | 'let' pat [':' type] ['=' expr ['else' block]] ';'
//	      | item
//	      | block_like_expr [';']
//	      | expr ';'
//	      | expr            (tail expression, before '}')

// parseBlock parses a brace-delimited block.
func (p *Parser) parseBlock() *syntax.Block {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	start := p.token.Span.Start
	p.expect(token.LBRACE)
	stmts := p.parseStmts(token.RBRACE)
	p.expect(token.RBRACE)
	return &syntax.Block{Base: p.base(start), Stmts: stmts}
}

// parseStmts parses statements until the closing token.
func (p *Parser) parseStmts(closing token.TokenType) []syntax.Stmt {
	var stmts []syntax.Stmt
	for {
		p.skipAttributes()
		if p.check(closing) {
			return stmts
		}
		if p.check(token.EOF) {
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(closing))
		}
		stmts = append(stmts, p.parseStmt(closing))
	}
}

func (p *Parser) parseStmt(closing token.TokenType) syntax.Stmt {
	start := p.token.Span.Start

	switch {
	case p.check(token.SEMICOLON):
		p.nextToken()
		return &syntax.EmptyStmt{Base: p.base(start)}

	case p.check(token.LET):
		return p.parseLetStmt()

	case p.isItemStart():
		item := p.parseItem()
		return &syntax.ItemStmt{Base: p.base(start), Item: item}

	case p.isBlockLikeStart():
		x := p.parsePrimary()
		if p.check(token.DOT) || p.check(token.QUESTION) {
			x = p.parsePostfix(x)
		}
		if p.match(token.SEMICOLON) {
			return &syntax.SemiStmt{Base: p.base(start), X: x}
		}
		if p.isContinuation() {
			// `match x { .. } + 1` style: continue as a binary operand.
			x = p.continueBinary(start, x)
			return p.finishExprStmt(start, x, closing)
		}
		return &syntax.ExprStmt{Base: p.base(start), X: x}
	}

	x := p.parseExpr()
	return p.finishExprStmt(start, x, closing)
}

// finishExprStmt wraps x as a semicolon statement or a tail expression.
func (p *Parser) finishExprStmt(start token.Position, x syntax.Expr, closing token.TokenType) syntax.Stmt {
	if p.match(token.SEMICOLON) {
		return &syntax.SemiStmt{Base: p.base(start), X: x}
	}
	if mc, ok := x.(*syntax.MacroCall); ok && mc.Delim == token.LBRACE {
		return &syntax.ExprStmt{Base: p.base(start), X: x}
	}
	if !p.check(closing) {
		p.errorf(ErrExpectedSemicolon, describe(p.token))
	}
	return &syntax.ExprStmt{Base: p.base(start), X: x}
}

// isContinuation reports whether a binary or assignment operator follows a
// block-like expression in statement position.
func (p *Parser) isContinuation() bool {
	switch p.token.Type {
	case token.ASSIGN, token.AS:
		return true
	case token.STAR, token.MINUS, token.AMP, token.ANDAND, token.OROR, token.PIPE:
		// Prefix-capable operators start a new statement.
		return false
	}
	if _, ok := compoundAssignOps[p.token.Type]; ok {
		return true
	}
	return binaryPrecedence(p.token.Type) != precNone
}

// continueBinary parses the rest of an expression whose first operand has
// already been parsed.
func (p *Parser) continueBinary(start token.Position, left syntax.Expr) syntax.Expr {
	for {
		prec := binaryPrecedence(p.token.Type)
		if prec == precNone {
			break
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
	if p.match(token.ASSIGN) {
		rhs := p.parseExpr()
		return &syntax.Assign{Base: p.base(start), LHS: left, RHS: rhs}
	}
	if op, ok := compoundAssignOps[p.token.Type]; ok {
		p.nextToken()
		rhs := p.parseExpr()
		return &syntax.AssignOp{Base: p.base(start), Op: op, LHS: left, RHS: rhs}
	}
	return left
}

// isBlockLikeStart reports whether the current token starts an expression
// that may end a statement without a semicolon.
func (p *Parser) isBlockLikeStart() bool {
	switch p.token.Type {
	case token.LBRACE, token.IF, token.MATCH, token.WHILE, token.LOOP, token.FOR:
		return true
	case token.UNSAFE:
		return p.checkPeek(token.LBRACE)
	case token.LIFETIME:
		return p.checkPeek(token.COLON)
	}
	return false
}

func (p *Parser) parseLetStmt() *syntax.LetStmt {
	start := p.token.Span.Start
	p.expect(token.LET)

	stmt := &syntax.LetStmt{Pat: p.parsePat()}
	if p.match(token.COLON) {
		stmt.Type = p.parseType()
	}
	if p.match(token.ASSIGN) {
		stmt.Init = p.parseExpr()
		if p.match(token.ELSE) {
			stmt.Else = p.parseBlock()
		}
	}
	p.expect(token.SEMICOLON)
	stmt.Base = p.base(start)
	return stmt
}
