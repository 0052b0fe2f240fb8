// Package parser provides the reference front-end: a lexer and a recursive
// descent parser for the Rust-like surface language analyzed by earlylint.
//
// # Usage
//
//	file, err := parser.Parse("main.rs", src)
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
//	file      → item*
//	item      → attr* [vis] (fn | struct | enum | type | impl | trait | const | static | mod | use | macro)
//	block     → '{' stmt* '}'
//	stmt      → ';' | let | item | expr [';']
//	expr      → assign
//	assign    → range [('=' | op'=') assign]
//	range     → [binary] ('..' | '..=') [binary] | binary
//	binary    → unary (binop unary)*          (Rust precedence, `as` binds tightest)
//	unary     → ('-' | '!' | '*' | '&' ['mut']) unary | postfix
//	postfix   → primary ('?' | '.' name [args] | args | '[' expr ']')*
//
// See each file for the grammar rules of that section. The parser stops at
// the first error.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/earlylint/pkg/source"
	"github.com/leapstack-labs/earlylint/pkg/syntax"
	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Parser parses source text into a syntax tree.
type Parser struct {
	name    string
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	prevEnd token.Position
	errors  []error

	// noStruct disables struct literals in `if`/`while`/`match`/`for` heads.
	noStruct bool
}

// bailout unwinds the parser on the first error.
type bailout struct{}

// NewParser creates a new parser for the given input.
func NewParser(name, src string) *Parser {
	p := &Parser{
		name:  name,
		lexer: NewLexer(src),
	}
	// Read three tokens to initialize current, peek, and peek2
	p.advance()
	p.advance()
	p.advance()
	p.prevEnd = p.token.Span.Start
	return p
}

// Parse parses a whole source file.
func Parse(name, src string) (*syntax.File, error) {
	p := NewParser(name, src)
	var file *syntax.File
	err := p.run(func() {
		file = p.parseFile()
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

// ParseFile parses a loaded source file.
func ParseFile(f *source.File) (*syntax.File, error) {
	return Parse(f.Name, f.Text)
}

// ParseBlockBody parses a sequence of statements without surrounding
// braces, as typed at the REPL.
func ParseBlockBody(src string) (*syntax.Block, error) {
	p := NewParser("", src)
	var block *syntax.Block
	err := p.run(func() {
		start := p.token.Span.Start
		stmts := p.parseStmts(token.EOF)
		block = &syntax.Block{Base: syntax.Base{Loc: p.spanFrom(start)}, Stmts: stmts}
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (syntax.Expr, error) {
	p := NewParser("", src)
	var expr syntax.Expr
	err := p.run(func() {
		expr = p.parseExpr()
		if !p.check(token.EOF) {
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(token.EOF))
		}
	})
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// Comments returns the comments collected so far.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// run executes fn, converting a bailout into the first recorded error.
func (p *Parser) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			err = p.errors[0]
		}
	}()
	if p.token.Type == token.ILLEGAL {
		p.illegal()
	}
	fn()
	return nil
}

func (p *Parser) parseFile() *syntax.File {
	start := p.token.Span.Start
	items := p.parseItems(token.EOF)
	return &syntax.File{
		Base:     syntax.Base{Loc: token.Span{Start: start, End: p.token.Span.End}},
		Name:     p.name,
		Items:    items,
		Comments: p.lexer.Comments,
	}
}

// ---------- Token Helpers ----------

// advance shifts the token window by one.
func (p *Parser) advance() {
	p.prevEnd = p.token.Span.End
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.advance()
	if p.token.Type == token.ILLEGAL {
		p.illegal()
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// checkIdent returns true if the current token is the contextual keyword kw.
func (p *Parser) checkIdent(kw string) bool {
	return p.token.Type == token.IDENT && p.token.Literal == kw
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise fails.
func (p *Parser) expect(t token.TokenType) token.Token {
	tok := p.token
	if !p.check(t) {
		p.errorf(ErrUnexpectedToken, describe(p.token), describeType(t))
	}
	p.nextToken()
	return tok
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent() string {
	return p.expect(token.IDENT).Literal
}

// expectCloseAngle consumes a `>`, splitting `>>`, `>=` and `>>=` so that
// nested generic argument lists close one level at a time.
func (p *Parser) expectCloseAngle() {
	var rest token.TokenType
	switch p.token.Type {
	case token.GT:
		p.nextToken()
		return
	case token.SHR:
		rest = token.GT
	case token.GE:
		rest = token.ASSIGN
	case token.SHREQ:
		rest = token.GE
	default:
		p.errorf(ErrUnexpectedToken, describe(p.token), describeType(token.GT))
	}
	start := p.token.Span.Start
	start.Offset++
	start.Column++
	p.prevEnd = start
	p.token = token.Token{
		Type:    rest,
		Literal: p.token.Literal[1:],
		Span:    token.Span{Start: start, End: p.token.Span.End},
	}
}

// checkCloseAngle reports whether the current token begins with `>`.
func (p *Parser) checkCloseAngle() bool {
	switch p.token.Type {
	case token.GT, token.SHR, token.GE, token.SHREQ:
		return true
	}
	return false
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// base returns a node Base spanning from start to the last consumed token.
func (p *Parser) base(start token.Position) syntax.Base {
	return syntax.Base{Loc: p.spanFrom(start)}
}

// errorf records a parse error at the current token and bails out.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		File:    p.name,
		Pos:     p.token.Span.Start,
		Message: fmt.Sprintf(format, args...),
	})
	panic(bailout{})
}

// illegal reports an ILLEGAL token produced by the lexer.
func (p *Parser) illegal() {
	switch p.token.Literal {
	case ErrUnterminatedString, ErrUnterminatedChar:
		p.errorf("%s", p.token.Literal)
	default:
		p.errorf(ErrUnexpectedChar, p.token.Literal)
	}
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.CHAR, token.LIFETIME:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("`%s`", tok.Type)
	}
}

// describeType renders an expected token type for error messages.
func describeType(t token.TokenType) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "identifier"
	default:
		return fmt.Sprintf("`%s`", t)
	}
}

// skipTokenTree consumes a balanced delimited token tree starting at the
// current opening delimiter.
func (p *Parser) skipTokenTree() {
	var stack []token.TokenType
	for {
		switch p.token.Type {
		case token.LPAREN:
			stack = append(stack, token.RPAREN)
		case token.LBRACKET:
			stack = append(stack, token.RBRACKET)
		case token.LBRACE:
			stack = append(stack, token.RBRACE)
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1] != p.token.Type {
				p.errorf(ErrUnexpectedToken, describe(p.token), "matching delimiter")
			}
			stack = stack[:len(stack)-1]
		case token.EOF:
			p.errorf(ErrUnexpectedToken, describe(p.token), "closing delimiter")
		}
		p.nextToken()
		if len(stack) == 0 {
			return
		}
	}
}

// skipAttributes skips outer and inner attributes: `#[...]`, `#![...]`.
func (p *Parser) skipAttributes() {
	for p.check(token.POUND) {
		p.nextToken()
		p.match(token.BANG)
		if !p.check(token.LBRACKET) {
			p.errorf(ErrUnexpectedToken, describe(p.token), describeType(token.LBRACKET))
		}
		p.skipTokenTree()
	}
}
