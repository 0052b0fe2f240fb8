package parser

import (
	"strings"

	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Lexer tokenizes source text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch (1-based, bytes)

	// Comments collected during lexing (for allow directives)
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos > 0 {
		if l.ch == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekCharN(1)
}

// peekCharN returns the character n positions after the current one.
func (l *Lexer) peekCharN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.currentPos()
	tok := l.scan()
	tok.Span = token.Span{Start: start, End: l.currentPos()}
	return tok
}

// op consumes n characters and returns an operator token.
func (l *Lexer) op(t token.TokenType, n int) token.Token {
	lit := l.input[l.pos : l.pos+n]
	for range n {
		l.readChar()
	}
	return token.Token{Type: t, Literal: lit}
}

func (l *Lexer) scan() token.Token {
	if l.atEOF() {
		return token.Token{Type: token.EOF}
	}

	switch l.ch {
	case '+':
		if l.peekChar() == '=' {
			return l.op(token.PLUSEQ, 2)
		}
		return l.op(token.PLUS, 1)
	case '-':
		switch l.peekChar() {
		case '=':
			return l.op(token.MINUSEQ, 2)
		case '>':
			return l.op(token.RARROW, 2)
		}
		return l.op(token.MINUS, 1)
	case '*':
		if l.peekChar() == '=' {
			return l.op(token.STAREQ, 2)
		}
		return l.op(token.STAR, 1)
	case '/':
		if l.peekChar() == '=' {
			return l.op(token.SLASHEQ, 2)
		}
		return l.op(token.SLASH, 1)
	case '%':
		if l.peekChar() == '=' {
			return l.op(token.PERCENTEQ, 2)
		}
		return l.op(token.PERCENT, 1)
	case '^':
		if l.peekChar() == '=' {
			return l.op(token.CARETEQ, 2)
		}
		return l.op(token.CARET, 1)
	case '!':
		if l.peekChar() == '=' {
			return l.op(token.NE, 2)
		}
		return l.op(token.BANG, 1)
	case '&':
		switch l.peekChar() {
		case '&':
			return l.op(token.ANDAND, 2)
		case '=':
			return l.op(token.AMPEQ, 2)
		}
		return l.op(token.AMP, 1)
	case '|':
		switch l.peekChar() {
		case '|':
			return l.op(token.OROR, 2)
		case '=':
			return l.op(token.PIPEEQ, 2)
		}
		return l.op(token.PIPE, 1)
	case '<':
		switch {
		case l.peekChar() == '<' && l.peekCharN(2) == '=':
			return l.op(token.SHLEQ, 3)
		case l.peekChar() == '<':
			return l.op(token.SHL, 2)
		case l.peekChar() == '=':
			return l.op(token.LE, 2)
		}
		return l.op(token.LT, 1)
	case '>':
		switch {
		case l.peekChar() == '>' && l.peekCharN(2) == '=':
			return l.op(token.SHREQ, 3)
		case l.peekChar() == '>':
			return l.op(token.SHR, 2)
		case l.peekChar() == '=':
			return l.op(token.GE, 2)
		}
		return l.op(token.GT, 1)
	case '=':
		switch l.peekChar() {
		case '=':
			return l.op(token.EQ, 2)
		case '>':
			return l.op(token.FATARROW, 2)
		}
		return l.op(token.ASSIGN, 1)
	case '.':
		switch {
		case l.peekChar() == '.' && l.peekCharN(2) == '=':
			return l.op(token.DOTDOTEQ, 3)
		case l.peekChar() == '.' && l.peekCharN(2) == '.':
			return l.op(token.DOTDOT, 3) // `...` in legacy range patterns
		case l.peekChar() == '.':
			return l.op(token.DOTDOT, 2)
		}
		return l.op(token.DOT, 1)
	case ':':
		if l.peekChar() == ':' {
			return l.op(token.PATHSEP, 2)
		}
		return l.op(token.COLON, 1)
	case '@':
		return l.op(token.AT, 1)
	case ',':
		return l.op(token.COMMA, 1)
	case ';':
		return l.op(token.SEMICOLON, 1)
	case '#':
		return l.op(token.POUND, 1)
	case '?':
		return l.op(token.QUESTION, 1)
	case '$':
		return l.op(token.DOLLAR, 1)
	case '(':
		return l.op(token.LPAREN, 1)
	case ')':
		return l.op(token.RPAREN, 1)
	case '[':
		return l.op(token.LBRACKET, 1)
	case ']':
		return l.op(token.RBRACKET, 1)
	case '{':
		return l.op(token.LBRACE, 1)
	case '}':
		return l.op(token.RBRACE, 1)
	case '"':
		return l.readString(l.pos)
	case '\'':
		return l.readQuote()
	}

	switch {
	case l.ch == 'r' && (l.peekChar() == '"' || (l.peekChar() == '#' && (l.peekCharN(2) == '"' || l.peekCharN(2) == '#'))):
		return l.readRawString(l.pos)
	case l.ch == 'b' && l.peekChar() == '"':
		start := l.pos
		l.readChar()
		return l.readString(start)
	case l.ch == 'b' && l.peekChar() == 'r' && (l.peekCharN(2) == '"' || l.peekCharN(2) == '#'):
		start := l.pos
		l.readChar()
		return l.readRawString(start)
	case l.ch == 'b' && l.peekChar() == '\'':
		start := l.pos
		l.readChar()
		tok := l.readQuote()
		tok.Literal = l.input[start:l.pos]
		return tok
	case isIdentStart(l.ch):
		lit := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(lit), Literal: lit}
	case isDigit(l.ch):
		return l.readNumber()
	}

	ch := l.ch
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: string(ch)}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.collectLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}
		break
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: strings.TrimRight(l.input[startPos.Offset:l.pos], "\r"),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment. Block comments nest.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	depth := 1
	for depth > 0 && !l.atEOF() {
		switch {
		case l.ch == '/' && l.peekChar() == '*':
			depth++
			l.readChar()
		case l.ch == '*' && l.peekChar() == '/':
			depth--
			l.readChar()
		}
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startPos.Offset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a "..." literal whose text begins at start.
func (l *Lexer) readString(start int) token.Token {
	l.readChar() // skip opening quote
	for l.ch != '"' {
		if l.atEOF() {
			return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedString}
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar() // skip closing quote
	return token.Token{Type: token.STRING, Literal: l.input[start:l.pos]}
}

// readRawString reads r"..." or r#"..."# whose text begins at start.
func (l *Lexer) readRawString(start int) token.Token {
	l.readChar() // skip 'r'
	hashes := 0
	for l.ch == '#' {
		hashes++
		l.readChar()
	}
	if l.ch != '"' {
		return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedString}
	}
	l.readChar()

	closing := "\"" + strings.Repeat("#", hashes)
	for !strings.HasPrefix(l.input[l.pos:], closing) {
		if l.atEOF() {
			return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedString}
		}
		l.readChar()
	}
	for range closing {
		l.readChar()
	}
	return token.Token{Type: token.STRING, Literal: l.input[start:l.pos]}
}

// readQuote reads a character literal or a lifetime.
func (l *Lexer) readQuote() token.Token {
	start := l.pos
	l.readChar() // skip '

	if l.ch == '\\' {
		l.readChar()
		for l.ch != '\'' {
			if l.atEOF() || l.ch == '\n' {
				return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedChar}
			}
			l.readChar()
		}
		l.readChar()
		return token.Token{Type: token.CHAR, Literal: l.input[start:l.pos]}
	}

	// One (possibly multi-byte) character followed by a quote is a char
	// literal; an identifier without the closing quote is a lifetime.
	width := utf8Width(l.ch)
	if l.peekCharN(width) == '\'' {
		for range width + 1 {
			l.readChar()
		}
		return token.Token{Type: token.CHAR, Literal: l.input[start:l.pos]}
	}
	if isIdentStart(l.ch) {
		l.readIdentifier()
		return token.Token{Type: token.LIFETIME, Literal: l.input[start:l.pos]}
	}
	return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedChar}
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal: an optional base prefix, digits with
// `_` separators, an optional fraction and exponent for decimals, and an
// optional type suffix.
func (l *Lexer) readNumber() token.Token {
	start := l.pos
	typ := token.INT

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'o' || l.peekChar() == 'b') {
		hex := l.peekChar() == 'x'
		l.readChar()
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' || (hex && isHexLetter(l.ch)) {
			l.readChar()
		}
	} else {
		l.readDecimalDigits()

		// Fraction: `1.5`, `1.`; not `1..2`, `1.foo()` or `1._x`.
		if l.ch == '.' && l.peekChar() != '.' && !isIdentStart(l.peekChar()) {
			typ = token.FLOAT
			l.readChar()
			if isDigit(l.ch) {
				l.readDecimalDigits()
			}
		}

		if (l.ch == 'e' || l.ch == 'E') && l.isExponentStart() {
			typ = token.FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			l.readDecimalDigits()
		}
	}

	suffixStart := l.pos
	if isIdentStart(l.ch) {
		l.readIdentifier()
	}

	return token.Token{
		Type:    typ,
		Literal: l.input[start:l.pos],
		Suffix:  l.input[suffixStart:l.pos],
	}
}

func (l *Lexer) readDecimalDigits() {
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

// isExponentStart reports whether the current 'e'/'E' starts an exponent.
func (l *Lexer) isExponentStart() bool {
	next := l.peekChar()
	if next == '+' || next == '-' {
		next = l.peekCharN(2)
	}
	return isDigit(next) || next == '_'
}

func isIdentStart(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// utf8Width returns the byte length of the UTF-8 sequence starting with b.
func utf8Width(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b>>5 == 0x6:
		return 2
	case b>>4 == 0xE:
		return 3
	case b>>3 == 0x1E:
		return 4
	default:
		return 1
	}
}
