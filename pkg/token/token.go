// Package token defines positions, spans and the lexical tokens produced by
// the reference front-end.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT    // foo
	LIFETIME // 'a
	INT      // 123, 0x1F, 0o17, 0b1010, 123_u32
	FLOAT    // 1.5, 1e10, 2.0f32
	STRING   // "hello"
	CHAR     // 'c'

	// Operators and punctuation
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	CARET      // ^
	BANG       // !
	AMP        // &
	PIPE       // |
	ANDAND     // &&
	OROR       // ||
	SHL        // <<
	SHR        // >>
	PLUSEQ     // +=
	MINUSEQ    // -=
	STAREQ     // *=
	SLASHEQ    // /=
	PERCENTEQ  // %=
	CARETEQ    // ^=
	AMPEQ      // &=
	PIPEEQ     // |=
	SHLEQ      // <<=
	SHREQ      // >>=
	ASSIGN     // =
	EQ         // ==
	NE         // !=
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	AT         // @
	DOT        // .
	DOTDOT     // ..
	DOTDOTEQ   // ..=
	COMMA      // ,
	SEMICOLON  // ;
	COLON      // :
	PATHSEP    // ::
	RARROW     // ->
	FATARROW   // =>
	POUND      // #
	QUESTION   // ?
	DOLLAR     // $ (macro_rules bodies)
	LPAREN     // (
	RPAREN     // )
	LBRACKET   // [
	RBRACKET   // ]
	LBRACE     // {
	RBRACE     // }
	UNDERSCORE // _

	// Keywords (alphabetical)
	keywordBeg
	AS
	BREAK
	CONST
	CONTINUE
	CRATE
	ELSE
	ENUM
	FALSE
	FN
	FOR
	IF
	IMPL
	IN
	LET
	LOOP
	MATCH
	MOD
	MOVE
	MUT
	PUB
	REF
	RETURN
	SELFVALUE // self
	SELFTYPE  // Self
	STATIC
	STRUCT
	SUPER
	TRAIT
	TRUE
	TYPE
	UNSAFE
	USE
	WHERE
	WHILE
	keywordEnd
)

// Token is a lexical token with its source span.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span

	// Suffix is the type suffix of a numeric literal (`u8` in `1u8`). It is a
	// suffix of Literal.
	Suffix string
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}

// IsKeyword reports whether the token type is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t > keywordBeg && t < keywordEnd
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:    "IDENT",
	LIFETIME: "LIFETIME",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	CHAR:     "CHAR",

	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	CARET:      "^",
	BANG:       "!",
	AMP:        "&",
	PIPE:       "|",
	ANDAND:     "&&",
	OROR:       "||",
	SHL:        "<<",
	SHR:        ">>",
	PLUSEQ:     "+=",
	MINUSEQ:    "-=",
	STAREQ:     "*=",
	SLASHEQ:    "/=",
	PERCENTEQ:  "%=",
	CARETEQ:    "^=",
	AMPEQ:      "&=",
	PIPEEQ:     "|=",
	SHLEQ:      "<<=",
	SHREQ:      ">>=",
	ASSIGN:     "=",
	EQ:         "==",
	NE:         "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	AT:         "@",
	DOT:        ".",
	DOTDOT:     "..",
	DOTDOTEQ:   "..=",
	COMMA:      ",",
	SEMICOLON:  ";",
	COLON:      ":",
	PATHSEP:    "::",
	RARROW:     "->",
	FATARROW:   "=>",
	POUND:      "#",
	QUESTION:   "?",
	DOLLAR:     "$",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LBRACE:     "{",
	RBRACE:     "}",
	UNDERSCORE: "_",

	AS:        "as",
	BREAK:     "break",
	CONST:     "const",
	CONTINUE:  "continue",
	CRATE:     "crate",
	ELSE:      "else",
	ENUM:      "enum",
	FALSE:     "false",
	FN:        "fn",
	FOR:       "for",
	IF:        "if",
	IMPL:      "impl",
	IN:        "in",
	LET:       "let",
	LOOP:      "loop",
	MATCH:     "match",
	MOD:       "mod",
	MOVE:      "move",
	MUT:       "mut",
	PUB:       "pub",
	REF:       "ref",
	RETURN:    "return",
	SELFVALUE: "self",
	SELFTYPE:  "Self",
	STATIC:    "static",
	STRUCT:    "struct",
	SUPER:     "super",
	TRAIT:     "trait",
	TRUE:      "true",
	TYPE:      "type",
	UNSAFE:    "unsafe",
	USE:       "use",
	WHERE:     "where",
	WHILE:     "while",
}

// keywords maps reserved words to their token types.
var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, keywordEnd-keywordBeg)
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		m[tokenNames[t]] = t
	}
	return m
}()

// LookupIdent returns the keyword token type for ident, or IDENT.
// Keywords are case-sensitive.
func LookupIdent(ident string) TokenType {
	if ident == "_" {
		return UNDERSCORE
	}
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
