package parser

import (
	"fmt"

	"github.com/leapstack-labs/earlylint/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	File    string
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected token %s, expected %s"
	ErrUnexpectedChar      = "unexpected character %q"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedChar    = "unterminated character literal"
	ErrUnterminatedComment = "unterminated block comment"
	ErrInvalidNumber       = "invalid number literal %q"
	ErrInvalidSuffix       = "invalid suffix `%s` for number literal"
	ErrInvalidDigit        = "invalid digit for a base %d literal"
	ErrExpectedExpr        = "expected expression, found %s"
	ErrExpectedPattern     = "expected pattern, found %s"
	ErrExpectedType        = "expected type, found %s"
	ErrExpectedItem        = "expected item, found %s"
	ErrExpectedSemicolon   = "expected `;`, found %s"
)
