package gosaxlex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Error kinds. Every error returned by this package matches
// exactly one of them with errors.Is.
var (
	ErrSyntax           = errors.New("syntax error")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrNamespace        = errors.New("namespace error")
	ErrInvalidState     = errors.New("invalid state")
)

// SyntaxError reports malformed markup found by the Lexer.
type SyntaxError struct {
	// Offset is the index of the UTF-16 code unit at which the error was detected.
	Offset  int
	Line    int
	Column  int
	Context string
	Msg     string
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("xml syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap exposes the error kind.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// newSyntaxError locates offset, an index into the UTF-16 units of c,
// by line and column of the decoded input.
func newSyntaxError(c *cursor, offset int, msg string) *SyntaxError {
	if offset > len(c.buf) {
		offset = len(c.buf)
	}
	src := c.text(0, len(c.buf))
	perr := parse.NewError(strings.NewReader(src), len(c.text(0, offset)), msg)
	return &SyntaxError{
		Offset:  offset,
		Line:    perr.Line,
		Column:  perr.Column,
		Context: perr.Context,
		Msg:     msg,
	}
}

// CharError is returned by the character legality validators.
type CharError struct {
	// What names the validated production: "string", "name" or "public identifier".
	What  string
	Value string
	Debug string
}

func (e *CharError) Error() string {
	if e.Debug != "" {
		return fmt.Sprintf("invalid character in %s: %q %s", e.What, e.Value, e.Debug)
	}
	return fmt.Sprintf("invalid character in %s: %q", e.What, e.Value)
}

// Unwrap exposes the error kind.
func (e *CharError) Unwrap() error {
	return ErrInvalidCharacter
}
