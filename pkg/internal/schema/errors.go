package schema

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidSchema indicates a schema that could not be parsed.
var ErrInvalidSchema = errors.New("prisma-uml: invalid schema")

// ParseError reports a syntax problem at a given line of the schema.
type ParseError struct {
	Line    int // 1-based
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("prisma-uml: schema error")
	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns ErrInvalidSchema so callers can match with errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrInvalidSchema
}

// Is reports whether the target is ErrInvalidSchema.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidSchema
}

func errorf(line int, msg string) error {
	return &ParseError{Line: line, Message: msg}
}
