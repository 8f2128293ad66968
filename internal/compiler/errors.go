package compiler

import (
	"fmt"
	"go/token"
	"strings"
)

// Diagnostic codes (E200-E209)
const (
	ErrSyntax             = "E200" // unexpected token
	ErrMissingParameter   = "E201" // operand without a value
	ErrUnknownKind        = "E202" // not one of H/T/I/G or their long names
	ErrInvalidExpression  = "E203" // operand is not a Go expression
	ErrMissingArrow       = "E204" // inputs not followed by =>
	ErrInvalidEnd         = "E205" // extra tokens after the outputs
	ErrInvalidCombination = "E206" // repeated kind in a statement
	ErrInvalidPreamble    = "E207" // bad `use` line, numeric type or block shape
	ErrBinding            = "E208" // duplicate, missing or reserved name
	ErrConstEval          = "E209" // constant block could not be evaluated
)

// CompileError is a diagnostic with its source position.
type CompileError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Pos     token.Position `json:"pos"`
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename, e.Pos.Line, e.Pos.Column,
			e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Diagnostics collects every error of a file. A nil Diagnostics means the
// file compiled.
type Diagnostics []*CompileError

func (d Diagnostics) Error() string {
	lines := make([]string, len(d))
	for i, e := range d {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns d as an error, or nil when empty.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}
	return d
}

func errorf(code string, pos token.Position, format string, args ...any) *CompileError {
	return &CompileError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}
