package ir

import (
	"go/token"

	"github.com/roach88/arcadejump/param"
)

// NumType is the float type a statement computes in.
type NumType string

const (
	Float32 NumType = "float32"
	Float64 NumType = "float64"
)

// ParseNumType accepts f32, f64 and the Go type names.
func ParseNumType(s string) (NumType, bool) {
	switch s {
	case "f32", "float32":
		return Float32, true
	case "f64", "float64":
		return Float64, true
	}
	return "", false
}

// Bits returns the width of the type, or 0 for an unset type.
func (n NumType) Bits() int {
	switch n {
	case Float32:
		return 32
	case Float64:
		return 64
	}
	return 0
}

// Mode selects how a block is expanded.
type Mode string

const (
	// ModeExpr is a block without preamble; it holds one statement and
	// becomes a function returning the statement's outputs.
	ModeExpr Mode = "expr"

	// ModeRuntime is a `use f32;` block; it becomes a function returning
	// every named output.
	ModeRuntime Mode = "runtime"

	// ModeConst is a `use const f32;` block; it becomes a const group
	// evaluated at generation time.
	ModeConst Mode = "const"
)

// File is a parsed .jump source.
type File struct {
	Name    string   `json:"name"`
	Imports []string `json:"imports,omitempty"`
	Blocks  []Block  `json:"blocks"`
}

// Block is one `jump Name(params) { ... }` declaration.
type Block struct {
	Name       string         `json:"name"`
	Doc        []string       `json:"doc,omitempty"`
	Params     []string       `json:"params,omitempty"`
	Mode       Mode           `json:"mode"`
	Numeric    NumType        `json:"numeric,omitempty"`
	Statements []Statement    `json:"statements"`
	Pos        token.Position `json:"pos"`
}

// Statement is `input, input => output[, output] [as type]`.
type Statement struct {
	Inputs  [2]Input `json:"inputs"`
	Outputs []Output `json:"outputs"`
	As      NumType  `json:"as,omitempty"`

	// Numeric is the resolved type of the statement, filled by the checker.
	Numeric NumType        `json:"numeric,omitempty"`
	Pos     token.Position `json:"pos"`
}

// Input is a parameter operand: a kind and the Go expression giving its
// value.
type Input struct {
	Kind param.Kind `json:"kind"`
	Expr string     `json:"expr"`

	// Ident is set when Expr is a bare identifier.
	Ident bool `json:"ident,omitempty"`

	// KindPos locates the kind word; Pos locates the expression.
	KindPos token.Position `json:"kind_pos"`
	Pos     token.Position `json:"pos"`
}

// Output is a requested parameter, optionally bound to a name.
type Output struct {
	Kind param.Kind `json:"kind"`
	Name string     `json:"name,omitempty"`

	// Identity is resolved by the checker.
	Identity param.Identity `json:"identity,omitempty"`

	// Value is the Go literal of the output in a const block, set once the
	// block has been evaluated.
	Value string `json:"value,omitempty"`
	Pos      token.Position `json:"pos"`
}

// Kinds returns the input kinds in source order.
func (s *Statement) Kinds() (param.Kind, param.Kind) {
	return s.Inputs[0].Kind, s.Inputs[1].Kind
}

// Outputs returns the names bound by the block in introduction order.
func (b *Block) Outputs() []string {
	var names []string
	for _, st := range b.Statements {
		for _, out := range st.Outputs {
			if out.Name != "" {
				names = append(names, out.Name)
			}
		}
	}
	return names
}
