package compiler

import (
	"go/token"
	"path"
	"strconv"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
)

// reserved names cannot be bound by a block: generated code declares or
// imports them.
var reserved = map[string]bool{
	"err":       true,
	"resolver":  true,
	"nofailure": true,
}

// Check resolves the identity of every output, fixes the numeric type of
// every statement and evaluates const blocks. The first error of a block
// halts that block; every block is checked.
func Check(f *ir.File, cfg Config) error {
	return check(f, cfg).Err()
}

func check(f *ir.File, cfg Config) Diagnostics {
	c := &checker{
		cfg:     cfg,
		blocks:  make(map[string]bool),
		global:  make(map[string]bool),
		consts:  newConstEnv(),
		imports: make(map[string]bool),
	}
	for _, imp := range f.Imports {
		if p, err := strconv.Unquote(imp); err == nil {
			c.imports[path.Base(p)] = true
		}
	}
	for i := range f.Blocks {
		if err := c.block(&f.Blocks[i]); err != nil {
			c.diags = append(c.diags, err)
		}
	}
	return c.diags
}

type checker struct {
	cfg    Config
	diags  Diagnostics
	blocks map[string]bool

	// global holds package-level names: functions and constants.
	global map[string]bool
	consts *constEnv

	// imports holds the package names of the file's imports.
	imports map[string]bool
}

func (c *checker) block(b *ir.Block) *CompileError {
	if c.blocks[b.Name] {
		return errorf(ErrBinding, b.Pos, "jump %s redeclared in this file", b.Name)
	}
	c.blocks[b.Name] = true

	if len(b.Statements) == 0 {
		return errorf(ErrInvalidPreamble, b.Pos, "jump %s has no statement", b.Name)
	}
	switch b.Mode {
	case ir.ModeExpr:
		if len(b.Statements) != 1 {
			return errorf(ErrInvalidPreamble, b.Statements[1].Pos,
				"jump %s without a use line holds exactly one statement", b.Name)
		}
	case ir.ModeConst:
		if len(b.Params) > 0 {
			return errorf(ErrBinding, b.Pos, "const jump %s cannot take parameters", b.Name)
		}
	}
	if b.Mode != ir.ModeConst {
		if c.global[b.Name] {
			return errorf(ErrBinding, b.Pos, "%s redeclared in this file", b.Name)
		}
		c.global[b.Name] = true
	}

	locals := make(map[string]bool)
	for _, name := range b.Params {
		if err := c.bind(name, b.Pos, locals); err != nil {
			return err
		}
	}

	for i := range b.Statements {
		st := &b.Statements[i]
		st.Numeric = c.numeric(b, st)
		if err := c.statement(b, st, locals); err != nil {
			return err
		}
		if b.Mode == ir.ModeConst {
			if err := c.consts.statement(st); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) numeric(b *ir.Block, st *ir.Statement) ir.NumType {
	switch {
	case st.As != "":
		return st.As
	case b.Numeric != "":
		return b.Numeric
	}
	return c.cfg.NumType()
}

func (c *checker) bind(name string, pos token.Position, locals map[string]bool) *CompileError {
	switch {
	case name == "_":
		return errorf(ErrBinding, pos, "cannot bind the blank identifier")
	case reserved[name]:
		return errorf(ErrBinding, pos, "%s is reserved", name)
	case c.imports[name]:
		return errorf(ErrBinding, pos, "%s shadows an imported package", name)
	case locals[name]:
		return errorf(ErrBinding, pos, "%s redeclared in this block", name)
	}
	locals[name] = true
	return nil
}

func (c *checker) statement(b *ir.Block, st *ir.Statement, locals map[string]bool) *CompileError {
	first, second := st.Kinds()
	if first == second {
		return combinationError(st.Inputs[1].KindPos, first, second, st.Outputs[0].Kind)
	}

	for i := range st.Outputs {
		out := &st.Outputs[i]
		if i > 0 && out.Kind == st.Outputs[0].Kind {
			return combinationError(out.Pos, first, second, out.Kind)
		}
		id, err := param.Select(first, second, out.Kind)
		if err != nil {
			return combinationError(out.Pos, first, second, out.Kind)
		}
		out.Identity = id

		if out.Name == "" {
			if b.Mode != ir.ModeExpr {
				return errorf(ErrBinding, out.Pos, "%s output must be named in a %s block", out.Kind, b.Mode)
			}
			continue
		}
		if err := c.bind(out.Name, out.Pos, locals); err != nil {
			return err
		}
		if b.Mode == ir.ModeConst {
			if c.global[out.Name] {
				return errorf(ErrBinding, out.Pos, "%s redeclared in this file", out.Name)
			}
			c.global[out.Name] = true
		}
	}
	return nil
}

func combinationError(pos token.Position, a, b, out param.Kind) *CompileError {
	err := &param.CombinationError{First: a, Second: b, Output: out}
	return errorf(ErrInvalidCombination, pos, "%s", err.Error())
}
