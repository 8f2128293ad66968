package compiler

import (
	"go/constant"
	"go/token"
	"go/types"
	"math"
	"strconv"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
	"github.com/roach88/arcadejump/resolver"
)

// constEnv evaluates the operands of const blocks with the Go constant
// rules. Outputs are declared as typed constants so later statements, and
// later const blocks, can refer to them.
type constEnv struct {
	fset *token.FileSet
	pkg  *types.Package
}

func newConstEnv() *constEnv {
	return &constEnv{
		fset: token.NewFileSet(),
		pkg:  types.NewPackage("jump", "jump"),
	}
}

func (e *constEnv) statement(st *ir.Statement) *CompileError {
	bits := st.Numeric.Bits()

	var vals [2]float64
	for i, in := range st.Inputs {
		tv, err := types.Eval(e.fset, e.pkg, token.NoPos, in.Expr)
		if err != nil {
			return errorf(ErrConstEval, in.Pos, "cannot evaluate %s: %v", in.Expr, err)
		}
		if tv.Value == nil {
			return errorf(ErrConstEval, in.Pos, "%s is not a constant", in.Expr)
		}
		f, ok := floatValue(tv.Value, bits)
		if !ok {
			return errorf(ErrConstEval, in.Pos, "%s (%s) is not representable as %s", in.Expr, tv.Value, st.Numeric)
		}
		vals[i] = f
	}

	a, b := st.Kinds()
	for i := range st.Outputs {
		out := &st.Outputs[i]
		r, err := solve(bits, a, vals[0], b, vals[1], out)
		if err != nil {
			pos := st.Pos
			if deg, ok := out.Identity.Degenerate(); ok {
				for _, in := range st.Inputs {
					if in.Kind == deg {
						pos = in.Pos
					}
				}
			}
			return errorf(ErrConstEval, pos, "cannot evaluate %s: %v", out.Identity, err)
		}
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return errorf(ErrConstEval, out.Pos, "%s overflows %s", out.Kind, st.Numeric)
		}
		if r == 0 {
			r = 0 // drop the sign of -0
		}
		out.Value = strconv.FormatFloat(r, 'g', -1, bits)
		if out.Name != "" {
			e.define(out.Name, st.Numeric, r)
		}
	}
	return nil
}

func solve(bits int, a param.Kind, av float64, b param.Kind, bv float64, out *ir.Output) (float64, error) {
	if bits == 32 {
		r, err := resolver.Solve(a, float32(av), b, float32(bv), out.Kind)
		return float64(r), err
	}
	return resolver.Solve(a, av, b, bv, out.Kind)
}

func (e *constEnv) define(name string, nt ir.NumType, v float64) {
	typ := types.Typ[types.Float64]
	if nt == ir.Float32 {
		typ = types.Typ[types.Float32]
	}
	e.pkg.Scope().Insert(types.NewConst(token.NoPos, e.pkg, name, typ, constant.MakeFloat64(v)))
}

// floatValue converts a numeric constant to the nearest float of the given
// width. Non-numeric and overflowing constants are rejected.
func floatValue(v constant.Value, bits int) (float64, bool) {
	v = constant.ToFloat(v)
	if v.Kind() != constant.Float {
		return 0, false
	}
	var f float64
	if bits == 32 {
		f32, _ := constant.Float32Val(v)
		f = float64(f32)
	} else {
		f, _ = constant.Float64Val(v)
	}
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
