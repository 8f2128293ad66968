package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
)

func TestParseExpressionBlock(t *testing.T) {
	src := `// Hop solves the main jump.
//
// Heights are in tiles.
jump Hop(h, t) {
	H(h), T(t) => V, G as f32
}
`
	f, err := Parse("hop.jump", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Blocks, 1)

	b := f.Blocks[0]
	assert.Equal(t, "Hop", b.Name)
	assert.Equal(t, []string{"Hop solves the main jump.", "", "Heights are in tiles."}, b.Doc)
	assert.Equal(t, []string{"h", "t"}, b.Params)
	assert.Equal(t, ir.ModeExpr, b.Mode)
	assert.Equal(t, 4, b.Pos.Line)
	require.Len(t, b.Statements, 1)

	st := b.Statements[0]
	assert.Equal(t, param.Height, st.Inputs[0].Kind)
	assert.Equal(t, "h", st.Inputs[0].Expr)
	assert.True(t, st.Inputs[0].Ident)
	assert.Equal(t, param.Time, st.Inputs[1].Kind)
	require.Len(t, st.Outputs, 2)
	assert.Equal(t, param.Impulse, st.Outputs[0].Kind)
	assert.Equal(t, param.Gravity, st.Outputs[1].Kind)
	assert.Equal(t, ir.Float32, st.As)
}

func TestParseTaggedOperands(t *testing.T) {
	src := `jump Scaled(h) { h * 2: Height, 0.5: Time => v: Impulse }`
	f, err := Parse("scaled.jump", []byte(src))
	require.NoError(t, err)

	st := f.Blocks[0].Statements[0]
	assert.Equal(t, "h * 2", st.Inputs[0].Expr)
	assert.False(t, st.Inputs[0].Ident)
	assert.Equal(t, param.Height, st.Inputs[0].Kind)
	assert.Equal(t, "0.5", st.Inputs[1].Expr)
	assert.Equal(t, "v", st.Outputs[0].Name)
	assert.Equal(t, param.Impulse, st.Outputs[0].Kind)
}

func TestParseNestedExpressions(t *testing.T) {
	src := `import "math"

jump Arc(s) {
	H(math.Max(s[0], 1)), s[1:2][0]: T => G
}
`
	f, err := Parse("arc.jump", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{`"math"`}, f.Imports)
	st := f.Blocks[0].Statements[0]
	assert.Equal(t, "math.Max(s[0], 1)", st.Inputs[0].Expr)
	assert.Equal(t, "s[1:2][0]", st.Inputs[1].Expr)
}

func TestParsePreamble(t *testing.T) {
	src := `
jump Tuned {
	use const float64;
	H(20), T(10) => v: V; v: V, T(10) => g: G
}
`
	f, err := Parse("tuned.jump", []byte(src))
	require.NoError(t, err)

	b := f.Blocks[0]
	assert.Equal(t, ir.ModeConst, b.Mode)
	assert.Equal(t, ir.Float64, b.Numeric)
	require.Len(t, b.Statements, 2)
	assert.Equal(t, "v", b.Statements[1].Inputs[0].Expr)
	assert.Equal(t, []string{"v", "g"}, b.Outputs())
}

func TestParseNormalisesSource(t *testing.T) {
	// A decomposed accent is not an identifier character until composed.
	src := "jump Accent(he\u0301) { H(he\u0301), T(1) => V }"
	f, err := Parse("accent.jump", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"h\u00e9"}, f.Blocks[0].Params)
	assert.Equal(t, "h\u00e9", f.Blocks[0].Statements[0].Inputs[0].Expr)
}

func TestParseKindWordOpensCall(t *testing.T) {
	// T(t) is always the kind form, even though it reads like a call.
	f, err := Parse("call.jump", []byte(`jump C(t, h) { T(t), H(h) => G }`))
	require.NoError(t, err)
	st := f.Blocks[0].Statements[0]
	assert.Equal(t, param.Time, st.Inputs[0].Kind)
	assert.Equal(t, "t", st.Inputs[0].Expr)
}

func TestParseKindCallWithLiterals(t *testing.T) {
	src := `jump L(s) {
	H(func() float32 { return 2 }()), T([]float32{s, 1}[1]) => V
}
`
	f, err := Parse("lit.jump", []byte(src))
	require.NoError(t, err)
	st := f.Blocks[0].Statements[0]
	assert.Equal(t, param.Height, st.Inputs[0].Kind)
	assert.Equal(t, "func() float32 { return 2 }()", st.Inputs[0].Expr)
	assert.Equal(t, param.Time, st.Inputs[1].Kind)
	assert.Equal(t, "[]float32{s, 1}[1]", st.Inputs[1].Expr)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		line int
		col  int
	}{
		{
			name: "missing arrow",
			src:  "jump A(h) {\n\tH(h), T(1) V\n}",
			code: ErrMissingArrow, line: 2, col: 13,
		},
		{
			name: "unknown output kind",
			src:  "jump A(h) {\n\tH(h), T(1) => X\n}",
			code: ErrUnknownKind, line: 2, col: 16,
		},
		{
			name: "unknown input kind",
			src:  "jump A(h) {\n\tX(h), T(1) => V\n}",
			code: ErrUnknownKind, line: 2, col: 2,
		},
		{
			name: "unknown tagged kind",
			src:  "jump A(h) {\n\th: Hieght, T(1) => V\n}",
			code: ErrUnknownKind, line: 2, col: 5,
		},
		{
			name: "empty operand",
			src:  "jump A(h) {\n\tH(), T(1) => V\n}",
			code: ErrMissingParameter, line: 2, col: 4,
		},
		{
			name: "single input",
			src:  "jump A(h) {\n\tH(h) => V\n}",
			code: ErrMissingParameter, line: 2, col: 7,
		},
		{
			name: "kind without value",
			src:  "jump A(h) {\n\tH, T(1) => V\n}",
			code: ErrMissingParameter, line: 2, col: 2,
		},
		{
			name: "invalid expression",
			src:  "jump A(h) {\n\tH(h +), T(1) => V\n}",
			code: ErrInvalidExpression, line: 2, col: 4,
		},
		{
			name: "extra tokens",
			src:  "jump A(h) {\n\tH(h), T(1) => V, G G\n}",
			code: ErrInvalidEnd, line: 2, col: 21,
		},
		{
			name: "unknown numeric type",
			src:  "jump A(h) {\n\tuse f16\n\tH(h), T(1) => v: V\n}",
			code: ErrInvalidPreamble, line: 2, col: 6,
		},
		{
			name: "unknown as type",
			src:  "jump A(h) {\n\tH(h), T(1) => V as int\n}",
			code: ErrInvalidPreamble, line: 2, col: 21,
		},
		{
			name: "not a block",
			src:  "func A() {}",
			code: ErrSyntax, line: 1, col: 1,
		},
		{
			name: "unclosed kind call",
			src:  "jump A(h) {\n\tH(h, T(1) => V\n}",
			code: ErrSyntax, line: 2, col: 3,
		},
		{
			name: "unclosed block",
			src:  "jump A(h) {\n\tH(h), T(1) => V\n",
			code: ErrSyntax, line: 3, col: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.jump", []byte(tt.src))
			require.Error(t, err)

			var diags Diagnostics
			require.ErrorAs(t, err, &diags)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.code, diags[0].Code, diags[0].Error())
			assert.Equal(t, tt.line, diags[0].Pos.Line, diags[0].Error())
			assert.Equal(t, tt.col, diags[0].Pos.Column, diags[0].Error())
		})
	}
}

func TestParseRecoversAtNextBlock(t *testing.T) {
	src := `jump A(h) {
	H(h), T(1) V
}

jump B(h) {
	H(h), T(1) => V
}

jump C(h) {
	H(h) T(1) => V
}
`
	f, err := Parse("many.jump", []byte(src))
	require.Error(t, err)

	var diags Diagnostics
	require.ErrorAs(t, err, &diags)
	require.Len(t, diags, 2)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, 10, diags[1].Pos.Line)

	require.Len(t, f.Blocks, 1)
	assert.Equal(t, "B", f.Blocks[0].Name)
}
