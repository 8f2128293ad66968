package compiler

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/roach88/arcadejump/internal/ir"
)

const fileTemplate = `// Code generated by jumpgen. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}
{{- if or .Std .Ext}}

import (
{{- range .Std}}
	{{.}}
{{- end}}
{{- if and .Std .Ext}}
{{end}}
{{- range .Ext}}
	{{.}}
{{- end}}
)
{{- end}}
{{- range .Decls}}

{{range .Doc}}{{.}}
{{end}}
{{- if .Const}}const (
{{- range .Consts}}
	{{.Name}} {{.Type}} = {{.Value}}
{{- end}}
)
{{- else}}func {{.Name}}({{.Params}}) {{.Results}} {
{{- range .Body}}
	{{.}}
{{- end}}
}
{{- end}}
{{- end}}
`

var fileTmpl = template.Must(template.New("jump").Parse(fileTemplate))

type fileData struct {
	Source  string
	Package string
	Std     []string
	Ext     []string
	Decls   []declData
}

type declData struct {
	Doc     []string
	Const   bool
	Consts  []constData
	Name    string
	Params  string
	Results string
	Body    []string
}

type constData struct {
	Name  string
	Type  ir.NumType
	Value string
}

// Generate renders a checked file as gofmt-formatted Go source in package
// pkg.
func Generate(f *ir.File, pkg string, cfg Config) ([]byte, error) {
	g := &generator{cfg: cfg}
	data := fileData{
		Source:  filepath.Base(f.Name),
		Package: pkg,
	}
	for _, imp := range f.Imports {
		g.reserve(imp)
		if p, err := strconv.Unquote(imp); err == nil && !strings.Contains(strings.Split(p, "/")[0], ".") {
			data.Std = append(data.Std, imp)
		} else {
			data.Ext = append(data.Ext, imp)
		}
	}

	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.Mode == ir.ModeConst {
			data.Decls = append(data.Decls, constDecl(b))
			continue
		}
		data.Decls = append(data.Decls, g.funcDecl(b))
	}

	if g.fallible {
		data.Ext = append(data.Ext, strconv.Quote(cfg.Resolver))
	}
	if g.infallible {
		data.Ext = append(data.Ext, strconv.Quote(path.Join(cfg.Resolver, "nofailure")))
	}
	sort.Strings(data.Std)
	sort.Strings(data.Ext)

	var buf strings.Builder
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	out, err := imports.Process(f.Name, []byte(buf.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return out, nil
}

type generator struct {
	cfg Config

	// fallible and infallible record which resolver packages the file
	// calls into.
	fallible   bool
	infallible bool

	// imported holds the names of packages imported by the source file.
	imported []string
}

func (g *generator) reserve(quoted string) {
	p, err := strconv.Unquote(quoted)
	if err != nil {
		return
	}
	g.imported = append(g.imported, path.Base(p))
}

func docLines(doc []string) []string {
	lines := make([]string, len(doc))
	for i, d := range doc {
		if d == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + d
		}
	}
	return lines
}

func constDecl(b *ir.Block) declData {
	d := declData{Doc: docLines(b.Doc), Const: true}
	for _, st := range b.Statements {
		for _, out := range st.Outputs {
			d.Consts = append(d.Consts, constData{Name: out.Name, Type: st.Numeric, Value: out.Value})
		}
	}
	return d
}

type result struct {
	name string
	typ  ir.NumType
}

// funcBuilder lowers the statements of one block into a function body.
type funcBuilder struct {
	used  map[string]bool
	typed map[string]ir.NumType
	body  []string
}

func (fb *funcBuilder) fresh(base string) string {
	name := base
	for n := 2; fb.used[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	fb.used[name] = true
	return name
}

func (fb *funcBuilder) emit(format string, args ...any) {
	fb.body = append(fb.body, fmt.Sprintf(format, args...))
}

// operand returns an expression of type nt for the input, declaring a local
// when the input is not already a variable of that type.
func (fb *funcBuilder) operand(in ir.Input, nt ir.NumType) string {
	if in.Ident && fb.typed[in.Expr] == nt {
		return in.Expr
	}
	local := fb.fresh("in" + in.Kind.String())
	fb.emit("%s := %s(%s)", local, nt, in.Expr)
	fb.typed[local] = nt
	return local
}

func (g *generator) funcDecl(b *ir.Block) declData {
	fb := &funcBuilder{
		used:  make(map[string]bool),
		typed: make(map[string]ir.NumType),
	}
	for name := range reserved {
		fb.used[name] = true
	}
	for _, name := range g.imported {
		fb.used[name] = true
	}

	paramType := b.Numeric
	if b.Mode == ir.ModeExpr {
		paramType = b.Statements[0].Numeric
	}
	for _, p := range b.Params {
		fb.used[p] = true
		fb.typed[p] = paramType
	}

	fallible := false
	for _, st := range b.Statements {
		for _, out := range st.Outputs {
			if out.Name != "" {
				fb.used[out.Name] = true
			}
			fallible = fallible || out.Identity.Fallible()
		}
	}

	// Locals of unnamed outputs are allocated up front so the zero return
	// list is known before the first call.
	var results []result
	locals := make(map[*ir.Output]string)
	for i := range b.Statements {
		st := &b.Statements[i]
		for j := range st.Outputs {
			out := &st.Outputs[j]
			name := out.Name
			if name == "" {
				name = fb.fresh(lowerFirst(out.Kind.String()))
			}
			locals[out] = name
			results = append(results, result{name, st.Numeric})
		}
	}

	zeros := make([]string, 0, len(results)+1)
	for range results {
		zeros = append(zeros, "0")
	}
	zeros = append(zeros, "err")

	for i := range b.Statements {
		st := &b.Statements[i]
		a := fb.operand(st.Inputs[0], st.Numeric)
		c := fb.operand(st.Inputs[1], st.Numeric)
		if st.Inputs[1].Kind < st.Inputs[0].Kind {
			a, c = c, a
		}
		for j := range st.Outputs {
			out := &st.Outputs[j]
			name := locals[out]
			fb.typed[name] = st.Numeric
			if !out.Identity.Fallible() {
				g.infallible = true
				fb.emit("%s := nofailure.%s(%s, %s)", name, out.Identity, a, c)
				continue
			}
			g.fallible = true
			fb.emit("%s, err := resolver.%s(%s, %s)", name, out.Identity, a, c)
			fb.emit("if err != nil {")
			fb.emit("\treturn %s", strings.Join(zeros, ", "))
			fb.emit("}")
		}
	}

	names := make([]string, len(results))
	types := make([]string, len(results))
	for i, r := range results {
		names[i] = r.name
		types[i] = string(r.typ)
	}
	if fallible {
		names = append(names, "nil")
		types = append(types, "error")
	}
	fb.emit("return %s", strings.Join(names, ", "))

	d := declData{
		Doc:  docLines(b.Doc),
		Name: b.Name,
		Body: fb.body,
	}
	if len(b.Params) > 0 {
		d.Params = strings.Join(b.Params, ", ") + " " + string(paramType)
	}
	if len(types) == 1 {
		d.Results = types[0]
	} else {
		d.Results = "(" + strings.Join(types, ", ") + ")"
	}
	return d
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
