package compiler

import (
	"go/ast"
	goparser "go/parser"
	"go/token"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
)

// Parse reads a .jump source into its statement graph. A syntax error halts
// the block it occurs in; parsing resumes at the next block, so the returned
// Diagnostics may hold several errors. The File holds every block that
// parsed.
func Parse(filename string, src []byte) (*ir.File, error) {
	f, _, diags := parse(filename, src)
	return f, diags.Err()
}

func parse(filename string, src []byte) (*ir.File, *source, Diagnostics) {
	s, diags := lex(filename, src)
	f := &ir.File{Name: filename}
	if len(diags) > 0 {
		return f, s, diags
	}
	p := &parser{source: s}
	p.parseFile(f)
	return f, s, p.diags
}

type parser struct {
	*source
	i     int
	diags Diagnostics
}

func (p *parser) peek() item {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) item {
	if p.i+n >= len(p.items) {
		return p.items[len(p.items)-1]
	}
	return p.items[p.i+n]
}

func (p *parser) next() item {
	it := p.peek()
	if p.i < len(p.items)-1 {
		p.i++
	}
	return it
}

func (p *parser) at(it item) token.Position {
	return p.position(it.pos)
}

func (p *parser) isWord(it item, word string) bool {
	return it.tok == token.IDENT && it.lit == word
}

func (p *parser) parseFile(f *ir.File) {
	for p.peek().tok == token.IMPORT {
		p.next()
		path := p.next()
		if path.tok != token.STRING {
			p.diags = append(p.diags, errorf(ErrSyntax, p.at(path), "expected import path, found %s", path))
			p.skipLine()
			continue
		}
		f.Imports = append(f.Imports, path.lit)
		if end := p.peek(); end.tok == token.SEMICOLON {
			p.next()
		} else {
			p.diags = append(p.diags, errorf(ErrSyntax, p.at(end), "expected ; after import, found %s", end))
			p.skipLine()
		}
	}

	for {
		it := p.peek()
		switch {
		case it.tok == token.EOF:
			return
		case it.tok == token.SEMICOLON:
			p.next()
		case p.isWord(it, "jump"):
			start := p.i
			b, err := p.parseBlock()
			if err != nil {
				p.diags = append(p.diags, err)
				p.recoverBlock(start)
				continue
			}
			f.Blocks = append(f.Blocks, *b)
		default:
			p.diags = append(p.diags, errorf(ErrSyntax, p.at(it), "expected jump declaration, found %s", it))
			p.recoverBlock(p.i)
		}
	}
}

// skipLine advances past the next semicolon.
func (p *parser) skipLine() {
	for {
		it := p.next()
		if it.tok == token.SEMICOLON || it.tok == token.EOF {
			return
		}
	}
}

// recoverBlock moves past the block starting at item start: after its
// closing brace, or up to the next `jump` if the block never opened.
func (p *parser) recoverBlock(start int) {
	p.i = start + 1
	depth := 0
	for {
		it := p.peek()
		switch {
		case it.tok == token.EOF:
			return
		case it.tok == token.LBRACE:
			depth++
		case it.tok == token.RBRACE:
			depth--
			if depth <= 0 {
				p.next()
				return
			}
		case depth == 0 && p.isWord(it, "jump"):
			return
		}
		p.next()
	}
}

func (p *parser) parseBlock() (*ir.Block, *CompileError) {
	kw := p.next()
	b := &ir.Block{
		Pos:  p.at(kw),
		Doc:  p.docAbove(p.at(kw).Line),
		Mode: ir.ModeExpr,
	}

	name := p.next()
	if name.tok != token.IDENT {
		return nil, errorf(ErrSyntax, p.at(name), "expected block name, found %s", name)
	}
	b.Name = name.lit

	if p.peek().tok == token.LPAREN {
		p.next()
		for p.peek().tok != token.RPAREN {
			arg := p.next()
			if arg.tok != token.IDENT {
				return nil, errorf(ErrSyntax, p.at(arg), "expected parameter name, found %s", arg)
			}
			b.Params = append(b.Params, arg.lit)
			switch sep := p.peek(); sep.tok {
			case token.COMMA:
				p.next()
			case token.RPAREN:
			default:
				return nil, errorf(ErrSyntax, p.at(sep), "expected , or ) in parameter list, found %s", sep)
			}
		}
		p.next()
	}

	if open := p.next(); open.tok != token.LBRACE {
		return nil, errorf(ErrSyntax, p.at(open), "expected { after jump %s, found %s", b.Name, open)
	}

	if p.isWord(p.peek(), "use") {
		if err := p.parsePreamble(b); err != nil {
			return nil, err
		}
	}

	for {
		it := p.peek()
		switch it.tok {
		case token.RBRACE:
			p.next()
			return b, nil
		case token.EOF:
			return nil, errorf(ErrSyntax, p.at(it), "jump %s is not closed", b.Name)
		case token.SEMICOLON:
			p.next()
			continue
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, *st)
	}
}

// parsePreamble reads `use [const] TYPE;`.
func (p *parser) parsePreamble(b *ir.Block) *CompileError {
	use := p.next()
	b.Mode = ir.ModeRuntime
	if p.peek().tok == token.CONST {
		p.next()
		b.Mode = ir.ModeConst
	}
	typ := p.next()
	if typ.tok != token.IDENT {
		return errorf(ErrInvalidPreamble, p.at(typ), "expected numeric type after %s, found %s", use.lit, typ)
	}
	nt, ok := ir.ParseNumType(typ.lit)
	if !ok {
		return errorf(ErrInvalidPreamble, p.at(typ), "unknown numeric type %q", typ.lit)
	}
	b.Numeric = nt
	switch end := p.peek(); end.tok {
	case token.SEMICOLON:
		p.next()
	case token.RBRACE:
	default:
		return errorf(ErrInvalidPreamble, p.at(end), "expected ; after numeric type, found %s", end)
	}
	return nil
}

func (p *parser) parseStatement() (*ir.Statement, *CompileError) {
	st := &ir.Statement{Pos: p.at(p.peek())}

	in, err := p.parseInput()
	if err != nil {
		return nil, err
	}
	st.Inputs[0] = in

	switch sep := p.peek(); sep.tok {
	case token.COMMA:
		p.next()
	case arrow:
		return nil, errorf(ErrMissingParameter, p.at(sep), "missing parameter")
	default:
		return nil, errorf(ErrSyntax, p.at(sep), "expected , between parameters, found %s", sep)
	}

	if st.Inputs[1], err = p.parseInput(); err != nil {
		return nil, err
	}

	if sep := p.peek(); sep.tok != arrow {
		return nil, errorf(ErrMissingArrow, p.at(sep), "missing arrow symbol, found %s", sep)
	}
	p.next()

	out, err := p.parseOutput()
	if err != nil {
		return nil, err
	}
	st.Outputs = append(st.Outputs, out)
	if p.peek().tok == token.COMMA {
		p.next()
		if out, err = p.parseOutput(); err != nil {
			return nil, err
		}
		st.Outputs = append(st.Outputs, out)
	}

	if p.isWord(p.peek(), "as") {
		p.next()
		typ := p.next()
		nt, ok := ir.ParseNumType(typ.lit)
		if typ.tok != token.IDENT || !ok {
			return nil, errorf(ErrInvalidPreamble, p.at(typ), "unknown numeric type %q", typ.String())
		}
		st.As = nt
	}

	switch end := p.peek(); end.tok {
	case token.SEMICOLON:
		p.next()
	case token.RBRACE:
	default:
		return nil, errorf(ErrInvalidEnd, p.at(end), "invalid end of statement at %s", end)
	}
	return st, nil
}

func endsOperand(it item) bool {
	switch it.tok {
	case token.COMMA, arrow, token.SEMICOLON, token.RBRACE, token.EOF:
		return true
	}
	return false
}

// parseInput reads `KIND(expr)` or `expr: KIND`. A kind word followed by a
// parenthesis always opens the first form.
func (p *parser) parseInput() (ir.Input, *CompileError) {
	it := p.peek()
	if endsOperand(it) {
		return ir.Input{}, errorf(ErrMissingParameter, p.at(it), "missing parameter")
	}
	if it.tok == token.IDENT && p.peekAt(1).tok == token.LPAREN {
		if kind, ok := param.ParseKind(it.lit); ok {
			return p.parseKindCall(kind)
		}
	}
	return p.parseTagged()
}

func (p *parser) parseKindCall(kind param.Kind) (ir.Input, *CompileError) {
	word := p.next()
	open := p.next()
	depth := 1
	for {
		it := p.peek()
		switch it.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN:
			depth--
		case token.RBRACK, token.RBRACE:
			if depth == 1 {
				return ir.Input{}, errorf(ErrSyntax, p.at(open), "unclosed ( after %s", word.lit)
			}
			depth--
		case token.EOF:
			return ir.Input{}, errorf(ErrSyntax, p.at(open), "unclosed ( after %s", word.lit)
		}
		if depth == 0 {
			break
		}
		p.next()
	}
	rparen := p.next()

	in := ir.Input{Kind: kind, KindPos: p.at(word), Pos: p.position(open.pos + 1)}
	in.Expr = p.text(open.pos+1, rparen.pos)
	if in.Expr == "" {
		return ir.Input{}, errorf(ErrMissingParameter, p.at(rparen), "missing parameter for %s", kind)
	}
	return in, p.checkExpr(&in)
}

func (p *parser) parseTagged() (ir.Input, *CompileError) {
	first := p.peek()
	start := p.i
	depth := 0
scan:
	for {
		it := p.peek()
		switch it.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK:
			if depth == 0 {
				break scan
			}
			depth--
		case token.RBRACE:
			if depth == 0 {
				break scan
			}
			depth--
		case token.EOF:
			break scan
		case token.COLON, token.COMMA, arrow, token.SEMICOLON:
			if depth == 0 {
				break scan
			}
		}
		p.next()
	}

	end := p.peek()
	in := ir.Input{Pos: p.at(first), Expr: p.text(first.pos, end.pos)}
	if end.tok != token.COLON {
		if p.i-start == 1 && first.tok == token.IDENT {
			if kind, ok := param.ParseKind(first.lit); ok {
				return ir.Input{}, errorf(ErrMissingParameter, p.at(first), "missing parameter for %s", kind)
			}
		}
		if first.tok == token.IDENT && p.items[start+1].tok == token.LPAREN && p.items[p.i-1].tok == token.RPAREN {
			return ir.Input{}, errorf(ErrUnknownKind, p.at(first), "invalid parameter type %s", first.lit)
		}
		return ir.Input{}, errorf(ErrUnknownKind, p.at(end), "expected :KIND after %s, found %s", in.Expr, end)
	}
	p.next()

	word := p.next()
	kind, ok := param.ParseKind(word.lit)
	if word.tok != token.IDENT || !ok {
		return ir.Input{}, errorf(ErrUnknownKind, p.at(word), "invalid parameter type %s", word)
	}
	in.Kind = kind
	in.KindPos = p.at(word)
	if in.Expr == "" {
		return ir.Input{}, errorf(ErrMissingParameter, p.at(word), "missing parameter for %s", kind)
	}
	return in, p.checkExpr(&in)
}

func (p *parser) checkExpr(in *ir.Input) *CompileError {
	expr, err := goparser.ParseExpr(in.Expr)
	if err != nil {
		return errorf(ErrInvalidExpression, in.Pos, "invalid parameter expression %q", in.Expr)
	}
	_, in.Ident = expr.(*ast.Ident)
	return nil
}

// parseOutput reads `KIND` or `name: KIND`.
func (p *parser) parseOutput() (ir.Output, *CompileError) {
	it := p.peek()
	if endsOperand(it) {
		return ir.Output{}, errorf(ErrMissingParameter, p.at(it), "missing parameter")
	}
	if it.tok != token.IDENT {
		return ir.Output{}, errorf(ErrUnknownKind, p.at(it), "invalid parameter type %s", it)
	}
	p.next()

	var out ir.Output
	word := it
	if p.peek().tok == token.COLON {
		p.next()
		out.Name = it.lit
		word = p.next()
		if word.tok != token.IDENT {
			return ir.Output{}, errorf(ErrUnknownKind, p.at(word), "invalid parameter type %s", word)
		}
	}
	kind, ok := param.ParseKind(word.lit)
	if !ok {
		return ir.Output{}, errorf(ErrUnknownKind, p.at(word), "invalid parameter type %s", word.lit)
	}
	out.Kind = kind
	out.Pos = p.at(word)
	return out, nil
}
