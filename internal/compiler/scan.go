package compiler

import (
	"go/scanner"
	"go/token"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// arrow is the `=>` separator. Go has no such token, so the lexer folds an
// ASSIGN immediately followed by GTR into it.
const arrow = token.Token(1000)

type item struct {
	pos token.Pos
	tok token.Token
	lit string
}

func (it item) String() string {
	switch {
	case it.tok == arrow:
		return "=>"
	case it.tok == token.EOF:
		return "end of file"
	case it.tok == token.SEMICOLON && it.lit == "\n":
		return "newline"
	case it.lit != "":
		return it.lit
	}
	return it.tok.String()
}

// source is a lexed .jump file. Offsets and positions refer to the NFC
// normalised text.
type source struct {
	fset     *token.FileSet
	file     *token.File
	src      []byte
	items    []item
	comments []item

	// codeLines holds the lines carrying at least one token.
	codeLines map[int]bool
}

func lex(filename string, src []byte) (*source, Diagnostics) {
	src = norm.NFC.Bytes(src)
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))
	s := &source{
		fset:      fset,
		file:      file,
		src:       src,
		codeLines: make(map[int]bool),
	}

	var diags Diagnostics
	var sc scanner.Scanner
	sc.Init(file, src, func(pos token.Position, msg string) {
		diags = append(diags, errorf(ErrSyntax, pos, "%s", msg))
	}, scanner.ScanComments)

	for {
		pos, tok, lit := sc.Scan()
		if tok == token.COMMENT {
			s.comments = append(s.comments, item{pos, tok, lit})
			continue
		}
		if tok == token.GTR && len(s.items) > 0 {
			last := &s.items[len(s.items)-1]
			if last.tok == token.ASSIGN && file.Offset(pos) == file.Offset(last.pos)+1 {
				last.tok, last.lit = arrow, "=>"
				continue
			}
		}
		s.items = append(s.items, item{pos, tok, lit})
		if tok != token.SEMICOLON || lit != "\n" {
			s.codeLines[file.Line(pos)] = true
		}
		if tok == token.EOF {
			break
		}
	}
	return s, diags
}

func (s *source) position(pos token.Pos) token.Position {
	return s.fset.Position(pos)
}

func (s *source) offset(pos token.Pos) int {
	return s.file.Offset(pos)
}

// text returns the trimmed source between two positions.
func (s *source) text(from, to token.Pos) string {
	return strings.TrimSpace(string(s.src[s.offset(from):s.offset(to)]))
}

// docAbove returns the line comments directly above line, outermost first.
func (s *source) docAbove(line int) []string {
	var doc []string
	want := line - 1
	for i := len(s.comments) - 1; i >= 0; i-- {
		c := s.comments[i]
		cl := s.file.Line(c.pos)
		if cl >= line {
			continue
		}
		if cl != want || s.codeLines[cl] || !strings.HasPrefix(c.lit, "//") {
			break
		}
		text := strings.TrimPrefix(c.lit, "//")
		text = strings.TrimPrefix(text, " ")
		doc = append([]string{strings.TrimRight(text, " \t")}, doc...)
		want--
	}
	return doc
}
