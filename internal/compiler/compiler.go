// Package compiler turns .jump sources into Go code.
//
// A .jump file declares blocks of jump statements:
//
//	// Hop solves the main jump.
//	jump Hop(h, t) {
//		H(h), T(t) => V, G
//	}
//
// Each block becomes a Go function, or a const group for `use const`
// blocks, that calls the resolver identities selected for its statements.
// Compilation runs in three passes: Parse builds the statement graph, Check
// resolves identities and evaluates constants, Generate renders Go source.
package compiler

import (
	"sort"

	"github.com/roach88/arcadejump/internal/ir"
)

// Result is a compiled .jump file.
type Result struct {
	File *ir.File

	// Code is the generated Go source, nil when the file has diagnostics.
	Code []byte
}

// Compile parses, checks and generates a .jump source. When the source has
// errors the returned error is a Diagnostics sorted by position, and Result
// still carries the statement graph of the blocks that parsed.
func Compile(filename string, src []byte, cfg Config) (*Result, error) {
	f, err := Analyze(filename, src, cfg)
	if err != nil {
		return &Result{File: f}, err
	}
	code, err := Generate(f, cfg.PackageFor(filename), cfg)
	if err != nil {
		return &Result{File: f}, err
	}
	return &Result{File: f, Code: code}, nil
}

// Analyze runs the parse and check passes without generating code.
func Analyze(filename string, src []byte, cfg Config) (*ir.File, error) {
	f, _, diags := parse(filename, src)
	diags = append(diags, check(f, cfg)...)
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Pos.Offset < diags[j].Pos.Offset
	})
	return f, diags.Err()
}
