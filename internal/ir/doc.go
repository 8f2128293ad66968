// Package ir holds the statement graph of a .jump source file.
//
// The compiler parses a file into these types, resolves each output to a
// param.Identity, and hands the result to the emitter. The `jumpgen check`
// command prints the graph as JSON.
//
// This package contains type definitions only; ir imports nothing internal.
// All JSON tags use snake_case.
package ir
