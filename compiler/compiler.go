// The compiler package contains the core of the compiler.
//
// In brief we go through a two-step process:
//
//  1. Tokenize and parse the source into a typed AST, resolving every
//     variable reference to a stack-frame offset as we go.
//
//  2. Walk the AST, generating x86-64 Intel-syntax assembly for it.
//
// There is only a single error type that can surface from any phase;
// see the diag package.
package compiler

import (
	"github.com/skx/cc9/codegen"
	"github.com/skx/cc9/parser"
)

// Compiler holds our object-state.
type Compiler struct {

	// source holds the program text we're compiling.
	source string

	// debug holds a flag to decide if a debug breakpoint is inserted
	// into the generated assembly after every function's prologue.
	debug bool
}

//
// Our public API consists of the three functions:
//  New
//  SetDebug
//  Compile
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the source program in the constructor.
func New(source string) *Compiler {
	return &Compiler{source: source}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile converts the input program into x86-64 assembly.
func (c *Compiler) Compile() (string, error) {
	program, err := parser.Parse(c.source)
	if err != nil {
		return "", err
	}

	out, err := codegen.Generate(program, c.debug)
	if err != nil {
		return "", err
	}

	return out, nil
}
