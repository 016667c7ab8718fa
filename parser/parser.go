// Package parser implements a recursive-descent parser that consumes a
// lexer.TokenList and builds a typed ast.Program, resolving every local
// variable reference to a stack-frame offset as it goes.
package parser

import (
	"github.com/skx/cc9/ast"
	"github.com/skx/cc9/lexer"
)

// Parser holds the token cursor and the active function's variable
// table — the only two pieces of state threaded through the recursive
// descent. There is no package-level mutable state.
type Parser struct {
	tokens *lexer.TokenList
	scope  *funcScope
}

// Parse lexes and parses a complete source program into a typed AST.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

// program = { function } ;
func (p *Parser) parseProgram() (*ast.Program, error) {
	var functions []ast.Function
	for !p.tokens.AtEOF() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return &ast.Program{Functions: functions}, nil
}

// function = "int" ident "(" [ decl { "," decl } ] ")" "{" { statement } "}" ;
func (p *Parser) parseFunction() (ast.Function, error) {
	if err := p.tokens.ExpectReserved("int"); err != nil {
		return ast.Function{}, err
	}

	name, ok := p.tokens.ExpectIdentify()
	if !ok {
		return ast.Function{}, p.tokens.Error("expected a function name")
	}

	if err := p.tokens.ExpectReserved("("); err != nil {
		return ast.Function{}, err
	}

	p.scope = &funcScope{}

	var params []ast.Variable
	for !p.tokens.ConsumeReserved(")") {
		if len(params) > 0 {
			if err := p.tokens.ExpectReserved(","); err != nil {
				return ast.Function{}, err
			}
		}
		v, err := p.parseDecl()
		if err != nil {
			return ast.Function{}, err
		}
		params = append(params, v)
		if len(params) > 6 {
			return ast.Function{}, p.tokens.Error("a function may declare at most six parameters")
		}
	}

	if err := p.tokens.ExpectReserved("{"); err != nil {
		return ast.Function{}, err
	}

	var body []ast.Stmt
	for !p.tokens.ConsumeReserved("}") {
		s, err := p.parseStatement()
		if err != nil {
			return ast.Function{}, err
		}
		body = append(body, s)
	}

	return ast.Function{Name: name, Parameters: params, Body: body}, nil
}

// decl = "int" ptr ident [ "[" number "]" ] ;
// ptr  = { "*" } ;
func (p *Parser) parseDecl() (ast.Variable, error) {
	if err := p.tokens.ExpectReserved("int"); err != nil {
		return ast.Variable{}, err
	}

	typ := ast.NewInt()
	for p.tokens.ConsumeReserved("*") {
		typ = ast.NewPointer(typ)
	}

	namePos := p.tokens.Position()
	name, ok := p.tokens.ExpectIdentify()
	if !ok {
		return ast.Variable{}, p.tokens.Error("expected a variable name")
	}

	if p.tokens.ConsumeReserved("[") {
		n, err := p.tokens.ExpectNum()
		if err != nil {
			return ast.Variable{}, err
		}
		if err := p.tokens.ExpectReserved("]"); err != nil {
			return ast.Variable{}, err
		}
		typ = ast.NewArray(typ, int(n))
	}

	if p.scope.lookup(name) != nil {
		return ast.Variable{}, p.tokens.ErrorAt("'"+name+"' is already declared in this function", namePos)
	}

	return p.scope.declare(name, typ), nil
}
