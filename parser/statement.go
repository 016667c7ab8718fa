package parser

import "github.com/skx/cc9/ast"

// statement  = "{" { statement } "}"
//            | "if" "(" expression ")" statement [ "else" statement ]
//            | "while" "(" expression ")" statement
//            | "for" "(" expression ";" expression ";" expression ")" statement
//            | "return" expression ";"
//            | decl ";"
//            | expression ";" ;
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.tokens.ConsumeReserved("{"):
		var stmts []ast.Stmt
		for !p.tokens.ConsumeReserved("}") {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
		return &ast.BlockStmt{Statements: stmts}, nil

	case p.tokens.ConsumeReserved("if"):
		return p.parseIf()

	case p.tokens.ConsumeReserved("while"):
		return p.parseWhile()

	case p.tokens.ConsumeReserved("for"):
		return p.parseFor()

	case p.tokens.ConsumeReserved("return"):
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.tokens.ExpectReserved(";"); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Expr: e}, nil

	case p.tokens.NextIsReserved("int"):
		v, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		if err := p.tokens.ExpectReserved(";"); err != nil {
			return nil, err
		}
		return &ast.DeclStmt{Var: v}, nil

	default:
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.tokens.ExpectReserved(";"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	if err := p.tokens.ExpectReserved("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.tokens.ExpectReserved(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.tokens.ConsumeReserved("else") {
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ast.IfElseStmt{Cond: cond, Then: then, Else: els}, nil
	}
	return &ast.IfStmt{Cond: cond, Then: then}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	if err := p.tokens.ExpectReserved("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.tokens.ExpectReserved(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	if err := p.tokens.ExpectReserved("("); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.tokens.ExpectReserved(";"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.tokens.ExpectReserved(";"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.tokens.ExpectReserved(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Init: init, Cond: cond, Iter: iter, Body: body}, nil
}
