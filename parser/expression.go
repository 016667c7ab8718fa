package parser

import "github.com/skx/cc9/ast"

// expression = assign ;
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssign()
}

// assign = equality [ "=" assign ] ;
//
// Right-associative: the right-hand side recurses back into assign.
func (p *Parser) parseAssign() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if p.tokens.ConsumeReserved("=") {
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Kind: ast.Assign, Left: left, Right: right}, nil
	}
	return left, nil
}

// equality = relational { ("==" | "!=") relational } ;
func (p *Parser) parseEquality() (ast.Expr, error) {
	node, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tokens.ConsumeReserved("=="):
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareEq, Left: node, Right: rhs}
		case p.tokens.ConsumeReserved("!="):
			rhs, err := p.parseRelational()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareNe, Left: node, Right: rhs}
		default:
			return node, nil
		}
	}
}

// relational = add { ("<" | "<=" | ">" | ">=") add } ;
//
// ">" and ">=" are desugared by swapping operands into "<" and "<=".
func (p *Parser) parseRelational() (ast.Expr, error) {
	node, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tokens.ConsumeReserved("<"):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareLt, Left: node, Right: rhs}
		case p.tokens.ConsumeReserved("<="):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareLe, Left: node, Right: rhs}
		case p.tokens.ConsumeReserved(">"):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareLt, Left: rhs, Right: node}
		case p.tokens.ConsumeReserved(">="):
			rhs, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.CompareLe, Left: rhs, Right: node}
		default:
			return node, nil
		}
	}
}

// add = mul { ("+" | "-") mul } ;
//
// Pointer scaling: once the left operand's type is known, every later
// operand in this chain is multiplied by the pointed-to element's size
// before being added/subtracted, so "p + k" means "p + k*sizeof(*p)".
func (p *Parser) parseAdd() (ast.Expr, error) {
	node, err := p.parseMul()
	if err != nil {
		return nil, err
	}

	rate := pointerScaleRate(node.Type())

	for {
		switch {
		case p.tokens.ConsumeReserved("+"):
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.Add, Left: node, Right: scaleBy(rhs, rate)}
		case p.tokens.ConsumeReserved("-"):
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.Subtract, Left: node, Right: scaleBy(rhs, rate)}
		default:
			return node, nil
		}
	}
}

// pointerScaleRate returns the element size to scale by when t is a
// Pointer or Array, or 1 for any other type.
func pointerScaleRate(t *ast.VariableType) int64 {
	if t.Kind == ast.Pointer || t.Kind == ast.Array {
		return int64(t.Dereferenced().Size())
	}
	return 1
}

// scaleBy multiplies e by rate, unless rate is 1 in which case e is
// returned unchanged.
func scaleBy(e ast.Expr, rate int64) ast.Expr {
	if rate == 1 {
		return e
	}
	return &ast.BinaryExpr{Kind: ast.Multiply, Left: e, Right: &ast.NumExpr{Value: rate}}
}

// mul = unary { ("*" | "/") unary } ;
func (p *Parser) parseMul() (ast.Expr, error) {
	node, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tokens.ConsumeReserved("*"):
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.Multiply, Left: node, Right: rhs}
		case p.tokens.ConsumeReserved("/"):
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryExpr{Kind: ast.Divide, Left: node, Right: rhs}
		default:
			return node, nil
		}
	}
}

// unary = "+" primary | "-" primary
//       | "*" unary | "&" unary | "sizeof" unary
//       | primary ;
func (p *Parser) parseUnary() (ast.Expr, error) {
	switch {
	case p.tokens.ConsumeReserved("+"):
		return p.parsePrimary()

	case p.tokens.ConsumeReserved("-"):
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Kind: ast.Subtract, Left: &ast.NumExpr{Value: 0}, Right: operand}, nil

	case p.tokens.ConsumeReserved("*"):
		pos := p.tokens.Position()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if operand.Type().Kind == ast.Int {
			return nil, p.tokens.ErrorAt("cannot dereference a value of type int", pos)
		}
		return &ast.UnaryExpr{Kind: ast.Deref, Expr: operand}, nil

	case p.tokens.ConsumeReserved("&"):
		pos := p.tokens.Position()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if !isLvalue(operand) {
			return nil, p.tokens.ErrorAt("'&' requires an addressable value", pos)
		}
		return &ast.UnaryExpr{Kind: ast.Address, Expr: operand}, nil

	case p.tokens.ConsumeReserved("sizeof"):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.NumExpr{Value: int64(operand.Type().Size())}, nil

	default:
		return p.parsePrimary()
	}
}

// isLvalue reports whether e designates a storage location: a local
// variable reference, or a dereference of one.
func isLvalue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.LocalVarExpr:
		return true
	case *ast.UnaryExpr:
		return v.Kind == ast.Deref
	default:
		return false
	}
}

// primary = "(" expression ")" | ident [ "(" [ expression { "," expression } ] ")" ] | number ;
func (p *Parser) parsePrimary() (ast.Expr, error) {
	if p.tokens.ConsumeReserved("(") {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.tokens.ExpectReserved(")"); err != nil {
			return nil, err
		}
		return e, nil
	}

	if p.tokens.NextIsIdent() {
		return p.parseIdentifierExpr()
	}

	n, err := p.tokens.ExpectNum()
	if err != nil {
		return nil, err
	}
	return &ast.NumExpr{Value: n}, nil
}

func (p *Parser) parseIdentifierExpr() (ast.Expr, error) {
	pos := p.tokens.Position()
	name, _ := p.tokens.ExpectIdentify()

	if p.tokens.ConsumeReserved("(") {
		var args []ast.Expr
		for !p.tokens.ConsumeReserved(")") {
			if len(args) > 0 {
				if err := p.tokens.ExpectReserved(","); err != nil {
					return nil, err
				}
			}
			a, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if len(args) > 6 {
				return nil, p.tokens.Error("a call may pass at most six arguments")
			}
		}
		return &ast.CallExpr{Name: name, Args: args}, nil
	}

	v := p.scope.lookup(name)
	if v == nil {
		return nil, p.tokens.ErrorAt("'"+name+"' is not declared", pos)
	}
	return &ast.LocalVarExpr{Var: *v}, nil
}
