package parser

import "github.com/skx/cc9/ast"

// funcScope is the per-function variable table described in spec.md
// §3/§4.2: names are unique within a function, and each offset is the
// running sum of the sizes of every variable declared so far, its own
// included. It is created fresh at function entry and
// discarded at function exit — nothing here outlives one Function's
// parse.
type funcScope struct {
	vars   []ast.Variable
	offset int
}

// lookup finds a previously declared variable by name.
func (s *funcScope) lookup(name string) *ast.Variable {
	for i := range s.vars {
		if s.vars[i].Name == name {
			return &s.vars[i]
		}
	}
	return nil
}

// declare reserves a slot for a newly declared variable of the given
// type, assigning it the next offset, and records it in the table.
func (s *funcScope) declare(name string, typ *ast.VariableType) ast.Variable {
	s.offset += typ.Size()
	v := ast.Variable{Name: name, Type: typ, Offset: s.offset}
	s.vars = append(s.vars, v)
	return v
}
