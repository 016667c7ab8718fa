package ast

// Function is a single user-defined function: its name, its parameters
// (0 to 6, sharing the flat offset space with the body's local
// declarations), and its statement list.
type Function struct {
	Name       string
	Parameters []Variable
	Body       []Stmt
}

// Program is an ordered sequence of function definitions — the root of
// the parsed tree.
type Program struct {
	Functions []Function
}
