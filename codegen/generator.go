package codegen

import (
	"fmt"
	"os"

	"github.com/skx/cc9/ast"
)

// frameSize is the fixed per-function stack frame: 26 eight-byte slots,
// enough for any program that respects the six-parameter limit plus a
// reasonable number of locals. It is not sized to actual usage.
const frameSize = 208

// Generate walks program and returns the assembly text for it, or the
// first error encountered (today it never returns one: the only
// generator-side fault, an assignment to a non-addressable operand,
// which the parser accepts, is reported as a warning on stderr instead —
// but the signature leaves room for that to change). When
// debug is set, a breakpoint is inserted after every function's prologue,
// matching the teacher's "-debug" output.
func Generate(program *ast.Program, debug bool) (string, error) {
	var out string
	out += ".intel_syntax noprefix\n"
	out += ".global main\n\n"

	for _, fn := range program.Functions {
		out += genFunction(fn, debug)
	}

	return out, nil
}

// genFunction emits one function's prologue, body, and fallthrough
// epilogue. The label counter and push balance are scoped to a single
// function — neither is meaningful across a call boundary.
func genFunction(fn ast.Function, debug bool) string {
	e := NewEmitter()

	e.FuncLabel(fn.Name)
	e.Push("rbp")
	e.Mov("rbp", "rsp")
	e.SubImm("rsp", frameSize)

	if debug {
		e.Breakpoint()
	}

	for i, param := range fn.Parameters {
		genParameter(e, param, i)
	}

	for _, stmt := range fn.Body {
		genStmt(e, stmt)
		e.Pop("rax")
	}

	e.Pop("rax")
	e.Mov("rsp", "rbp")
	e.Pop("rbp")
	e.Ret()

	return e.String()
}

// genParameter stores an incoming argument register into its parameter's
// frame slot, sized by the parameter's type.
func genParameter(e *Emitter, v ast.Variable, index int) {
	genLvalueAddress(e, &ast.LocalVarExpr{Var: v})
	e.Pop("rax")
	if v.Type.Size() == 4 {
		e.Mov("[rax]", ArgRegister32(index))
	} else {
		e.Mov("[rax]", ArgRegister64(index))
	}
}

// genStmt emits one statement. An ExprStmt leaves its expression's word
// on the stack, and an If, IfElse, While or For leaves whatever its
// nested statements leave. genFunction's loop and the BlockStmt case's
// loop are the only places that discard a statement's leftover word, and
// they pop one word after every statement, whatever its kind; directly
// after a Return that pop is never reached, since ret has already
// transferred control.
func genStmt(e *Emitter, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		// Declaring a slot reserves no code; the offset was already
		// baked into the variable table at parse time.

	case *ast.ExprStmt:
		genExpr(e, s.Expr)

	case *ast.ReturnStmt:
		genExpr(e, s.Expr)
		e.Pop("rax")
		e.Mov("rsp", "rbp")
		e.Pop("rbp")
		e.Ret()

	case *ast.IfStmt:
		lend := e.NewLocalLabel()
		genCondition(e, s.Cond)
		e.Je(lend)
		genStmt(e, s.Then)
		e.LocalLabel(lend)

	case *ast.IfElseStmt:
		lelse := e.NewLocalLabel()
		lend := e.NewLocalLabel()
		genCondition(e, s.Cond)
		e.Je(lelse)
		genStmt(e, s.Then)
		e.Jmp(lend)
		e.LocalLabel(lelse)
		genStmt(e, s.Else)
		e.LocalLabel(lend)

	case *ast.WhileStmt:
		lbegin := e.NewLocalLabel()
		lend := e.NewLocalLabel()
		e.LocalLabel(lbegin)
		genCondition(e, s.Cond)
		e.Je(lend)
		genStmt(e, s.Body)
		e.Jmp(lbegin)
		e.LocalLabel(lend)

	case *ast.ForStmt:
		lbegin := e.NewLocalLabel()
		lend := e.NewLocalLabel()
		genExpr(e, s.Init)
		e.LocalLabel(lbegin)
		genCondition(e, s.Cond)
		e.Je(lend)
		genStmt(e, s.Body)
		genExpr(e, s.Iter)
		e.Jmp(lbegin)
		e.LocalLabel(lend)

	case *ast.BlockStmt:
		for _, inner := range s.Statements {
			genStmt(e, inner)
			e.Pop("rax")
		}

	default:
		panic(fmt.Sprintf("codegen: unhandled statement type %T", stmt))
	}
}

// genCondition generates a condition expression, pops it, and compares
// it against zero, sized by the condition's own type.
func genCondition(e *Emitter, cond ast.Expr) {
	genExpr(e, cond)
	e.Pop("rax")
	reg := "rax"
	if cond.Type().Size() == 4 {
		reg = "eax"
	}
	e.Cmp(reg, "0")
}

// genExpr generates code for expr, leaving exactly one 8-byte word on
// top of the runtime stack.
func genExpr(e *Emitter, expr ast.Expr) {
	switch ex := expr.(type) {
	case *ast.NumExpr:
		e.Push(fmt.Sprintf("%d", ex.Value))

	case *ast.LocalVarExpr:
		genLvalueAddress(e, ex)
		if ex.Var.Type.Kind == ast.Array {
			// Arrays decay to their address; the lvalue address
			// left on the stack by genLvalueAddress is the result.
			return
		}
		e.Pop("rax")
		e.Mov("rax", "[rax]")
		e.Push("rax")

	case *ast.BinaryExpr:
		genBinary(e, ex)

	case *ast.UnaryExpr:
		genUnary(e, ex)

	case *ast.CallExpr:
		genCall(e, ex)

	default:
		panic(fmt.Sprintf("codegen: unhandled expression type %T", expr))
	}
}

func genBinary(e *Emitter, ex *ast.BinaryExpr) {
	if ex.Kind == ast.Assign {
		genLvalueAddress(e, ex.Left)
		genExpr(e, ex.Right)
		e.Pop("rdi")
		e.Pop("rax")
		if ex.Left.Type().Size() == 4 {
			e.Mov("[rax]", "edi")
		} else {
			e.Mov("[rax]", "rdi")
		}
		e.Push("rdi")
		return
	}

	genExpr(e, ex.Left)
	genExpr(e, ex.Right)
	e.Pop("rdi")
	e.Pop("rax")

	rax, rdi := "rax", "rdi"
	if ex.Left.Type().Size() == 4 && ex.Right.Type().Size() == 4 {
		rax, rdi = "eax", "edi"
	}

	switch ex.Kind {
	case ast.Add:
		e.Add(rax, rdi)
	case ast.Subtract:
		e.Sub(rax, rdi)
	case ast.Multiply:
		e.Imul(rax, rdi)
	case ast.Divide:
		e.Cqo()
		e.Idiv("rdi")
	case ast.CompareEq, ast.CompareNe, ast.CompareLt, ast.CompareLe:
		e.Cmp(rax, rdi)
		switch ex.Kind {
		case ast.CompareEq:
			e.Sete("al")
		case ast.CompareNe:
			e.Setne("al")
		case ast.CompareLt:
			e.Setl("al")
		case ast.CompareLe:
			e.Setle("al")
		}
		e.Movzx("rax", "al")
	default:
		panic(fmt.Sprintf("codegen: unhandled binary operator %v", ex.Kind))
	}
	e.Push("rax")
}

func genUnary(e *Emitter, ex *ast.UnaryExpr) {
	switch ex.Kind {
	case ast.Address:
		genLvalueAddress(e, ex.Expr)
	case ast.Deref:
		genExpr(e, ex.Expr)
		e.Pop("rax")
		e.Mov("rax", "[rax]")
		e.Push("rax")
	default:
		panic(fmt.Sprintf("codegen: unhandled unary operator %v", ex.Kind))
	}
}

func genCall(e *Emitter, ex *ast.CallExpr) {
	for _, arg := range ex.Args {
		genExpr(e, arg)
	}
	for i := len(ex.Args) - 1; i >= 0; i-- {
		e.Pop(ArgRegister64(i))
	}
	e.Call(ex.Name)
	e.Push("rax")
}

// genLvalueAddress leaves the address of a storage location on top of
// the stack. A LocalVariable's address is computed from the frame
// pointer and its offset; a Deref's address is just its operand's value.
// Anything else cannot be assigned to or have its address taken. The
// parser rejects '&' on such an operand but accepts one as the target of
// '=' (for example "1 = 2"); that case is reported here as a warning on
// stderr rather than a compile error, and no address is pushed.
func genLvalueAddress(e *Emitter, expr ast.Expr) {
	switch ex := expr.(type) {
	case *ast.LocalVarExpr:
		e.Mov("rax", "rbp")
		e.SubImm("rax", ex.Var.Offset)
		e.Push("rax")

	case *ast.UnaryExpr:
		if ex.Kind == ast.Deref {
			genExpr(e, ex.Expr)
			return
		}
		fmt.Fprintln(os.Stderr, "warning: operand is not addressable")

	default:
		fmt.Fprintln(os.Stderr, "warning: operand is not addressable")
	}
}
