// Package codegen walks a typed ast.Program and emits x86-64 Intel-syntax
// assembly for it, one mnemonic-shaped method at a time.
package codegen

import (
	"fmt"
	"strings"
)

// argRegisters64 and argRegisters32 are the System V AMD64 integer
// argument registers, in order, at 8-byte and 4-byte width.
var argRegisters64 = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
var argRegisters32 = [6]string{"edi", "esi", "edx", "ecx", "r8d", "r9d"}

// Emitter accumulates assembly text for a single function and tracks the
// two pieces of state a stack-machine code generator needs: a label
// counter for unique control-flow targets, and a running push/pop
// balance used to keep rsp 16-byte aligned at call sites.
type Emitter struct {
	out        strings.Builder
	labelCount int
	pushCount  int
}

// NewEmitter returns an Emitter ready to accumulate one function's body.
// The label counter is per-function, matching the generator's own
// per-function numbering.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// String returns everything emitted so far.
func (e *Emitter) String() string {
	return e.out.String()
}

func (e *Emitter) line(format string, args ...any) {
	fmt.Fprintf(&e.out, "        "+format+"\n", args...)
}

// Raw writes a line with no indentation and no trailing processing —
// used for section headers and comments.
func (e *Emitter) Raw(s string) {
	e.out.WriteString(s)
	e.out.WriteString("\n")
}

// FuncLabel emits a global function entry label.
func (e *Emitter) FuncLabel(name string) {
	fmt.Fprintf(&e.out, "%s:\n", name)
}

// NewLocalLabel allocates a fresh numeric local label id.
func (e *Emitter) NewLocalLabel() int {
	id := e.labelCount
	e.labelCount++
	return id
}

// LocalLabel emits a local label definition, ".L<n>:".
func (e *Emitter) LocalLabel(id int) {
	fmt.Fprintf(&e.out, ".L%d:\n", id)
}

// Push emits "push src" and records the 8-byte growth in push balance.
func (e *Emitter) Push(src string) {
	e.line("push %s", src)
	e.pushCount += 8
}

// Pop emits "pop dst" and records the 8-byte shrink in push balance.
func (e *Emitter) Pop(dst string) {
	e.line("pop %s", dst)
	e.pushCount -= 8
}

// Mov emits "mov dst, src".
func (e *Emitter) Mov(dst, src string) {
	e.line("mov %s, %s", dst, src)
}

// Movzx emits "movzx dst, src".
func (e *Emitter) Movzx(dst, src string) {
	e.line("movzx %s, %s", dst, src)
}

// Add emits "add dst, src".
func (e *Emitter) Add(dst, src string) {
	e.line("add %s, %s", dst, src)
}

// AddImm emits "add dst, n".
func (e *Emitter) AddImm(dst string, n int) {
	e.line("add %s, %d", dst, n)
}

// Sub emits "sub dst, src".
func (e *Emitter) Sub(dst, src string) {
	e.line("sub %s, %s", dst, src)
}

// SubImm emits "sub dst, n".
func (e *Emitter) SubImm(dst string, n int) {
	e.line("sub %s, %d", dst, n)
}

// Imul emits "imul dst, src".
func (e *Emitter) Imul(dst, src string) {
	e.line("imul %s, %s", dst, src)
}

// Cqo emits "cqo" — sign-extends rax into rdx:rax ahead of idiv.
func (e *Emitter) Cqo() {
	e.line("cqo")
}

// Idiv emits "idiv src".
func (e *Emitter) Idiv(src string) {
	e.line("idiv %s", src)
}

// Cmp emits "cmp dst, src".
func (e *Emitter) Cmp(dst, src string) {
	e.line("cmp %s, %s", dst, src)
}

// Sete, Setne, Setl, Setle emit the corresponding byte-set-on-condition
// instruction.
func (e *Emitter) Sete(dst string)  { e.line("sete %s", dst) }
func (e *Emitter) Setne(dst string) { e.line("setne %s", dst) }
func (e *Emitter) Setl(dst string)  { e.line("setl %s", dst) }
func (e *Emitter) Setle(dst string) { e.line("setle %s", dst) }

// Jmp emits an unconditional jump to a local label.
func (e *Emitter) Jmp(id int) {
	e.line("jmp .L%d", id)
}

// Je emits a jump-if-equal (zero flag set) to a local label.
func (e *Emitter) Je(id int) {
	e.line("je .L%d", id)
}

// Ret emits "ret".
func (e *Emitter) Ret() {
	e.line("ret")
}

// Breakpoint emits a debug trap, matching the teacher's "-debug" output:
// a comment followed by "int 03".
func (e *Emitter) Breakpoint() {
	e.Raw("        # Debug-break")
	e.line("int 03")
}

// Call emits a call to name, padding rsp to a 16-byte boundary first if
// the current push balance would otherwise misalign it, and restoring
// rsp immediately after. This is the only place alignment is computed;
// no other method adds alignment padding.
func (e *Emitter) Call(name string) {
	pad := (16 - e.pushCount%16) % 16
	if pad != 0 {
		e.SubImm("rsp", pad)
	}
	e.line("call %s", name)
	if pad != 0 {
		e.AddImm("rsp", pad)
	}
}

// ArgRegister64 and ArgRegister32 return the i'th (0-indexed) integer
// argument register at 8-byte or 4-byte width.
func ArgRegister64(i int) string { return argRegisters64[i] }
func ArgRegister32(i int) string { return argRegisters32[i] }
