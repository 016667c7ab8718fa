package compiler

import (
	"strings"
	"testing"
)

// TestCompileValidPrograms exercises every end-to-end scenario a correct
// program should pass: tokenizing, parsing, and generating all succeed
// and produce assembly shaped the way the ABI expects.
func TestCompileValidPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"literal return", "int main() { return 42; }"},
		{"arithmetic", "int main() { return 1 + 2 * 3; }"},
		{"local variables", "int main() { int a; a = 3; return a; }"},
		{"pointers", "int main() { int a; int *p; p = &a; *p = 7; return a; }"},
		{"arrays", "int main() { int a[3]; *(a + 1) = 5; return *(a + 1); }"},
		{"control flow", "int main() { int i; int sum; i = 0; sum = 0; while (i < 5) { sum = sum + i; i = i + 1; } return sum; }"},
		{"function calls", "int add(int a, int b) { return a + b; } int main() { return add(2, 3); }"},
		{"three-function call chain", "int add(int a, int b) { return a + b; } int helper(int x) { return add(x, external(x)); } int main() { return helper(5); }"},
		{"sizeof", "int main() { int *p; return sizeof(p); }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.source)
			out, err := c.Compile()
			if err != nil {
				t.Fatalf("unexpected error compiling %q: %s", tc.source, err)
			}
			if !strings.HasPrefix(out, ".intel_syntax noprefix") {
				t.Errorf("expected output to start with the Intel-syntax directive, got: %s", out)
			}
			if !strings.Contains(out, "main:") {
				t.Errorf("expected a main label in the output")
			}
		})
	}
}

// TestCompileBogusPrograms ensures a representative set of malformed
// programs surface an error rather than panicking or silently producing
// nonsense assembly.
func TestCompileBogusPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"undeclared variable", "int main() { return a; }"},
		{"duplicate declaration", "int main() { int a; int a; return a; }"},
		{"too many parameters", "int f(int a, int b, int c, int d, int e, int g, int h) { return 0; }"},
		{"missing semicolon", "int main() { return 1 }"},
		{"unterminated function", "int main() { return 1;"},
		{"dereferencing an int", "int main() { int a; return *a; }"},
		{"unknown byte", "int main() { return 1 $ 2; }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.source)
			_, err := c.Compile()
			if err == nil {
				t.Fatalf("expected an error compiling %q, got none", tc.source)
			}
		})
	}
}

func TestSetDebugInsertsABreakpoint(t *testing.T) {
	c := New("int main() { return 0; }")
	c.SetDebug(true)
	out, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(out, "int 03") {
		t.Errorf("expected a debug breakpoint in the output with debug enabled, got: %s", out)
	}
}

func TestWithoutDebugNoBreakpointIsEmitted(t *testing.T) {
	c := New("int main() { return 0; }")
	out, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if strings.Contains(out, "int 03") {
		t.Errorf("did not expect a debug breakpoint without -debug, got: %s", out)
	}
}
