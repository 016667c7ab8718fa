package diag

import (
	"strings"
	"testing"
)

func TestErrorCaretPosition(t *testing.T) {
	src := "int main(){ return a; }"
	pos := strings.IndexByte(src, 'a')

	err := New("undeclared variable", src, pos)
	got := err.Error()

	expected := "undeclared variable\n" +
		src + "\n" +
		strings.Repeat(" ", pos) + "^\n"

	if got != expected {
		t.Fatalf("unexpected diagnostic rendering:\ngot:\n%q\nwant:\n%q", got, expected)
	}
}

func TestErrorMultiline(t *testing.T) {
	src := "int main(){\n  return a;\n}"
	secondLine := "  return a;"
	lineStart := strings.Index(src, secondLine)
	col := strings.IndexByte(secondLine, 'a')

	err := New("undeclared variable", src, lineStart+col)
	got := err.Error()

	expected := "undeclared variable\n" +
		secondLine + "\n" +
		strings.Repeat(" ", col) + "^\n"

	if got != expected {
		t.Fatalf("unexpected diagnostic rendering:\ngot:\n%q\nwant:\n%q", got, expected)
	}
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = New("boom", "x", 0)
	if err.Error() == "" {
		t.Fatal("expected a non-empty message")
	}
}
