package lexer

import (
	"testing"

	"github.com/skx/cc9/token"
)

// Trivial test of the tokenizing of punctuators and keywords.
func TestNextTokenOperators(t *testing.T) {
	input := `+-*/(); {},&[]=!<> == != <= >= return if else while for int sizeof`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.RESERVED, "+"},
		{token.RESERVED, "-"},
		{token.RESERVED, "*"},
		{token.RESERVED, "/"},
		{token.RESERVED, "("},
		{token.RESERVED, ")"},
		{token.RESERVED, ";"},
		{token.RESERVED, "{"},
		{token.RESERVED, "}"},
		{token.RESERVED, ","},
		{token.RESERVED, "&"},
		{token.RESERVED, "["},
		{token.RESERVED, "]"},
		{token.RESERVED, "="},
		{token.RESERVED, "!"},
		{token.RESERVED, "<"},
		{token.RESERVED, ">"},
		{token.RESERVED, "=="},
		{token.RESERVED, "!="},
		{token.RESERVED, "<="},
		{token.RESERVED, ">="},
		{token.RESERVED, "return"},
		{token.RESERVED, "if"},
		{token.RESERVED, "else"},
		{token.RESERVED, "while"},
		{token.RESERVED, "for"},
		{token.RESERVED, "int"},
		{token.RESERVED, "sizeof"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %s", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong, expected=%v, got=%v", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Integers round-trip through the lexer as a single Number token.
func TestNumberRoundTrip(t *testing.T) {
	tests := []int64{0, 1, 42, 9223372036854775807}

	for _, n := range tests {
		l := New(itoa(n))
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error tokenizing %d: %s", n, err)
		}
		if tok.Type != token.NUMBER {
			t.Fatalf("expected a NUMBER token for %d, got %v", n, tok.Type)
		}
		if tok.Value != n {
			t.Fatalf("expected value %d, got %d", n, tok.Value)
		}

		eof, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error after number: %s", err)
		}
		if eof.Type != token.EOF {
			t.Fatalf("expected EOF after the number, got %v", eof.Type)
		}
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Identifiers that are not keywords lex as IDENT. An identifier must
// start with a letter, so a leading underscore is a tokenize error.
func TestIdentifiers(t *testing.T) {
	input := "foo bar_1 _leading"

	l := New(input)
	for _, expected := range []string{"foo", "bar_1"} {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if tok.Type != token.IDENT {
			t.Fatalf("expected IDENT for %q, got %v", expected, tok.Type)
		}
		if tok.Literal != expected {
			t.Fatalf("expected literal %q, got %q", expected, tok.Literal)
		}
	}

	if _, err := l.NextToken(); err == nil {
		t.Fatalf("expected an error tokenizing %q", "_leading")
	}
}

// Comments are skipped entirely and never produce tokens.
func TestCommentsAreSkipped(t *testing.T) {
	input := "1 // trailing line comment\n+ /* a block\ncomment */ 2"

	l := New(input)

	tok, err := l.NextToken()
	if err != nil || tok.Type != token.NUMBER || tok.Value != 1 {
		t.Fatalf("expected NUMBER(1), got %+v err=%v", tok, err)
	}

	plus, err := l.NextToken()
	if err != nil || plus.Type != token.RESERVED || plus.Literal != "+" {
		t.Fatalf("expected '+', got %+v err=%v", plus, err)
	}

	two, err := l.NextToken()
	if err != nil || two.Type != token.NUMBER || two.Value != 2 {
		t.Fatalf("expected NUMBER(2), got %+v err=%v", two, err)
	}
}

// An unrecognized byte is a tokenize error anchored at its position.
func TestUnknownByteIsAnError(t *testing.T) {
	l := New("1 + $ 2")

	for i := 0; i < 2; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatalf("unexpected error before the bad byte: %s", err)
		}
	}

	if _, err := l.NextToken(); err == nil {
		t.Fatalf("expected an error tokenizing '$'")
	}
}

// Tokenize drives the lexer to completion and hands back a TokenList.
func TestTokenizeProducesTokenList(t *testing.T) {
	list, err := Tokenize("int main(){ return 0; }")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if list.AtEOF() {
		t.Fatalf("did not expect to be at EOF immediately")
	}
	if !list.NextIsReserved("int") {
		t.Fatalf("expected the first token to be 'int'")
	}
}
