package token

import "testing"

// TestIsKeyword checks that every entry in the keyword table round-trips,
// and that an arbitrary identifier does not.
func TestIsKeyword(t *testing.T) {
	for word := range Keywords {
		if !IsKeyword(word) {
			t.Errorf("expected %q to be a keyword", word)
		}
	}

	if IsKeyword("counter") {
		t.Errorf("did not expect %q to be a keyword", "counter")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		in       Type
		expected string
	}{
		{EOF, "EOF"},
		{RESERVED, "RESERVED"},
		{IDENT, "IDENT"},
		{NUMBER, "NUMBER"},
		{Type(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.expected {
			t.Errorf("Type(%d).String() = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
