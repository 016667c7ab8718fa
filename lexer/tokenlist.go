package lexer

import (
	"github.com/skx/cc9/diag"
	"github.com/skx/cc9/token"
)

// TokenList is a cursor over an already-lexed token stream, consumed by
// the parser. It never mutates the underlying slice — Consume* and
// Expect* advance an internal index.
type TokenList struct {
	tokens []token.Token
	index  int
	source string
}

// AtEOF reports whether the cursor has reached the end-of-stream token.
func (l *TokenList) AtEOF() bool {
	return l.current().Type == token.EOF
}

func (l *TokenList) current() token.Token {
	if l.index >= len(l.tokens) {
		return token.Token{Type: token.EOF}
	}
	return l.tokens[l.index]
}

// Position returns the byte offset of the token the cursor currently
// sits on, for anchoring a diagnostic.
func (l *TokenList) Position() int {
	return l.current().Position
}

// ConsumeReserved advances past the current token and returns true if it
// is a RESERVED token with the given literal; otherwise it leaves the
// cursor untouched and returns false.
func (l *TokenList) ConsumeReserved(literal string) bool {
	tok := l.current()
	if tok.Type == token.RESERVED && tok.Literal == literal {
		l.index++
		return true
	}
	return false
}

// NextIsReserved reports whether the current token is a RESERVED token
// with the given literal, without advancing.
func (l *TokenList) NextIsReserved(literal string) bool {
	tok := l.current()
	return tok.Type == token.RESERVED && tok.Literal == literal
}

// NextIsIdent reports whether the current token is an identifier,
// without advancing.
func (l *TokenList) NextIsIdent() bool {
	return l.current().Type == token.IDENT
}

// ExpectReserved advances past the current token if it is a RESERVED
// token with the given literal; otherwise it returns a diagnostic.
func (l *TokenList) ExpectReserved(literal string) error {
	if l.ConsumeReserved(literal) {
		return nil
	}
	return l.Error("expected '" + literal + "'")
}

// ExpectNum advances past the current token and returns its value if it
// is a NUMBER token; otherwise it returns a diagnostic.
func (l *TokenList) ExpectNum() (int64, error) {
	tok := l.current()
	if tok.Type != token.NUMBER {
		return 0, l.Error("expected a number")
	}
	l.index++
	return tok.Value, nil
}

// ExpectIdentify advances past the current token and returns its literal
// if it is an identifier; otherwise it returns ("", false) and leaves the
// cursor untouched.
func (l *TokenList) ExpectIdentify() (string, bool) {
	tok := l.current()
	if tok.Type != token.IDENT {
		return "", false
	}
	l.index++
	return tok.Literal, true
}

// Error builds a diagnostic anchored at the cursor's current position.
func (l *TokenList) Error(message string) error {
	return diag.New(message, l.source, l.Position())
}

// ErrorAt builds a diagnostic anchored at an explicit byte position,
// for callers that captured a token's position before consuming it.
func (l *TokenList) ErrorAt(message string, pos int) error {
	return diag.New(message, l.source, pos)
}
