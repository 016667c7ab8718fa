// Package lexer turns a source buffer into a stream of positioned
// tokens, and provides a cursor (TokenList) the parser consumes them
// through.
package lexer

import (
	"strconv"
	"strings"

	"github.com/skx/cc9/diag"
	"github.com/skx/cc9/token"
)

// Lexer holds scanning state over a single source buffer.
type Lexer struct {
	source       string
	position     int // current byte offset
	readPosition int // next byte offset to read
	ch           byte
}

// New creates a Lexer over the given source text.
func New(source string) *Lexer {
	l := &Lexer{source: source}
	l.readByte()
	return l
}

func (l *Lexer) readByte() {
	if l.readPosition >= len(l.source) {
		l.ch = 0
	} else {
		l.ch = l.source[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekByte() byte {
	if l.readPosition >= len(l.source) {
		return 0
	}
	return l.source[l.readPosition]
}

// Tokenize scans the entire source buffer and returns the resulting
// TokenList, or the first diag.Error encountered.
func Tokenize(source string) (*TokenList, error) {
	l := New(source)

	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	return &TokenList{tokens: tokens, source: source}, nil
}

// NextToken scans and returns the next token, skipping whitespace and
// comments first. It returns a diag.Error for any byte that cannot
// begin a valid token.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.position

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Position: pos}, nil
	}

	for _, two := range token.TwoCharPunctuators {
		if l.ch == two[0] && l.peekByte() == two[1] {
			l.readByte()
			l.readByte()
			return token.Token{Type: token.RESERVED, Literal: two, Position: pos}, nil
		}
	}

	if strings.IndexByte(token.SingleCharPunctuators, l.ch) >= 0 {
		lit := string(l.ch)
		l.readByte()
		return token.Token{Type: token.RESERVED, Literal: lit, Position: pos}, nil
	}

	if isDigit(l.ch) {
		lit := l.readNumber()
		value, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return token.Token{}, diag.New("invalid integer literal '"+lit+"'", l.source, pos)
		}
		return token.Token{Type: token.NUMBER, Literal: lit, Value: value, Position: pos}, nil
	}

	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		if token.IsKeyword(lit) {
			return token.Token{Type: token.RESERVED, Literal: lit, Position: pos}, nil
		}
		return token.Token{Type: token.IDENT, Literal: lit, Position: pos}, nil
	}

	return token.Token{}, diag.New("cannot tokenize character '"+string(l.ch)+"'", l.source, pos)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(l.ch):
			l.readByte()
		case l.ch == '/' && l.peekByte() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readByte()
			}
		case l.ch == '/' && l.peekByte() == '*':
			l.readByte()
			l.readByte()
			for !(l.ch == '*' && l.peekByte() == '/') && l.ch != 0 {
				l.readByte()
			}
			if l.ch != 0 {
				l.readByte()
				l.readByte()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readByte()
	}
	return l.source[start:l.position]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readByte()
	}
	return l.source[start:l.position]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\n' || ch == '\r' || ch == '\t'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}
