package shell

import (
	"fmt"
	"strings"
)

const (
	whitespace = " \t\r\n\v"
	symbols    = "<|>&;()"
)

// TokenKind identifies the type of a token.
type TokenKind int

const (
	// TokenEOF is returned once the input is exhausted.
	TokenEOF TokenKind = iota
	TokenWord
	TokenLess    // <
	TokenGreater // >
	TokenAppend  // >>
	TokenPipe    // |
	TokenSemi    // ;
	TokenAmp     // &
	TokenLParen  // (
	TokenRParen  // )
)

var tokenNames = map[TokenKind]string{
	TokenEOF:     "end of input",
	TokenWord:    "word",
	TokenLess:    "<",
	TokenGreater: ">",
	TokenAppend:  ">>",
	TokenPipe:    "|",
	TokenSemi:    ";",
	TokenAmp:     "&",
	TokenLParen:  "(",
	TokenRParen:  ")",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Span is a half-open byte range [Start, End) into a line buffer.
type Span struct {
	Start int
	End   int
}

// Text returns the bytes covered by the span as a new string.
func (s Span) Text(buf []byte) string {
	return string(buf[s.Start:s.End])
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a lexical token. Its text is never copied out of the buffer.
type Token struct {
	Kind TokenKind
	Span Span
}

// Lexer scans a buffer into tokens on demand.
type Lexer struct {
	buf []byte
	pos int
}

// NewLexer creates a lexer positioned at the start of buf.
func NewLexer(buf []byte) *Lexer {
	return &Lexer{buf: buf}
}

// Pos returns the offset of the next unread byte.
func (l *Lexer) Pos() int {
	return l.pos
}

// Rest returns the unread input with leading whitespace removed.
func (l *Lexer) Rest() string {
	l.skipSpace()
	return string(l.buf[l.pos:])
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.buf) && strings.IndexByte(whitespace, l.buf[l.pos]) >= 0 {
		l.pos++
	}
}

// Next consumes and returns the next token.
func (l *Lexer) Next() Token {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.buf) {
		return Token{Kind: TokenEOF, Span: Span{start, start}}
	}

	var kind TokenKind
	switch l.buf[l.pos] {
	case '|':
		kind = TokenPipe
		l.pos++
	case '(':
		kind = TokenLParen
		l.pos++
	case ')':
		kind = TokenRParen
		l.pos++
	case ';':
		kind = TokenSemi
		l.pos++
	case '&':
		kind = TokenAmp
		l.pos++
	case '<':
		kind = TokenLess
		l.pos++
	case '>':
		kind = TokenGreater
		l.pos++
		if l.pos < len(l.buf) && l.buf[l.pos] == '>' {
			kind = TokenAppend
			l.pos++
		}
	default:
		kind = TokenWord
		for l.pos < len(l.buf) {
			c := l.buf[l.pos]
			if strings.IndexByte(whitespace, c) >= 0 || strings.IndexByte(symbols, c) >= 0 {
				break
			}
			l.pos++
		}
	}

	return Token{Kind: kind, Span: Span{start, l.pos}}
}

// Peek reports whether the next non-whitespace byte is one of the bytes in
// set. It never consumes a token.
func (l *Lexer) Peek(set string) bool {
	l.skipSpace()
	return l.pos < len(l.buf) && strings.IndexByte(set, l.buf[l.pos]) >= 0
}
