package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(line string) (kinds []TokenKind, words []string) {
	buf := []byte(line)
	lex := NewLexer(buf)
	for {
		tok := lex.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == TokenEOF {
			return
		}
		words = append(words, tok.Span.Text(buf))
	}
}

func TestLexer(t *testing.T) {
	cases := map[string]struct {
		line  string
		kinds []TokenKind
		words []string
	}{
		"empty": {
			line:  "",
			kinds: []TokenKind{TokenEOF},
		},
		"whitespace-only": {
			line:  " \t\r\n\v",
			kinds: []TokenKind{TokenEOF},
		},
		"words": {
			line:  "  echo\thello  world\n",
			kinds: []TokenKind{TokenWord, TokenWord, TokenWord, TokenEOF},
			words: []string{"echo", "hello", "world"},
		},
		"operators": {
			line:  "< > >> | ; & ( )",
			kinds: []TokenKind{TokenLess, TokenGreater, TokenAppend, TokenPipe, TokenSemi, TokenAmp, TokenLParen, TokenRParen, TokenEOF},
			words: []string{"<", ">", ">>", "|", ";", "&", "(", ")"},
		},
		"append-is-greedy": {
			line:  ">>>",
			kinds: []TokenKind{TokenAppend, TokenGreater, TokenEOF},
			words: []string{">>", ">"},
		},
		"operators-split-words": {
			line:  "cat<in|wc>out",
			kinds: []TokenKind{TokenWord, TokenLess, TokenWord, TokenPipe, TokenWord, TokenGreater, TokenWord, TokenEOF},
			words: []string{"cat", "<", "in", "|", "wc", ">", "out"},
		},
		"punctuation-in-words": {
			line:  "ls -la ./a.b/c-d_e",
			kinds: []TokenKind{TokenWord, TokenWord, TokenWord, TokenEOF},
			words: []string{"ls", "-la", "./a.b/c-d_e"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			kinds, words := lexAll(tc.line)
			assert.Equal(t, tc.kinds, kinds)
			assert.Equal(t, tc.words, words)
		})
	}
}

func TestLexer_spans(t *testing.T) {
	lex := NewLexer([]byte("  ab >>c"))

	assert.Equal(t, Token{Kind: TokenWord, Span: Span{2, 4}}, lex.Next())
	assert.Equal(t, Token{Kind: TokenAppend, Span: Span{5, 7}}, lex.Next())
	assert.Equal(t, Token{Kind: TokenWord, Span: Span{7, 8}}, lex.Next())
	assert.Equal(t, Token{Kind: TokenEOF, Span: Span{8, 8}}, lex.Next())
}

func TestLexer_Peek(t *testing.T) {
	lex := NewLexer([]byte("   | x"))

	assert.True(t, lex.Peek("|&"))
	assert.False(t, lex.Peek("&"))
	assert.False(t, lex.Peek(""))

	// Peeking skips whitespace but never consumes the token.
	assert.Equal(t, 3, lex.Pos())
	assert.Equal(t, TokenPipe, lex.Next().Kind)

	assert.False(t, lex.Peek("|"))
	assert.Equal(t, "x", lex.Rest())
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, ">>", TokenAppend.String())
	assert.Equal(t, "end of input", TokenEOF.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
}
