package shell

import (
	"errors"
	"fmt"
)

// DefaultMaxArgs is the default limit on the arguments of a simple command.
const DefaultMaxArgs = 10

var (
	// ErrSyntax is the base error for malformed input.
	ErrSyntax = errors.New("syntax error")
	// ErrMissingFile is returned when a redirection has no target.
	ErrMissingFile = errors.New("missing file for redirection")
	// ErrMissingParen is returned for an unmatched '('.
	ErrMissingParen = errors.New("missing )")
	// ErrTooManyArgs is returned when a command exceeds the argument limit.
	ErrTooManyArgs = errors.New("too many args")
)

// SyntaxError describes where parsing failed.
type SyntaxError struct {
	// Pos is the byte offset of the offending input.
	Pos int
	// Near holds the unparsed input starting at Pos.
	Near string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%v at end of input", e.Err)
	}
	return fmt.Sprintf("%v near %q", e.Err, e.Near)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Option configures a parser.
type Option func(*parser)

// WithMaxArgs overrides DefaultMaxArgs.
func WithMaxArgs(n int) Option {
	return func(p *parser) {
		p.maxArgs = n
	}
}

type parser struct {
	buf     []byte
	lex     *Lexer
	maxArgs int
}

// bail aborts the parse; it is recovered in Parse.
type bail struct {
	err *SyntaxError
}

func (p *parser) fail(pos int, err error) {
	near := ""
	if pos < len(p.buf) {
		near = string(p.buf[pos:])
	}
	panic(bail{&SyntaxError{Pos: pos, Near: near, Err: err}})
}

// Parse parses one command line into a tree. The returned tree holds its own
// copy of line.
func Parse(line string, opts ...Option) (tree *Tree, err error) {
	p := &parser{
		buf:     []byte(line),
		maxArgs: DefaultMaxArgs,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lex = NewLexer(p.buf)

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			tree, err = nil, b.err
		}
	}()

	root := p.parseLine()
	if p.lex.Rest() != "" {
		p.fail(p.lex.Pos(), fmt.Errorf("%w: leftovers", ErrSyntax))
	}

	return &Tree{Root: root, Source: p.buf}, nil
}

func (p *parser) parseLine() Node {
	cmd := p.parsePipe()
	for p.lex.Peek("&") {
		p.lex.Next()
		cmd = &Background{Cmd: cmd}
	}
	if p.lex.Peek(";") {
		p.lex.Next()
		cmd = &Sequence{Left: cmd, Right: p.parseLine()}
	}
	return cmd
}

func (p *parser) parsePipe() Node {
	cmd := p.parseExec()
	if p.lex.Peek("|") {
		p.lex.Next()
		cmd = &Pipe{Left: cmd, Right: p.parsePipe()}
	}
	return cmd
}

func (p *parser) parseRedirs(cmd Node) Node {
	for p.lex.Peek("<>") {
		op := p.lex.Next()
		file := p.lex.Next()
		if file.Kind != TokenWord {
			p.fail(file.Span.Start, ErrMissingFile)
		}

		switch op.Kind {
		case TokenLess:
			cmd = &Redirect{Cmd: cmd, File: file.Span, Mode: RedirRead, FD: 0}
		case TokenGreater:
			cmd = &Redirect{Cmd: cmd, File: file.Span, Mode: RedirTruncate, FD: 1}
		case TokenAppend:
			cmd = &Redirect{Cmd: cmd, File: file.Span, Mode: RedirAppend, FD: 1}
		}
	}
	return cmd
}

func (p *parser) parseBlock() Node {
	if !p.lex.Peek("(") {
		p.fail(p.lex.Pos(), fmt.Errorf("%w: expected (", ErrSyntax))
	}
	p.lex.Next()
	cmd := p.parseLine()
	if !p.lex.Peek(")") {
		p.fail(p.lex.Pos(), ErrMissingParen)
	}
	p.lex.Next()
	return p.parseRedirs(&Group{Cmd: cmd})
}

func (p *parser) parseExec() Node {
	if p.lex.Peek("(") {
		return p.parseBlock()
	}

	// Redirections wrap the *Simple by pointer, so arguments appended after a
	// redirection still land in the wrapped command.
	cmd := &Simple{}
	var ret Node = cmd

	ret = p.parseRedirs(ret)
	for !p.lex.Peek("|)&;") {
		tok := p.lex.Next()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind != TokenWord {
			p.fail(tok.Span.Start, fmt.Errorf("%w: unexpected %s", ErrSyntax, tok.Kind))
		}
		if len(cmd.Args) >= p.maxArgs {
			p.fail(tok.Span.Start, ErrTooManyArgs)
		}
		cmd.Args = append(cmd.Args, tok.Span)
		ret = p.parseRedirs(ret)
	}
	return ret
}
