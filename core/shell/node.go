package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Node is a command in the tree. The set of implementations is closed:
// *Simple, *Redirect, *Pipe, *Sequence, *Background and *Group.
type Node interface {
	node()
}

// Simple runs a single program.
type Simple struct {
	Args []Span
}

// RedirMode is the way a redirection target is opened.
type RedirMode int

const (
	// RedirRead opens an existing file for reading.
	RedirRead RedirMode = iota
	// RedirTruncate creates or truncates a file for writing.
	RedirTruncate
	// RedirAppend creates a file or appends to it.
	RedirAppend
)

// Flags returns the os.OpenFile flags for the mode.
func (m RedirMode) Flags() int {
	switch m {
	case RedirTruncate:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case RedirAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return os.O_RDONLY
	}
}

func (m RedirMode) String() string {
	switch m {
	case RedirTruncate:
		return ">"
	case RedirAppend:
		return ">>"
	default:
		return "<"
	}
}

// Redirect rebinds descriptor FD to File for the duration of Cmd.
type Redirect struct {
	Cmd  Node
	File Span
	Mode RedirMode
	FD   int
}

// Pipe connects the standard output of Left to the standard input of Right.
type Pipe struct {
	Left  Node
	Right Node
}

// Sequence runs Left to completion, then Right.
type Sequence struct {
	Left  Node
	Right Node
}

// Background runs Cmd without waiting for it.
type Background struct {
	Cmd Node
}

// Group is a parenthesized command line.
type Group struct {
	Cmd Node
}

func (*Simple) node()     {}
func (*Redirect) node()   {}
func (*Pipe) node()       {}
func (*Sequence) node()   {}
func (*Background) node() {}
func (*Group) node()      {}

// Tree is a parsed command line. It owns a private copy of the line so spans
// stay valid for as long as the tree is alive.
type Tree struct {
	Root   Node
	Source []byte
}

// Text materializes a span of the source.
func (t *Tree) Text(s Span) string {
	return s.Text(t.Source)
}

// Argv materializes the argument list of a simple command.
func (t *Tree) Argv(cmd *Simple) []string {
	argv := make([]string, len(cmd.Args))
	for i, arg := range cmd.Args {
		argv[i] = t.Text(arg)
	}
	return argv
}

// String renders the tree back into shell syntax.
func (t *Tree) String() string {
	return t.Format(t.Root)
}

// Format renders a subtree of t back into shell syntax.
func (t *Tree) Format(n Node) string {
	var sb strings.Builder
	t.format(&sb, n)
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Simple:
		sb.WriteString(strings.Join(t.Argv(n), " "))
	case *Redirect:
		t.format(sb, n.Cmd)
		fmt.Fprintf(sb, " %s%s", n.Mode, t.Text(n.File))
	case *Pipe:
		t.format(sb, n.Left)
		sb.WriteString(" | ")
		t.format(sb, n.Right)
	case *Sequence:
		t.format(sb, n.Left)
		sb.WriteString("; ")
		t.format(sb, n.Right)
	case *Background:
		t.format(sb, n.Cmd)
		sb.WriteString(" &")
	case *Group:
		sb.WriteString("(")
		t.format(sb, n.Cmd)
		sb.WriteString(")")
	}
}

// Walk calls fn for every node in depth-first pre-order. If fn returns false
// the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Simple:
	case *Redirect:
		Walk(n.Cmd, fn)
	case *Pipe:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Sequence:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Background:
		Walk(n.Cmd, fn)
	case *Group:
		Walk(n.Cmd, fn)
	default:
		panic(fmt.Sprintf("shell: unexpected node %T", n))
	}
}

// Dump writes an indented description of the tree, one node per line.
func Dump(w io.Writer, t *Tree) error {
	return dump(w, t, t.Root, 0)
}

func dump(w io.Writer, t *Tree, n Node, depth int) error {
	indent := strings.Repeat("  ", depth)

	var err error
	switch n := n.(type) {
	case *Simple:
		_, err = fmt.Fprintf(w, "%sSimple %q\n", indent, t.Argv(n))
	case *Redirect:
		if _, err = fmt.Fprintf(w, "%sRedirect fd=%d %s %q\n", indent, n.FD, n.Mode, t.Text(n.File)); err == nil {
			err = dump(w, t, n.Cmd, depth+1)
		}
	case *Pipe:
		if _, err = fmt.Fprintf(w, "%sPipe\n", indent); err == nil {
			if err = dump(w, t, n.Left, depth+1); err == nil {
				err = dump(w, t, n.Right, depth+1)
			}
		}
	case *Sequence:
		if _, err = fmt.Fprintf(w, "%sSequence\n", indent); err == nil {
			if err = dump(w, t, n.Left, depth+1); err == nil {
				err = dump(w, t, n.Right, depth+1)
			}
		}
	case *Background:
		if _, err = fmt.Fprintf(w, "%sBackground\n", indent); err == nil {
			err = dump(w, t, n.Cmd, depth+1)
		}
	case *Group:
		if _, err = fmt.Fprintf(w, "%sGroup\n", indent); err == nil {
			err = dump(w, t, n.Cmd, depth+1)
		}
	default:
		panic(fmt.Sprintf("shell: unexpected node %T", n))
	}
	return err
}
