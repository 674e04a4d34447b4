package shell

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_golden(t *testing.T) {
	cases := map[string]string{
		"simple":         "echo hello world",
		"pipe":           "echo hello | wc",
		"redirect-order": "cmd > a > b",
		"interleaved":    "< in cat -n >> out",
		"sequence":       "a ; b ; c",
		"background":     "sleep 1 & & ; echo x",
		"group":          "(echo a; echo b) > out | cat &",
		"no-space":       "echo hi>out;cat<out|wc",
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			tree, err := Parse(line)
			require.NoError(t, err)

			buf := &bytes.Buffer{}
			require.NoError(t, Dump(buf, tree))

			g.Assert(t, tn, buf.Bytes())
		})
	}
}

func TestParse_deterministic(t *testing.T) {
	line := "(a | b > c) ; d < e & ; f >> g"

	first, err := Parse(line)
	require.NoError(t, err)
	second, err := Parse(line)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_redirectWrapsCommandByReference(t *testing.T) {
	tree, err := Parse("> out echo a b")
	require.NoError(t, err)

	redir, ok := tree.Root.(*Redirect)
	require.True(t, ok, "root is %T", tree.Root)
	assert.Equal(t, "out", tree.Text(redir.File))
	assert.Equal(t, RedirTruncate, redir.Mode)
	assert.Equal(t, 1, redir.FD)

	simple, ok := redir.Cmd.(*Simple)
	require.True(t, ok, "child is %T", redir.Cmd)
	assert.Equal(t, []string{"echo", "a", "b"}, tree.Argv(simple))
}

func TestParse_treeOwnsSource(t *testing.T) {
	line := []byte("echo hello")
	tree, err := Parse(string(line))
	require.NoError(t, err)

	line[0] = 'X'
	assert.Equal(t, "echo hello", tree.String())
}

func TestParse_String(t *testing.T) {
	cases := map[string]string{
		"echo   hello":                   "echo hello",
		"(echo a;echo b)>out|cat&":       "(echo a; echo b) >out | cat &",
		"cat <in >>out":                  "cat <in >>out",
		"a;b":                            "a; b",
		"sort < in | uniq | wc > counts": "sort <in | uniq | wc >counts",
	}

	for line, want := range cases {
		t.Run(line, func(t *testing.T) {
			tree, err := Parse(line)
			require.NoError(t, err)
			assert.Equal(t, want, tree.String())
		})
	}
}

func TestParse_maxArgs(t *testing.T) {
	ten := strings.TrimSpace(strings.Repeat("a ", DefaultMaxArgs))
	_, err := Parse(ten)
	assert.NoError(t, err)

	_, err = Parse(ten + " b")
	assert.True(t, errors.Is(err, ErrTooManyArgs), "got %v", err)

	_, err = Parse("a b c", WithMaxArgs(2))
	assert.True(t, errors.Is(err, ErrTooManyArgs), "got %v", err)
}

func TestParse_errors(t *testing.T) {
	cases := map[string]struct {
		line string
		want error
		pos  int
	}{
		"missing-file-eof":   {"echo <", ErrMissingFile, 6},
		"missing-file-op":    {"echo > | cat", ErrMissingFile, 7},
		"missing-file-paren": {"(echo >)", ErrMissingFile, 7},
		"unclosed-group":     {"(echo a", ErrMissingParen, 7},
		"unclosed-nested":    {"((echo a)", ErrMissingParen, 9},
		"leftover-paren":     {"echo a )", ErrSyntax, 7},
		"stray-open-paren":   {"echo (", ErrSyntax, 5},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tree, err := Parse(tc.line)
			assert.Nil(t, tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tc.pos, syntaxErr.Pos)
		})
	}
}

func TestSyntaxError_Error(t *testing.T) {
	_, err := Parse("echo <")
	assert.EqualError(t, err, "missing file for redirection at end of input")

	_, err = Parse("echo a )")
	assert.EqualError(t, err, `syntax error: leftovers near ")"`)
}

func TestWalk(t *testing.T) {
	tree, err := Parse("(a | b) > c ; d &")
	require.NoError(t, err)

	var kinds []string
	Walk(tree.Root, func(n Node) bool {
		switch n := n.(type) {
		case *Simple:
			kinds = append(kinds, tree.Argv(n)[0])
		case *Redirect:
			kinds = append(kinds, "redirect")
		case *Pipe:
			kinds = append(kinds, "pipe")
		case *Sequence:
			kinds = append(kinds, "sequence")
		case *Background:
			kinds = append(kinds, "background")
		case *Group:
			kinds = append(kinds, "group")
		}
		return true
	})

	assert.Equal(t, []string{"sequence", "redirect", "group", "pipe", "a", "b", "background", "d"}, kinds)
}

func TestRedirMode_Flags(t *testing.T) {
	assert.Equal(t, "<", RedirRead.String())
	assert.NotEqual(t, RedirTruncate.Flags(), RedirAppend.Flags())
}
