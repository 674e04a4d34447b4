package input

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, lr LineReader) []string {
	t.Helper()

	var lines []string
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestScriptReader(t *testing.T) {
	cases := map[string]struct {
		in   string
		size int
		want []string
	}{
		"empty":              {in: "", want: nil},
		"one-line":           {in: "echo a\n", want: []string{"echo a"}},
		"no-trailing-nl":     {in: "echo a\necho b", want: []string{"echo a", "echo b"}},
		"blank-lines":        {in: "\n\necho a\n", want: []string{"", "", "echo a"}},
		"carriage-return":    {in: "a\r\nb\n", want: []string{"a", "", "b"}},
		"tabs-kept":          {in: "echo\ta\n", want: []string{"echo\ta"}},
		"overlong-split":     {in: "abcdefg\n", size: 4, want: []string{"abc", "def", "g"}},
		"exactly-full":       {in: "abc\n", size: 4, want: []string{"abc", ""}},
		"semicolons-kept":    {in: "a ; b\n", want: []string{"a ; b"}},
		"trailing-blank-eof": {in: "a\n\n", want: []string{"a", ""}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			lr := NewScriptReader(strings.NewReader(tc.in), tc.size)
			assert.Equal(t, tc.want, readAll(t, lr))
		})
	}
}

func TestScriptReader_doesNotOverRead(t *testing.T) {
	r := strings.NewReader("first\nsecond\n")
	lr := NewScriptReader(r, 0)

	line, err := lr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(rest))
}

func TestScriptReader_errors(t *testing.T) {
	boom := errors.New("boom")
	lr := NewScriptReader(iotest.ErrReader(boom), 0)

	_, err := lr.ReadLine()
	assert.Equal(t, boom, err)
}

func TestScriptReader_dataWithEOF(t *testing.T) {
	lr := NewScriptReader(iotest.DataErrReader(strings.NewReader("a\nb")), 0)
	assert.Equal(t, []string{"a", "b"}, readAll(t, lr))
}
