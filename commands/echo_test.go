package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped  string
		expected string
	}{
		{"not escaped", "not escaped"},
		{`newline\n`, "newline\n"},
		{`double-escape\\n`, `double-escape\n`},
		{`double-escape\\n`, `double-escape\n`},
		// Octal
		{`\07`, string(rune(7))},
		{`\011`, "\t"},
		{`\0101`, "A"},
		// Hex
		{`\x7`, string(rune(07))},
		{`\x9`, "\t"},
		{`\x4A`, "J"},
	}

	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			actual := unescape(tc.escaped)

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEcho(t *testing.T) {
	runner := newTestCmd()

	stdout, _, status := runner.run(Echo, "echo", "hello", "world")
	assert.Equal(t, 0, status)
	assert.Equal(t, "hello world\n", stdout)

	stdout, _, _ = runner.run(Echo, "echo", "-e", `a\tb`)
	assert.Equal(t, "a\tb\n", stdout)

	stdout, _, _ = runner.run(Echo, "echo")
	assert.Equal(t, "\n", stdout)
}
