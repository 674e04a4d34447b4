package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestWc(t *testing.T) {
	cases := goldenTestSuite{
		"stdin":   {Args: []string{"wc"}, Stdin: "hello\n"},
		"lines":   {Args: []string{"wc", "-l"}, Stdin: "a\nb\nc\n"},
		"chars":   {Args: []string{"wc", "-m", "-c"}, Stdin: "héllo"},
		"missing": {Args: []string{"wc", "/does-not-exist.txt"}},
		"several": {
			Args:  []string{"wc", "/a.txt", "/b.txt"},
			Files: map[string]string{"/a.txt": "one two\n", "/b.txt": "three\nfour five six\n"},
		},
	}

	cases.Run(t, Wc)
}

func TestWc_single_file(t *testing.T) {
	runner := newTestCmd()

	// Test with missing file
	{
		_, stderr, status := runner.run(Wc, "wc", "/foo.txt")

		assert.NotEqual(t, 0, status, "exit code")
		assert.Contains(t, stderr, "wc: open /foo.txt")
	}
	{
		// Create file and
		helloWorld := []byte("Hello,\nworld !")
		assert.Nil(t, afero.WriteFile(runner.Fs, "/foo.txt", helloWorld, 0600))

		stdout, stderr, status := runner.run(Wc, "wc", "/foo.txt")

		assert.Equal(t, 0, status, "exit code")
		assert.Empty(t, stderr)
		assert.Equal(t, "1 3 14 /foo.txt\n", stdout)
	}
}

func TestWc_hello(t *testing.T) {
	runner := newTestCmd()
	runner.Stdin = "hello\n"

	stdout, _, status := runner.run(Wc, "wc")
	assert.Equal(t, 0, status)
	assert.Equal(t, "1 1 6\n", stdout)
}
