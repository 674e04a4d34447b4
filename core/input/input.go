// Package input provides the sources of command lines for the shell.
package input

import (
	"io"
)

// DefaultMaxLineLength is the line buffer size of a ScriptReader.
const DefaultMaxLineLength = 1024

// LineReader produces lines of input without their terminators. It returns
// io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// ScriptReader reads lines from a script file or a pipe.
//
// It reads a single byte at a time so that programs sharing the same
// descriptor continue reading where the shell stopped.
type ScriptReader struct {
	r    io.Reader
	size int
	b    [1]byte
}

var _ LineReader = (*ScriptReader)(nil)

// NewScriptReader creates a reader holding at most size-1 bytes per line.
// Longer lines are split across calls.
func NewScriptReader(r io.Reader, size int) *ScriptReader {
	if size < 2 {
		size = DefaultMaxLineLength
	}
	return &ScriptReader{r: r, size: size}
}

// ReadLine returns the next line. A blank line is returned as an empty string;
// io.EOF is only returned if the stream ended before any byte was read.
func (s *ScriptReader) ReadLine() (string, error) {
	var line []byte
	read := false
	for len(line) < s.size-1 {
		n, err := s.r.Read(s.b[:])
		if n > 0 {
			read = true
			switch c := s.b[0]; c {
			case '\n', '\r':
				return string(line), nil
			default:
				line = append(line, c)
			}
			continue
		}

		switch {
		case err == io.EOF && !read:
			return "", io.EOF
		case err == io.EOF:
			return string(line), nil
		case err != nil:
			return "", err
		}
	}
	return string(line), nil
}
