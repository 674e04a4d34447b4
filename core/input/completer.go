package input

import (
	"path"
	"strings"
	"unicode"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"
)

// PathCompleter completes the word under the cursor with the names of files
// in the directory it refers to. Directories are completed with a trailing
// slash.
type PathCompleter struct {
	Fs afero.Fs
}

var _ readline.AutoCompleter = (*PathCompleter)(nil)

func isPathRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.-/", r)
}

// Do implements readline.AutoCompleter. It returns the suffixes that complete
// the word and the length of the part of the word being matched.
func (c *PathCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && isPathRune(line[start-1]) {
		start--
	}

	word := string(line[start:pos])
	dir, prefix := path.Split(word)
	lookup := dir
	if lookup == "" {
		lookup = "."
	}

	entries, err := afero.ReadDir(c.Fs, lookup)
	if err != nil {
		return nil, 0
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		// Hidden files are only offered when asked for.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}

		suffix := name[len(prefix):]
		if entry.IsDir() {
			suffix += "/"
		}
		newLine = append(newLine, []rune(suffix))
	}

	return newLine, len([]rune(prefix))
}
