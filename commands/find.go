package commands

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
)

// matchPattern reports whether text contains a match for re. The syntax is a
// tiny subset of regular expressions: ^ and $ anchor, . matches any byte and
// c* matches zero or more c.
func matchPattern(re, text string) bool {
	if len(re) > 0 && re[0] == '^' {
		return matchHere(re[1:], text)
	}
	for {
		if matchHere(re, text) {
			return true
		}
		if text == "" {
			return false
		}
		text = text[1:]
	}
}

func matchHere(re, text string) bool {
	switch {
	case re == "":
		return true
	case len(re) >= 2 && re[1] == '*':
		return matchStar(re[0], re[2:], text)
	case re == "$":
		return text == ""
	case text != "" && (re[0] == '.' || re[0] == text[0]):
		return matchHere(re[1:], text[1:])
	default:
		return false
	}
}

func matchStar(c byte, re, text string) bool {
	for {
		if matchHere(re, text) {
			return true
		}
		if text == "" || (text[0] != c && c != '.') {
			return false
		}
		text = text[1:]
	}
}

// Find prints every file under a directory whose name matches a pattern.
func Find(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "find DIR PATTERN",
		Short: "Print the files under DIR with a name matching PATTERN (^ $ . and * are special).",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) != 2 {
			fmt.Fprintln(p.Stderr, "usage: find DIR PATTERN")
			return 1
		}
		root, pattern := args[0], args[1]

		status := 0
		err := afero.Walk(p.Fs, root, func(name string, info os.FileInfo, err error) error {
			if err != nil {
				fmt.Fprintf(p.Stderr, "find: cannot open %s\n", name)
				status = 1
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if matchPattern(pattern, path.Base(name)) {
				fmt.Fprintln(p.Stdout, name)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(p.Stderr, "find: %v\n", err)
			return 1
		}

		return status
	})
}

var _ CommandFunc = Find

func init() {
	mustAddCmd("find", Find)
}
