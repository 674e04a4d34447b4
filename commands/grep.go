package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Grep searches lines using the same minimal expressions as find.
//
// Exits 0 if a line was selected, 1 if none were and 2 on error.
func Grep(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "grep [-inv] PATTERN [FILE]...",
		Short: "Search files for text matching a pattern.",
	}

	invert := cmd.Flags().Bool('v', "Select lines not matching the pattern.")
	ignoreCase := cmd.Flags().Bool('i', "Match without regard to case.")
	showLineNumbers := cmd.Flags().Bool('n', "Show line numbers.")

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintln(p.Stderr, "grep: missing argument PATTERN")
			return 2
		}

		pattern := args[0]
		if *ignoreCase {
			pattern = strings.ToLower(pattern)
		}

		files := args[1:]
		if len(files) == 0 {
			files = []string{"-"}
		}
		showFileName := len(files) > 1

		search := func(name string, r io.Reader) (bool, error) {
			selected := false
			scanner := bufio.NewScanner(r)
			for lineNo := 1; scanner.Scan(); lineNo++ {
				line := scanner.Text()
				text := line
				if *ignoreCase {
					text = strings.ToLower(text)
				}
				if matchPattern(pattern, text) == *invert {
					continue
				}

				selected = true
				if showFileName {
					fmt.Fprintf(p.Stdout, "%s:", name)
				}
				if *showLineNumbers {
					fmt.Fprintf(p.Stdout, "%d:", lineNo)
				}
				fmt.Fprintln(p.Stdout, line)
			}
			return selected, scanner.Err()
		}

		anySelected, anyFailed := false, false
		for _, name := range files {
			var (
				selected bool
				err      error
			)
			if name == "-" {
				selected, err = search("(standard input)", p.Stdin)
			} else if fd, openErr := p.Fs.Open(name); openErr != nil {
				err = openErr
			} else {
				selected, err = search(name, fd)
				fd.Close()
			}

			if err != nil {
				fmt.Fprintf(p.Stderr, "grep: %v\n", err)
				anyFailed = true
			}
			anySelected = anySelected || selected
		}

		switch {
		case anyFailed:
			return 2
		case anySelected:
			return 0
		default:
			return 1
		}
	})
}

var _ CommandFunc = Grep

func init() {
	mustAddCmd("grep", Grep)
}
