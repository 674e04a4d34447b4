package commands

import (
	"fmt"
	"os"
)

// Mkdir implements a POSIX mkdir command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/mkdir.html
func Mkdir(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [OPTION...] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print line for every created directory")

	return cmd.Run(p, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(p.Stderr, "mkdir: missing operand")

			cmd.PrintHelp(p.Stderr)
			return 1
		}

		var op func(path string, perm os.FileMode) error
		if *makeParents {
			op = p.Fs.MkdirAll
		} else {
			op = p.Fs.Mkdir
		}

		anyFailed := false
		for _, dir := range directories {
			err := op(dir, 0777)
			switch {
			case err != nil:
				fmt.Fprintf(p.Stderr, "mkdir: cannot create directory %q: %s\n", dir, err)
				anyFailed = true

			case *verbose:
				fmt.Fprintf(p.Stdout, "mkdir: created directory %q\n", dir)
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ CommandFunc = Mkdir

func init() {
	mustAddCmd("mkdir", Mkdir)
}
