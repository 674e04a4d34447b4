package commands

import (
	"errors"
	"fmt"
	"io/fs"
)

// Rm implements a POSIX rm command.
func Rm(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "rm [OPTION...] FILE...",
		Short: "Remove files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing files and arguments, never prompt")

	return cmd.Run(p, func() int {
		files := cmd.Flags().Args()
		if len(files) == 0 && !*force {
			fmt.Fprintln(p.Stderr, "rm: missing operand")
			return 1
		}

		anyFailed := false
		for _, file := range files {
			stat, statErr := p.Fs.Stat(file)
			switch {
			case errors.Is(statErr, fs.ErrNotExist):
				if !*force {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: no such file or directory\n", file)
					anyFailed = true
				}
			case statErr != nil:
				fmt.Fprintf(p.Stderr, "rm: can't stat %q: %v\n", file, statErr)
				anyFailed = true
			case stat.IsDir() && !*recursive:
				fmt.Fprintf(p.Stderr, "rm: can't remove %q: is a directory\n", file)
				anyFailed = true
			default:
				if err := p.Fs.RemoveAll(file); err != nil {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ CommandFunc = Rm

func init() {
	mustAddCmd("rm", Rm)
}
