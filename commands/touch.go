package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// Touch implements a POSIX touch command.
func Touch(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "touch [OPTION...] FILE...",
		Short: "Update the access and modification times of files to now.",
	}

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.Run(p, func() int {
		now := time.Now()

		anyFailed := false
		for _, path := range cmd.Flags().Args() {
			err := p.Fs.Chtimes(path, now, now)
			switch {
			case errors.Is(err, fs.ErrNotExist) && !*noCreate:
				fd, err := p.Fs.Create(path)
				if err != nil {
					fmt.Fprintf(p.Stderr, "touch: cannot touch %q: %s\n", path, err)
					anyFailed = true
					continue
				}
				fd.Close()
			case errors.Is(err, fs.ErrNotExist) && *noCreate:
				// Not an error.
			case err != nil:
				fmt.Fprintf(p.Stderr, "touch: setting times of %q: %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ CommandFunc = Touch

func init() {
	mustAddCmd("touch", Touch)
}
