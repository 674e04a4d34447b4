package commands

import (
	"fmt"
	"io"
)

// Cat implements the UNIX cat command. A FILE of "-" reads standard input.
func Cat(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]...",
		Short: "Concatenate FILE(s) to standard output.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			args = []string{"-"}
		}

		status := 0
		for _, arg := range args {
			if arg == "-" {
				if _, err := io.Copy(p.Stdout, p.Stdin); err != nil {
					fmt.Fprintf(p.Stderr, "cat: %v\n", err)
					return 1
				}
				continue
			}

			fd, err := p.Fs.Open(arg)
			if err != nil {
				fmt.Fprintf(p.Stderr, "cat: %v\n", err)
				status = 1
				continue
			}

			_, err = io.Copy(p.Stdout, fd)
			fd.Close()
			if err != nil {
				fmt.Fprintf(p.Stderr, "cat: %v\n", err)
				return 1
			}
		}

		return status
	})
}

var _ CommandFunc = Cat

func init() {
	mustAddCmd("cat", Cat)
}
