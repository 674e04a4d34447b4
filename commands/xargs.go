package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/minish/core/engine"
)

// Xargs runs a command once per line of input with the words of the line
// appended to its arguments.
func Xargs(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "xargs COMMAND [ARG]...",
		Short: "Run COMMAND for each line of standard input, adding the line's words as arguments.",
	}

	return cmd.Run(p, func() int {
		base := cmd.Flags().Args()
		if len(base) == 0 {
			fmt.Fprintln(p.Stderr, "usage: xargs COMMAND [ARG]...")
			return 1
		}

		program, err := engine.LookPath(p.Fs, p.Getenv("PATH"), base[0])
		if err != nil {
			fmt.Fprintf(p.Stderr, "xargs: %s: %v\n", base[0], err)
			return 127
		}

		status := 0
		scanner := bufio.NewScanner(p.Stdin)
		for scanner.Scan() {
			words, err := shlex.Split(scanner.Text(), true)
			if err != nil {
				fmt.Fprintf(p.Stderr, "xargs: %v\n", err)
				return 1
			}

			child := &exec.Cmd{
				Path:   program,
				Args:   append(append([]string{}, base...), words...),
				Env:    p.Env,
				Stdout: p.Stdout,
				Stderr: p.Stderr,
			}
			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					fmt.Fprintf(p.Stderr, "xargs: %s: %v\n", base[0], err)
					return 126
				}
				// Like GNU xargs, keep going and report the failure at the end.
				status = 123
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(p.Stderr, "xargs: %v\n", err)
			return 1
		}

		return status
	})
}

var _ CommandFunc = Xargs

func init() {
	mustAddCmd("xargs", Xargs)
}
