package commands

import (
	"fmt"

	"github.com/josephlewis42/minish/core/engine"
)

// Which implements the UNIX which command. Applets and shell builtins are not
// reported, only programs on $PATH.
func Which(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "which [COMMAND...]",
		Short: "Locate a command.",
	}

	return cmd.Run(p, func() int {
		status := 0
		for _, arg := range cmd.Flags().Args() {
			res, err := engine.LookPath(p.Fs, p.Getenv("PATH"), arg)
			if err != nil {
				fmt.Fprintf(p.Stderr, "which: %s: %v\n", arg, err)
				status = 1
				continue
			}
			fmt.Fprintln(p.Stdout, res)
		}
		return status
	})
}

var _ CommandFunc = Which

func init() {
	mustAddCmd("which", Which)
}
