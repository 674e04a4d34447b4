package commands

import (
	"fmt"
	"sort"
)

// Env implements the printing half of the POSIX env command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/env.html
func Env(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the environment.",
	}

	return cmd.Run(p, func() int {
		env := append([]string(nil), p.Env...)
		sort.Strings(env)
		for _, envDef := range env {
			fmt.Fprintln(p.Stdout, envDef)
		}

		return 0
	})
}

var _ CommandFunc = Env

func init() {
	mustAddCmd("env", Env)
}
