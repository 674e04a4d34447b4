package cmd

import (
	"fmt"

	"github.com/josephlewis42/minish/commands"
	"github.com/spf13/cobra"
)

var appletCmd = &cobra.Command{
	Use:   "applet NAME [ARGS...]",
	Short: "Run a bundled applet.",
	Args:  cobra.MinimumNArgs(1),
	// Flags belong to the applet.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		applet, ok := commands.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown applet %q, see builtins", args[0])
		}

		p := commands.NewProcess(args)
		p.Stdout = cmd.OutOrStdout()
		p.Stderr = cmd.ErrOrStderr()
		exitCode = applet(p)
		return nil
	},
}

// RunApplet runs the named applet against the real OS if it exists.
func RunApplet(name string, args []string) (status int, ok bool) {
	applet, ok := commands.Lookup(name)
	if !ok {
		return 0, false
	}
	return applet(commands.NewProcess(append([]string{name}, args...))), true
}

func init() {
	rootCmd.AddCommand(appletCmd)
}
