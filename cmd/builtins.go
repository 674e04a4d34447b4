package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/core"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the shell builtins and the bundled applets.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtins and bundled applets.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var builtins []string

		for _, cmd := range commands.ListBuiltinCommands() {
			builtins = append(builtins, strings.Join(cmd.Names, ", "))
		}

		for _, name := range core.ListBuiltins() {
			builtins = append(builtins, "shell:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
