package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/engine"
	"github.com/josephlewis42/minish/core/input"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath     string
	commandLine string
	dumpTrees   bool

	// exitCode is the status of the last shell run by rootCmd.
	exitCode int
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "minish")
}

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault is like loadConfig but falls back to the built-in
// configuration if none was written.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

func openEvents(configuration *config.Configuration, errLog *log.Logger) (*logger.Logger, func()) {
	fd, err := configuration.OpenEventLog()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return logger.NewNopLogger(), func() {}
	case err != nil:
		errLog.Printf("Error opening event log: %v", err)
		return logger.NewNopLogger(), func() {}
	}
	return logger.NewJsonLinesLogRecorder(fd), func() { fd.Close() }
}

// rootCmd runs the shell.
var rootCmd = &cobra.Command{
	Use:   "minish [SCRIPT]",
	Short: "A minimal command shell",
	Long: `A minimal command shell supporting pipes, redirection, background
jobs and parenthesized groups.

Lines are read from SCRIPT if given, from the terminal with line editing if
stdin is a terminal and from stdin otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		stdio := engine.StdIO()
		errLog := log.New(stdio.Stderr, "", 0)

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}

		events, closeEvents := openEvents(configuration, errLog)
		defer closeEvents()

		opts := core.Options{
			Config: configuration,
			Stdio:  stdio,
			Logger: errLog,
			Events: events.NewSession(),
			Dump:   dumpTrees,
		}

		var sh *core.Shell
		switch {
		case commandLine != "":
			sh = core.NewShell(opts)
			if err := sh.RunLine(commandLine); err != nil {
				return err
			}
			exitCode = sh.ExitCode()
			return nil

		case len(args) == 1:
			fd, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fd.Close()
			opts.Reader = input.NewScriptReader(fd, configuration.MaxLineLength)

		case term.IsTerminal(int(stdio.Stdin.Fd())):
			var completer readline.AutoCompleter
			if configuration.Completion {
				completer = &input.PathCompleter{Fs: afero.NewOsFs()}
			}

			reader, err := input.NewInteractiveReader(input.InteractiveConfig{
				Prompt:       func() string { return sh.Prompt() },
				HistoryFile:  configuration.HistoryPath(),
				AutoComplete: completer,
				Stdin:        stdio.Stdin,
				Stdout:       stdio.Stdout,
				Stderr:       stdio.Stderr,
			})
			if err != nil {
				return fmt.Errorf("starting line editor: %w", err)
			}
			defer reader.Close()
			opts.Reader = reader
		}

		sh = core.NewShell(opts)
		if err := sh.Run(); err != nil {
			return err
		}
		exitCode = sh.ExitCode()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
	rootCmd.Flags().BoolVar(&dumpTrees, "dump", false, "print the parsed tree of each command instead of running it")
}
