package core

import (
	"fmt"
	"os"
	"sort"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		args = append(args, os.Getenv(EnvHome))
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			s.Errorf("%s: %v", args[0], err)
			return 1
		}
		if wd, err := os.Getwd(); err == nil {
			os.Setenv(EnvPWD, wd)
		}
	default:
		s.Errorf("%s: too many arguments", args[0])
		return 1
	}
	return 0
}

// Wait blocks until every background job has exited.
func Wait(s *Shell, args []string) int {
	s.Engine.Jobs().WaitAll()
	fmt.Fprintln(s.Stdio.Stdout, "(No pid is running now.)")
	return 0
}

// Exit quits the shell
func Exit(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		s.Quit(s.status)
	case 2:
		status, err := parseStatus(args[1])
		if err != nil {
			s.Errorf("%s: %v", args[0], err)
			s.Quit(2)
			return 2
		}
		s.Quit(status)
	default:
		s.Errorf("%s: too many arguments", args[0])
		return 1
	}
	return s.status
}

// historyResetter is implemented by readers that keep their own history.
type historyResetter interface {
	ResetHistory()
}

func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Stdio.Stderr
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "Display or manipulate the history list")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 2
		}
		return 0
	}

	if *clear {
		if r, ok := s.Reader.(historyResetter); ok {
			r.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.Stdio.Stdout, "% 5d  %s\n", i+1, line)
	}
	return 0
}

func Help(s *Shell, args []string) int {
	w := s.Stdio.Stdout
	fmt.Fprintln(w, "minish, a minimal shell")
	fmt.Fprintln(w, "Lines are split on ';' and each part runs to completion before the next.")
	fmt.Fprintln(w, "Supported syntax: cmd args, < file, > file, >> file, a | b, cmd &, ( ... )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtins:")

	for _, name := range ListBuiltins() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	return 0
}

// ListBuiltins returns the sorted names of the builtins.
func ListBuiltins() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["wait"] = ShellBuiltinFunc(Wait)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
}
