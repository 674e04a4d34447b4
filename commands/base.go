package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

// Process holds the state an applet runs with.
type Process struct {
	// Args holds the arguments, starting with the name the applet was called
	// by.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Fs is the filesystem the applet reads.
	Fs afero.Fs
	// Env holds the environment in the form returned by os.Environ.
	Env []string
}

// NewProcess creates a process attached to the real OS.
func NewProcess(args []string) *Process {
	return &Process{
		Args:   args,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Fs:     afero.NewOsFs(),
		Env:    os.Environ(),
	}
}

// Getenv retrieves the value of the environment variable named by the key.
func (p *Process) Getenv(key string) string {
	prefix := key + "="
	for i := len(p.Env) - 1; i >= 0; i-- {
		if strings.HasPrefix(p.Env[i], prefix) {
			return p.Env[i][len(prefix):]
		}
	}
	return ""
}

// CommandFunc is the entrypoint of an applet. It returns the exit status.
type CommandFunc = func(p *Process) int

// AllCommands holds a list of all registered commands
var AllCommands = make(map[string]CommandFunc)

// mustAddCmd registers a command, panicking on duplicate names.
func mustAddCmd(name string, cmd CommandFunc) {
	if _, ok := AllCommands[name]; ok {
		panic(fmt.Sprintf("duplicate command %q", name))
	}
	AllCommands[name] = cmd
}

// Lookup finds an applet by the name it was invoked with.
func Lookup(name string) (CommandFunc, bool) {
	cmd, ok := AllCommands[name]
	return cmd, ok
}

// CommandEntry describes a registered command.
type CommandEntry struct {
	Names []string
	Proc  CommandFunc
}

// ListBuiltinCommands returns the registered commands sorted by name.
func ListBuiltinCommands() []CommandEntry {
	var out []CommandEntry
	for name, proc := range AllCommands {
		out = append(out, CommandEntry{Names: []string{name}, Proc: proc})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Names[0] < out[j].Names[0]
	})
	return out
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(p *Process, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(p.Args, nil); err != nil {
		fmt.Fprintf(p.Stderr, "error: %s\n\n", err)

		s.PrintHelp(p.Stderr)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout)
		return 0
	}

	return callback()
}

// RunE is like Run but the callback returns an error which is printed
// prefixed with the command name.
func (s *SimpleCommand) RunE(p *Process, callback func() error) int {
	return s.Run(p, func() int {
		if err := callback(); err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Args[0], err)
			return 1
		}
		return 0
	})
}
