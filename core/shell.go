package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/engine"
	"github.com/josephlewis42/minish/core/input"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"golang.org/x/term"
)

const (
	EnvHome = "HOME"
	EnvPWD  = "PWD"
	EnvUser = "USER"

	// ErrorPrefix starts every diagnostic the shell prints.
	ErrorPrefix = "minish:"
)

// Options configures a Shell.
type Options struct {
	Config *config.Configuration
	Reader input.LineReader
	Stdio  engine.IO
	Logger *log.Logger
	Events engine.EventRecorder
	// Dump prints the tree of each unit instead of running it.
	Dump bool
}

// Shell reads lines, splits them into units and runs each one.
type Shell struct {
	Config *config.Configuration
	Reader input.LineReader
	Engine *engine.Engine
	Stdio  engine.IO
	Logger *log.Logger
	Events engine.EventRecorder
	Dump   bool

	errColor *color.Color
	history  []string
	quit     bool
	status   int
}

// NewShell creates a shell. Missing options are replaced by defaults.
func NewShell(opts Options) *Shell {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Stdio == (engine.IO{}) {
		opts.Stdio = engine.StdIO()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "", 0)
	}
	if opts.Events == nil {
		opts.Events = logger.NewNopLogger().Sessionless()
	}
	if opts.Reader == nil {
		opts.Reader = input.NewScriptReader(opts.Stdio.Stdin, opts.Config.MaxLineLength)
	}

	s := &Shell{
		Config: opts.Config,
		Reader: opts.Reader,
		Stdio:  opts.Stdio,
		Logger: opts.Logger,
		Events: opts.Events,
		Dump:   opts.Dump,
		Engine: engine.New(
			engine.WithLogger(opts.Logger),
			engine.WithEvents(opts.Events),
		),
		errColor: color.New(color.FgRed, color.Bold),
	}

	switch opts.Config.Color {
	case config.ColorAlways:
		s.errColor.EnableColor()
	case config.ColorNever:
		s.errColor.DisableColor()
	default:
		if f := opts.Stdio.Stderr; f != nil && term.IsTerminal(int(f.Fd())) {
			s.errColor.EnableColor()
		} else {
			s.errColor.DisableColor()
		}
	}

	return s
}

// Prompt expands the configured prompt template.
func (s *Shell) Prompt() string {
	prompt := s.Config.Prompt
	if prompt == "" {
		return "$ "
	}

	username := os.Getenv(EnvUser)
	if u, err := user.Current(); username == "" && err == nil {
		username = u.Username
	}
	prompt = strings.ReplaceAll(prompt, `\u`, username)

	host, _ := os.Hostname()
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	if home != "" && (pwd == home || strings.HasPrefix(pwd, home+"/")) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Getuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

// ExitCode is the status the shell process should exit with.
func (s *Shell) ExitCode() int {
	return s.status
}

// Run reads and runs lines until the input ends or exit is called. The
// returned error is fatal to the session.
func (s *Shell) Run() error {
	for !s.quit {
		line, err := s.Reader.ReadLine()
		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err != nil:
			s.Logger.Printf("Error readline: %v", err)
			return err

		default:
			if err := s.RunLine(line); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunLine splits line on every ';' and runs the units in order, each one to
// completion before the next starts.
func (s *Shell) RunLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	s.history = append(s.history, line)

	for _, unit := range strings.Split(line, ";") {
		if s.quit {
			return nil
		}

		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}
		if err := s.runUnit(unit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) runUnit(unit string) error {
	if args, err := shlex.Split(unit, true); err == nil && len(args) > 0 {
		if builtin, ok := AllBuiltins[args[0]]; ok {
			s.record(&logger.Builtin{Name: args[0], Args: args})
			s.status = builtin.Main(s, args)
			return nil
		}
	}

	tree, err := shell.Parse(unit, shell.WithMaxArgs(s.Config.MaxArgs))
	if err != nil {
		s.record(&logger.SyntaxError{Line: unit, Error: err.Error()})
		s.Errorf("syntax error: %v", trimSyntax(err))
		s.status = engine.ExitFailure
		return nil
	}

	s.record(&logger.RunCommand{Line: unit})
	if s.Dump {
		return shell.Dump(s.Stdio.Stdout, tree)
	}

	s.status, err = s.Engine.Run(tree, s.Stdio)
	return err
}

// trimSyntax drops the redundant "syntax error: " prefix that ErrSyntax adds.
func trimSyntax(err error) string {
	msg := err.Error()
	if errors.Is(err, shell.ErrSyntax) {
		msg = strings.TrimPrefix(msg, shell.ErrSyntax.Error()+": ")
	}
	return msg
}

// Errorf prints a diagnostic line to the shell's stderr.
func (s *Shell) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(s.Stdio.Stderr, "%s %s\n", s.errColor.Sprint(ErrorPrefix), fmt.Sprintf(format, a...))
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Logger.Printf("Error recording event: %v", err)
	}
}

// Quit stops the shell after the current unit with the given status.
func (s *Shell) Quit(status int) {
	s.quit = true
	s.status = status
}

func parseStatus(arg string) (int, error) {
	status, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s: numeric argument required", arg)
	}
	return status & 0xff, nil
}
