package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	ExitSuccess = 0
	ExitFailure = 1

	// FileMode is the permission of files created by output redirections.
	FileMode = 0644
)

// ErrResource is wrapped by errors that leave the shell unable to continue,
// such as running out of descriptors.
var ErrResource = errors.New("out of resources")

// EventRecorder receives session events.
type EventRecorder interface {
	Record(event logger.LogType) error
}

// Engine executes command trees.
type Engine struct {
	fs     afero.Fs
	log    *log.Logger
	events EventRecorder
	jobs   *JobTable
	env    []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs sets the filesystem used to resolve programs.
func WithFs(fsys afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fsys
	}
}

// WithLogger sets the logger for diagnostics of background jobs.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithEvents sets where session events are recorded.
func WithEvents(events EventRecorder) Option {
	return func(e *Engine) {
		e.events = events
	}
}

// WithJobTable shares a job table with the engine.
func WithJobTable(jobs *JobTable) Option {
	return func(e *Engine) {
		e.jobs = jobs
	}
}

// WithEnv sets the environment of started programs. By default programs
// inherit the shell's environment.
func WithEnv(env []string) Option {
	return func(e *Engine) {
		e.env = env
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fs:     afero.NewOsFs(),
		log:    log.New(os.Stderr, "", 0),
		events: logger.NewNopLogger().Sessionless(),
		jobs:   NewJobTable(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Jobs returns the background job table.
func (e *Engine) Jobs() *JobTable {
	return e.jobs
}

// Run executes tree with stdio as descriptors 0, 1 and 2 and returns the exit
// status of the command. A non-nil error wraps ErrResource.
//
// Run never closes the files in stdio.
func (e *Engine) Run(tree *shell.Tree, stdio IO) (int, error) {
	return e.run(tree, tree.Root, stdio)
}

func (e *Engine) run(t *shell.Tree, n shell.Node, stdio IO) (int, error) {
	switch n := n.(type) {
	case *shell.Simple:
		return e.runSimple(t, n, stdio), nil
	case *shell.Redirect:
		return e.runRedirect(t, n, stdio)
	case *shell.Pipe:
		return e.runPipe(t, n, stdio)
	case *shell.Sequence:
		if _, err := e.run(t, n.Left, stdio); err != nil {
			return ExitFailure, err
		}
		return e.run(t, n.Right, stdio)
	case *shell.Background:
		return e.runBackground(t, n, stdio)
	case *shell.Group:
		return e.run(t, n.Cmd, stdio)
	default:
		panic(fmt.Sprintf("engine: unexpected node %T", n))
	}
}

func (e *Engine) getenv(key string) string {
	if e.env == nil {
		return os.Getenv(key)
	}
	prefix := key + "="
	for i := len(e.env) - 1; i >= 0; i-- {
		if len(e.env[i]) >= len(prefix) && e.env[i][:len(prefix)] == prefix {
			return e.env[i][len(prefix):]
		}
	}
	return ""
}

func (e *Engine) runSimple(t *shell.Tree, n *shell.Simple, stdio IO) int {
	argv := t.Argv(n)
	if len(argv) == 0 {
		return ExitSuccess
	}

	path, err := LookPath(e.fs, e.getenv("PATH"), argv[0])
	if err != nil {
		return e.execFailed(stdio, argv[0], err)
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    e.env,
		Stdin:  stdio.stdin(),
		Stdout: stdio.stdout(),
		Stderr: stdio.stderr(),
	}
	if err := cmd.Start(); err != nil {
		return e.execFailed(stdio, argv[0], err)
	}

	return exitStatus(cmd.Wait())
}

func (e *Engine) execFailed(stdio IO, program string, err error) int {
	fmt.Fprintf(stdio.stderr(), "exec %s failed: %v\n", program, reason(err))
	e.events.Record(&logger.ExecFailed{Program: program, Error: reason(err).Error()})
	return ExitFailure
}

// reason strips the operation and path from filesystem errors since the
// caller already names them.
func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	return err
}

func exitStatus(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	return ExitFailure
}

// runRedirect applies a chain of directly nested redirections. The innermost
// is opened first so the one written last on the line is the one in effect,
// while every target is still created.
func (e *Engine) runRedirect(t *shell.Tree, n *shell.Redirect, stdio IO) (int, error) {
	var chain []*shell.Redirect
	var inner shell.Node = n
	for {
		r, ok := inner.(*shell.Redirect)
		if !ok {
			break
		}
		chain = append(chain, r)
		inner = r.Cmd
	}

	var opened []*os.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for i := len(chain) - 1; i >= 0; i-- {
		r := chain[i]
		name := t.Text(r.File)
		f, err := os.OpenFile(name, r.Mode.Flags(), FileMode)
		if err != nil {
			fmt.Fprintf(stdio.stderr(), "open %s failed: %v\n", name, reason(err))
			return ExitFailure, nil
		}
		opened = append(opened, f)
		stdio = stdio.With(r.FD, f)
	}

	return e.run(t, inner, stdio)
}

// runPipe runs both sides concurrently. Each side closes its end of the pipe
// when its subtree completes so the other side sees EOF or EPIPE. The status is
// that of the right side.
func (e *Engine) runPipe(t *shell.Tree, n *shell.Pipe, stdio IO) (int, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return ExitFailure, fmt.Errorf("%w: pipe: %v", ErrResource, err)
	}

	var status int
	var g errgroup.Group
	g.Go(func() error {
		defer w.Close()
		_, err := e.run(t, n.Left, stdio.With(1, w))
		return err
	})
	g.Go(func() error {
		defer r.Close()
		var err error
		status, err = e.run(t, n.Right, stdio.With(0, r))
		return err
	})

	if err := g.Wait(); err != nil {
		return ExitFailure, err
	}
	return status, nil
}

// runBackground starts the subtree on its own descriptors and returns
// immediately.
func (e *Engine) runBackground(t *shell.Tree, n *shell.Background, stdio IO) (int, error) {
	dup, err := stdio.Dup()
	if err != nil {
		return ExitFailure, fmt.Errorf("%w: %v", ErrResource, err)
	}

	job := e.jobs.Start(t.Format(n.Cmd))
	e.events.Record(&logger.JobStarted{Job: job.ID, Command: job.Command})

	go func() {
		status, err := e.run(t, n.Cmd, dup)
		if err != nil {
			e.log.Printf("job %d: %v", job.ID, err)
		}
		dup.Close()
		e.events.Record(&logger.JobFinished{Job: job.ID, Status: status})
		e.jobs.finish(job, status)
	}()

	return ExitSuccess, nil
}
