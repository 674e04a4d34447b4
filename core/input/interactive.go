package input

import (
	"io"

	"github.com/abiosoft/readline"
)

// InteractiveConfig configures an InteractiveReader.
type InteractiveConfig struct {
	// Prompt is evaluated before every line.
	Prompt func() string
	// HistoryFile persists line history, empty disables it.
	HistoryFile string
	// AutoComplete is optional.
	AutoComplete readline.AutoCompleter

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// InteractiveReader reads lines from a terminal with line editing.
type InteractiveReader struct {
	rl     *readline.Instance
	prompt func() string
}

var _ LineReader = (*InteractiveReader)(nil)

// NewInteractiveReader creates a reader. The prompt and line editing are
// written to Stderr so they never mix with program output.
func NewInteractiveReader(config InteractiveConfig) (*InteractiveReader, error) {
	cfg := &readline.Config{
		HistoryFile:     config.HistoryFile,
		AutoComplete:    config.AutoComplete,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          config.Stderr,
		Stderr:          config.Stderr,
	}
	if config.Stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(config.Stdin)
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	prompt := config.Prompt
	if prompt == nil {
		prompt = func() string { return "$ " }
	}

	return &InteractiveReader{rl: rl, prompt: prompt}, nil
}

// ReadLine prompts for a line. Ctrl-C discards the line being edited and
// prompts again.
func (r *InteractiveReader) ReadLine() (string, error) {
	for {
		r.rl.SetPrompt(r.prompt())
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		return line, err
	}
}

// ResetHistory clears the in-memory and on-disk history.
func (r *InteractiveReader) ResetHistory() {
	r.rl.Operation.ResetHistory()
}

func (r *InteractiveReader) Close() error {
	return r.rl.Close()
}
