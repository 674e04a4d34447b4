package engine

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// IO holds the standard descriptors a node runs with.
type IO struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// StdIO returns the process' own descriptors.
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// With returns a copy of io with descriptor fd replaced by f. Descriptors
// other than 0, 1 and 2 are ignored.
func (s IO) With(fd int, f *os.File) IO {
	switch fd {
	case 0:
		s.Stdin = f
	case 1:
		s.Stdout = f
	case 2:
		s.Stderr = f
	}
	return s
}

// Dup duplicates every descriptor with close-on-exec set. The copies stay
// valid after the originals are closed and must be released with Close.
func (s IO) Dup() (IO, error) {
	var out IO
	var err error
	if out.Stdin, err = dupFile(s.Stdin); err != nil {
		return IO{}, err
	}
	if out.Stdout, err = dupFile(s.Stdout); err != nil {
		out.Close()
		return IO{}, err
	}
	if out.Stderr, err = dupFile(s.Stderr); err != nil {
		out.Close()
		return IO{}, err
	}
	return out, nil
}

// Close closes every descriptor in the triple.
func (s IO) Close() error {
	var err error
	for _, f := range []*os.File{s.Stdin, s.Stdout, s.Stderr} {
		if f != nil {
			err = errors.Join(err, f.Close())
		}
	}
	return err
}

func dupFile(f *os.File) (*os.File, error) {
	if f == nil {
		return nil, nil
	}
	fd, err := unix.FcntlInt(f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "dup", Path: f.Name(), Err: err}
	}
	return os.NewFile(uintptr(fd), f.Name()), nil
}

func (s IO) stdin() io.Reader {
	if s.Stdin == nil {
		return nil
	}
	return s.Stdin
}

func (s IO) stdout() io.Writer {
	if s.Stdout == nil {
		return nil
	}
	return s.Stdout
}

func (s IO) stderr() io.Writer {
	if s.Stderr == nil {
		return io.Discard
	}
	return s.Stderr
}
