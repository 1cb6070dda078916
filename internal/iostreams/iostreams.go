// Package iostreams abstracts standard I/O so commands can be tested with
// in-memory buffers and told apart from pipes.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams bundles the standard streams with TTY detection.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// isTerminalFunc allows lazy evaluation and mocking of TTY detection
	isTerminalFunc func(fd int) bool
	stdinFd        int
	stdoutFd       int
}

// System creates IOStreams connected to os.Stdin/Stdout/Stderr.
func System() *IOStreams {
	return &IOStreams{
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		isTerminalFunc: term.IsTerminal,
		stdinFd:        int(os.Stdin.Fd()),
		stdoutFd:       int(os.Stdout.Fd()),
	}
}

// IsInteractive reports whether stdin is a terminal, in which case the
// run command accepts pause/resume/stop input.
func (s *IOStreams) IsInteractive() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.stdinFd)
}

// CanRedraw reports whether stdout is a terminal that honors carriage
// returns for in-place updates.
func (s *IOStreams) CanRedraw() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.stdoutFd)
}

// Test creates IOStreams backed by buffers. tty controls what both
// IsInteractive and CanRedraw report.
func Test(tty bool) (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return &IOStreams{
		In:             in,
		Out:            out,
		ErrOut:         out,
		isTerminalFunc: func(int) bool { return tty },
	}, in, out
}
