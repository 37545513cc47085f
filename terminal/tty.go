package terminal

import (
	"os"

	"github.com/pingcap/errors"
	"golang.org/x/term"
)

// TTYState is a saved terminal mode of a file descriptor
type TTYState struct {
	fd    int
	state *term.State
}

// SaveTTY captures the current mode of stdin so a crash path can restore it
// Returns an error when stdin is not a terminal
func SaveTTY() (*TTYState, error) {
	return saveTTY(int(os.Stdin.Fd()))
}

func saveTTY(fd int) (*TTYState, error) {
	if !term.IsTerminal(fd) {
		return nil, errors.Errorf("fd %d is not a terminal", fd)
	}
	st, err := term.GetState(fd)
	if err != nil {
		return nil, errors.Annotate(err, "save tty state")
	}
	return &TTYState{fd: fd, state: st}, nil
}

// Restore puts the terminal back into the saved mode
// A nil receiver is a no-op
func (s *TTYState) Restore() error {
	if s == nil {
		return nil
	}
	return errors.Trace(term.Restore(s.fd, s.state))
}
