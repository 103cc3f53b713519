//go:build linux || darwin || freebsd

package terminal

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/stlalpha/nilo/internal/logging"
)

// ModeGuard holds a terminal in raw mode and restores the attributes captured
// at acquisition when released.
type ModeGuard struct {
	fd   int
	orig unix.Termios

	once       sync.Once
	releaseErr error
}

// Acquire snapshots the attributes of fd and switches it to raw mode: no
// signal characters, no canonical input, no echo, no extended processing, no
// output post-processing, no parity/flow-control translation, 8-bit chars, and
// reads that return after ReadTimeout even when no byte arrived.
func Acquire(fd int) (*ModeGuard, error) {
	if !term.IsTerminal(fd) {
		return nil, &Error{Op: "tcgetattr", Err: ErrNotTerminal}
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, &Error{Op: "tcgetattr", Err: err}
	}

	raw := rawAttributes(*orig)
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, &Error{Op: "tcsetattr", Err: err}
	}

	logging.Debug("raw mode acquired on fd %d", fd)
	return &ModeGuard{fd: fd, orig: *orig}, nil
}

func rawAttributes(t unix.Termios) unix.Termios {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = uint8(ReadTimeout.Milliseconds() / 100)
	return t
}

// Release restores the captured attributes. Only the first call touches the
// terminal; later calls return the first call's result.
func (g *ModeGuard) Release() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		if err := unix.IoctlSetTermios(g.fd, ioctlSetTermios, &g.orig); err != nil {
			g.releaseErr = &Error{Op: "tcsetattr", Err: err}
			return
		}
		logging.Debug("raw mode released on fd %d", g.fd)
	})
	return g.releaseErr
}

// Input reads bytes from a terminal in raw mode.
type Input struct {
	fd int
}

// NewInput returns a ByteSource reading from fd.
func NewInput(fd int) *Input {
	return &Input{fd: fd}
}

// ReadByteTimeout reads a single byte. With VMIN=0 the kernel returns zero
// bytes once the VTIME idle timeout expires.
func (in *Input) ReadByteTimeout() (byte, bool, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(in.fd, buf[:])
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, false, nil
		case err != nil:
			return 0, false, &Error{Op: "read", Err: err}
		case n == 0:
			return 0, false, nil
		}
		return buf[0], true, nil
	}
}
