package terminal

import "errors"

var (
	// ErrNotTerminal is returned when the descriptor is not attached to a tty.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrSizeUnavailable is returned when neither the window size ioctl nor the
	// cursor position report yields a usable size.
	ErrSizeUnavailable = errors.New("terminal size unavailable")
	// ErrUnsupported is returned on platforms without termios support.
	ErrUnsupported = errors.New("raw mode not supported on this platform")
)

// Error reports a failed terminal control operation. These failures mean the
// process is not attached to a usable interactive terminal and are fatal.
type Error struct {
	Op  string // tcgetattr, tcsetattr, read, write, getWindowSize
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
