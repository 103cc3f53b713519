//go:build !linux && !darwin && !freebsd

package terminal

// ModeGuard is unavailable without termios.
type ModeGuard struct{}

// Acquire always fails on this platform.
func Acquire(fd int) (*ModeGuard, error) {
	return nil, &Error{Op: "tcgetattr", Err: ErrUnsupported}
}

// Release is a no-op.
func (g *ModeGuard) Release() error { return nil }

// Input is unavailable without termios.
type Input struct{}

// NewInput returns an Input whose reads always fail.
func NewInput(fd int) *Input { return &Input{} }

// ReadByteTimeout always fails on this platform.
func (in *Input) ReadByteTimeout() (byte, bool, error) {
	return 0, false, &Error{Op: "read", Err: ErrUnsupported}
}
