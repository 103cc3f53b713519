package terminal

import "time"

// ReadTimeout is the idle timeout a raw-mode read waits before returning
// empty handed (VTIME is expressed in tenths of a second).
const ReadTimeout = 100 * time.Millisecond

// ByteSource delivers terminal input one byte at a time. ok is false when the
// idle timeout elapsed without a byte; that is steady state, not an error.
type ByteSource interface {
	ReadByteTimeout() (b byte, ok bool, err error)
}
