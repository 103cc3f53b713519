//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	// TCSETSF drains output and discards pending input, like TCSAFLUSH.
	ioctlSetTermios = unix.TCSETSF
)
