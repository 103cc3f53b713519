package terminal

import (
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/stlalpha/nilo/internal/logging"
)

// maxReportLen bounds the cursor position report read back from the terminal.
const maxReportLen = 32

// getWindowSize is swapped out by tests.
var getWindowSize = term.GetSize

// QuerySize returns the terminal's row and column count. It asks the OS
// first; when that fails or reports zero columns it moves the cursor to the
// far corner and reads the position back with a device status report.
func QuerySize(fd int, in ByteSource, out io.Writer) (rows, cols int, err error) {
	cols, rows, err = getWindowSize(fd)
	if err == nil && cols > 0 && rows > 0 {
		return rows, cols, nil
	}
	logging.Debug("window size ioctl unusable (cols=%d err=%v), probing cursor position", cols, err)

	if _, err := io.WriteString(out, CursorFarCorner); err != nil {
		return 0, 0, &Error{Op: "write", Err: err}
	}
	rows, cols, err = CursorPosition(in, out)
	if err != nil {
		return 0, 0, &Error{Op: "getWindowSize", Err: err}
	}
	return rows, cols, nil
}

// CursorPosition asks the terminal where the cursor is and parses the
// "ESC [ rows ; cols R" answer. Coordinates are 1-based.
func CursorPosition(in ByteSource, out io.Writer) (rows, cols int, err error) {
	if _, err := io.WriteString(out, QueryCursorPosition); err != nil {
		return 0, 0, err
	}

	report := make([]byte, 0, maxReportLen)
	for len(report) < maxReportLen-1 {
		b, ok, err := in.ReadByteTimeout()
		if err != nil {
			return 0, 0, err
		}
		if !ok || b == 'R' {
			break
		}
		report = append(report, b)
	}
	return parseCursorReport(report)
}

func parseCursorReport(report []byte) (rows, cols int, err error) {
	if len(report) < 2 || report[0] != '\x1b' || report[1] != '[' {
		return 0, 0, fmt.Errorf("%w: malformed cursor report %q", ErrSizeUnavailable, report)
	}
	if _, err := fmt.Sscanf(string(report[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("%w: malformed cursor report %q", ErrSizeUnavailable, report)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: reported %dx%d", ErrSizeUnavailable, cols, rows)
	}
	return rows, cols, nil
}
