// Package logging provides log setup and debug logging for the nilo viewer.
//
// The terminal is owned by the screen renderer while the viewer runs, so log
// output goes to a file or nowhere, never to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
)

// DebugEnabled controls whether Debug() produces output.
// Set via -debug flag or DEBUG=1 environment variable.
var DebugEnabled bool

// SessionID identifies this run in a shared log file.
var SessionID = uuid.NewString()

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Setup sends the standard logger to path, appending, with the session id as
// prefix. An empty path discards all log output. The returned closer must be
// closed on exit.
func Setup(path string) (io.Closer, error) {
	log.SetPrefix(fmt.Sprintf("[%s] ", shortID(SessionID)))
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), fmt.Errorf("open log file %s: %w", path, err)
	}
	log.SetOutput(f)
	log.Printf("INFO: Session %s started (pid %d)", SessionID, os.Getpid())
	return f, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
