// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugDisabled(t *testing.T) {
	DebugEnabled = false
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Debug("this should not appear")

	if buf.Len() > 0 {
		t.Errorf("Debug output when disabled: %s", buf.String())
	}
}

func TestDebugEnabled(t *testing.T) {
	DebugEnabled = true
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Debug("test message %d", 42)

	if !bytes.Contains(buf.Bytes(), []byte("DEBUG: test message 42")) {
		t.Errorf("Expected debug output, got: %s", buf.String())
	}
	DebugEnabled = false
}

func TestSetupWritesToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetPrefix("")

	path := filepath.Join(t.TempDir(), "nilo.log")
	closer, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Printf("INFO: hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "INFO: hello") {
		t.Errorf("log file missing message: %q", text)
	}
	if !strings.Contains(text, "["+SessionID[:8]+"] ") {
		t.Errorf("log lines should carry the session prefix: %q", text)
	}
	if !strings.Contains(text, "Session "+SessionID+" started") {
		t.Errorf("log file missing session banner: %q", text)
	}
}

func TestSetupEmptyPathDiscards(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetPrefix("")

	closer, err := Setup("")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()
	if log.Writer() != io.Discard {
		t.Error("expected log output to be discarded")
	}
}

func TestSetupBadPath(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetPrefix("")

	_, err := Setup(filepath.Join(t.TempDir(), "missing", "dir", "nilo.log"))
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}
