package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TabStop != 8 {
		t.Errorf("expected tab stop 8, got %d", cfg.TabStop)
	}
	if cfg.WelcomeMessage != "Nilo Editor -- version 0.0.1" {
		t.Errorf("unexpected welcome message %q", cfg.WelcomeMessage)
	}
	if cfg.Encoding != EncodingUTF8 {
		t.Errorf("expected utf8 encoding, got %q", cfg.Encoding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/nilo.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nilo.json")
	os.WriteFile(path, []byte(`{"tabStop": 4, "encoding": "CP437"}`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TabStop != 4 {
		t.Errorf("expected tab stop 4, got %d", cfg.TabStop)
	}
	if cfg.Encoding != EncodingCP437 {
		t.Errorf("expected normalized cp437, got %q", cfg.Encoding)
	}
	if cfg.WelcomeMessage != Default().WelcomeMessage {
		t.Errorf("welcome message should keep default, got %q", cfg.WelcomeMessage)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nilo.json")
	os.WriteFile(path, []byte("not json"), 0644)

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		want string
	}{
		{"zero tab stop", map[string]any{"tabStop": 0}, "tabStop"},
		{"huge tab stop", map[string]any{"tabStop": 100}, "tabStop"},
		{"unknown encoding", map[string]any{"encoding": "ebcdic"}, "encoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nilo.json")
			writeConfig(t, path, tt.cfg)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestNormalizeEncoding(t *testing.T) {
	tests := map[string]string{
		"":           EncodingUTF8,
		"UTF-8":      EncodingUTF8,
		"ibm437":     EncodingCP437,
		"ISO-8859-1": EncodingLatin1,
		"koi8":       "koi8",
	}
	for in, want := range tests {
		if got := NormalizeEncoding(in); got != want {
			t.Errorf("NormalizeEncoding(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatcher_PublishesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nilo.json")
	writeConfig(t, path, map[string]any{"tabStop": 8})

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	writeConfig(t, path, map[string]any{"tabStop": 4, "welcomeMessage": "hi"})

	select {
	case cfg := <-w.Updates():
		if cfg.TabStop != 4 || cfg.WelcomeMessage != "hi" {
			t.Errorf("unexpected reloaded config %+v", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nilo.json")
	writeConfig(t, path, map[string]any{"tabStop": 8})

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{"tabStop": 2}`), 0644)

	select {
	case cfg := <-w.Updates():
		t.Errorf("unexpected reload %+v", cfg)
	case <-time.After(2 * debounceDuration):
	}
}

func TestWatcher_SkipsInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nilo.json")
	writeConfig(t, path, map[string]any{"tabStop": 8})

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	os.WriteFile(path, []byte("{broken"), 0644)

	select {
	case cfg := <-w.Updates():
		t.Errorf("invalid file should not publish, got %+v", cfg)
	case <-time.After(3 * debounceDuration):
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nilo.json")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher("/nonexistent/dir/nilo.json")
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
