// Package editor implements the nilo viewer core: key decoding, the row
// buffer, cursor navigation and the screen redraw loop.
package editor

import (
	"io"
	"log"

	"github.com/stlalpha/nilo/internal/config"
	"github.com/stlalpha/nilo/internal/logging"
	"github.com/stlalpha/nilo/internal/terminal"
)

// Editor drives the read, decode, navigate, render cycle.
type Editor struct {
	state    *State
	decoder  *KeyDecoder
	renderer *Renderer
	out      io.Writer
	reloads  <-chan config.Config
	current  config.Config
}

// New creates an editor viewing buf on a screen of the given size.
func New(buf *TextBuffer, in terminal.ByteSource, out io.Writer, screen Size, cfg config.Config) *Editor {
	return &Editor{
		state:    NewState(buf, screen),
		decoder:  NewKeyDecoder(in),
		renderer: NewRenderer(out, cfg.WelcomeMessage),
		out:      out,
		current:  cfg,
	}
}

// State exposes the loop's state, mainly for tests.
func (e *Editor) State() *State {
	return e.state
}

// WatchConfig makes the loop apply configurations received on ch while it
// waits for input.
func (e *Editor) WatchConfig(ch <-chan config.Config) {
	e.reloads = ch
}

// Run redraws the screen and processes keys until Ctrl+Q is pressed or a
// terminal operation fails. Quitting clears the screen and returns nil
// without drawing another frame.
func (e *Editor) Run() error {
	dirty := true
	for {
		if dirty {
			if err := e.renderer.Refresh(e.state); err != nil {
				return err
			}
			dirty = false
		}

		key, ok, err := e.decoder.ReadKey()
		if err != nil {
			return err
		}
		if !ok {
			dirty = e.applyPendingConfig()
			continue
		}

		if key == KeyQuit {
			logging.Debug("quit requested")
			return e.clearScreen()
		}
		logging.Debug("key %s", KeyName(key))
		Navigate(e.state, key)
		dirty = true
	}
}

func (e *Editor) clearScreen() error {
	if _, err := io.WriteString(e.out, terminal.ClearScreen+terminal.CursorHome); err != nil {
		return &terminal.Error{Op: "write", Err: err}
	}
	return nil
}

// applyPendingConfig applies a reloaded configuration if one is waiting and
// reports whether the screen needs a redraw.
func (e *Editor) applyPendingConfig() bool {
	if e.reloads == nil {
		return false
	}
	var cfg config.Config
	select {
	case cfg = <-e.reloads:
	default:
		return false
	}

	changed := false
	if cfg.TabStop != e.current.TabStop {
		log.Printf("INFO: Tab stop changed from %d to %d", e.current.TabStop, cfg.TabStop)
		e.state.Buffer.SetTabStop(cfg.TabStop)
		changed = true
	}
	if cfg.WelcomeMessage != e.current.WelcomeMessage {
		e.renderer.SetWelcome(cfg.WelcomeMessage)
		changed = true
	}
	if cfg.Encoding != e.current.Encoding || cfg.LogFile != e.current.LogFile {
		log.Printf("WARN: encoding and logFile changes take effect after a restart")
	}
	if cfg.Debug != e.current.Debug {
		logging.DebugEnabled = cfg.Debug
	}
	e.current = cfg
	return changed
}
