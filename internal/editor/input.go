package editor

import (
	"fmt"

	"github.com/stlalpha/nilo/internal/terminal"
)

// Key is a decoded keypress. Values below 0x100 are the literal byte read
// from the terminal; navigation keys use internal codes above the byte range.
type Key int

// Literal keys the viewer cares about.
const (
	KeyEsc  Key = 0x1B
	KeyQuit     = Key('q' & 0x1f) // Ctrl+Q
)

// Special internal codes for escape sequences (outside normal byte range)
const (
	KeyArrowUp    Key = 0x100 + iota // ESC [ A
	KeyArrowDown                     // ESC [ B
	KeyArrowRight                    // ESC [ C
	KeyArrowLeft                     // ESC [ D
	KeyPageUp                        // ESC [ 5 ~
	KeyPageDown                      // ESC [ 6 ~
	KeyHome                          // ESC [ H, ESC H, ESC [ 1 ~, ESC [ 7 ~
	KeyEnd                           // ESC [ F, ESC F, ESC [ 4 ~, ESC [ 8 ~
	KeyDelete                        // ESC [ 3 ~
)

// CtrlKey returns the key produced by holding Ctrl with k.
func CtrlKey(k byte) Key {
	return Key(k & 0x1f)
}

// KeyName returns a human-readable name for a key code
func KeyName(key Key) string {
	switch key {
	case KeyArrowUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyArrowRight:
		return "Right"
	case KeyArrowLeft:
		return "Left"
	case KeyPageUp:
		return "Page Up"
	case KeyPageDown:
		return "Page Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyDelete:
		return "Delete"
	case KeyEsc:
		return "Escape"
	}
	switch {
	case key >= 32 && key < 127:
		return string(rune(key))
	case key >= 0 && key < 32:
		return fmt.Sprintf("Ctrl+%c", rune(key)+'@')
	default:
		return fmt.Sprintf("0x%02X", int(key))
	}
}

type decoderState int

const (
	stateNormal decoderState = iota
	stateEscapeSeen
	stateBracketSeen
	stateBracketDigitSeen
)

var bracketFinals = map[byte]Key{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeDigits = map[byte]Key{
	'1': KeyHome,
	'3': KeyDelete,
	'4': KeyEnd,
	'5': KeyPageUp,
	'6': KeyPageDown,
	'7': KeyHome,
	'8': KeyEnd,
}

// KeyDecoder turns terminal bytes into keys. Escape sequences are matched by
// a four state machine; a sequence that is cut short by the idle timeout or
// that does not match degrades to a literal KeyEsc.
type KeyDecoder struct {
	in    terminal.ByteSource
	state decoderState
	digit byte
}

// NewKeyDecoder creates a decoder reading from in.
func NewKeyDecoder(in terminal.ByteSource) *KeyDecoder {
	return &KeyDecoder{in: in}
}

// ReadKey returns the next key. ok is false when the idle timeout elapsed
// before any byte arrived; callers simply try again. Once an ESC has been
// read, every following read is bounded by the same timeout, so ReadKey
// never waits for more than one timeout per byte.
func (d *KeyDecoder) ReadKey() (key Key, ok bool, err error) {
	for {
		b, got, err := d.in.ReadByteTimeout()
		if err != nil {
			d.reset()
			return 0, false, err
		}
		if key, done := d.feed(b, got); done {
			return key, true, nil
		}
		if d.state == stateNormal {
			return 0, false, nil
		}
	}
}

// feed advances the state machine by one read. got is false for a timeout.
// done reports that key is complete.
func (d *KeyDecoder) feed(b byte, got bool) (key Key, done bool) {
	switch d.state {
	case stateNormal:
		if !got {
			return 0, false
		}
		if Key(b) == KeyEsc {
			d.state = stateEscapeSeen
			return 0, false
		}
		return Key(b), true

	case stateEscapeSeen:
		switch {
		case !got:
		case b == '[':
			d.state = stateBracketSeen
			return 0, false
		case b == 'H':
			return d.emit(KeyHome)
		case b == 'F':
			return d.emit(KeyEnd)
		}

	case stateBracketSeen:
		switch {
		case !got:
		case b >= '0' && b <= '9':
			d.state = stateBracketDigitSeen
			d.digit = b
			return 0, false
		default:
			if k, ok := bracketFinals[b]; ok {
				return d.emit(k)
			}
		}

	case stateBracketDigitSeen:
		if got && b == '~' {
			if k, ok := tildeDigits[d.digit]; ok {
				return d.emit(k)
			}
		}
	}
	return d.emit(KeyEsc)
}

func (d *KeyDecoder) emit(k Key) (Key, bool) {
	d.reset()
	return k, true
}

func (d *KeyDecoder) reset() {
	d.state = stateNormal
	d.digit = 0
}
