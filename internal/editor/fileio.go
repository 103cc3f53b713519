package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"

	"github.com/stlalpha/nilo/internal/config"
)

// ImportError reports a source file that could not be loaded.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// sourceCharmap returns the single-byte charmap of the named encoding, or nil
// when the bytes are used as they are.
func sourceCharmap(name string) (*charmap.Charmap, error) {
	switch config.NormalizeEncoding(name) {
	case config.EncodingUTF8:
		return nil, nil
	case config.EncodingCP437:
		return charmap.CodePage437, nil
	case config.EncodingLatin1:
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// LoadFile appends every line of the file at path to buf.
func LoadFile(buf *TextBuffer, path, enc string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ImportError{Path: path, Err: err}
	}
	defer f.Close()

	if err := LoadReader(buf, f, enc); err != nil {
		return &ImportError{Path: path, Err: err}
	}
	return nil
}

// LoadReader appends every line read from r to buf. Lines end at '\n'; a
// trailing '\r' is dropped and a final line without a terminator is kept.
// Rows keep the source bytes so cursor columns stay one byte per cell; a
// single-byte encoding is installed on buf and applied when rows are drawn.
func LoadReader(buf *TextBuffer, r io.Reader, enc string) error {
	cm, err := sourceCharmap(enc)
	if err != nil {
		return err
	}
	buf.SetCharmap(cm)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			buf.AppendRow(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
