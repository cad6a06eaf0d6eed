package console

import (
	"errors"
	"fmt"
	"os"

	"blobterm/internal/input"

	"go.uber.org/multierr"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the file is not a terminal.
var ErrNotTerminal = errors.New("console: not a terminal")

// Reader reads keys from a terminal put into raw mode.
type Reader struct {
	*Decoder
	f     *os.File
	state *term.State
}

var _ input.KeyReader = (*Reader)(nil)

// Open switches f into raw mode. Call Restore before the process exits.
func Open(f *os.File) (*Reader, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("open %s: %w", f.Name(), ErrNotTerminal)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode on %s: %w", f.Name(), err)
	}
	return &Reader{Decoder: NewDecoder(f), f: f, state: state}, nil
}

// Restore returns the terminal to the mode it had before Open and shows the
// cursor again.
func (r *Reader) Restore(out *os.File) error {
	var err error
	if out != nil {
		_, werr := out.WriteString("\x1b[0m\x1b[?25h\r\n")
		err = multierr.Append(err, werr)
	}
	return multierr.Append(err, term.Restore(int(r.f.Fd()), r.state))
}
