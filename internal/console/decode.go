// Package console reads single key presses from a raw-mode terminal.
package console

import (
	"bufio"
	"errors"
	"io"

	"blobterm/internal/input"
)

// Decoder turns a byte stream into logical keys.
type Decoder struct {
	br *bufio.Reader
}

// NewDecoder decodes keys from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{br: bufio.NewReaderSize(r, 64)}
}

// ReadKey blocks until one key has been decoded. End of input is reported as
// input.ErrSourceClosed.
func (d *Decoder) ReadKey() (input.Key, error) {
	r, _, err := d.br.ReadRune()
	if err != nil {
		return input.Key{}, closedOr(err)
	}
	switch r {
	case 0x03:
		return input.Key{Code: input.KeyInterrupt}, nil
	case '\r', '\n':
		return input.Key{Code: input.KeyEnter}, nil
	case '\t':
		return input.Key{Code: input.KeyTab}, nil
	case 0x7f, 0x08:
		return input.Key{Code: input.KeyBackspace}, nil
	case 0x1b:
		return d.escape()
	}
	if r < ' ' {
		return input.Key{Code: input.KeyUnknown}, nil
	}
	return input.Char(r), nil
}

// escape decodes the CSI/SS3 arrow sequences. Terminals send a sequence in
// one write, so an ESC with nothing buffered behind it is a lone Escape.
func (d *Decoder) escape() (input.Key, error) {
	if d.br.Buffered() == 0 {
		return input.Key{Code: input.KeyEscape}, nil
	}
	intro, err := d.br.ReadByte()
	if err != nil {
		return input.Key{}, closedOr(err)
	}
	if intro != '[' && intro != 'O' {
		_ = d.br.UnreadByte()
		return input.Key{Code: input.KeyEscape}, nil
	}
	final, err := d.br.ReadByte()
	if err != nil {
		return input.Key{}, closedOr(err)
	}
	switch final {
	case 'A':
		return input.Key{Code: input.KeyUp}, nil
	case 'B':
		return input.Key{Code: input.KeyDown}, nil
	case 'C':
		return input.Key{Code: input.KeyRight}, nil
	case 'D':
		return input.Key{Code: input.KeyLeft}, nil
	}
	// Skip the parameters of sequences we do not decode, up to the final byte.
	for final < 0x40 || final > 0x7e {
		if final, err = d.br.ReadByte(); err != nil {
			return input.Key{}, closedOr(err)
		}
	}
	return input.Key{Code: input.KeyUnknown}, nil
}

func closedOr(err error) error {
	if errors.Is(err, io.EOF) {
		return input.ErrSourceClosed
	}
	return err
}
