// Package input turns terminal and device input into per-tick events the
// simulation can consume without blocking.
package input

import (
	"errors"
	"fmt"
)

// ErrSourceClosed is returned by a KeyReader whose source is gone for good.
var ErrSourceClosed = errors.New("input: key source closed")

// KeyCode is a logical key symbol.
type KeyCode uint8

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyInterrupt // Ctrl-C; raw mode delivers it as a key instead of SIGINT
)

// Key is one decoded key press. Rune is set only when Code is KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Char returns the key for a printable character.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

var keyNames = [...]string{
	KeyUnknown:   "Unknown",
	KeyRune:      "Rune",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyInterrupt: "Interrupt",
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	if int(k.Code) < len(keyNames) {
		return keyNames[k.Code]
	}
	return fmt.Sprintf("Key(%d)", k.Code)
}

// KeyReader blocks until the next key is available. Transient failures are
// reported as ordinary errors and may be retried; ErrSourceClosed means no
// key will ever arrive again.
type KeyReader interface {
	ReadKey() (Key, error)
}
