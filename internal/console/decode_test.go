package console

import (
	"errors"
	"strings"
	"testing"

	"blobterm/internal/input"
)

func TestDecoder(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []input.Key
	}{
		{"letters", "wasd", []input.Key{input.Char('w'), input.Char('a'), input.Char('s'), input.Char('d')}},
		{"arrows csi", "\x1b[A\x1b[B\x1b[C\x1b[D", []input.Key{{Code: input.KeyUp}, {Code: input.KeyDown}, {Code: input.KeyRight}, {Code: input.KeyLeft}}},
		{"arrows ss3", "\x1bOA", []input.Key{{Code: input.KeyUp}}},
		{"lone escape", "\x1b", []input.Key{{Code: input.KeyEscape}}},
		{"escape then letter", "\x1bx", []input.Key{{Code: input.KeyEscape}, input.Char('x')}},
		{"unknown csi skipped", "\x1b[3~d", []input.Key{{Code: input.KeyUnknown}, input.Char('d')}},
		{"controls", "\x03\r\t\x7f", []input.Key{{Code: input.KeyInterrupt}, {Code: input.KeyEnter}, {Code: input.KeyTab}, {Code: input.KeyBackspace}}},
		{"utf8", "é", []input.Key{input.Char('é')}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(tc.in))
			for i, want := range tc.want {
				got, err := d.ReadKey()
				if err != nil {
					t.Fatalf("key %d: %v", i, err)
				}
				if got != want {
					t.Fatalf("key %d: got %v, want %v", i, got, want)
				}
			}
			if _, err := d.ReadKey(); !errors.Is(err, input.ErrSourceClosed) {
				t.Fatalf("expected ErrSourceClosed at end of input, got %v", err)
			}
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestDecoderPassesThroughTransientErrors(t *testing.T) {
	boom := errors.New("EINTR")
	d := NewDecoder(failingReader{err: boom})
	if _, err := d.ReadKey(); !errors.Is(err, boom) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
