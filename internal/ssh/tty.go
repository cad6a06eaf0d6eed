// Package ssh adapts gliderlabs SSH sessions into terminals tcell can drive.
package ssh

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is assumed when the client sends no terminal type.
const DefaultTerm = "xterm-256color"

// AllowedTerms lists the terminal types a session may request. TERM selects a
// terminfo entry, so arbitrary client values are refused.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// Term picks the session's terminal type: the PTY request first, then the
// TERM variable, then DefaultTerm.
func Term(s gossh.Session, pty gossh.Pty) string {
	if pty.Term != "" {
		return pty.Term
	}
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && v != "" {
			return v
		}
	}
	return DefaultTerm
}

// SessionTty implements tcell.Tty over one SSH session.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func()
	stop   chan struct{}
	once   sync.Once
}

var _ tcell.Tty = (*SessionTty)(nil)

// NewSessionTty wraps s. pty holds the initial window; winCh delivers resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		winCh:   winCh,
		window:  pty.Window,
		stop:    make(chan struct{}),
	}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close ends the resize watcher and the SSH channel.
func (t *SessionTty) Close() error {
	t.once.Do(func() { close(t.stop) })
	return t.session.Close()
}

// Start, Stop and Drain have nothing to do: the channel is already open and
// writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the most recent window reported by the client.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts following window changes until the
// session ends or Close is called.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.stop:
				return
			case win, ok := <-t.winCh:
				if !ok {
					return
				}
				t.resize(win)
			}
		}
	}()
}

func (t *SessionTty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.cb
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
