package input

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type readResult struct {
	key Key
	err error
}

// scriptedReader replays results in order, then reports the source closed.
type scriptedReader struct {
	results chan readResult
}

func newScriptedReader(results ...readResult) *scriptedReader {
	r := &scriptedReader{results: make(chan readResult, len(results))}
	for _, res := range results {
		r.results <- res
	}
	close(r.results)
	return r
}

func (r *scriptedReader) ReadKey() (Key, error) {
	res, ok := <-r.results
	if !ok {
		return Key{}, ErrSourceClosed
	}
	return res.key, res.err
}

// endlessReader returns the same key forever, or the same error forever.
type endlessReader struct {
	key Key
	err error
}

func (r endlessReader) ReadKey() (Key, error) { return r.key, r.err }

var errTransient = errors.New("read interrupted")

func testOptions() BridgeOptions {
	return BridgeOptions{QueueSize: 16, RetryBase: time.Millisecond, RetryCap: 5 * time.Millisecond}
}

func waitDone(t *testing.T, b *Bridge) {
	t.Helper()
	select {
	case <-b.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine did not exit")
	}
}

func keys(rs ...rune) []readResult {
	out := make([]readResult, len(rs))
	for i, r := range rs {
		out[i] = readResult{key: Char(r)}
	}
	return out
}

func TestTryTakeEmpty(t *testing.T) {
	b := NewBridge(newScriptedReader(), testOptions(), zaptest.NewLogger(t))
	waitDone(t, b)
	if _, ok := b.TryTake(); ok {
		t.Fatal("expected no key from an empty source")
	}
}

func TestTryTakeFIFOOnePerCall(t *testing.T) {
	b := NewBridge(newScriptedReader(keys('w', 'a', 's', 'd')...), testOptions(), zaptest.NewLogger(t))
	waitDone(t, b)

	if b.Pending() != 4 {
		t.Fatalf("expected 4 pending keys, got %d", b.Pending())
	}
	for _, want := range "wasd" {
		k, ok := b.TryTake()
		if !ok || k != Char(want) {
			t.Fatalf("expected %q, got %v (ok=%v)", want, k, ok)
		}
	}
	if _, ok := b.TryTake(); ok {
		t.Fatal("queue should be empty")
	}
	if !b.Disconnected() {
		t.Fatal("expected disconnection after the source closed")
	}
	// A disconnected bridge keeps degrading to "no input".
	if _, ok := b.TryTake(); ok {
		t.Fatal("disconnected bridge returned a key")
	}
}

func TestLatencyBound(t *testing.T) {
	cases := []struct {
		name  string
		queue []rune
		ticks int
	}{
		{"more ticks than keys", []rune("dds"), 5},
		{"fewer ticks than keys", []rune("wasdw"), 2},
		{"equal", []rune("ad"), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBridge(newScriptedReader(keys(tc.queue...)...), testOptions(), zaptest.NewLogger(t))
			waitDone(t, b)

			var seen []rune
			for tick := 0; tick < tc.ticks; tick++ {
				if k, ok := b.TryTake(); ok {
					seen = append(seen, k.Rune)
				}
			}
			want := min(len(tc.queue), tc.ticks)
			if len(seen) != want {
				t.Fatalf("observed %d keys, want %d", len(seen), want)
			}
			if string(seen) != string(tc.queue[:want]) {
				t.Fatalf("observed %q, want %q", string(seen), string(tc.queue[:want]))
			}
			if left := len(tc.queue) - want; b.Pending() != left {
				t.Fatalf("expected %d keys still queued, got %d", left, b.Pending())
			}
		})
	}
}

func TestTransientErrorsAreRetried(t *testing.T) {
	r := newScriptedReader(
		readResult{err: errTransient},
		readResult{err: errTransient},
		readResult{key: Char('x')},
	)
	b := NewBridge(r, testOptions(), zaptest.NewLogger(t))
	waitDone(t, b)

	k, ok := b.TryTake()
	if !ok || k != Char('x') {
		t.Fatalf("expected 'x' after retries, got %v (ok=%v)", k, ok)
	}
}

func TestCloseStopsBlockedSender(t *testing.T) {
	opts := testOptions()
	opts.QueueSize = 1
	b := NewBridge(endlessReader{key: Char('d')}, opts, zaptest.NewLogger(t))

	deadline := time.Now().Add(2 * time.Second)
	for b.Pending() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("queue never filled")
		}
		time.Sleep(time.Millisecond)
	}
	b.Close()
	waitDone(t, b)
}

func TestCloseStopsRetryLoop(t *testing.T) {
	b := NewBridge(endlessReader{err: errTransient}, testOptions(), zaptest.NewLogger(t))
	time.Sleep(10 * time.Millisecond)
	b.Close()
	waitDone(t, b)
	if _, ok := b.TryTake(); ok {
		t.Fatal("failing reader produced a key")
	}
}

func TestNewBridgeFillsDefaults(t *testing.T) {
	b := NewBridge(newScriptedReader(), BridgeOptions{}, zaptest.NewLogger(t))
	waitDone(t, b)
	def := DefaultBridgeOptions()
	if b.opts.QueueSize != def.QueueSize || b.opts.RetryBase != def.RetryBase || b.opts.RetryCap != def.RetryCap {
		t.Fatalf("expected defaults %+v, got %+v", def, b.opts)
	}
}

func TestNewBridgeZeroCapUsesDefaultCap(t *testing.T) {
	b := NewBridge(newScriptedReader(), BridgeOptions{RetryBase: 50 * time.Millisecond}, zaptest.NewLogger(t))
	waitDone(t, b)
	if b.opts.RetryCap != DefaultBridgeOptions().RetryCap {
		t.Fatalf("retry cap = %s, want the default", b.opts.RetryCap)
	}
}
