package input

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// BridgeOptions tunes the Bridge queue and its read retry policy.
type BridgeOptions struct {
	QueueSize int           // keys buffered before the reader waits
	RetryBase time.Duration // first delay after a failed read
	RetryCap  time.Duration // upper bound for the retry delay
}

// DefaultBridgeOptions returns the options used when none are configured.
func DefaultBridgeOptions() BridgeOptions {
	return BridgeOptions{
		QueueSize: 64,
		RetryBase: 10 * time.Millisecond,
		RetryCap:  time.Second,
	}
}

// Bridge moves keys from a blocking KeyReader to the tick loop.
// One background goroutine owns the reader and is the only sender on the
// queue; the tick loop is the only receiver.
type Bridge struct {
	keys   <-chan Key
	cancel context.CancelFunc
	done   chan struct{}
	opts   BridgeOptions
	log    *zap.Logger

	disconnected bool
}

// NewBridge starts the reader goroutine and returns the consumer side.
func NewBridge(r KeyReader, opts BridgeOptions, log *zap.Logger) *Bridge {
	def := DefaultBridgeOptions()
	if opts.QueueSize <= 0 {
		opts.QueueSize = def.QueueSize
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = def.RetryBase
	}
	if opts.RetryCap <= 0 {
		opts.RetryCap = def.RetryCap
	}
	if opts.RetryCap < opts.RetryBase {
		opts.RetryCap = opts.RetryBase
	}

	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan Key, opts.QueueSize)
	b := &Bridge{
		keys:   keys,
		cancel: cancel,
		done:   make(chan struct{}),
		opts:   opts,
		log:    log,
	}
	go b.pump(ctx, r, keys)
	return b
}

// TryTake returns the oldest queued key without blocking. It takes at most
// one key per call; anything else stays queued for later ticks.
// Once the reader has stopped, TryTake keeps returning false.
func (b *Bridge) TryTake() (Key, bool) {
	select {
	case k, ok := <-b.keys:
		if !ok {
			b.keys = nil
			b.disconnected = true
			b.log.Warn("key reader stopped; no further keyboard input")
			return Key{}, false
		}
		return k, true
	default:
		return Key{}, false
	}
}

// Pending returns the number of keys waiting in the queue.
func (b *Bridge) Pending() int { return len(b.keys) }

// Disconnected reports whether TryTake has observed the reader stop.
func (b *Bridge) Disconnected() bool { return b.disconnected }

// Close drops the consumer side. The reader goroutine exits at its next send
// or retry wait; a read already blocked in the OS returns only when its
// source closes.
func (b *Bridge) Close() {
	b.cancel()
}

// Done is closed when the reader goroutine has exited.
func (b *Bridge) Done() <-chan struct{} { return b.done }

func (b *Bridge) pump(ctx context.Context, r KeyReader, out chan<- Key) {
	defer close(b.done)
	defer close(out)

	for {
		key, err := b.read(ctx, r)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				b.log.Info("key source closed")
			}
			return
		}
		select {
		case out <- key:
		case <-ctx.Done():
			return
		}
	}
}

// read blocks for one key, retrying transient failures with capped
// exponential backoff until the source closes or the bridge is closed.
func (b *Bridge) read(ctx context.Context, r KeyReader) (Key, error) {
	var key Key
	backoff := retry.WithCappedDuration(b.opts.RetryCap, retry.NewExponential(b.opts.RetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		k, err := r.ReadKey()
		switch {
		case err == nil:
			key = k
			return nil
		case errors.Is(err, ErrSourceClosed):
			return err
		default:
			b.log.Debug("key read failed, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
	})
	return key, err
}
