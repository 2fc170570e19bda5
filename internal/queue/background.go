package queue

import (
    "context"
    "errors"
    "log"
    "sync"
    "time"
)

// ErrClosed is returned by Background.Publish after Close.
var ErrClosed = errors.New("publisher closed")

// Background hands each event to the wrapped publisher on its own
// goroutine, bounded by Timeout, so callers never wait on the broker.
// Close stops accepting events, waits for those in flight and then closes
// the wrapped publisher.
type Background struct {
    next    Publisher
    timeout time.Duration

    mu     sync.Mutex
    closed bool
    wg     sync.WaitGroup
}

func NewBackground(next Publisher, timeout time.Duration) *Background {
    return &Background{next: next, timeout: timeout}
}

// Publish schedules the event and returns at once.  The caller's context
// is not used for delivery since the request usually ends first.
func (b *Background) Publish(_ context.Context, key string, event any) error {
    b.mu.Lock()
    if b.closed {
        b.mu.Unlock()
        return ErrClosed
    }
    b.wg.Add(1)
    b.mu.Unlock()

    go func() {
        defer b.wg.Done()
        ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
        defer cancel()
        if err := b.next.Publish(ctx, key, event); err != nil {
            log.Printf("events: %s not published: %v", key, err)
        }
    }()
    return nil
}

func (b *Background) Close() error {
    b.mu.Lock()
    b.closed = true
    b.mu.Unlock()
    b.wg.Wait()
    return b.next.Close()
}
