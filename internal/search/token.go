package search

import (
	"context"
	"sync"
	"sync/atomic"
)

// Token is a shared cancellation flag. It is set by the caller (typically a
// signal handler) and polled by the executors at safe points. A nil Token is
// never cancelled.
type Token struct {
	cancelled atomic.Bool
}

// NewToken returns a token that has not been cancelled.
func NewToken() *Token {
	return &Token{}
}

// Cancel sets the flag. It is safe to call more than once and from any goroutine.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.cancelled.Load()
}

// WatchContext cancels t once ctx is done. The returned stop function releases
// the watcher goroutine and must be called when the search finishes.
func WatchContext(ctx context.Context, t *Token) (stop func()) {
	if ctx.Err() != nil {
		t.Cancel()
		return func() {}
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			t.Cancel()
		case <-done:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-finished
	}
}
