package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// ErrClosed is returned by Publish after Close
var ErrClosed = errors.New("notifier closed")

// Async hands applications to a worker goroutine so submission never waits on
// the management channels. Delivery failures are logged and dropped.
type Async struct {
	next    parking.Publisher
	timeout time.Duration
	queue   chan parking.Application

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsync starts the worker. size bounds the queue; a full queue drops the application with a warning.
func NewAsync(next parking.Publisher, size int, timeout time.Duration) *Async {
	if size <= 0 {
		size = 64
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	a := &Async{
		next:    next,
		timeout: timeout,
		queue:   make(chan parking.Application, size),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for app := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Publish(ctx, app); err != nil {
			slog.Warn("application notification failed", slog.String("applicationId", app.ID), slog.Any("error", err))
		}
		cancel()
	}
}

// Publish enqueues app without blocking
func (a *Async) Publish(_ context.Context, app parking.Application) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- app:
		return nil
	default:
		slog.Warn("notification queue full, dropping application", slog.String("applicationId", app.ID))
		return nil
	}
}

// Close stops accepting applications and waits until the queue is drained or ctx ends
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
