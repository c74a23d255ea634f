// Package signal provides graceful shutdown handling for the calcifer CLI.
// It imports only the standard library.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels a context when SIGINT or SIGTERM is received, letting
// in-flight git and store operations unwind through context cancellation.
type Handler struct {
	ctx      context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel   context.CancelFunc
	sigChan  chan os.Signal
	done     chan struct{}
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM. The returned handler's
// context is canceled on the first signal received.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := run(h.Context())
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:    ctx,
		cancel: cancel,
		// Buffered so signal.Notify never drops a signal while the
		// handler is busy.
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context. Use it for all interruptible
// operations.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Stop cancels the context and stops listening for signals. Safe to call
// more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

// listen waits for the first signal or for Stop.
func (h *Handler) listen() {
	select {
	case <-h.done:
	case <-h.ctx.Done():
	case <-h.sigChan:
		h.cancel()
	}
}
