package ctxutil

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
)

// WithLifetime returns a context that expires when the process receives
// SIGINT or SIGTERM.
func WithLifetime(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithSignals(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// WithSignals returns a context that expires when the process receives any of the
// specified signals.  Err reports which signal was received.
func WithSignals(ctx context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, sigs...)

	ctx, cancel := context.WithCancel(ctx)
	sctx := &sigctx{Context: ctx}

	go func() {
		defer signal.Stop(sigch)

		select {
		case sig := <-sigch:
			sctx.setErr(errors.Errorf("signal received: %s", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return sctx, cancel
}

type sigctx struct {
	mu  sync.RWMutex
	err error

	context.Context
}

func (ctx *sigctx) setErr(err error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	ctx.err = err
}

func (ctx *sigctx) Err() error {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	if ctx.err != nil {
		return ctx.err
	}

	return ctx.Context.Err()
}
