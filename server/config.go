package server

import (
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/log"
)

// Config for local capability servers.  The zero value is ready to use.
type Config struct {
	Logger log.Logger

	// QueueLimit bounds the number of calls waiting for dispatch.  Calls
	// that arrive while the queue is full fail with Overloaded.  Zero
	// means unbounded.
	QueueLimit int

	// Limiter, if set, admits calls at a bounded rate.  Calls that
	// arrive while the limiter has no tokens fail with Overloaded.
	Limiter *rate.Limiter

	// Hooks observe every dispatched call, in order.
	Hooks []Hook
}

// NewServer returns a server that dispatches calls to impl through
// methods.  The brand lists every interface implemented by impl.
func (cfg Config) NewServer(impl any, brand ocap.Brand, methods ...Method) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := newServer(cfg, impl, brand, methods)
	go s.serve()

	return s
}

// NewClient wraps a new server in a client.
func (cfg Config) NewClient(impl any, brand ocap.Brand, methods ...Method) ocap.Client {
	return ocap.NewClient(cfg.NewServer(impl, brand, methods...))
}

// New is equivalent to Config{}.NewClient.
func New(impl any, brand ocap.Brand, methods ...Method) ocap.Client {
	return Config{}.NewClient(impl, brand, methods...)
}
