// Package server dispatches calls to local capability implementations.
package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/log"
)

// Shutdowner is implemented by capability implementations that need to
// release resources when the server stops.
type Shutdowner interface {
	Shutdown()
}

// Server is a ClientHook that runs calls against a local
// implementation.  Calls are dispatched one at a time, in the order in
// which they arrived, by a single goroutine.
type Server struct {
	id      uuid.UUID
	impl    any
	brand   ocap.Brand
	methods map[methodKey]Method

	log     log.ErrorReporter
	limit   int
	limiter *rate.Limiter
	hooks   []Hook

	mu     sync.Mutex
	queue  []pending
	closed bool
	signal chan struct{}

	running sync.WaitGroup
}

var _ ocap.ClientHook = (*Server)(nil)

type pending struct {
	ctx  context.Context
	call ocap.Call
	ans  *ocap.Answer
}

func newServer(cfg Config, impl any, brand ocap.Brand, methods []Method) *Server {
	s := &Server{
		id:      uuid.New(),
		impl:    impl,
		brand:   brand,
		methods: make(map[methodKey]Method, len(methods)),
		log:     log.ErrorReporter{Logger: cfg.Logger},
		limit:   cfg.QueueLimit,
		limiter: cfg.Limiter,
		hooks:   cfg.Hooks,
		signal:  make(chan struct{}, 1),
	}

	for _, m := range methods {
		s.methods[keyOf(m.Method)] = m
	}

	return s
}

func (s *Server) String() string {
	return fmt.Sprintf("Server(%T, %s)", s.impl, s.id)
}

// ID uniquely identifies the server in logs and traces.
func (s *Server) ID() uuid.UUID {
	return s.id
}

func (s *Server) Brand() ocap.Brand {
	return s.brand
}

// Send enqueues the call for dispatch.  It never blocks.
func (s *Server) Send(ctx context.Context, call ocap.Call) *ocap.Answer {
	if s.limiter != nil && !s.limiter.Allow() {
		call.ReleaseArgs()
		return ocap.RejectedAnswer(call.Method,
			ocap.Overloadedf("%s: rate limit exceeded", call.Method))
	}

	ctx, cancel := context.WithCancel(ctx)
	ans := ocap.NewAnswer(call.Method, cancel)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		call.ReleaseArgs()
		ans.Reject(ocap.Disconnectedf("%s: server shut down", call.Method))

	case s.limit > 0 && len(s.queue) >= s.limit:
		call.ReleaseArgs()
		ans.Reject(ocap.Overloadedf("%s: queue full (%d calls pending)",
			call.Method, len(s.queue)))

	default:
		s.queue = append(s.queue, pending{ctx: ctx, call: call, ans: ans})
		s.notify()
	}

	return ans
}

// Shutdown stops the server once every queued call has been
// dispatched.  It is called when the last client is released.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.notify()
}

func (s *Server) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// next blocks until a call is available.  It returns false once the
// server has shut down and the queue is empty.
func (s *Server) next() (pending, bool) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			p := s.queue[0]
			s.queue[0] = pending{}
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return p, true
		}

		closed := s.closed
		s.mu.Unlock()

		if closed {
			return pending{}, false
		}

		<-s.signal
	}
}

// serve is the dispatch loop.  At most one instance runs at a time; a
// handler that calls Go hands the loop over to a fresh goroutine.
func (s *Server) serve() {
	for {
		p, ok := s.next()
		if !ok {
			break
		}

		if handedOff := s.handle(p); handedOff {
			return
		}
	}

	s.running.Wait()
	if sd, ok := s.impl.(Shutdowner); ok {
		sd.Shutdown()
	}
}

func (s *Server) handle(p pending) bool {
	s.running.Add(1)
	defer s.running.Done()

	defer p.call.ReleaseArgs()

	// Calls that were abandoned while queued are never run.
	if err := p.ctx.Err(); err != nil {
		p.ans.Reject(ocap.Failedf("%s: %w", p.call.Method, err))
		return false
	}

	m, ok := s.methods[keyOf(p.call.Method)]
	if !ok {
		p.ans.Reject(ocap.Unimplementedf("%s not implemented", p.call.Method))
		return false
	}

	results, err := ocap.NewMessage()
	if err != nil {
		p.ans.Reject(ocap.Failedf("%s: alloc results: %w", p.call.Method, err))
		return false
	}

	res, err := results.Root().InitStruct(m.ResultSize)
	if err != nil {
		results.Release()
		p.ans.Reject(ocap.Failedf("%s: alloc results: %w", p.call.Method, err))
		return false
	}

	var handedOff atomic.Bool
	call := &Call{
		Method:  p.call.Method,
		params:  p.call.Args,
		results: res,
		release: func() {
			handedOff.Store(true)
			go s.serve()
		},
	}

	info := DispatchInfo{Method: p.call.Method, ServerID: s.id.String()}
	ctx, tokens := startHooks(p.ctx, s.hooks, info)
	err = s.invoke(ctx, m, call)
	endHooks(ctx, tokens, info, err)
	call.once.Do(func() {}) // Go is a no-op once the handler returns

	if err != nil {
		results.Release()
		s.log.ReportError(err,
			"server", s.id,
			"method", p.call.Method)
		p.ans.Reject(err)
	} else {
		p.ans.Fulfill(results)
	}

	return handedOff.Load()
}

func (s *Server) invoke(ctx context.Context, m Method, call *Call) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = ocap.Failedf("%s: panic: %v", m.Method, v)
		}
	}()

	return m.Impl(ctx, call)
}
