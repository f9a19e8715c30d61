package ocap

import (
	"context"
	"sync"
)

// ReleaseFunc releases the resources associated with a call's results.
// It is safe to call more than once.
type ReleaseFunc func()

// Answer is the eventual result of a call.  It resolves exactly once,
// either to a results struct or to an error.
//
// The results message is released once the answer has resolved AND
// the caller has released it.  Releasing an answer that has not yet
// resolved cancels the call, unless pipelined calls are still waiting
// on it.
type Answer struct {
	method Method
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	msg      *Message
	results  StructReader
	err      error
	draining bool // results are set, pipelined calls are being forwarded
	resolved bool // done is closed
	released bool
	pipes    []*pipelineHook // in creation order
	queue    []queuedCall    // calls on pipes, in the order they were made
	waiters  []func()
	upstream *Answer
}

// NewAnswer returns a pending answer for a call to m.  The cancel
// function, which may be nil, aborts the call.  It is invoked when the
// answer is released early, and once the answer resolves.
func NewAnswer(m Method, cancel context.CancelFunc) *Answer {
	return &Answer{
		method: m,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// RejectedAnswer returns an answer that has already failed with err.
func RejectedAnswer(m Method, err error) *Answer {
	ans := NewAnswer(m, nil)
	ans.Reject(err)
	return ans
}

func (a *Answer) Method() Method {
	return a.method
}

// Future returns a view of the answer's eventual results.
func (a *Answer) Future() *Future {
	return &Future{ans: a}
}

// Fulfill resolves the answer with the struct at the root of msg.  The
// answer takes ownership of msg.
func (a *Answer) Fulfill(msg *Message) {
	r, err := msg.RootReader().Struct()
	if err != nil {
		msg.Release()
		a.Reject(annotate(a.method.String(), err))
		return
	}

	msg.Seal()
	a.resolve(msg, r, nil)
}

// Reject resolves the answer with err.
func (a *Answer) Reject(err error) {
	a.resolve(nil, StructReader{}, err)
}

// resolve sets the results, forwards every pipelined call, and only
// then publishes the resolution.  Calls made on promises in the
// meantime join the queue, so no caller can reach a resolved target
// ahead of a call that was pipelined before it.
func (a *Answer) resolve(msg *Message, r StructReader, err error) {
	a.mu.Lock()
	if a.draining || a.resolved {
		a.mu.Unlock()
		if msg != nil {
			msg.Release()
		}
		return
	}

	a.draining = true
	a.msg, a.results, a.err = msg, r, err

	for {
		a.bindPipes()
		batch := a.queue
		a.queue = nil
		if len(batch) == 0 {
			break
		}

		a.mu.Unlock()
		for _, q := range batch {
			q.ans.chain(q.pipe.target.SendCall(q.ctx, q.call))
		}
		a.mu.Lock()
	}

	// Promises released while their calls were queued drop their
	// targets now.
	var drop []Client
	for _, p := range a.pipes {
		if p.closed {
			drop = append(drop, p.target)
			p.target = Client{}
		}
	}
	a.pipes = nil

	a.resolved = true
	waiters := a.waiters
	a.waiters = nil
	release := a.released
	close(a.done)
	a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}

	for _, c := range drop {
		c.Release()
	}

	for _, f := range waiters {
		f()
	}

	if release {
		a.releaseResults()
	}
}

// bindPipes extracts the target of each promise that does not have one
// yet.  Callers MUST hold a.mu, and the results MUST be set.
func (a *Answer) bindPipes() {
	for _, p := range a.pipes {
		if !p.bound {
			p.target, p.bound = a.clientAt(p.transform), true
		}
	}
}

// Release drops the caller's interest in the answer.
func (a *Answer) Release() {
	a.mu.Lock()
	if a.released {
		a.mu.Unlock()
		return
	}

	a.released = true
	resolved := a.resolved
	cancel := !resolved && !a.draining && len(a.pipes) == 0
	a.mu.Unlock()

	if cancel && a.cancel != nil {
		a.cancel()
	}

	if resolved {
		a.releaseResults()
	}
}

func (a *Answer) releaseResults() {
	if a.msg != nil {
		a.msg.Release()
		a.msg = nil
	}

	if a.upstream != nil {
		a.upstream.Release()
	}
}

// onResolve calls f once the answer has resolved.
func (a *Answer) onResolve(f func()) {
	a.mu.Lock()
	if !a.resolved {
		a.waiters = append(a.waiters, f)
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	f()
}

// chain resolves a with the outcome of up, whose results a borrows
// until it is released.
func (a *Answer) chain(up *Answer) {
	a.mu.Lock()
	a.upstream = up
	a.mu.Unlock()

	up.onResolve(func() {
		up.mu.Lock()
		r, err := up.results, up.err
		up.mu.Unlock()

		a.resolve(nil, r, err)
	})
}

// dropPipe forgets a promise that was released before the answer
// resolved.  Callers MUST hold a.mu.  It reports whether the call
// should be canceled.
func (a *Answer) dropPipe(p *pipelineHook) bool {
	for i, x := range a.pipes {
		if x == p {
			a.pipes = append(a.pipes[:i], a.pipes[i+1:]...)
			break
		}
	}

	return a.released && !a.draining && len(a.pipes) == 0
}

// structAt walks the transform through the results.  Callers MUST hold
// a.mu, and the answer MUST be resolved.
func (a *Answer) structAt(transform []uint16) (StructReader, error) {
	if a.err != nil {
		return StructReader{}, a.err
	}

	s := a.results
	for _, i := range transform {
		var err error
		if s, err = s.PointerField(i).Struct(); err != nil {
			return StructReader{}, annotate(a.method.String(), err)
		}
	}

	return s, nil
}

// clientAt resolves the capability at the end of the transform.  The
// caller owns the returned reference.  Callers MUST hold a.mu, and the
// answer MUST be resolved.
func (a *Answer) clientAt(transform []uint16) Client {
	if len(transform) == 0 {
		return ErrorClient(Failedf("%s: results are not a capability", a.method))
	}

	s, err := a.structAt(transform[:len(transform)-1])
	if err != nil {
		return ErrorClient(err)
	}

	c, err := s.PointerField(transform[len(transform)-1]).Capability()
	if err != nil {
		return ErrorClient(annotate(a.method.String(), err))
	}

	return c
}

// Future is a view of a pointer field inside a call's results.  The
// root future designates the results struct itself.
type Future struct {
	ans       *Answer
	transform []uint16
}

// Done is closed when the answer resolves.
func (f *Future) Done() <-chan struct{} {
	return f.ans.done
}

// Field returns a future for the i-th pointer field of f's struct.
func (f *Future) Field(i uint16) *Future {
	transform := make([]uint16, len(f.transform), len(f.transform)+1)
	copy(transform, f.transform)

	return &Future{
		ans:       f.ans,
		transform: append(transform, i),
	}
}

// Struct blocks until the answer resolves, then returns the struct that
// f designates.  The struct is valid until the answer is released.
func (f *Future) Struct() (StructReader, error) {
	<-f.ans.done

	f.ans.mu.Lock()
	defer f.ans.mu.Unlock()

	return f.ans.structAt(f.transform)
}

// Await is like Struct, but gives up when ctx expires.
func (f *Future) Await(ctx context.Context) (StructReader, error) {
	select {
	case <-f.ans.done:
		return f.Struct()
	case <-ctx.Done():
		return StructReader{}, annotate(f.ans.method.String(), ctx.Err())
	}
}

// Client returns a reference to the capability that f designates.  If
// the answer has not yet resolved, the client is a promise: calls made
// through it are queued, and delivered in order once the answer
// resolves.  Calls made through distinct promises are delivered in the
// order in which they were made, too.  The caller owns the returned
// reference.
func (f *Future) Client() Client {
	a := f.ans

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resolved {
		return a.clientAt(f.transform)
	}

	p := &pipelineHook{ans: a, transform: f.transform}
	a.pipes = append(a.pipes, p)
	return NewClient(p)
}

// pipelineHook is a promised capability.  Until its answer resolves,
// calls are appended to the answer's queue.  Afterwards they go
// straight to the target.  Its fields are guarded by ans.mu.
type pipelineHook struct {
	ans       *Answer
	transform []uint16

	bound   bool
	closed  bool
	pending int
	target  Client
}

type queuedCall struct {
	ctx  context.Context
	call Call
	ans  *Answer
	pipe *pipelineHook
}

func (p *pipelineHook) Send(ctx context.Context, call Call) *Answer {
	a := p.ans

	a.mu.Lock()
	if !a.resolved {
		ctx, cancel := context.WithCancel(ctx)
		ans := NewAnswer(call.Method, cancel)
		a.queue = append(a.queue, queuedCall{ctx: ctx, call: call, ans: ans, pipe: p})
		p.pending++
		a.mu.Unlock()
		return ans
	}
	target := p.target
	a.mu.Unlock()

	return target.SendCall(ctx, call)
}

func (p *pipelineHook) Brand() Brand {
	a := p.ans

	a.mu.Lock()
	if !a.resolved {
		a.mu.Unlock()
		return nil
	}
	target := p.target
	a.mu.Unlock()

	return target.Brand()
}

func (p *pipelineHook) Shutdown() {
	a := p.ans

	a.mu.Lock()
	p.closed = true

	// Queued calls still need the target; resolve drops it.
	if !a.resolved && p.pending > 0 {
		a.mu.Unlock()
		return
	}

	target := p.target
	p.target = Client{}

	cancel := false
	if !a.resolved {
		cancel = a.dropPipe(p)
	}
	a.mu.Unlock()

	target.Release()
	if cancel && a.cancel != nil {
		a.cancel()
	}
}
