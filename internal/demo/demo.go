// Package demo implements the capabilities declared in demo.capnp.
// They exercise dispatch, inheritance and promise pipelining.
package demo

import (
	"context"

	syncutil "github.com/lthibault/util/sync"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/server"
)

// Bootstrap hands out fresh instances of the other demo capabilities.
// Each instance is served with the bootstrap's configuration.
type Bootstrap struct {
	Config server.Config
}

// Client returns a Bootstrap capability served by b.
func (b Bootstrap) Client() api.Bootstrap {
	return api.Bootstrap_NewClient(b, b.Config)
}

func (b Bootstrap) TestInterface(ctx context.Context, call api.Bootstrap_testInterface) error {
	return call.SetCap(api.TestInterface_NewClient(new(TestInterface), b.Config))
}

func (b Bootstrap) TestExtends(ctx context.Context, call api.Bootstrap_testExtends) error {
	return call.SetCap(api.TestExtends_NewClient(TestExtends{}, b.Config))
}

func (b Bootstrap) TestExtends2(ctx context.Context, call api.Bootstrap_testExtends) error {
	return ocap.Unimplementedf("testExtends2 is not implemented")
}

func (b Bootstrap) TestPipeline(ctx context.Context, call api.Bootstrap_testPipeline) error {
	return call.SetCap(api.TestPipeline_NewClient(TestPipeline{Config: b.Config}, b.Config))
}

func (b Bootstrap) TestCallOrder(ctx context.Context, call api.Bootstrap_testCallOrder) error {
	return call.SetCap(api.TestCallOrder_NewClient(new(TestCallOrder), b.Config))
}

// TestInterface counts the calls it receives.
type TestInterface struct {
	calls syncutil.Ctr
}

// CallCount returns the number of calls received so far.
func (t *TestInterface) CallCount() uint64 {
	return uint64(t.calls.Int())
}

func (t *TestInterface) Foo(ctx context.Context, call api.TestInterface_foo) error {
	t.calls.Incr()

	args := call.Args()
	if args.I() != 123 {
		return ocap.Failedf("expected i to equal 123")
	}

	if !args.J() {
		return ocap.Failedf("expected j to be true")
	}

	return call.Results().SetX("foo")
}

func (t *TestInterface) Bar(ctx context.Context, call api.TestInterface_bar) error {
	t.calls.Incr()
	return ocap.Unimplementedf("bar is not implemented")
}

func (t *TestInterface) Baz(ctx context.Context, call api.TestInterface_baz) error {
	t.calls.Incr()

	s, err := call.Args().S()
	if err != nil {
		return err
	}

	return CheckTestMessage(s)
}

// TestExtends overrides foo, and implements grault.
type TestExtends struct{}

func (TestExtends) Foo(ctx context.Context, call api.TestInterface_foo) error {
	args := call.Args()
	if args.I() != 321 {
		return ocap.Failedf("expected i to equal 321")
	}

	if args.J() {
		return ocap.Failedf("expected j to be false")
	}

	return call.Results().SetX("bar")
}

func (TestExtends) Bar(ctx context.Context, call api.TestInterface_bar) error {
	return ocap.Unimplementedf("bar is not implemented")
}

func (TestExtends) Baz(ctx context.Context, call api.TestInterface_baz) error {
	return ocap.Unimplementedf("baz is not implemented")
}

func (TestExtends) Qux(ctx context.Context, call api.TestExtends_qux) error {
	return ocap.Unimplementedf("qux is not implemented")
}

func (TestExtends) Corge(ctx context.Context, call api.TestExtends_corge) error {
	return ocap.Unimplementedf("corge is not implemented")
}

func (TestExtends) Grault(ctx context.Context, call api.TestExtends_grault) error {
	return InitTestMessage(call.Results())
}

// TestPipeline calls back into the capability it is passed, then
// returns a TestExtends in a box.
type TestPipeline struct {
	Config server.Config
}

func (p TestPipeline) GetCap(ctx context.Context, call api.TestPipeline_getCap) error {
	args := call.Args()
	if args.N() != 234 {
		return ocap.Failedf("expected n to equal 234")
	}

	in, err := args.InCap()
	if err != nil {
		return err
	}
	defer in.Release()

	// The callback may be served by this very server.
	call.Go()

	f, release := in.Foo(ctx, func(ps api.TestInterface_foo_Params_Builder) error {
		ps.SetI(123)
		ps.SetJ(true)
		return nil
	})
	defer release()

	res, err := f.Await(ctx)
	if err != nil {
		return err
	}

	if x, err := res.X(); err != nil {
		return err
	} else if x != "foo" {
		return ocap.Failedf("expected x to equal 'foo'")
	}

	results := call.Results()
	if err = results.SetS("bar"); err != nil {
		return err
	}

	box, err := results.NewOutBox()
	if err != nil {
		return err
	}

	ext := api.TestExtends_NewClient(TestExtends{}, p.Config)
	return box.SetCap(ext.TestInterface())
}

// TestCallOrder returns the sequence number of each call it receives,
// starting at zero.
type TestCallOrder struct {
	count uint32
}

func (t *TestCallOrder) GetCallSequence(ctx context.Context, call api.TestCallOrder_getCallSequence) error {
	call.Results().SetN(t.count)
	t.count++
	return nil
}
