package ocap_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/internal/demo"
	mock_ocap "github.com/wetware/ocap/internal/mock/ocap"
)

// pendingHook returns a mock hook whose answers stay pending until the
// test resolves them.
func pendingHook(ctrl *gomock.Controller, answers chan<- *ocap.Answer) *mock_ocap.MockClientHook {
	hook := mock_ocap.NewMockClientHook(ctrl)
	hook.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, call ocap.Call) *ocap.Answer {
			call.ReleaseArgs()
			ans := ocap.NewAnswer(call.Method, nil)
			answers <- ans
			return ans
		}).
		AnyTimes()
	hook.EXPECT().Brand().Return(nil).AnyTimes()
	hook.EXPECT().Shutdown().Times(1)
	return hook
}

// boxed returns a results message holding c in a Box.
func boxed(t *testing.T, c api.TestInterface) *ocap.Message {
	t.Helper()

	msg, err := ocap.NewMessage()
	require.NoError(t, err)

	box, err := ocap.InitRoot[api.Box_Builder](msg, api.Box{})
	require.NoError(t, err)
	require.NoError(t, box.SetCap(c))

	return msg
}

func TestAnswer_Fulfill(t *testing.T) {
	t.Parallel()

	ans := ocap.NewAnswer(api.TestInterface_foo_Method, nil)
	defer ans.Release()

	f := ans.Future()
	select {
	case <-f.Done():
		t.Fatal("should not be resolved")
	default:
	}

	msg, err := ocap.NewMessage()
	require.NoError(t, err)
	res, err := msg.Root().InitStruct(api.TestInterface_foo_Results{}.StructSize())
	require.NoError(t, err)
	require.NoError(t, api.TestInterface_foo_Results{}.BuildStruct(res).SetX("done"))

	ans.Fulfill(msg)

	s, err := api.TestInterface_foo_Results_Future{Future: f}.Struct()
	require.NoError(t, err)
	x, err := s.X()
	require.NoError(t, err)
	assert.Equal(t, "done", x)

	// Answers resolve exactly once.
	ans.Reject(errors.New("too late"))
	_, err = f.Struct()
	assert.NoError(t, err, "second resolution should be ignored")
}

func TestAnswer_Release(t *testing.T) {
	t.Parallel()

	/*
		Releasing an unresolved answer cancels the call.
	*/

	ctx, cancel := context.WithCancel(context.Background())
	ans := ocap.NewAnswer(api.TestInterface_bar_Method, cancel)

	ans.Release()
	assert.ErrorIs(t, ctx.Err(), context.Canceled, "should cancel call")

	ans.Reject(ctx.Err())
	ans.Release() // idempotent
}

func TestFuture_Await(t *testing.T) {
	t.Parallel()

	ans := ocap.NewAnswer(api.TestInterface_bar_Method, nil)
	defer ans.Release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()

	_, err := ans.Future().Await(ctx)
	require.Error(t, err, "should give up when context expires")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	/*
		Calls made on a capability returned by a pending call are
		queued, and delivered in order once the call resolves.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	answers := make(chan *ocap.Answer, 1)
	c := api.TestInterface(ocap.NewClient(pendingHook(ctrl, answers)))
	defer c.Release()

	f, release := c.Baz(context.Background(), nil)
	defer release()
	ans := <-answers

	promise := api.Box{}.Pipeline(f.Future).Cap()
	defer promise.Release()

	assert.Nil(t, promise.Brand(), "unresolved promise should have unknown brand")

	var futures []api.TestInterface_foo_Results_Future
	for i := 0; i < 3; i++ {
		f, release := promise.Foo(context.Background(), func(ps api.TestInterface_foo_Params_Builder) error {
			ps.SetI(123)
			ps.SetJ(true)
			return nil
		})
		defer release()
		futures = append(futures, f)
	}

	for _, f := range futures {
		select {
		case <-f.Done():
			t.Fatal("pipelined call should wait for its target")
		default:
		}
	}

	impl := new(demo.TestInterface)
	ans.Fulfill(boxed(t, api.TestInterface_ServerToClient(impl)))

	for _, f := range futures {
		res, err := f.Struct()
		require.NoError(t, err, "pipelined call should succeed")
		x, err := res.X()
		require.NoError(t, err)
		assert.Equal(t, "foo", x)
	}

	assert.Equal(t, uint64(3), impl.CallCount(), "should deliver every queued call")
	assert.Equal(t, api.TestInterface_Brand, promise.Brand(),
		"resolved promise should report the target's brand")

	t.Run("AfterResolution", func(t *testing.T) {
		late := api.Box{}.Pipeline(f.Future).Cap()
		defer late.Release()

		f, release := late.Bar(context.Background())
		defer release()

		err := f.Await(context.Background())
		assert.Equal(t, ocap.Unimplemented, ocap.KindOf(err),
			"should reach the resolved target directly")
	})
}

func TestPipeline_reject(t *testing.T) {
	t.Parallel()

	/*
		If the call fails, calls pipelined on its results fail with
		the same error.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	answers := make(chan *ocap.Answer, 1)
	c := api.TestInterface(ocap.NewClient(pendingHook(ctrl, answers)))
	defer c.Release()

	f, release := c.Baz(context.Background(), nil)
	defer release()
	ans := <-answers

	promise := api.Box{}.Pipeline(f.Future).Cap()
	defer promise.Release()

	pf, release := promise.Bar(context.Background())
	defer release()

	ans.Reject(ocap.Overloadedf("busy"))

	err := pf.Await(context.Background())
	require.Error(t, err, "pipelined call should fail")
	assert.Equal(t, ocap.Overloaded, ocap.KindOf(err), "should propagate error kind")
}

func TestPipeline_notACapability(t *testing.T) {
	t.Parallel()

	ans := ocap.NewAnswer(api.TestInterface_baz_Method, nil)
	defer ans.Release()

	promise := api.Box{}.Pipeline(ans.Future()).Cap()
	defer promise.Release()

	ans.Fulfill(boxed(t, api.TestInterface{}))

	f, release := promise.Bar(context.Background())
	defer release()

	err := f.Await(context.Background())
	require.Error(t, err, "call to null capability should fail")
	assert.Equal(t, ocap.Failed, ocap.KindOf(err))
}

func TestPipeline_callOrder(t *testing.T) {
	t.Parallel()

	/*
		Calls made through distinct promise clients for the same
		capability are delivered in the order in which they were
		made.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	answers := make(chan *ocap.Answer, 1)
	c := api.TestInterface(ocap.NewClient(pendingHook(ctrl, answers)))
	defer c.Release()

	f, release := c.Baz(context.Background(), nil)
	defer release()
	ans := <-answers

	promises := []api.TestCallOrder{
		api.TestCallOrder(api.Box{}.Pipeline(f.Future).Cap()),
		api.TestCallOrder(api.Box{}.Pipeline(f.Future).Cap()),
	}
	defer promises[0].Release()
	defer promises[1].Release()

	var futures []api.TestCallOrder_getCallSequence_Results_Future
	for i := uint32(0); i < 16; i++ {
		i := i
		f, release := promises[i%2].GetCallSequence(context.Background(), func(ps api.TestCallOrder_getCallSequence_Params_Builder) error {
			ps.SetExpected(i)
			return nil
		})
		defer release()
		futures = append(futures, f)
	}

	order := api.TestCallOrder_ServerToClient(new(demo.TestCallOrder))
	ans.Fulfill(boxed(t, api.TestInterface(order)))

	for i, f := range futures {
		res, err := f.Struct()
		require.NoError(t, err)
		assert.Equal(t, uint32(i), res.N(), "call %d should arrive in issue order", i)
	}
}

func TestPipeline_directThenPipelined(t *testing.T) {
	t.Parallel()

	/*
		A call made directly on a capability is delivered before a
		later call pipelined on a pending result that carries the
		same capability.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	answers := make(chan *ocap.Answer, 1)
	c := api.TestInterface(ocap.NewClient(pendingHook(ctrl, answers)))
	defer c.Release()

	order := api.TestCallOrder_ServerToClient(new(demo.TestCallOrder))
	defer order.Release()

	a, release := order.GetCallSequence(context.Background(), nil)
	defer release()

	f, release := c.Baz(context.Background(), nil)
	defer release()
	ans := <-answers

	promise := api.TestCallOrder(api.Box{}.Pipeline(f.Future).Cap())
	defer promise.Release()

	b, release := promise.GetCallSequence(context.Background(), nil)
	defer release()

	ans.Fulfill(boxed(t, api.TestInterface(order.AddRef())))

	ra, err := a.Struct()
	require.NoError(t, err)
	rb, err := b.Struct()
	require.NoError(t, err)
	assert.Less(t, ra.N(), rb.N(), "direct call should be delivered first")
}

func TestPipeline_pipelinedThenDirect(t *testing.T) {
	t.Parallel()

	/*
		Once Done has fired, a call made directly on the resolved
		capability is delivered after every call pipelined before
		it.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	answers := make(chan *ocap.Answer, 1)
	c := api.TestInterface(ocap.NewClient(pendingHook(ctrl, answers)))
	defer c.Release()

	f, release := c.Baz(context.Background(), nil)
	defer release()
	ans := <-answers

	promise := api.TestCallOrder(api.Box{}.Pipeline(f.Future).Cap())
	defer promise.Release()

	var pipelined []api.TestCallOrder_getCallSequence_Results_Future
	for i := 0; i < 4; i++ {
		f, release := promise.GetCallSequence(context.Background(), nil)
		defer release()
		pipelined = append(pipelined, f)
	}

	go ans.Fulfill(boxed(t, api.TestInterface(api.TestCallOrder_ServerToClient(new(demo.TestCallOrder)))))
	<-f.Done()

	resolved := api.TestCallOrder(api.Box{}.Pipeline(f.Future).Cap())
	defer resolved.Release()

	direct, release := resolved.GetCallSequence(context.Background(), nil)
	defer release()

	rd, err := direct.Struct()
	require.NoError(t, err)
	for i, f := range pipelined {
		res, err := f.Struct()
		require.NoError(t, err)
		assert.Less(t, res.N(), rd.N(), "pipelined call %d should precede direct call", i)
	}
}
