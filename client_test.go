package ocap_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/internal/demo"
	mock_ocap "github.com/wetware/ocap/internal/mock/ocap"
)

func TestNullClient(t *testing.T) {
	t.Parallel()

	var c api.TestInterface
	assert.False(t, c.IsValid(), "zero value should be null")
	assert.Nil(t, c.Brand(), "null client should have no brand")
	assert.Equal(t, "Client(null)", ocap.Client(c).String())

	f, release := c.Bar(context.Background())
	defer release()

	err := f.Await(context.Background())
	require.Error(t, err, "call to null client should fail")
	assert.Equal(t, ocap.Failed, ocap.KindOf(err))

	// Releasing the null client is a no-op.
	c.Release()
	assert.False(t, c.AddRef().IsValid())
}

func TestClient_Release(t *testing.T) {
	t.Parallel()

	/*
		The hook is shut down exactly once, when the last reference
		is released.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := mock_ocap.NewMockClientHook(ctrl)
	hook.EXPECT().Shutdown().Times(1)

	c := ocap.NewClient(hook)
	c2 := c.AddRef()
	assert.True(t, c.IsSame(c2), "references should share the hook")

	c.Release()
	c2.Release()
}

func TestClient_SendCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := mock_ocap.NewMockClientHook(ctrl)
	hook.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, call ocap.Call) *ocap.Answer {
			defer call.ReleaseArgs()

			assert.Equal(t, api.TestInterface_foo_Method, call.Method)

			args := api.TestInterface_foo_Params{}.ReadStruct(call.Args)
			assert.Equal(t, uint64(123), args.I(), "should deliver arguments")
			assert.True(t, args.J(), "should deliver arguments")

			return ocap.RejectedAnswer(call.Method, ocap.Unimplementedf("mock"))
		}).
		Times(1)
	hook.EXPECT().Shutdown().Times(1)

	c := api.TestInterface(ocap.NewClient(hook))
	defer c.Release()

	req, err := c.FooRequest()
	require.NoError(t, err, "should allocate request")
	req.Params().SetI(123)
	req.Params().SetJ(true)

	f, release := req.Send(context.Background())
	defer release()

	_, err = f.Await(context.Background())
	assert.Equal(t, ocap.Unimplemented, ocap.KindOf(err),
		"should report the hook's error")
}

func TestErrorClient(t *testing.T) {
	t.Parallel()

	c := api.TestInterface(ocap.ErrorClient(ocap.Disconnectedf("gone")))
	defer c.Release()

	f, release := c.Foo(context.Background(), nil)
	defer release()

	_, err := f.Struct()
	require.Error(t, err)
	assert.Equal(t, ocap.Disconnected, ocap.KindOf(err))
}

func TestNarrow(t *testing.T) {
	t.Parallel()

	t.Run("Implements", func(t *testing.T) {
		t.Parallel()

		ext := api.TestExtends_ServerToClient(demo.TestExtends{})
		defer ext.Release()

		narrowed, err := api.TestExtends_Narrow(ext.TestInterface())
		require.NoError(t, err, "should narrow to implemented interface")
		assert.True(t, ocap.Client(narrowed).IsSame(ocap.Client(ext)),
			"should share the reference")
	})

	t.Run("DoesNotImplement", func(t *testing.T) {
		t.Parallel()

		c := api.TestInterface_ServerToClient(new(demo.TestInterface))
		defer c.Release()

		_, err := api.TestExtends_Narrow(c)
		require.Error(t, err, "should refuse to narrow")
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation)
		assert.True(t, c.IsValid(), "should leave client untouched")
	})

	t.Run("UnknownBrand", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hook := mock_ocap.NewMockClientHook(ctrl)
		hook.EXPECT().Brand().Return(nil).AnyTimes()
		hook.EXPECT().Shutdown().Times(1)

		c := api.TestInterface(ocap.NewClient(hook))
		defer c.Release()

		_, err := api.TestExtends_Narrow(c)
		assert.NoError(t, err, "should narrow optimistically")
	})
}

func TestBrand(t *testing.T) {
	t.Parallel()

	assert.True(t, api.TestExtends_Brand.Implements(api.TestInterface_TypeID),
		"should include inherited interfaces")
	assert.False(t, api.TestInterface_Brand.Implements(api.TestExtends_TypeID))
	assert.False(t, ocap.Brand(nil).Implements(api.TestInterface_TypeID))
}

func TestMethod_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "demo.capnp:TestInterface.foo", api.TestInterface_foo_Method.String())
	assert.Equal(t, "@0x2a.@3", ocap.Method{InterfaceID: 42, MethodID: 3}.String())
}
