package demo

import (
	"context"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/server"
)

const Bootstrap_TypeID = 0xd61491f7a7a5a4b3

var Bootstrap_Brand = ocap.Brand{Bootstrap_TypeID}

var (
	Bootstrap_testInterface_Method = bootstrapMethod(0, "testInterface")
	Bootstrap_testExtends_Method   = bootstrapMethod(1, "testExtends")
	Bootstrap_testExtends2_Method  = bootstrapMethod(2, "testExtends2")
	Bootstrap_testPipeline_Method  = bootstrapMethod(3, "testPipeline")
	Bootstrap_testCallOrder_Method = bootstrapMethod(4, "testCallOrder")
)

func bootstrapMethod(id uint16, name string) ocap.Method {
	return ocap.Method{
		InterfaceID:   Bootstrap_TypeID,
		MethodID:      id,
		InterfaceName: "demo.capnp:Bootstrap",
		MethodName:    name,
	}
}

// Bootstrap hands out the other demo capabilities.
type Bootstrap ocap.Client

func (c Bootstrap) TestInterface(ctx context.Context) (Bootstrap_testInterface_Results_Future, ocap.ReleaseFunc) {
	f, release := c.send(ctx, Bootstrap_testInterface_Method)
	return Bootstrap_testInterface_Results_Future{f}, release
}

func (c Bootstrap) TestExtends(ctx context.Context) (Bootstrap_testExtends_Results_Future, ocap.ReleaseFunc) {
	f, release := c.send(ctx, Bootstrap_testExtends_Method)
	return Bootstrap_testExtends_Results_Future{f}, release
}

func (c Bootstrap) TestExtends2(ctx context.Context) (Bootstrap_testExtends_Results_Future, ocap.ReleaseFunc) {
	f, release := c.send(ctx, Bootstrap_testExtends2_Method)
	return Bootstrap_testExtends_Results_Future{f}, release
}

func (c Bootstrap) TestPipeline(ctx context.Context) (Bootstrap_testPipeline_Results_Future, ocap.ReleaseFunc) {
	f, release := c.send(ctx, Bootstrap_testPipeline_Method)
	return Bootstrap_testPipeline_Results_Future{f}, release
}

func (c Bootstrap) TestCallOrder(ctx context.Context) (Bootstrap_testCallOrder_Results_Future, ocap.ReleaseFunc) {
	f, release := c.send(ctx, Bootstrap_testCallOrder_Method)
	return Bootstrap_testCallOrder_Results_Future{f}, release
}

func (c Bootstrap) send(ctx context.Context, m ocap.Method) (*ocap.Future, ocap.ReleaseFunc) {
	return ocap.Send[Bootstrap_Params_Builder](ctx, ocap.Client(c),
		m,
		Bootstrap_Params{}.StructSize(),
		Bootstrap_Params{},
		nil)
}

func (c Bootstrap) IsValid() bool     { return ocap.Client(c).IsValid() }
func (c Bootstrap) Brand() ocap.Brand { return ocap.Client(c).Brand() }

func (c Bootstrap) AddRef() Bootstrap {
	return Bootstrap(ocap.Client(c).AddRef())
}

func (c Bootstrap) Release() {
	ocap.Client(c).Release()
}

type Bootstrap_Server interface {
	TestInterface(context.Context, Bootstrap_testInterface) error
	TestExtends(context.Context, Bootstrap_testExtends) error
	TestExtends2(context.Context, Bootstrap_testExtends) error
	TestPipeline(context.Context, Bootstrap_testPipeline) error
	TestCallOrder(context.Context, Bootstrap_testCallOrder) error
}

func Bootstrap_ServerToClient(s Bootstrap_Server) Bootstrap {
	return Bootstrap_NewClient(s, server.Config{})
}

func Bootstrap_NewClient(s Bootstrap_Server, cfg server.Config) Bootstrap {
	return Bootstrap(cfg.NewClient(s, Bootstrap_Brand, Bootstrap_Methods(nil, s)...))
}

func Bootstrap_Methods(methods []server.Method, s Bootstrap_Server) []server.Method {
	size := Bootstrap_Results{}.StructSize()
	return append(methods,
		server.Method{
			Method:     Bootstrap_testInterface_Method,
			ResultSize: size,
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.TestInterface(ctx, Bootstrap_testInterface{call})
			},
		},
		server.Method{
			Method:     Bootstrap_testExtends_Method,
			ResultSize: size,
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.TestExtends(ctx, Bootstrap_testExtends{call})
			},
		},
		server.Method{
			Method:     Bootstrap_testExtends2_Method,
			ResultSize: size,
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.TestExtends2(ctx, Bootstrap_testExtends{call})
			},
		},
		server.Method{
			Method:     Bootstrap_testPipeline_Method,
			ResultSize: size,
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.TestPipeline(ctx, Bootstrap_testPipeline{call})
			},
		},
		server.Method{
			Method:     Bootstrap_testCallOrder_Method,
			ResultSize: size,
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.TestCallOrder(ctx, Bootstrap_testCallOrder{call})
			},
		})
}

// Bootstrap_Params is the empty parameter struct shared by every
// Bootstrap method.
type Bootstrap_Params struct{}

func (Bootstrap_Params) StructSize() ocap.StructSize { return ocap.StructSize{} }

func (Bootstrap_Params) BuildStruct(s ocap.StructBuilder) Bootstrap_Params_Builder {
	return Bootstrap_Params_Builder{s: s}
}

type Bootstrap_Params_Builder struct{ s ocap.StructBuilder }

// Bootstrap_Results is the layout shared by every Bootstrap result: a
// single capability pointer.
type Bootstrap_Results struct{}

func (Bootstrap_Results) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 0, Pointers: 1}
}

type Bootstrap_testInterface struct{ *server.Call }

// SetCap exports v as the result, stealing the reference.
func (c Bootstrap_testInterface) SetCap(v TestInterface) error {
	return c.Results().PointerField(0).SetCapability(ocap.Client(v))
}

type Bootstrap_testExtends struct{ *server.Call }

func (c Bootstrap_testExtends) SetCap(v TestExtends) error {
	return c.Results().PointerField(0).SetCapability(ocap.Client(v))
}

type Bootstrap_testPipeline struct{ *server.Call }

func (c Bootstrap_testPipeline) SetCap(v TestPipeline) error {
	return c.Results().PointerField(0).SetCapability(ocap.Client(v))
}

type Bootstrap_testCallOrder struct{ *server.Call }

func (c Bootstrap_testCallOrder) SetCap(v TestCallOrder) error {
	return c.Results().PointerField(0).SetCapability(ocap.Client(v))
}

// The result futures pipeline on the cap field, so the returned
// capability can be called before the bootstrap call completes.  Each
// Cap method returns a new reference, which the caller must release.

type Bootstrap_testInterface_Results_Future struct{ *ocap.Future }

func (f Bootstrap_testInterface_Results_Future) Cap() TestInterface {
	return TestInterface(f.Field(0).Client())
}

type Bootstrap_testExtends_Results_Future struct{ *ocap.Future }

func (f Bootstrap_testExtends_Results_Future) Cap() TestExtends {
	return TestExtends(f.Field(0).Client())
}

type Bootstrap_testPipeline_Results_Future struct{ *ocap.Future }

func (f Bootstrap_testPipeline_Results_Future) Cap() TestPipeline {
	return TestPipeline(f.Field(0).Client())
}

type Bootstrap_testCallOrder_Results_Future struct{ *ocap.Future }

func (f Bootstrap_testCallOrder_Results_Future) Cap() TestCallOrder {
	return TestCallOrder(f.Field(0).Client())
}
