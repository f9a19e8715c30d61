package demo

import (
	"context"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/server"
)

const TestInterface_TypeID = 0x88eb12a0e0af92b2

// TestInterface_Brand lists the interfaces implemented by a
// TestInterface server.
var TestInterface_Brand = ocap.Brand{TestInterface_TypeID}

var (
	TestInterface_foo_Method = ocap.Method{
		InterfaceID:   TestInterface_TypeID,
		MethodID:      0,
		InterfaceName: "demo.capnp:TestInterface",
		MethodName:    "foo",
	}
	TestInterface_bar_Method = ocap.Method{
		InterfaceID:   TestInterface_TypeID,
		MethodID:      1,
		InterfaceName: "demo.capnp:TestInterface",
		MethodName:    "bar",
	}
	TestInterface_baz_Method = ocap.Method{
		InterfaceID:   TestInterface_TypeID,
		MethodID:      2,
		InterfaceName: "demo.capnp:TestInterface",
		MethodName:    "baz",
	}
)

type TestInterface ocap.Client

func (c TestInterface) Foo(ctx context.Context, params func(TestInterface_foo_Params_Builder) error) (TestInterface_foo_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestInterface_foo_Params_Builder](ctx, ocap.Client(c),
		TestInterface_foo_Method,
		TestInterface_foo_Params{}.StructSize(),
		TestInterface_foo_Params{},
		params)
	return TestInterface_foo_Results_Future{Future: f}, release
}

// FooRequest allocates the parameters of a call to foo, which is sent
// by the returned request's Send method.
func (c TestInterface) FooRequest() (TestInterface_foo_Request, error) {
	req, err := ocap.NewRequest(ocap.Client(c),
		TestInterface_foo_Method,
		TestInterface_foo_Params{}.StructSize())
	return TestInterface_foo_Request{Request: req}, err
}

func (c TestInterface) Bar(ctx context.Context) (TestInterface_bar_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestInterface_bar_Params_Builder](ctx, ocap.Client(c),
		TestInterface_bar_Method,
		TestInterface_bar_Params{}.StructSize(),
		TestInterface_bar_Params{},
		nil)
	return TestInterface_bar_Results_Future{Future: f}, release
}

func (c TestInterface) Baz(ctx context.Context, params func(TestInterface_baz_Params_Builder) error) (TestInterface_baz_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestInterface_baz_Params_Builder](ctx, ocap.Client(c),
		TestInterface_baz_Method,
		TestInterface_baz_Params{}.StructSize(),
		TestInterface_baz_Params{},
		params)
	return TestInterface_baz_Results_Future{Future: f}, release
}

func (c TestInterface) IsValid() bool     { return ocap.Client(c).IsValid() }
func (c TestInterface) Brand() ocap.Brand { return ocap.Client(c).Brand() }
func (c TestInterface) String() string    { return "TestInterface(" + ocap.Client(c).String() + ")" }

func (c TestInterface) AddRef() TestInterface {
	return TestInterface(ocap.Client(c).AddRef())
}

func (c TestInterface) Release() {
	ocap.Client(c).Release()
}

// TestInterface_Server is the behavior of a TestInterface capability.
type TestInterface_Server interface {
	Foo(context.Context, TestInterface_foo) error
	Bar(context.Context, TestInterface_bar) error
	Baz(context.Context, TestInterface_baz) error
}

// TestInterface_ServerToClient wraps s in a client, using the default
// server configuration.
func TestInterface_ServerToClient(s TestInterface_Server) TestInterface {
	return TestInterface_NewClient(s, server.Config{})
}

func TestInterface_NewClient(s TestInterface_Server, cfg server.Config) TestInterface {
	return TestInterface(cfg.NewClient(s, TestInterface_Brand, TestInterface_Methods(nil, s)...))
}

// TestInterface_Methods appends the dispatch table for s to methods.
func TestInterface_Methods(methods []server.Method, s TestInterface_Server) []server.Method {
	return append(methods,
		server.Method{
			Method:     TestInterface_foo_Method,
			ResultSize: TestInterface_foo_Results{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Foo(ctx, TestInterface_foo{call})
			},
		},
		server.Method{
			Method:     TestInterface_bar_Method,
			ResultSize: TestInterface_bar_Results{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Bar(ctx, TestInterface_bar{call})
			},
		},
		server.Method{
			Method:     TestInterface_baz_Method,
			ResultSize: TestInterface_baz_Results{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Baz(ctx, TestInterface_baz{call})
			},
		})
}

/*
	foo
*/

// TestInterface_foo holds the state for a server call to foo.
type TestInterface_foo struct{ *server.Call }

func (c TestInterface_foo) Args() TestInterface_foo_Params_Reader {
	return TestInterface_foo_Params{}.ReadStruct(c.Params())
}

func (c TestInterface_foo) Results() TestInterface_foo_Results_Builder {
	return TestInterface_foo_Results{}.BuildStruct(c.Call.Results())
}

type TestInterface_foo_Request struct{ *ocap.Request }

func (r TestInterface_foo_Request) Params() TestInterface_foo_Params_Builder {
	return TestInterface_foo_Params{}.BuildStruct(r.Args())
}

func (r TestInterface_foo_Request) Send(ctx context.Context) (TestInterface_foo_Results_Future, ocap.ReleaseFunc) {
	f, release := r.Request.Send(ctx)
	return TestInterface_foo_Results_Future{Future: f}, release
}

type TestInterface_foo_Params struct{}

func (TestInterface_foo_Params) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 2, Pointers: 0}
}

func (TestInterface_foo_Params) ReadStruct(s ocap.StructReader) TestInterface_foo_Params_Reader {
	return TestInterface_foo_Params_Reader{s: s}
}

func (TestInterface_foo_Params) BuildStruct(s ocap.StructBuilder) TestInterface_foo_Params_Builder {
	return TestInterface_foo_Params_Builder{s: s}
}

type TestInterface_foo_Params_Reader struct{ s ocap.StructReader }

func (r TestInterface_foo_Params_Reader) I() uint64 { return r.s.Uint64(0) }
func (r TestInterface_foo_Params_Reader) J() bool   { return r.s.Bool(64) }

type TestInterface_foo_Params_Builder struct{ s ocap.StructBuilder }

func (b TestInterface_foo_Params_Builder) SetI(v uint64) { b.s.SetUint64(0, v) }
func (b TestInterface_foo_Params_Builder) SetJ(v bool)   { b.s.SetBool(64, v) }

type TestInterface_foo_Results struct{}

func (TestInterface_foo_Results) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 0, Pointers: 1}
}

func (TestInterface_foo_Results) ReadStruct(s ocap.StructReader) TestInterface_foo_Results_Reader {
	return TestInterface_foo_Results_Reader{s: s}
}

func (TestInterface_foo_Results) BuildStruct(s ocap.StructBuilder) TestInterface_foo_Results_Builder {
	return TestInterface_foo_Results_Builder{s: s}
}

type TestInterface_foo_Results_Reader struct{ s ocap.StructReader }

func (r TestInterface_foo_Results_Reader) X() (string, error) {
	return r.s.PointerField(0).Text()
}

type TestInterface_foo_Results_Builder struct{ s ocap.StructBuilder }

func (b TestInterface_foo_Results_Builder) SetX(v string) error {
	return b.s.PointerField(0).SetText(v)
}

type TestInterface_foo_Results_Future struct{ *ocap.Future }

func (f TestInterface_foo_Results_Future) Struct() (TestInterface_foo_Results_Reader, error) {
	s, err := f.Future.Struct()
	return TestInterface_foo_Results_Reader{s: s}, err
}

func (f TestInterface_foo_Results_Future) Await(ctx context.Context) (TestInterface_foo_Results_Reader, error) {
	s, err := f.Future.Await(ctx)
	return TestInterface_foo_Results_Reader{s: s}, err
}

/*
	bar
*/

// TestInterface_bar holds the state for a server call to bar.
type TestInterface_bar struct{ *server.Call }

type TestInterface_bar_Params struct{}

func (TestInterface_bar_Params) StructSize() ocap.StructSize { return ocap.StructSize{} }

func (TestInterface_bar_Params) BuildStruct(s ocap.StructBuilder) TestInterface_bar_Params_Builder {
	return TestInterface_bar_Params_Builder{s: s}
}

type TestInterface_bar_Params_Builder struct{ s ocap.StructBuilder }

type TestInterface_bar_Results struct{}

func (TestInterface_bar_Results) StructSize() ocap.StructSize { return ocap.StructSize{} }

type TestInterface_bar_Results_Future struct{ *ocap.Future }

// Await blocks until the call completes, and reports its error.
func (f TestInterface_bar_Results_Future) Await(ctx context.Context) error {
	_, err := f.Future.Await(ctx)
	return err
}

/*
	baz
*/

// TestInterface_baz holds the state for a server call to baz.
type TestInterface_baz struct{ *server.Call }

func (c TestInterface_baz) Args() TestInterface_baz_Params_Reader {
	return TestInterface_baz_Params{}.ReadStruct(c.Params())
}

type TestInterface_baz_Params struct{}

func (TestInterface_baz_Params) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 0, Pointers: 1}
}

func (TestInterface_baz_Params) ReadStruct(s ocap.StructReader) TestInterface_baz_Params_Reader {
	return TestInterface_baz_Params_Reader{s: s}
}

func (TestInterface_baz_Params) BuildStruct(s ocap.StructBuilder) TestInterface_baz_Params_Builder {
	return TestInterface_baz_Params_Builder{s: s}
}

type TestInterface_baz_Params_Reader struct{ s ocap.StructReader }

func (r TestInterface_baz_Params_Reader) S() (TestAllTypes_Reader, error) {
	return TestAllTypes{}.ReadPointer(r.s.PointerField(0))
}

type TestInterface_baz_Params_Builder struct{ s ocap.StructBuilder }

// NewS allocates the s parameter.
func (b TestInterface_baz_Params_Builder) NewS() (TestAllTypes_Builder, error) {
	return TestAllTypes{}.InitPointer(b.s.PointerField(0), 0)
}

// SetS deep-copies r into the parameters.
func (b TestInterface_baz_Params_Builder) SetS(r TestAllTypes_Reader) error {
	return TestAllTypes{}.SetPointer(b.s.PointerField(0), r)
}

type TestInterface_baz_Results struct{}

func (TestInterface_baz_Results) StructSize() ocap.StructSize { return ocap.StructSize{} }

type TestInterface_baz_Results_Future struct{ *ocap.Future }

func (f TestInterface_baz_Results_Future) Await(ctx context.Context) error {
	_, err := f.Future.Await(ctx)
	return err
}
