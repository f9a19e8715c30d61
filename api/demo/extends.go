package demo

import (
	"context"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/server"
)

const TestExtends_TypeID = 0xe4e9bac98670b748

// TestExtends_Brand lists the interfaces implemented by a TestExtends
// server, including the ones it inherits.
var TestExtends_Brand = ocap.Brand{TestExtends_TypeID, TestInterface_TypeID}

var (
	TestExtends_qux_Method = ocap.Method{
		InterfaceID:   TestExtends_TypeID,
		MethodID:      0,
		InterfaceName: "demo.capnp:TestExtends",
		MethodName:    "qux",
	}
	TestExtends_corge_Method = ocap.Method{
		InterfaceID:   TestExtends_TypeID,
		MethodID:      1,
		InterfaceName: "demo.capnp:TestExtends",
		MethodName:    "corge",
	}
	TestExtends_grault_Method = ocap.Method{
		InterfaceID:   TestExtends_TypeID,
		MethodID:      2,
		InterfaceName: "demo.capnp:TestExtends",
		MethodName:    "grault",
	}
)

type TestExtends ocap.Client

// TestExtends_Narrow converts c to a TestExtends.  It fails with
// ocap.ErrSchemaViolation if c is known not to implement TestExtends.
// On success, the result shares c's reference.
func TestExtends_Narrow(c TestInterface) (TestExtends, error) {
	n, err := ocap.Narrow(ocap.Client(c), TestExtends_TypeID)
	return TestExtends(n), err
}

// TestInterface widens c to its base interface.  The result shares c's
// reference.
func (c TestExtends) TestInterface() TestInterface {
	return TestInterface(c)
}

func (c TestExtends) Foo(ctx context.Context, params func(TestInterface_foo_Params_Builder) error) (TestInterface_foo_Results_Future, ocap.ReleaseFunc) {
	return c.TestInterface().Foo(ctx, params)
}

func (c TestExtends) Bar(ctx context.Context) (TestInterface_bar_Results_Future, ocap.ReleaseFunc) {
	return c.TestInterface().Bar(ctx)
}

func (c TestExtends) Baz(ctx context.Context, params func(TestInterface_baz_Params_Builder) error) (TestInterface_baz_Results_Future, ocap.ReleaseFunc) {
	return c.TestInterface().Baz(ctx, params)
}

func (c TestExtends) Qux(ctx context.Context) (TestExtends_qux_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestExtends_qux_Params_Builder](ctx, ocap.Client(c),
		TestExtends_qux_Method,
		TestExtends_qux_Params{}.StructSize(),
		TestExtends_qux_Params{},
		nil)
	return TestExtends_qux_Results_Future{Future: f}, release
}

// Corge takes a TestAllTypes as its parameter struct.
func (c TestExtends) Corge(ctx context.Context, params func(TestAllTypes_Builder) error) (TestExtends_corge_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestAllTypes_Builder](ctx, ocap.Client(c),
		TestExtends_corge_Method,
		TestAllTypes{}.StructSize(),
		TestAllTypes{},
		params)
	return TestExtends_corge_Results_Future{Future: f}, release
}

// Grault returns a TestAllTypes as its result struct.
func (c TestExtends) Grault(ctx context.Context) (TestAllTypes_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestExtends_grault_Params_Builder](ctx, ocap.Client(c),
		TestExtends_grault_Method,
		TestExtends_grault_Params{}.StructSize(),
		TestExtends_grault_Params{},
		nil)
	return TestAllTypes_Future{Future: f}, release
}

func (c TestExtends) IsValid() bool     { return ocap.Client(c).IsValid() }
func (c TestExtends) Brand() ocap.Brand { return ocap.Client(c).Brand() }

func (c TestExtends) AddRef() TestExtends {
	return TestExtends(ocap.Client(c).AddRef())
}

func (c TestExtends) Release() {
	ocap.Client(c).Release()
}

// TestExtends_Server is the behavior of a TestExtends capability.
// Method sets compose: it must also implement TestInterface.
type TestExtends_Server interface {
	TestInterface_Server

	Qux(context.Context, TestExtends_qux) error
	Corge(context.Context, TestExtends_corge) error
	Grault(context.Context, TestExtends_grault) error
}

func TestExtends_ServerToClient(s TestExtends_Server) TestExtends {
	return TestExtends_NewClient(s, server.Config{})
}

func TestExtends_NewClient(s TestExtends_Server, cfg server.Config) TestExtends {
	return TestExtends(cfg.NewClient(s, TestExtends_Brand, TestExtends_Methods(nil, s)...))
}

// TestExtends_Methods appends the dispatch table for s to methods,
// including the methods inherited from TestInterface.
func TestExtends_Methods(methods []server.Method, s TestExtends_Server) []server.Method {
	methods = append(methods,
		server.Method{
			Method:     TestExtends_qux_Method,
			ResultSize: TestExtends_qux_Results{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Qux(ctx, TestExtends_qux{call})
			},
		},
		server.Method{
			Method:     TestExtends_corge_Method,
			ResultSize: TestExtends_corge_Results{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Corge(ctx, TestExtends_corge{call})
			},
		},
		server.Method{
			Method:     TestExtends_grault_Method,
			ResultSize: TestAllTypes{}.StructSize(),
			Impl: func(ctx context.Context, call *server.Call) error {
				return s.Grault(ctx, TestExtends_grault{call})
			},
		})

	return TestInterface_Methods(methods, s)
}

/*
	qux
*/

type TestExtends_qux struct{ *server.Call }

type TestExtends_qux_Params struct{}

func (TestExtends_qux_Params) StructSize() ocap.StructSize { return ocap.StructSize{} }

func (TestExtends_qux_Params) BuildStruct(s ocap.StructBuilder) TestExtends_qux_Params_Builder {
	return TestExtends_qux_Params_Builder{s: s}
}

type TestExtends_qux_Params_Builder struct{ s ocap.StructBuilder }

type TestExtends_qux_Results struct{}

func (TestExtends_qux_Results) StructSize() ocap.StructSize { return ocap.StructSize{} }

type TestExtends_qux_Results_Future struct{ *ocap.Future }

func (f TestExtends_qux_Results_Future) Await(ctx context.Context) error {
	_, err := f.Future.Await(ctx)
	return err
}

/*
	corge
*/

type TestExtends_corge struct{ *server.Call }

func (c TestExtends_corge) Args() TestAllTypes_Reader {
	return TestAllTypes{}.ReadStruct(c.Params())
}

type TestExtends_corge_Results struct{}

func (TestExtends_corge_Results) StructSize() ocap.StructSize { return ocap.StructSize{} }

type TestExtends_corge_Results_Future struct{ *ocap.Future }

func (f TestExtends_corge_Results_Future) Await(ctx context.Context) error {
	_, err := f.Future.Await(ctx)
	return err
}

/*
	grault
*/

type TestExtends_grault struct{ *server.Call }

func (c TestExtends_grault) Results() TestAllTypes_Builder {
	return TestAllTypes{}.BuildStruct(c.Call.Results())
}

type TestExtends_grault_Params struct{}

func (TestExtends_grault_Params) StructSize() ocap.StructSize { return ocap.StructSize{} }

func (TestExtends_grault_Params) BuildStruct(s ocap.StructBuilder) TestExtends_grault_Params_Builder {
	return TestExtends_grault_Params_Builder{s: s}
}

type TestExtends_grault_Params_Builder struct{ s ocap.StructBuilder }

// TestAllTypes_Future is a TestAllTypes that has not arrived yet.
type TestAllTypes_Future struct{ *ocap.Future }

var _ ocap.Pipelined[TestAllTypes_Future] = TestAllTypes{}

func (TestAllTypes) Pipeline(f *ocap.Future) TestAllTypes_Future {
	return TestAllTypes_Future{Future: f}
}

func (f TestAllTypes_Future) Struct() (TestAllTypes_Reader, error) {
	s, err := f.Future.Struct()
	return TestAllTypes_Reader{s: s}, err
}

func (f TestAllTypes_Future) Await(ctx context.Context) (TestAllTypes_Reader, error) {
	s, err := f.Future.Await(ctx)
	return TestAllTypes_Reader{s: s}, err
}

// StructField pipelines on the nested struct.
func (f TestAllTypes_Future) StructField() TestAllTypes_Future {
	return TestAllTypes_Future{Future: f.Future.Field(2)}
}

// InterfaceField returns a promise for the interface field.  The caller
// must release it.
func (f TestAllTypes_Future) InterfaceField() TestInterface {
	return TestInterface(f.Future.Field(6).Client())
}
