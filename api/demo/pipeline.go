package demo

import (
	"context"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/server"
)

const (
	TestPipeline_TypeID  = 0xa5a404caa61d4cd0
	TestCallOrder_TypeID = 0xa0e77035bdff0051
)

var (
	TestPipeline_Brand  = ocap.Brand{TestPipeline_TypeID}
	TestCallOrder_Brand = ocap.Brand{TestCallOrder_TypeID}
)

var TestPipeline_getCap_Method = ocap.Method{
	InterfaceID:   TestPipeline_TypeID,
	MethodID:      0,
	InterfaceName: "demo.capnp:TestPipeline",
	MethodName:    "getCap",
}

var TestCallOrder_getCallSequence_Method = ocap.Method{
	InterfaceID:   TestCallOrder_TypeID,
	MethodID:      0,
	InterfaceName: "demo.capnp:TestCallOrder",
	MethodName:    "getCallSequence",
}

/*
	TestPipeline
*/

type TestPipeline ocap.Client

func (c TestPipeline) GetCap(ctx context.Context, params func(TestPipeline_getCap_Params_Builder) error) (TestPipeline_getCap_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestPipeline_getCap_Params_Builder](ctx, ocap.Client(c),
		TestPipeline_getCap_Method,
		TestPipeline_getCap_Params{}.StructSize(),
		TestPipeline_getCap_Params{},
		params)
	return TestPipeline_getCap_Results_Future{Future: f}, release
}

func (c TestPipeline) IsValid() bool     { return ocap.Client(c).IsValid() }
func (c TestPipeline) Brand() ocap.Brand { return ocap.Client(c).Brand() }

func (c TestPipeline) AddRef() TestPipeline {
	return TestPipeline(ocap.Client(c).AddRef())
}

func (c TestPipeline) Release() {
	ocap.Client(c).Release()
}

type TestPipeline_Server interface {
	GetCap(context.Context, TestPipeline_getCap) error
}

func TestPipeline_ServerToClient(s TestPipeline_Server) TestPipeline {
	return TestPipeline_NewClient(s, server.Config{})
}

func TestPipeline_NewClient(s TestPipeline_Server, cfg server.Config) TestPipeline {
	return TestPipeline(cfg.NewClient(s, TestPipeline_Brand, TestPipeline_Methods(nil, s)...))
}

func TestPipeline_Methods(methods []server.Method, s TestPipeline_Server) []server.Method {
	return append(methods, server.Method{
		Method:     TestPipeline_getCap_Method,
		ResultSize: TestPipeline_getCap_Results{}.StructSize(),
		Impl: func(ctx context.Context, call *server.Call) error {
			return s.GetCap(ctx, TestPipeline_getCap{call})
		},
	})
}

type TestPipeline_getCap struct{ *server.Call }

func (c TestPipeline_getCap) Args() TestPipeline_getCap_Params_Reader {
	return TestPipeline_getCap_Params{}.ReadStruct(c.Params())
}

func (c TestPipeline_getCap) Results() TestPipeline_getCap_Results_Builder {
	return TestPipeline_getCap_Results{}.BuildStruct(c.Call.Results())
}

type TestPipeline_getCap_Params struct{}

func (TestPipeline_getCap_Params) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 1, Pointers: 1}
}

func (TestPipeline_getCap_Params) ReadStruct(s ocap.StructReader) TestPipeline_getCap_Params_Reader {
	return TestPipeline_getCap_Params_Reader{s: s}
}

func (TestPipeline_getCap_Params) BuildStruct(s ocap.StructBuilder) TestPipeline_getCap_Params_Builder {
	return TestPipeline_getCap_Params_Builder{s: s}
}

type TestPipeline_getCap_Params_Reader struct{ s ocap.StructReader }

func (r TestPipeline_getCap_Params_Reader) N() uint32 { return r.s.Uint32(0) }

// InCap returns an owned reference, which the caller must release.
func (r TestPipeline_getCap_Params_Reader) InCap() (TestInterface, error) {
	c, err := r.s.PointerField(0).Capability()
	return TestInterface(c), err
}

type TestPipeline_getCap_Params_Builder struct{ s ocap.StructBuilder }

func (b TestPipeline_getCap_Params_Builder) SetN(v uint32) { b.s.SetUint32(0, v) }

// SetInCap exports c into the parameters, stealing the reference.
func (b TestPipeline_getCap_Params_Builder) SetInCap(c TestInterface) error {
	return b.s.PointerField(0).SetCapability(ocap.Client(c))
}

type TestPipeline_getCap_Results struct{}

var _ ocap.Pipelined[TestPipeline_getCap_Results_Future] = TestPipeline_getCap_Results{}

func (TestPipeline_getCap_Results) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 0, Pointers: 2}
}

func (TestPipeline_getCap_Results) ReadStruct(s ocap.StructReader) TestPipeline_getCap_Results_Reader {
	return TestPipeline_getCap_Results_Reader{s: s}
}

func (TestPipeline_getCap_Results) BuildStruct(s ocap.StructBuilder) TestPipeline_getCap_Results_Builder {
	return TestPipeline_getCap_Results_Builder{s: s}
}

func (TestPipeline_getCap_Results) Pipeline(f *ocap.Future) TestPipeline_getCap_Results_Future {
	return TestPipeline_getCap_Results_Future{Future: f}
}

type TestPipeline_getCap_Results_Reader struct{ s ocap.StructReader }

func (r TestPipeline_getCap_Results_Reader) S() (string, error) {
	return r.s.PointerField(0).Text()
}

func (r TestPipeline_getCap_Results_Reader) OutBox() (Box_Reader, error) {
	return Box{}.ReadPointer(r.s.PointerField(1))
}

type TestPipeline_getCap_Results_Builder struct{ s ocap.StructBuilder }

func (b TestPipeline_getCap_Results_Builder) SetS(v string) error {
	return b.s.PointerField(0).SetText(v)
}

func (b TestPipeline_getCap_Results_Builder) NewOutBox() (Box_Builder, error) {
	return Box{}.InitPointer(b.s.PointerField(1), 0)
}

type TestPipeline_getCap_Results_Future struct{ *ocap.Future }

func (f TestPipeline_getCap_Results_Future) Struct() (TestPipeline_getCap_Results_Reader, error) {
	s, err := f.Future.Struct()
	return TestPipeline_getCap_Results_Reader{s: s}, err
}

func (f TestPipeline_getCap_Results_Future) Await(ctx context.Context) (TestPipeline_getCap_Results_Reader, error) {
	s, err := f.Future.Await(ctx)
	return TestPipeline_getCap_Results_Reader{s: s}, err
}

// OutBox pipelines on the outBox field.
func (f TestPipeline_getCap_Results_Future) OutBox() Box_Future {
	return Box{}.Pipeline(f.Future.Field(1))
}

/*
	TestCallOrder
*/

type TestCallOrder ocap.Client

func (c TestCallOrder) GetCallSequence(ctx context.Context, params func(TestCallOrder_getCallSequence_Params_Builder) error) (TestCallOrder_getCallSequence_Results_Future, ocap.ReleaseFunc) {
	f, release := ocap.Send[TestCallOrder_getCallSequence_Params_Builder](ctx, ocap.Client(c),
		TestCallOrder_getCallSequence_Method,
		TestCallOrder_getCallSequence_Params{}.StructSize(),
		TestCallOrder_getCallSequence_Params{},
		params)
	return TestCallOrder_getCallSequence_Results_Future{Future: f}, release
}

func (c TestCallOrder) IsValid() bool     { return ocap.Client(c).IsValid() }
func (c TestCallOrder) Brand() ocap.Brand { return ocap.Client(c).Brand() }

func (c TestCallOrder) AddRef() TestCallOrder {
	return TestCallOrder(ocap.Client(c).AddRef())
}

func (c TestCallOrder) Release() {
	ocap.Client(c).Release()
}

type TestCallOrder_Server interface {
	GetCallSequence(context.Context, TestCallOrder_getCallSequence) error
}

func TestCallOrder_ServerToClient(s TestCallOrder_Server) TestCallOrder {
	return TestCallOrder_NewClient(s, server.Config{})
}

func TestCallOrder_NewClient(s TestCallOrder_Server, cfg server.Config) TestCallOrder {
	return TestCallOrder(cfg.NewClient(s, TestCallOrder_Brand, TestCallOrder_Methods(nil, s)...))
}

func TestCallOrder_Methods(methods []server.Method, s TestCallOrder_Server) []server.Method {
	return append(methods, server.Method{
		Method:     TestCallOrder_getCallSequence_Method,
		ResultSize: TestCallOrder_getCallSequence_Results{}.StructSize(),
		Impl: func(ctx context.Context, call *server.Call) error {
			return s.GetCallSequence(ctx, TestCallOrder_getCallSequence{call})
		},
	})
}

type TestCallOrder_getCallSequence struct{ *server.Call }

func (c TestCallOrder_getCallSequence) Args() TestCallOrder_getCallSequence_Params_Reader {
	return TestCallOrder_getCallSequence_Params_Reader{s: c.Params()}
}

func (c TestCallOrder_getCallSequence) Results() TestCallOrder_getCallSequence_Results_Builder {
	return TestCallOrder_getCallSequence_Results_Builder{s: c.Call.Results()}
}

type TestCallOrder_getCallSequence_Params struct{}

func (TestCallOrder_getCallSequence_Params) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 1, Pointers: 0}
}

func (TestCallOrder_getCallSequence_Params) BuildStruct(s ocap.StructBuilder) TestCallOrder_getCallSequence_Params_Builder {
	return TestCallOrder_getCallSequence_Params_Builder{s: s}
}

type TestCallOrder_getCallSequence_Params_Reader struct{ s ocap.StructReader }

func (r TestCallOrder_getCallSequence_Params_Reader) Expected() uint32 { return r.s.Uint32(0) }

type TestCallOrder_getCallSequence_Params_Builder struct{ s ocap.StructBuilder }

func (b TestCallOrder_getCallSequence_Params_Builder) SetExpected(v uint32) { b.s.SetUint32(0, v) }

type TestCallOrder_getCallSequence_Results struct{}

func (TestCallOrder_getCallSequence_Results) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 1, Pointers: 0}
}

type TestCallOrder_getCallSequence_Results_Reader struct{ s ocap.StructReader }

func (r TestCallOrder_getCallSequence_Results_Reader) N() uint32 { return r.s.Uint32(0) }

type TestCallOrder_getCallSequence_Results_Builder struct{ s ocap.StructBuilder }

func (b TestCallOrder_getCallSequence_Results_Builder) SetN(v uint32) { b.s.SetUint32(0, v) }

type TestCallOrder_getCallSequence_Results_Future struct{ *ocap.Future }

func (f TestCallOrder_getCallSequence_Results_Future) Struct() (TestCallOrder_getCallSequence_Results_Reader, error) {
	s, err := f.Future.Struct()
	return TestCallOrder_getCallSequence_Results_Reader{s: s}, err
}

func (f TestCallOrder_getCallSequence_Results_Future) Await(ctx context.Context) (TestCallOrder_getCallSequence_Results_Reader, error) {
	s, err := f.Future.Await(ctx)
	return TestCallOrder_getCallSequence_Results_Reader{s: s}, err
}
