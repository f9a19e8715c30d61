// Package demo contains accessors for demo.capnp.
package demo

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/wetware/ocap"
)

const (
	TestEnum_TypeID     = 0x9c8e9318b29d9cd3
	TestAllTypes_TypeID = 0xa0a8f314b80b63fd
	Box_TypeID          = 0xb4b4a7f7ab8e1d5c
)

// testAllTypes_defaultUInt64List is a single-segment message whose
// root is the List(UInt64) [1, 2, 3].
var testAllTypes_defaultUInt64List = []byte{
	0x00, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x1d, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

/*
	TestEnum
*/

type TestEnum uint16

const (
	TestEnum_foo TestEnum = 0
	TestEnum_bar TestEnum = 1
	TestEnum_baz TestEnum = 2
	TestEnum_qux TestEnum = 3
)

var (
	_ ocap.ToU16             = TestEnum(0)
	_ ocap.FromU16[TestEnum] = TestEnum(0)
)

func (TestEnum) TypeID() uint64  { return TestEnum_TypeID }
func (e TestEnum) ToU16() uint16 { return uint16(e) }

func (TestEnum) FromU16(v uint16) (TestEnum, error) {
	if v > uint16(TestEnum_qux) {
		return 0, errors.Wrapf(ocap.ErrNotInSchema, "TestEnum(%d)", v)
	}

	return TestEnum(v), nil
}

func (e TestEnum) String() string {
	switch e {
	case TestEnum_foo:
		return "foo"
	case TestEnum_bar:
		return "bar"
	case TestEnum_baz:
		return "baz"
	case TestEnum_qux:
		return "qux"
	}

	return "TestEnum(" + strconv.Itoa(int(e)) + ")"
}

/*
	TestAllTypes
*/

// TestAllTypes is the Owned marker for the TestAllTypes struct.
type TestAllTypes struct{}

// TestAllTypes_List is the Owned marker for List(TestAllTypes).
var TestAllTypes_List = ocap.StructList[TestAllTypes_Reader, TestAllTypes_Builder]{
	Elem: TestAllTypes{},
}

var (
	_ ocap.OwnedStruct[TestAllTypes_Reader, TestAllTypes_Builder] = TestAllTypes{}
	_ ocap.Owned[TestAllTypes_Reader, TestAllTypes_Builder]       = TestAllTypes{}
	_ ocap.HasTypeID                                              = TestAllTypes{}
)

func (TestAllTypes) TypeID() uint64 { return TestAllTypes_TypeID }

func (TestAllTypes) StructSize() ocap.StructSize {
	return ocap.StructSize{Data: 6, Pointers: 10}
}

func (TestAllTypes) ReadStruct(s ocap.StructReader) TestAllTypes_Reader {
	return TestAllTypes_Reader{s: s}
}

func (TestAllTypes) BuildStruct(s ocap.StructBuilder) TestAllTypes_Builder {
	return TestAllTypes_Builder{s: s}
}

func (o TestAllTypes) ReadPointer(p ocap.PointerReader) (TestAllTypes_Reader, error) {
	return ocap.ReadStructPointer[TestAllTypes_Reader](o, p)
}

func (o TestAllTypes) InitPointer(p ocap.PointerBuilder, _ int32) (TestAllTypes_Builder, error) {
	return ocap.InitStructPointer[TestAllTypes_Builder](o, p)
}

func (o TestAllTypes) BuildPointer(p ocap.PointerBuilder) (TestAllTypes_Builder, error) {
	return ocap.BuildStructPointer[TestAllTypes_Builder](o, p)
}

func (o TestAllTypes) SetPointer(p ocap.PointerBuilder, r TestAllTypes_Reader) error {
	return ocap.SetStructPointer[TestAllTypes_Reader, TestAllTypes_Builder](o, p, r)
}

// SetStruct deep-copies src into dst.
func (o TestAllTypes) SetStruct(dst TestAllTypes_Builder, src TestAllTypes_Reader) (err error) {
	dst.s.CopyDataFrom(src.s, o.StructSize())

	if text, e := src.TextField(); e != nil {
		err = multierr.Append(err, e)
	} else {
		err = multierr.Append(err, dst.SetTextField(text))
	}

	if data, e := src.DataField(); e != nil {
		err = multierr.Append(err, e)
	} else {
		err = multierr.Append(err, dst.SetDataField(data))
	}

	if src.HasStructField() {
		if r, e := src.StructField(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, dst.SetStructField(r))
		}
	}

	if src.HasUInt64List() {
		if r, e := src.UInt64List(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, ocap.UInt64List{}.SetPointer(dst.s.PointerField(3), r))
		}
	}

	if src.HasTextList() {
		if r, e := src.TextList(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, ocap.TextList{}.SetPointer(dst.s.PointerField(4), r))
		}
	}

	if src.HasStructList() {
		if r, e := src.StructList(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, TestAllTypes_List.SetPointer(dst.s.PointerField(5), r))
		}
	}

	if c, e := src.InterfaceField(); e != nil {
		err = multierr.Append(err, e)
	} else {
		err = multierr.Append(err, dst.SetInterfaceField(c))
	}

	if src.HasInterfaceList() {
		if r, e := src.InterfaceList(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, ocap.CapabilityList{}.SetPointer(dst.s.PointerField(7), r))
		}
	}

	if src.HasDefaultText() {
		if v, e := src.DefaultText(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, dst.SetDefaultText(v))
		}
	}

	if src.HasDefaultUInt64List() {
		if r, e := src.DefaultUInt64List(); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, ocap.UInt64List{}.SetPointer(dst.s.PointerField(9), r))
		}
	}

	return err
}

// NewRootTestAllTypes allocates a TestAllTypes at the root of m.
func NewRootTestAllTypes(m *ocap.Message) (TestAllTypes_Builder, error) {
	return ocap.InitRoot[TestAllTypes_Builder](m, TestAllTypes{})
}

// ReadRootTestAllTypes reads the TestAllTypes at the root of m.
func ReadRootTestAllTypes(m *ocap.Message) (TestAllTypes_Reader, error) {
	return ocap.ReadRoot[TestAllTypes_Reader](m, TestAllTypes{})
}

type TestAllTypes_Reader struct{ s ocap.StructReader }

func (r TestAllTypes_Reader) Raw() ocap.StructReader { return r.s }
func (r TestAllTypes_Reader) IsValid() bool          { return r.s.IsValid() }

func (r TestAllTypes_Reader) BoolField() bool       { return r.s.Bool(0) }
func (r TestAllTypes_Reader) Int8Field() int8       { return r.s.Int8(1) }
func (r TestAllTypes_Reader) Int16Field() int16     { return r.s.Int16(2) }
func (r TestAllTypes_Reader) Int32Field() int32     { return r.s.Int32(4) }
func (r TestAllTypes_Reader) Int64Field() int64     { return r.s.Int64(8) }
func (r TestAllTypes_Reader) UInt8Field() uint8     { return r.s.Uint8(16) }
func (r TestAllTypes_Reader) UInt16Field() uint16   { return r.s.Uint16(20) }
func (r TestAllTypes_Reader) UInt32Field() uint32   { return r.s.Uint32(24) }
func (r TestAllTypes_Reader) Float32Field() float32 { return r.s.Float32(28) }
func (r TestAllTypes_Reader) UInt64Field() uint64   { return r.s.Uint64(32) }
func (r TestAllTypes_Reader) Float64Field() float64 { return r.s.Float64(40) }

// EnumField fails with ocap.ErrNotInSchema if the stored value is not
// a known enumerant.
func (r TestAllTypes_Reader) EnumField() (TestEnum, error) {
	return TestEnum(0).FromU16(r.s.Uint16(18))
}

func (r TestAllTypes_Reader) TextField() (string, error) {
	return r.s.PointerField(0).Text()
}

func (r TestAllTypes_Reader) HasTextField() bool {
	return !r.s.PointerField(0).IsNull()
}

// DataField aliases the message buffer.
func (r TestAllTypes_Reader) DataField() ([]byte, error) {
	return r.s.PointerField(1).Data()
}

func (r TestAllTypes_Reader) HasDataField() bool {
	return !r.s.PointerField(1).IsNull()
}

func (r TestAllTypes_Reader) StructField() (TestAllTypes_Reader, error) {
	return TestAllTypes{}.ReadPointer(r.s.PointerField(2))
}

func (r TestAllTypes_Reader) HasStructField() bool {
	return !r.s.PointerField(2).IsNull()
}

func (r TestAllTypes_Reader) UInt64List() (ocap.UInt64ListReader, error) {
	return ocap.UInt64List{}.ReadPointer(r.s.PointerField(3))
}

func (r TestAllTypes_Reader) HasUInt64List() bool {
	return !r.s.PointerField(3).IsNull()
}

func (r TestAllTypes_Reader) TextList() (ocap.TextListReader, error) {
	return ocap.TextList{}.ReadPointer(r.s.PointerField(4))
}

func (r TestAllTypes_Reader) HasTextList() bool {
	return !r.s.PointerField(4).IsNull()
}

func (r TestAllTypes_Reader) StructList() (ocap.StructListReader[TestAllTypes_Reader], error) {
	return TestAllTypes_List.ReadPointer(r.s.PointerField(5))
}

func (r TestAllTypes_Reader) HasStructList() bool {
	return !r.s.PointerField(5).IsNull()
}

// InterfaceField returns an owned reference, which the caller must
// release.
func (r TestAllTypes_Reader) InterfaceField() (TestInterface, error) {
	c, err := r.s.PointerField(6).Capability()
	return TestInterface(c), err
}

func (r TestAllTypes_Reader) HasInterfaceField() bool {
	return !r.s.PointerField(6).IsNull()
}

func (r TestAllTypes_Reader) InterfaceList() (ocap.CapabilityListReader, error) {
	return ocap.CapabilityList{}.ReadPointer(r.s.PointerField(7))
}

func (r TestAllTypes_Reader) HasInterfaceList() bool {
	return !r.s.PointerField(7).IsNull()
}

// DefaultText reads "default" while the field is unset.
func (r TestAllTypes_Reader) DefaultText() (string, error) {
	return r.s.PointerField(8).TextDefault("default")
}

func (r TestAllTypes_Reader) HasDefaultText() bool {
	return !r.s.PointerField(8).IsNull()
}

// DefaultUInt64List reads [1, 2, 3] while the field is unset.
func (r TestAllTypes_Reader) DefaultUInt64List() (ocap.UInt64ListReader, error) {
	return ocap.UInt64List{}.ReadPointerDefault(r.s.PointerField(9), testAllTypes_defaultUInt64List)
}

func (r TestAllTypes_Reader) HasDefaultUInt64List() bool {
	return !r.s.PointerField(9).IsNull()
}

type TestAllTypes_Builder struct{ s ocap.StructBuilder }

func (b TestAllTypes_Builder) Raw() ocap.StructBuilder { return b.s }

func (b TestAllTypes_Builder) AsReader() TestAllTypes_Reader {
	return TestAllTypes_Reader{s: b.s.AsReader()}
}

func (b TestAllTypes_Builder) BoolField() bool       { return b.AsReader().BoolField() }
func (b TestAllTypes_Builder) Int8Field() int8       { return b.AsReader().Int8Field() }
func (b TestAllTypes_Builder) Int16Field() int16     { return b.AsReader().Int16Field() }
func (b TestAllTypes_Builder) Int32Field() int32     { return b.AsReader().Int32Field() }
func (b TestAllTypes_Builder) Int64Field() int64     { return b.AsReader().Int64Field() }
func (b TestAllTypes_Builder) UInt8Field() uint8     { return b.AsReader().UInt8Field() }
func (b TestAllTypes_Builder) UInt16Field() uint16   { return b.AsReader().UInt16Field() }
func (b TestAllTypes_Builder) UInt32Field() uint32   { return b.AsReader().UInt32Field() }
func (b TestAllTypes_Builder) Float32Field() float32 { return b.AsReader().Float32Field() }
func (b TestAllTypes_Builder) UInt64Field() uint64   { return b.AsReader().UInt64Field() }
func (b TestAllTypes_Builder) Float64Field() float64 { return b.AsReader().Float64Field() }

func (b TestAllTypes_Builder) SetBoolField(v bool)       { b.s.SetBool(0, v) }
func (b TestAllTypes_Builder) SetInt8Field(v int8)       { b.s.SetInt8(1, v) }
func (b TestAllTypes_Builder) SetInt16Field(v int16)     { b.s.SetInt16(2, v) }
func (b TestAllTypes_Builder) SetInt32Field(v int32)     { b.s.SetInt32(4, v) }
func (b TestAllTypes_Builder) SetInt64Field(v int64)     { b.s.SetInt64(8, v) }
func (b TestAllTypes_Builder) SetUInt8Field(v uint8)     { b.s.SetUint8(16, v) }
func (b TestAllTypes_Builder) SetEnumField(v TestEnum)   { b.s.SetUint16(18, v.ToU16()) }
func (b TestAllTypes_Builder) SetUInt16Field(v uint16)   { b.s.SetUint16(20, v) }
func (b TestAllTypes_Builder) SetUInt32Field(v uint32)   { b.s.SetUint32(24, v) }
func (b TestAllTypes_Builder) SetFloat32Field(v float32) { b.s.SetFloat32(28, v) }
func (b TestAllTypes_Builder) SetUInt64Field(v uint64)   { b.s.SetUint64(32, v) }
func (b TestAllTypes_Builder) SetFloat64Field(v float64) { b.s.SetFloat64(40, v) }

func (b TestAllTypes_Builder) SetTextField(v string) error {
	return b.s.PointerField(0).SetText(v)
}

func (b TestAllTypes_Builder) SetDataField(v []byte) error {
	return b.s.PointerField(1).SetData(v)
}

// StructField returns the nested struct, allocating it if unset.
func (b TestAllTypes_Builder) StructField() (TestAllTypes_Builder, error) {
	return TestAllTypes{}.BuildPointer(b.s.PointerField(2))
}

func (b TestAllTypes_Builder) InitStructField() (TestAllTypes_Builder, error) {
	return TestAllTypes{}.InitPointer(b.s.PointerField(2), 0)
}

// SetStructField deep-copies r, which may belong to another message.
func (b TestAllTypes_Builder) SetStructField(r TestAllTypes_Reader) error {
	return TestAllTypes{}.SetPointer(b.s.PointerField(2), r)
}

func (b TestAllTypes_Builder) InitUInt64List(n int32) (ocap.UInt64ListBuilder, error) {
	return ocap.UInt64List{}.InitPointer(b.s.PointerField(3), n)
}

func (b TestAllTypes_Builder) InitTextList(n int32) (ocap.TextListBuilder, error) {
	return ocap.TextList{}.InitPointer(b.s.PointerField(4), n)
}

func (b TestAllTypes_Builder) InitStructList(n int32) (ocap.StructListBuilder[TestAllTypes_Builder], error) {
	return TestAllTypes_List.InitPointer(b.s.PointerField(5), n)
}

// SetInterfaceField exports c into the message.  The message steals
// the reference.
func (b TestAllTypes_Builder) SetInterfaceField(c TestInterface) error {
	return b.s.PointerField(6).SetCapability(ocap.Client(c))
}

func (b TestAllTypes_Builder) InitInterfaceList(n int32) (ocap.CapabilityListBuilder, error) {
	return ocap.CapabilityList{}.InitPointer(b.s.PointerField(7), n)
}

func (b TestAllTypes_Builder) SetDefaultText(v string) error {
	return b.s.PointerField(8).SetText(v)
}

// DefaultUInt64List copies the default into the message if the field
// is unset, so that it can be modified in place.
func (b TestAllTypes_Builder) DefaultUInt64List() (ocap.UInt64ListBuilder, error) {
	return ocap.UInt64List{}.BuildPointerDefault(b.s.PointerField(9), testAllTypes_defaultUInt64List)
}

func (b TestAllTypes_Builder) InitDefaultUInt64List(n int32) (ocap.UInt64ListBuilder, error) {
	return ocap.UInt64List{}.InitPointer(b.s.PointerField(9), n)
}

/*
	Box
*/

// Box is the Owned marker for the Box struct.
type Box struct{}

var (
	_ ocap.OwnedStruct[Box_Reader, Box_Builder] = Box{}
	_ ocap.Pipelined[Box_Future]                = Box{}
)

func (Box) TypeID() uint64                               { return Box_TypeID }
func (Box) StructSize() ocap.StructSize                  { return ocap.StructSize{Data: 0, Pointers: 1} }
func (Box) ReadStruct(s ocap.StructReader) Box_Reader    { return Box_Reader{s: s} }
func (Box) BuildStruct(s ocap.StructBuilder) Box_Builder { return Box_Builder{s: s} }
func (Box) Pipeline(f *ocap.Future) Box_Future           { return Box_Future{Future: f} }

func (o Box) ReadPointer(p ocap.PointerReader) (Box_Reader, error) {
	return ocap.ReadStructPointer[Box_Reader](o, p)
}

func (o Box) InitPointer(p ocap.PointerBuilder, _ int32) (Box_Builder, error) {
	return ocap.InitStructPointer[Box_Builder](o, p)
}

func (o Box) BuildPointer(p ocap.PointerBuilder) (Box_Builder, error) {
	return ocap.BuildStructPointer[Box_Builder](o, p)
}

func (o Box) SetPointer(p ocap.PointerBuilder, r Box_Reader) error {
	return ocap.SetStructPointer[Box_Reader, Box_Builder](o, p, r)
}

func (Box) SetStruct(dst Box_Builder, src Box_Reader) error {
	c, err := src.Cap()
	if err != nil {
		return err
	}

	return dst.SetCap(c)
}

type Box_Reader struct{ s ocap.StructReader }

// Cap returns an owned reference, which the caller must release.
func (r Box_Reader) Cap() (TestInterface, error) {
	c, err := r.s.PointerField(0).Capability()
	return TestInterface(c), err
}

func (r Box_Reader) HasCap() bool {
	return !r.s.PointerField(0).IsNull()
}

type Box_Builder struct{ s ocap.StructBuilder }

func (b Box_Builder) AsReader() Box_Reader {
	return Box_Reader{s: b.s.AsReader()}
}

// SetCap exports c into the message.  The message steals the reference.
func (b Box_Builder) SetCap(c TestInterface) error {
	return b.s.PointerField(0).SetCapability(ocap.Client(c))
}

// Box_Future is a pipeline view of a Box that has not arrived yet.
type Box_Future struct{ *ocap.Future }

func (f Box_Future) Struct() (Box_Reader, error) {
	s, err := f.Future.Struct()
	return Box_Reader{s: s}, err
}

// Cap returns a promise for the boxed capability.  The caller must
// release it.
func (f Box_Future) Cap() TestInterface {
	return TestInterface(f.Future.Field(0).Client())
}
