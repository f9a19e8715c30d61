package demo

import (
	"bytes"
	"fmt"

	"go.uber.org/multierr"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
)

var (
	testUInt64List = []uint64{12345678901234567890, 0, 1}
	testTextList   = []string{"plugh", "xyzzy", "thud"}
)

// InitTestMessage fills b with the canonical test values.
func InitTestMessage(b api.TestAllTypes_Builder) error {
	b.SetBoolField(true)
	b.SetInt8Field(-123)
	b.SetInt16Field(-12345)
	b.SetInt32Field(-12345678)
	b.SetInt64Field(-123456789012345)
	b.SetUInt8Field(234)
	b.SetUInt16Field(45678)
	b.SetUInt32Field(3456789012)
	b.SetUInt64Field(12345678901234567890)
	b.SetFloat32Field(1234.5)
	b.SetFloat64Field(-123e45)
	b.SetEnumField(api.TestEnum_baz)

	if err := b.SetTextField("foo"); err != nil {
		return err
	}

	if err := b.SetDataField([]byte("bar")); err != nil {
		return err
	}

	sub, err := b.InitStructField()
	if err != nil {
		return err
	}
	sub.SetUInt32Field(1)
	sub.SetEnumField(api.TestEnum_qux)
	if err = sub.SetTextField("nested"); err != nil {
		return err
	}

	u64s, err := b.InitUInt64List(int32(len(testUInt64List)))
	if err != nil {
		return err
	}
	for i, v := range testUInt64List {
		u64s.Set(i, v)
	}

	texts, err := b.InitTextList(int32(len(testTextList)))
	if err != nil {
		return err
	}
	for i, v := range testTextList {
		if err = texts.Set(i, v); err != nil {
			return err
		}
	}

	structs, err := b.InitStructList(3)
	if err != nil {
		return err
	}
	for i := 0; i < structs.Len(); i++ {
		if err = structs.At(i).SetTextField(fmt.Sprintf("structlist %d", i+1)); err != nil {
			return err
		}
	}

	return nil
}

// CheckTestMessage reports every field of r that differs from the
// values written by InitTestMessage.
func CheckTestMessage(r api.TestAllTypes_Reader) (err error) {
	expect(&err, "boolField", r.BoolField(), true)
	expect(&err, "int8Field", r.Int8Field(), -123)
	expect(&err, "int16Field", r.Int16Field(), -12345)
	expect(&err, "int32Field", r.Int32Field(), -12345678)
	expect(&err, "int64Field", r.Int64Field(), -123456789012345)
	expect(&err, "uInt8Field", r.UInt8Field(), 234)
	expect(&err, "uInt16Field", r.UInt16Field(), 45678)
	expect(&err, "uInt32Field", r.UInt32Field(), 3456789012)
	expect(&err, "uInt64Field", r.UInt64Field(), 12345678901234567890)
	expect(&err, "float32Field", r.Float32Field(), 1234.5)
	expect(&err, "float64Field", r.Float64Field(), -123e45)

	e, ferr := r.EnumField()
	err = multierr.Append(err, ferr)
	expect(&err, "enumField", e, api.TestEnum_baz)

	text, ferr := r.TextField()
	err = multierr.Append(err, ferr)
	expect(&err, "textField", text, "foo")

	data, ferr := r.DataField()
	err = multierr.Append(err, ferr)
	if !bytes.Equal(data, []byte("bar")) {
		err = multierr.Append(err, mismatch("dataField", data, []byte("bar")))
	}

	if sub, ferr := r.StructField(); ferr != nil {
		err = multierr.Append(err, ferr)
	} else {
		expect(&err, "structField.uInt32Field", sub.UInt32Field(), 1)
		text, ferr := sub.TextField()
		err = multierr.Append(err, ferr)
		expect(&err, "structField.textField", text, "nested")
	}

	if u64s, ferr := r.UInt64List(); ferr != nil {
		err = multierr.Append(err, ferr)
	} else {
		var got []uint64
		for it := u64s.Iter(); ; {
			v, ok := it.Next()
			if !ok {
				break
			}
			got = append(got, v)
		}
		expectSlice(&err, "uInt64List", got, testUInt64List)
	}

	if texts, ferr := r.TextList(); ferr != nil {
		err = multierr.Append(err, ferr)
	} else {
		got := make([]string, texts.Len())
		for i := range got {
			v, ferr := texts.At(i)
			err = multierr.Append(err, ferr)
			got[i] = v
		}
		expectSlice(&err, "textList", got, testTextList)
	}

	if structs, ferr := r.StructList(); ferr != nil {
		err = multierr.Append(err, ferr)
	} else {
		expect(&err, "structList.len", structs.Len(), 3)
		for i := 0; i < structs.Len(); i++ {
			text, ferr := structs.At(i).TextField()
			err = multierr.Append(err, ferr)
			expect(&err, fmt.Sprintf("structList[%d].textField", i),
				text, fmt.Sprintf("structlist %d", i+1))
		}
	}

	if err != nil {
		return ocap.Failedf("check test message: %w", err)
	}

	return nil
}

func expect[T comparable](err *error, field string, got, want T) {
	if got != want {
		*err = multierr.Append(*err, mismatch(field, got, want))
	}
}

func expectSlice[T comparable](err *error, field string, got, want []T) {
	if len(got) != len(want) {
		*err = multierr.Append(*err, mismatch(field+".len", len(got), len(want)))
		return
	}

	for i := range got {
		expect(err, fmt.Sprintf("%s[%d]", field, i), got[i], want[i])
	}
}

func mismatch(field string, got, want any) error {
	return fmt.Errorf("%s: got %v, want %v", field, got, want)
}
