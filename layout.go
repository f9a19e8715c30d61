package ocap

import (
	"math"

	"capnproto.org/go/capnp/v3"
)

// StructSize is the fixed shape of a struct: the number of 64-bit words
// in its data section, and the number of pointers that follow it.
type StructSize struct {
	Data     uint16
	Pointers uint16
}

// ObjectSize converts s into the unit used by the message arena.
func (s StructSize) ObjectSize() capnp.ObjectSize {
	return capnp.ObjectSize{
		DataSize:     capnp.Size(s.Data) * 8,
		PointerCount: s.Pointers,
	}
}

// StructReader is a read-only cursor onto a struct.  The zero value is
// a valid, empty struct whose fields all read as their default.
type StructReader struct {
	s    capnp.Struct
	caps CapTableReader
}

// NewStructReader wraps a raw struct.  The returned cursor must be
// imbued before any capability field is read through it.
func NewStructReader(s capnp.Struct) StructReader {
	return StructReader{s: s}
}

// Imbue attaches the capability table of the message that r points
// into.  Imbuing twice with different tables is a caller error.
func (r *StructReader) Imbue(caps CapTableReader) {
	r.caps = caps
}

// Raw returns the underlying struct.
func (r StructReader) Raw() capnp.Struct { return r.s }

// IsValid reports whether r points at a struct in a message.
func (r StructReader) IsValid() bool { return r.s.IsValid() }

func (r StructReader) Bool(bit uint32) bool {
	return r.s.Bit(capnp.BitOffset(bit))
}

func (r StructReader) Uint8(off uint32) uint8 {
	return r.s.Uint8(capnp.DataOffset(off))
}

func (r StructReader) Uint16(off uint32) uint16 {
	return r.s.Uint16(capnp.DataOffset(off))
}

func (r StructReader) Uint32(off uint32) uint32 {
	return r.s.Uint32(capnp.DataOffset(off))
}

func (r StructReader) Uint64(off uint32) uint64 {
	return r.s.Uint64(capnp.DataOffset(off))
}

func (r StructReader) Int8(off uint32) int8   { return int8(r.Uint8(off)) }
func (r StructReader) Int16(off uint32) int16 { return int16(r.Uint16(off)) }
func (r StructReader) Int32(off uint32) int32 { return int32(r.Uint32(off)) }
func (r StructReader) Int64(off uint32) int64 { return int64(r.Uint64(off)) }

func (r StructReader) Float32(off uint32) float32 {
	return math.Float32frombits(r.Uint32(off))
}

func (r StructReader) Float64(off uint32) float64 {
	return math.Float64frombits(r.Uint64(off))
}

// PointerField returns a cursor for the i-th pointer of the struct,
// carrying r's capability table.
func (r StructReader) PointerField(i uint16) PointerReader {
	p, err := r.s.Ptr(i)
	return PointerReader{p: p, err: err, caps: r.caps}
}

// StructBuilder is a mutable cursor onto a struct.  A builder is
// exclusive: no two live builders may point at the same struct.
type StructBuilder struct {
	s    capnp.Struct
	caps *CapTable
}

// NewStructBuilder wraps a raw struct.  The returned cursor must be
// imbued before any capability field is written through it.
func NewStructBuilder(s capnp.Struct) StructBuilder {
	return StructBuilder{s: s}
}

// ImbueMut attaches the mutable capability table of the message being
// built, so that capabilities written through b are exported into it.
func (b *StructBuilder) ImbueMut(caps *CapTable) {
	b.caps = caps
}

// Raw returns the underlying struct.
func (b StructBuilder) Raw() capnp.Struct { return b.s }

// IsValid reports whether b points at a struct in a message.
func (b StructBuilder) IsValid() bool { return b.s.IsValid() }

// AsReader returns a read-only view of the same struct.
func (b StructBuilder) AsReader() StructReader {
	r := StructReader{s: b.s}
	if b.caps != nil {
		r.caps = b.caps
	}

	return r
}

func (b StructBuilder) Bool(bit uint32) bool       { return b.AsReader().Bool(bit) }
func (b StructBuilder) Uint8(off uint32) uint8     { return b.AsReader().Uint8(off) }
func (b StructBuilder) Uint16(off uint32) uint16   { return b.AsReader().Uint16(off) }
func (b StructBuilder) Uint32(off uint32) uint32   { return b.AsReader().Uint32(off) }
func (b StructBuilder) Uint64(off uint32) uint64   { return b.AsReader().Uint64(off) }
func (b StructBuilder) Int8(off uint32) int8       { return b.AsReader().Int8(off) }
func (b StructBuilder) Int16(off uint32) int16     { return b.AsReader().Int16(off) }
func (b StructBuilder) Int32(off uint32) int32     { return b.AsReader().Int32(off) }
func (b StructBuilder) Int64(off uint32) int64     { return b.AsReader().Int64(off) }
func (b StructBuilder) Float32(off uint32) float32 { return b.AsReader().Float32(off) }
func (b StructBuilder) Float64(off uint32) float64 { return b.AsReader().Float64(off) }

func (b StructBuilder) SetBool(bit uint32, v bool) {
	b.s.SetBit(capnp.BitOffset(bit), v)
}

func (b StructBuilder) SetUint8(off uint32, v uint8) {
	b.s.SetUint8(capnp.DataOffset(off), v)
}

func (b StructBuilder) SetUint16(off uint32, v uint16) {
	b.s.SetUint16(capnp.DataOffset(off), v)
}

func (b StructBuilder) SetUint32(off uint32, v uint32) {
	b.s.SetUint32(capnp.DataOffset(off), v)
}

func (b StructBuilder) SetUint64(off uint32, v uint64) {
	b.s.SetUint64(capnp.DataOffset(off), v)
}

func (b StructBuilder) SetInt8(off uint32, v int8)   { b.SetUint8(off, uint8(v)) }
func (b StructBuilder) SetInt16(off uint32, v int16) { b.SetUint16(off, uint16(v)) }
func (b StructBuilder) SetInt32(off uint32, v int32) { b.SetUint32(off, uint32(v)) }
func (b StructBuilder) SetInt64(off uint32, v int64) { b.SetUint64(off, uint64(v)) }

func (b StructBuilder) SetFloat32(off uint32, v float32) {
	b.SetUint32(off, math.Float32bits(v))
}

func (b StructBuilder) SetFloat64(off uint32, v float64) {
	b.SetUint64(off, math.Float64bits(v))
}

// CopyDataFrom copies the first size.Data words of src's data section
// into b.  Pointers are left untouched; generated code copies them
// field by field so that capabilities are re-exported.
func (b StructBuilder) CopyDataFrom(src StructReader, size StructSize) {
	for w := uint32(0); w < uint32(size.Data); w++ {
		b.SetUint64(w*8, src.Uint64(w*8))
	}
}

// PointerField returns a slot for the i-th pointer of the struct,
// carrying b's capability table.
func (b StructBuilder) PointerField(i uint16) PointerBuilder {
	return PointerBuilder{
		slot: structSlot{s: b.s, i: i},
		caps: b.caps,
	}
}
