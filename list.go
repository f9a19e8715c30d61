package ocap

import (
	"capnproto.org/go/capnp/v3"
	"go.uber.org/multierr"
)

// IndexMove projects the i-th element out of a list view.  It MUST be
// free of side effects: calling it twice with the same index yields
// equivalent views.
type IndexMove[T any] interface {
	IndexMove(i uint32) T
}

// ListIter walks a list view from index 0 to size-1, materializing each
// element on demand.  It only moves forward; a fresh iterator may be
// obtained from the same list at any time.  Dropping an iterator early
// requires no cleanup.
type ListIter[T any] struct {
	list        IndexMove[T]
	index, size uint32
}

func NewListIter[T any](list IndexMove[T], size uint32) *ListIter[T] {
	return &ListIter[T]{list: list, size: size}
}

// Next returns the next element.  The boolean is false once the
// iterator is exhausted.
func (it *ListIter[T]) Next() (t T, ok bool) {
	if it.index < it.size {
		t, ok = it.list.IndexMove(it.index), true
		it.index++
	}

	return
}

// Len returns the number of elements not yet visited.
func (it *ListIter[T]) Len() int {
	return int(it.size - it.index)
}

/*
	UInt64 lists
*/

// UInt64List is the Owned marker for List(UInt64).
type UInt64List struct{}

var (
	_ Owned[UInt64ListReader, UInt64ListBuilder]   = UInt64List{}
	_ FromPointerReaderDefault[UInt64ListReader]   = UInt64List{}
	_ FromPointerBuilderDefault[UInt64ListBuilder] = UInt64List{}
)

func (UInt64List) ReadPointer(p PointerReader) (UInt64ListReader, error) {
	l, err := p.List()
	return UInt64ListReader{l: capnp.UInt64List(l)}, err
}

func (UInt64List) InitPointer(p PointerBuilder, n int32) (UInt64ListBuilder, error) {
	l, err := capnp.NewUInt64List(p.segment(), n)
	if err == nil {
		err = p.SetList(capnp.List(l))
	}

	return UInt64ListBuilder{l: l}, err
}

func (UInt64List) BuildPointer(p PointerBuilder) (UInt64ListBuilder, error) {
	l, err := p.List()
	return UInt64ListBuilder{l: capnp.UInt64List(l)}, err
}

func (o UInt64List) ReadPointerDefault(p PointerReader, def []byte) (UInt64ListReader, error) {
	return ReadPointerDefault[UInt64ListReader](o, p, def)
}

func (o UInt64List) BuildPointerDefault(p PointerBuilder, def []byte) (UInt64ListBuilder, error) {
	return BuildPointerDefault[UInt64ListBuilder](o, p, def)
}

func (o UInt64List) SetPointer(p PointerBuilder, r UInt64ListReader) error {
	b, err := o.InitPointer(p, int32(r.Len()))
	if err != nil {
		return err
	}

	for i := 0; i < r.Len(); i++ {
		b.Set(i, r.At(i))
	}

	return nil
}

type UInt64ListReader struct{ l capnp.UInt64List }

func (r UInt64ListReader) Len() int                  { return r.l.Len() }
func (r UInt64ListReader) At(i int) uint64           { return r.l.At(i) }
func (r UInt64ListReader) IndexMove(i uint32) uint64 { return r.l.At(int(i)) }

func (r UInt64ListReader) Iter() *ListIter[uint64] {
	return NewListIter[uint64](r, uint32(r.Len()))
}

type UInt64ListBuilder struct{ l capnp.UInt64List }

func (b UInt64ListBuilder) Len() int                   { return b.l.Len() }
func (b UInt64ListBuilder) At(i int) uint64            { return b.l.At(i) }
func (b UInt64ListBuilder) Set(i int, v uint64)        { b.l.Set(i, v) }
func (b UInt64ListBuilder) AsReader() UInt64ListReader { return UInt64ListReader{l: b.l} }

/*
	Text lists
*/

// TextList is the Owned marker for List(Text).
type TextList struct{}

func (TextList) ReadPointer(p PointerReader) (TextListReader, error) {
	l, err := p.List()
	return TextListReader{l: capnp.TextList(l)}, err
}

func (TextList) InitPointer(p PointerBuilder, n int32) (TextListBuilder, error) {
	l, err := capnp.NewTextList(p.segment(), n)
	if err == nil {
		err = p.SetList(capnp.List(l))
	}

	return TextListBuilder{l: l}, err
}

func (TextList) BuildPointer(p PointerBuilder) (TextListBuilder, error) {
	l, err := p.List()
	return TextListBuilder{l: capnp.TextList(l)}, err
}

func (o TextList) SetPointer(p PointerBuilder, r TextListReader) error {
	b, err := o.InitPointer(p, int32(r.Len()))
	if err != nil {
		return err
	}

	for i := 0; i < r.Len(); i++ {
		s, e := r.At(i)
		if e == nil {
			e = b.Set(i, s)
		}
		err = multierr.Append(err, e)
	}

	return err
}

type TextListReader struct{ l capnp.TextList }

func (r TextListReader) Len() int { return r.l.Len() }

func (r TextListReader) At(i int) (string, error) {
	return r.l.At(i)
}

// IndexMove returns the empty string for malformed elements.  Use At
// to observe the error.
func (r TextListReader) IndexMove(i uint32) string {
	s, _ := r.l.At(int(i))
	return s
}

func (r TextListReader) Iter() *ListIter[string] {
	return NewListIter[string](r, uint32(r.Len()))
}

type TextListBuilder struct{ l capnp.TextList }

func (b TextListBuilder) Len() int                  { return b.l.Len() }
func (b TextListBuilder) Set(i int, v string) error { return b.l.Set(i, v) }
func (b TextListBuilder) AsReader() TextListReader  { return TextListReader{l: b.l} }

/*
	Struct lists
*/

// StructList is the Owned marker for List(T), where T is a struct type
// described by Elem.
type StructList[R, B any] struct {
	Elem OwnedStruct[R, B]
}

func (o StructList[R, B]) ReadPointer(p PointerReader) (StructListReader[R], error) {
	l, err := p.List()
	return StructListReader[R]{l: l, elem: o.Elem, caps: p.caps}, err
}

func (o StructList[R, B]) InitPointer(p PointerBuilder, n int32) (StructListBuilder[B], error) {
	l, err := capnp.NewCompositeList(p.segment(), o.Elem.StructSize().ObjectSize(), n)
	if err == nil {
		err = p.SetList(l)
	}

	return StructListBuilder[B]{l: l, elem: o.Elem, caps: p.caps}, err
}

func (o StructList[R, B]) BuildPointer(p PointerBuilder) (StructListBuilder[B], error) {
	l, err := p.List()
	return StructListBuilder[B]{l: l, elem: o.Elem, caps: p.caps}, err
}

func (o StructList[R, B]) SetPointer(p PointerBuilder, r StructListReader[R]) error {
	b, err := o.InitPointer(p, int32(r.Len()))
	if err != nil {
		return err
	}

	for i := 0; i < r.Len(); i++ {
		err = multierr.Append(err, o.Elem.SetStruct(b.At(i), r.At(i)))
	}

	return err
}

type StructListReader[R any] struct {
	l    capnp.List
	elem FromStructReader[R]
	caps CapTableReader
}

func (r StructListReader[R]) Len() int { return r.l.Len() }

func (r StructListReader[R]) At(i int) R {
	return r.elem.ReadStruct(StructReader{s: r.l.Struct(i), caps: r.caps})
}

func (r StructListReader[R]) IndexMove(i uint32) R { return r.At(int(i)) }

func (r StructListReader[R]) Iter() *ListIter[R] {
	return NewListIter[R](r, uint32(r.Len()))
}

type StructListBuilder[B any] struct {
	l    capnp.List
	elem FromStructBuilder[B]
	caps *CapTable
}

func (b StructListBuilder[B]) Len() int { return b.l.Len() }

func (b StructListBuilder[B]) At(i int) B {
	return b.elem.BuildStruct(StructBuilder{s: b.l.Struct(i), caps: b.caps})
}

func (b StructListBuilder[B]) IndexMove(i uint32) B { return b.At(int(i)) }

/*
	Capability lists
*/

// CapabilityList is the Owned marker for List(T), where T is an
// interface type.
type CapabilityList struct{}

func (CapabilityList) ReadPointer(p PointerReader) (CapabilityListReader, error) {
	l, err := p.List()
	return CapabilityListReader{l: capnp.PointerList(l), caps: p.caps}, err
}

func (CapabilityList) InitPointer(p PointerBuilder, n int32) (CapabilityListBuilder, error) {
	l, err := capnp.NewPointerList(p.segment(), n)
	if err == nil {
		err = p.SetList(capnp.List(l))
	}

	return CapabilityListBuilder{l: l, caps: p.caps}, err
}

func (CapabilityList) BuildPointer(p PointerBuilder) (CapabilityListBuilder, error) {
	l, err := p.List()
	return CapabilityListBuilder{l: capnp.PointerList(l), caps: p.caps}, err
}

func (o CapabilityList) SetPointer(p PointerBuilder, r CapabilityListReader) error {
	b, err := o.InitPointer(p, int32(r.Len()))
	if err != nil {
		return err
	}

	for i := 0; i < r.Len(); i++ {
		c, e := r.At(i)
		if e == nil {
			e = b.Set(i, c)
		}
		err = multierr.Append(err, e)
	}

	return err
}

type CapabilityListReader struct {
	l    capnp.PointerList
	caps CapTableReader
}

func (r CapabilityListReader) Len() int { return r.l.Len() }

// At returns an owned reference to the i-th capability.
func (r CapabilityListReader) At(i int) (Client, error) {
	p, err := r.l.At(i)
	return PointerReader{p: p, err: err, caps: r.caps}.Capability()
}

// IndexMove returns an owned reference to the i-th capability.  Errors
// are reported by the returned client's calls.
func (r CapabilityListReader) IndexMove(i uint32) Client {
	c, err := r.At(int(i))
	if err != nil {
		return ErrorClient(err)
	}

	return c
}

func (r CapabilityListReader) Iter() *ListIter[Client] {
	return NewListIter[Client](r, uint32(r.Len()))
}

type CapabilityListBuilder struct {
	l    capnp.PointerList
	caps *CapTable
}

func (b CapabilityListBuilder) Len() int { return b.l.Len() }

// Set exports c into the message's table.  The table steals c.
func (b CapabilityListBuilder) Set(i int, c Client) error {
	slot := PointerBuilder{slot: listSlot{l: b.l, i: i}, caps: b.caps}
	return slot.SetCapability(c)
}

func (b CapabilityListBuilder) AsReader() CapabilityListReader {
	r := CapabilityListReader{l: b.l}
	if b.caps != nil {
		r.caps = b.caps
	}

	return r
}
