package ocap

import (
	"capnproto.org/go/capnp/v3"
)

// PointerKind is the wire tag of a pointer, as seen by an accessor.
// Far pointers are followed transparently by the arena, and are never
// observed here.
type PointerKind uint8

const (
	NullPointer PointerKind = iota
	StructPointer
	ListPointer
	CapabilityPointer
)

func (k PointerKind) String() string {
	switch k {
	case NullPointer:
		return "null"
	case StructPointer:
		return "struct"
	case ListPointer:
		return "list"
	case CapabilityPointer:
		return "capability"
	}

	return "unknown"
}

func kindOf(p capnp.Ptr) PointerKind {
	switch {
	case !p.IsValid():
		return NullPointer
	case p.Struct().IsValid():
		return StructPointer
	case p.List().IsValid():
		return ListPointer
	case p.Interface().IsValid():
		return CapabilityPointer
	}

	return NullPointer
}

// PointerReader is a read-only cursor onto a pointer slot.  Errors
// encountered while locating the slot are deferred until the pointer
// is resolved.
type PointerReader struct {
	p    capnp.Ptr
	err  error
	caps CapTableReader
}

// NewPointerReader wraps a raw pointer.
func NewPointerReader(p capnp.Ptr) PointerReader {
	return PointerReader{p: p}
}

// Imbue attaches the capability table of the message that r points into.
func (r *PointerReader) Imbue(caps CapTableReader) {
	r.caps = caps
}

// Raw returns the underlying pointer.
func (r PointerReader) Raw() (capnp.Ptr, error) { return r.p, r.err }

func (r PointerReader) IsNull() bool { return r.err == nil && !r.p.IsValid() }

// Kind returns the wire tag of the pointer.
func (r PointerReader) Kind() PointerKind { return kindOf(r.p) }

func (r PointerReader) expect(want PointerKind) error {
	if r.err != nil {
		return r.err
	}

	if got := kindOf(r.p); got != NullPointer && got != want {
		return schemaViolation("expected %s pointer, got %s", want, got)
	}

	return nil
}

// Struct resolves the pointer to a struct.  A null pointer yields the
// default (empty) struct.
func (r PointerReader) Struct() (StructReader, error) {
	if err := r.expect(StructPointer); err != nil {
		return StructReader{}, err
	}

	return StructReader{s: r.p.Struct(), caps: r.caps}, nil
}

// List resolves the pointer to a list.  A null pointer yields an
// empty list.
func (r PointerReader) List() (capnp.List, error) {
	if err := r.expect(ListPointer); err != nil {
		return capnp.List{}, err
	}

	return r.p.List(), nil
}

// Text resolves the pointer to a text blob.
func (r PointerReader) Text() (string, error) {
	if err := r.expect(ListPointer); err != nil {
		return "", err
	}

	return r.p.Text(), nil
}

// Data resolves the pointer to a data blob.  The returned slice aliases
// the message buffer.
func (r PointerReader) Data() ([]byte, error) {
	if err := r.expect(ListPointer); err != nil {
		return nil, err
	}

	return r.p.Data(), nil
}

// Capability resolves the pointer against the imbued capability table.
// The caller owns the returned reference.  A null pointer yields the
// null client.
func (r PointerReader) Capability() (Client, error) {
	if err := r.expect(CapabilityPointer); err != nil {
		return Client{}, err
	}

	if !r.p.IsValid() || r.caps == nil {
		return Client{}, nil
	}

	id := CapabilityID(r.p.Interface().Capability())
	if int(id) >= r.caps.Len() {
		return ErrorClient(Failedf("capability index %d out of range (table has %d entries)",
			id, r.caps.Len())), nil
	}

	return r.caps.At(id).AddRef(), nil
}

// Default resolves a null pointer to def, a framed message whose root
// is the schema-declared default value.  Non-null pointers, and all
// pointers when def is nil, are returned unchanged.  Defaults carry no
// capabilities.
func (r PointerReader) Default(def []byte) (PointerReader, error) {
	if !r.IsNull() || def == nil {
		return r, nil
	}

	p, err := defaultPtr(def)
	if err != nil {
		return PointerReader{}, err
	}

	return PointerReader{p: p}, nil
}

// TextDefault is like Text, but a null pointer yields def.
func (r PointerReader) TextDefault(def string) (string, error) {
	if r.IsNull() {
		return def, nil
	}

	return r.Text()
}

func defaultPtr(def []byte) (capnp.Ptr, error) {
	msg, err := capnp.Unmarshal(def)
	if err != nil {
		return capnp.Ptr{}, Failedf("decode default value: %w", err)
	}

	return msg.Root()
}

// PointerBuilder is a mutable cursor onto a pointer slot.  The slot may
// live in a struct, in a list of pointers, or at the message root.
type PointerBuilder struct {
	slot pointerSlot
	caps *CapTable
}

// ImbueMut attaches the mutable capability table of the message being
// built.
func (b *PointerBuilder) ImbueMut(caps *CapTable) {
	b.caps = caps
}

// AsReader returns a read-only view of the slot's current content.
func (b PointerBuilder) AsReader() PointerReader {
	var r PointerReader
	if b.slot != nil {
		r.p, r.err = b.slot.get()
	}

	if b.caps != nil {
		r.caps = b.caps
	}

	return r
}

func (b PointerBuilder) segment() *capnp.Segment {
	return b.slot.segment()
}

// Clear sets the slot to null.
func (b PointerBuilder) Clear() error {
	return b.slot.set(capnp.Ptr{})
}

// InitStruct allocates a zero-filled struct of the given size and
// points the slot at it.  Any previous value is orphaned.
func (b PointerBuilder) InitStruct(size StructSize) (StructBuilder, error) {
	s, err := capnp.NewStruct(b.segment(), size.ObjectSize())
	if err == nil {
		err = b.slot.set(s.ToPtr())
	}

	return StructBuilder{s: s, caps: b.caps}, err
}

// Struct returns a builder for the struct the slot points at.  A null
// slot is initialized with a fresh struct of the given size.
func (b PointerBuilder) Struct(size StructSize) (StructBuilder, error) {
	r := b.AsReader()
	if err := r.expect(StructPointer); err != nil {
		return StructBuilder{}, err
	}

	if r.IsNull() {
		return b.InitStruct(size)
	}

	return StructBuilder{s: r.p.Struct(), caps: b.caps}, nil
}

// SetList points the slot at l, which must belong to the same message.
func (b PointerBuilder) SetList(l capnp.List) error {
	return b.slot.set(l.ToPtr())
}

// List returns the list the slot points at.
func (b PointerBuilder) List() (capnp.List, error) {
	return b.AsReader().List()
}

func (b PointerBuilder) SetText(v string) error {
	if v == "" {
		return b.Clear()
	}

	l, err := capnp.NewText(b.segment(), v)
	if err != nil {
		return err
	}

	return b.slot.set(l.ToPtr())
}

func (b PointerBuilder) SetData(v []byte) error {
	if v == nil {
		return b.Clear()
	}

	l, err := capnp.NewData(b.segment(), v)
	if err != nil {
		return err
	}

	return b.slot.set(l.ToPtr())
}

// SetCapability exports c into the imbued capability table and points
// the slot at the new entry.  The table takes ownership of c.
func (b PointerBuilder) SetCapability(c Client) error {
	if !c.IsValid() {
		return b.Clear()
	}

	if b.caps == nil {
		c.Release()
		return Failedf("set capability: builder was not imbued with a capability table")
	}

	id, err := b.caps.Add(c)
	if err != nil {
		return err
	}

	iface := capnp.NewInterface(b.segment(), capnp.CapabilityID(id))
	return b.slot.set(iface.ToPtr())
}

// Default copies def into the slot if the slot is null, so that a
// schema-declared default can be modified in place.  It does nothing
// when def is nil or the slot is already set.
func (b PointerBuilder) Default(def []byte) error {
	if def == nil || !b.AsReader().IsNull() {
		return nil
	}

	p, err := defaultPtr(def)
	if err != nil {
		return err
	}

	return b.slot.set(p)
}

// pointerSlot abstracts over the places a pointer may be stored.
type pointerSlot interface {
	get() (capnp.Ptr, error)
	set(capnp.Ptr) error
	segment() *capnp.Segment
}

type structSlot struct {
	s capnp.Struct
	i uint16
}

func (slot structSlot) get() (capnp.Ptr, error) { return slot.s.Ptr(slot.i) }
func (slot structSlot) set(p capnp.Ptr) error   { return slot.s.SetPtr(slot.i, p) }
func (slot structSlot) segment() *capnp.Segment { return slot.s.Segment() }

type listSlot struct {
	l capnp.PointerList
	i int
}

func (slot listSlot) get() (capnp.Ptr, error) { return slot.l.At(slot.i) }
func (slot listSlot) set(p capnp.Ptr) error   { return slot.l.Set(slot.i, p) }
func (slot listSlot) segment() *capnp.Segment { return capnp.List(slot.l).Segment() }

type rootSlot struct {
	msg *capnp.Message
	seg *capnp.Segment
}

func (slot rootSlot) get() (capnp.Ptr, error) { return slot.msg.Root() }
func (slot rootSlot) set(p capnp.Ptr) error   { return slot.msg.SetRoot(p) }
func (slot rootSlot) segment() *capnp.Segment { return slot.seg }
