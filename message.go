package ocap

import (
	"capnproto.org/go/capnp/v3"
)

// Message owns a message arena and the capability table that goes with
// it.  Every cursor obtained from a Message borrows it, and MUST NOT be
// used after Release.
type Message struct {
	msg  *capnp.Message
	seg  *capnp.Segment
	caps CapTable
}

// NewMessage allocates an empty message.
func NewMessage() (*Message, error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, err
	}

	return &Message{msg: msg, seg: seg}, nil
}

// Raw returns the underlying message arena.
func (m *Message) Raw() *capnp.Message { return m.msg }

// CapTable returns the message's capability table.
func (m *Message) CapTable() *CapTable { return &m.caps }

// Root returns the root pointer slot, imbued with the message's table.
func (m *Message) Root() PointerBuilder {
	b := PointerBuilder{slot: rootSlot{msg: m.msg, seg: m.seg}}
	b.ImbueMut(&m.caps)
	return b
}

// RootReader returns a read-only view of the root pointer, imbued with
// the message's table.
func (m *Message) RootReader() PointerReader {
	p, err := m.msg.Root()
	r := PointerReader{p: p, err: err}
	r.Imbue(&m.caps)
	return r
}

// Seal freezes the capability table.  Data fields may still be
// written, but no further capabilities can be exported.
func (m *Message) Seal() {
	m.caps.Seal()
}

// Release drops the message's capabilities and recycles its arena.
func (m *Message) Release() {
	m.caps.Release()
	m.msg.Release()
}

// InitRoot allocates a fresh value at the root of m.
func InitRoot[B any](m *Message, o FromPointerBuilder[B]) (B, error) {
	return o.InitPointer(m.Root(), 0)
}

// ReadRoot resolves the root of m as a typed reader.
func ReadRoot[R any](m *Message, o FromPointerReader[R]) (R, error) {
	return o.ReadPointer(m.RootReader())
}

// SetRoot deep-copies r into the root of m.
func SetRoot[R any](m *Message, o SetPointerBuilder[R], r R) error {
	return o.SetPointer(m.Root(), r)
}

// TypedMessage is a message whose root has a known schema type.  It is
// parameterized by the type's Owned marker, so that containers of typed
// messages need not know anything else about the schema.
type TypedMessage[R, B any] struct {
	msg   *Message
	owned Owned[R, B]
}

// NewTypedMessage allocates an empty message whose root is described
// by owned.
func NewTypedMessage[R, B any](owned Owned[R, B]) (*TypedMessage[R, B], error) {
	msg, err := NewMessage()
	if err != nil {
		return nil, err
	}

	return &TypedMessage[R, B]{msg: msg, owned: owned}, nil
}

func (t *TypedMessage[R, B]) Message() *Message { return t.msg }

// Get returns a reader over the root.
func (t *TypedMessage[R, B]) Get() (R, error) {
	return ReadRoot[R](t.msg, t.owned)
}

// Init replaces the root with a fresh value.
func (t *TypedMessage[R, B]) Init() (B, error) {
	return InitRoot[B](t.msg, t.owned)
}

// Builder returns a builder over the existing root, allocating one if
// the root is null.
func (t *TypedMessage[R, B]) Builder() (B, error) {
	return t.owned.BuildPointer(t.msg.Root())
}

// Set deep-copies r into the root.
func (t *TypedMessage[R, B]) Set(r R) error {
	return SetRoot[R](t.msg, t.owned, r)
}

func (t *TypedMessage[R, B]) Release() {
	t.msg.Release()
}
