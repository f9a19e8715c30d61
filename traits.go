package ocap

// The interfaces below are the contracts that schema-generated code
// implements.  Go has no static methods, so each schema type declares a
// zero-size marker (e.g. demo.TestAllTypes{}) that implements them and
// acts as a factory for the type's Reader and Builder views.  Generic
// code receives the marker as a value.

// FromStructReader constructs a typed reader from a raw struct cursor.
// It cannot fail: any struct, including the empty one, has a well-defined
// shape.
type FromStructReader[R any] interface {
	ReadStruct(StructReader) R
}

// FromStructBuilder constructs a typed builder from a raw struct cursor.
type FromStructBuilder[B any] interface {
	BuildStruct(StructBuilder) B
}

// HasStructSize reports the fixed shape of a struct type, which is
// needed to allocate new instances.
type HasStructSize interface {
	StructSize() StructSize
}

// FromPointerReader resolves a pointer to a typed reader.  It fails
// with a SchemaViolation when the pointer's tag does not match.
type FromPointerReader[R any] interface {
	ReadPointer(PointerReader) (R, error)
}

// FromPointerBuilder produces typed builders from pointer slots.
type FromPointerBuilder[B any] interface {
	// InitPointer allocates a new, zeroed value at the slot.  For
	// lists, size is the element count; structs ignore it.  Errors
	// only arise from the arena.
	InitPointer(b PointerBuilder, size int32) (B, error)

	// BuildPointer resolves the value already at the slot.  It fails
	// with a SchemaViolation when the pointer's tag does not match.
	BuildPointer(PointerBuilder) (B, error)
}

// FromPointerReaderDefault resolves pointer fields that declare a
// default value in the schema.  A null pointer reads as def, a framed
// message whose root is the default.
type FromPointerReaderDefault[R any] interface {
	ReadPointerDefault(p PointerReader, def []byte) (R, error)
}

// FromPointerBuilderDefault is the mutable counterpart of
// FromPointerReaderDefault.  A null slot is first initialized with a
// copy of def.
type FromPointerBuilderDefault[B any] interface {
	BuildPointerDefault(p PointerBuilder, def []byte) (B, error)
}

// SetPointerBuilder deep-copies a reader into a pointer slot, which may
// belong to another message.  Nested pointers are copied transitively;
// capabilities are re-exported into the destination's table, so that
// identity is preserved.
type SetPointerBuilder[R any] interface {
	SetPointer(PointerBuilder, R) error
}

// Imbue is implemented by read-only cursors that may dereference
// capability pointers.
type Imbue interface {
	Imbue(CapTableReader)
}

// ImbueMut is implemented by mutable cursors that may write capability
// pointers.
type ImbueMut interface {
	ImbueMut(*CapTable)
}

var (
	_ Imbue    = (*StructReader)(nil)
	_ Imbue    = (*PointerReader)(nil)
	_ ImbueMut = (*StructBuilder)(nil)
	_ ImbueMut = (*PointerBuilder)(nil)
)

// Owned binds a schema type's reader R and builder B, without tying
// either to a particular message.  Every reader can be copied into a
// builder slot.
type Owned[R, B any] interface {
	FromPointerReader[R]
	FromPointerBuilder[B]
	SetPointerBuilder[R]
}

// OwnedStruct is the struct-level counterpart of Owned.
type OwnedStruct[R, B any] interface {
	FromStructReader[R]
	FromStructBuilder[B]
	HasStructSize
	SetPointerBuilder[R]

	// SetStruct copies every field of src into dst.
	SetStruct(dst B, src R) error
}

// Pipelined is implemented by result types whose capability fields may
// be called before the result arrives.
type Pipelined[P any] interface {
	Pipeline(*Future) P
}

// HasTypeID reports the 64-bit id of a schema node.
type HasTypeID interface {
	TypeID() uint64
}

// ToU16 is implemented by enums.
type ToU16 interface {
	ToU16() uint16
}

// FromU16 decodes an enum.  Values outside the schema fail with
// ErrNotInSchema.
type FromU16[E any] interface {
	FromU16(uint16) (E, error)
}

// ReadStructPointer implements FromPointerReader for struct types.
func ReadStructPointer[R any](o FromStructReader[R], p PointerReader) (R, error) {
	s, err := p.Struct()
	if err != nil {
		var zero R
		return zero, err
	}

	return o.ReadStruct(s), nil
}

type structFactory[B any] interface {
	FromStructBuilder[B]
	HasStructSize
}

// InitStructPointer implements FromPointerBuilder.InitPointer for
// struct types.
func InitStructPointer[B any](o structFactory[B], p PointerBuilder) (B, error) {
	s, err := p.InitStruct(o.StructSize())
	if err != nil {
		var zero B
		return zero, err
	}

	return o.BuildStruct(s), nil
}

// BuildStructPointer implements FromPointerBuilder.BuildPointer for
// struct types.
func BuildStructPointer[B any](o structFactory[B], p PointerBuilder) (B, error) {
	s, err := p.Struct(o.StructSize())
	if err != nil {
		var zero B
		return zero, err
	}

	return o.BuildStruct(s), nil
}

// SetStructPointer implements SetPointerBuilder for struct types.
func SetStructPointer[R, B any](o OwnedStruct[R, B], p PointerBuilder, r R) error {
	b, err := InitStructPointer[B](o, p)
	if err != nil {
		return err
	}

	return o.SetStruct(b, r)
}

// ReadPointerDefault implements FromPointerReaderDefault in terms of o.
func ReadPointerDefault[R any](o FromPointerReader[R], p PointerReader, def []byte) (R, error) {
	d, err := p.Default(def)
	if err != nil {
		var zero R
		return zero, err
	}

	return o.ReadPointer(d)
}

// BuildPointerDefault implements FromPointerBuilderDefault in terms of o.
func BuildPointerDefault[B any](o FromPointerBuilder[B], p PointerBuilder, def []byte) (B, error) {
	if err := p.Default(def); err != nil {
		var zero B
		return zero, err
	}

	return o.BuildPointer(p)
}
