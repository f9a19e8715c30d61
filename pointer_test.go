package ocap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
)

func TestSchemaViolation(t *testing.T) {
	t.Parallel()

	/*
		Dereferencing a pointer whose wire tag disagrees with the
		expected type must fail locally with a schema violation.  The
		accessor never coerces the value.
	*/

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	// Text where a struct is expected.
	require.NoError(t, b.Raw().PointerField(2).SetText("not a struct"))

	// Struct where text is expected.
	_, err = b.Raw().PointerField(0).InitStruct(ocap.StructSize{Data: 1})
	require.NoError(t, err)

	r := b.AsReader()

	t.Run("Struct", func(t *testing.T) {
		_, err := r.StructField()
		require.Error(t, err, "should reject list pointer")
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation)
		assert.Equal(t, ocap.SchemaViolation, ocap.KindOf(err),
			"should report schema violation")
	})

	t.Run("Text", func(t *testing.T) {
		_, err := r.TextField()
		require.Error(t, err, "should reject struct pointer")
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation)
	})

	t.Run("List", func(t *testing.T) {
		_, err := r.Raw().PointerField(0).List()
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation,
			"should reject struct pointer")
	})

	t.Run("Capability", func(t *testing.T) {
		_, err := r.InterfaceField()
		assert.NoError(t, err, "null capability should not fail")

		_, err = r.Raw().PointerField(0).Capability()
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation,
			"should reject struct pointer")
	})

	t.Run("Builder", func(t *testing.T) {
		_, err := b.StructField()
		assert.ErrorIs(t, err, ocap.ErrSchemaViolation,
			"builder should reject list pointer")
	})
}

func TestPointerReader_Kind(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)
	require.NoError(t, b.SetTextField("text"))
	_, err = b.InitStructField()
	require.NoError(t, err)

	r := b.AsReader().Raw()
	assert.Equal(t, ocap.ListPointer, r.PointerField(0).Kind(), "text is a list")
	assert.Equal(t, ocap.StructPointer, r.PointerField(2).Kind())
	assert.Equal(t, ocap.NullPointer, r.PointerField(3).Kind())
	assert.True(t, r.PointerField(3).IsNull())
	assert.False(t, r.PointerField(0).IsNull())

	require.NoError(t, b.Raw().PointerField(0).Clear(), "should clear pointer")
	assert.True(t, r.PointerField(0).IsNull(), "cleared pointer should be null")
}

func TestEnum_notInSchema(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	b.SetEnumField(api.TestEnum_qux)
	e, err := b.AsReader().EnumField()
	require.NoError(t, err, "known enumerant should decode")
	assert.Equal(t, api.TestEnum_qux, e)
	assert.Equal(t, "qux", e.String())

	// Written by a newer schema.
	b.Raw().SetUint16(18, 42)

	_, err = b.AsReader().EnumField()
	require.Error(t, err, "unknown enumerant should fail")
	assert.ErrorIs(t, err, ocap.ErrNotInSchema)
	assert.Equal(t, ocap.SchemaViolation, ocap.KindOf(err),
		"should be reported as a schema violation")
	assert.Equal(t, "TestEnum(42)", api.TestEnum(42).String())
}

func TestStructBuilder_CopyDataFrom(t *testing.T) {
	t.Parallel()

	/*
		Copying from a smaller struct copies the common prefix, and
		zeroes the rest of the data section.
	*/

	msg, err := ocap.NewMessage()
	require.NoError(t, err)
	defer msg.Release()

	src, err := msg.Root().InitStruct(ocap.StructSize{Data: 1})
	require.NoError(t, err)
	src.SetUint64(0, 7)

	other, err := ocap.NewMessage()
	require.NoError(t, err)
	defer other.Release()

	dst, err := other.Root().InitStruct(ocap.StructSize{Data: 2})
	require.NoError(t, err)
	dst.SetUint64(8, 99)

	dst.CopyDataFrom(src.AsReader(), ocap.StructSize{Data: 2})
	assert.Equal(t, uint64(7), dst.Uint64(0), "should copy common prefix")
	assert.Zero(t, dst.Uint64(8), "should zero the remainder")
}
