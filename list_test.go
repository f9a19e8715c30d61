package ocap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/internal/demo"
)

type sliceList []int

func (l sliceList) IndexMove(i uint32) int { return l[i] }

func collect[T any](it *ocap.ListIter[T]) (ts []T) {
	for {
		t, ok := it.Next()
		if !ok {
			return
		}
		ts = append(ts, t)
	}
}

func TestListIter(t *testing.T) {
	t.Parallel()

	list := sliceList{3, 1, 4, 1, 5}

	it := ocap.NewListIter[int](list, uint32(len(list)))
	assert.Equal(t, 5, it.Len(), "should report remaining elements")

	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 3, first)
	assert.Equal(t, 4, it.Len(), "should decrease as elements are consumed")

	assert.Equal(t, []int{1, 4, 1, 5}, collect(it), "should yield elements in order")
	assert.Zero(t, it.Len(), "should be exhausted")

	_, ok = it.Next()
	assert.False(t, ok, "exhausted iterator should stay exhausted")

	t.Run("Restart", func(t *testing.T) {
		it := ocap.NewListIter[int](list, uint32(len(list)))
		assert.Equal(t, []int(list), collect(it),
			"fresh iterator should start from index 0")
	})

	t.Run("Empty", func(t *testing.T) {
		it := ocap.NewListIter[int](sliceList{}, 0)
		_, ok := it.Next()
		assert.False(t, ok, "empty list should yield nothing")
	})
}

func TestUInt64List(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	l, err := b.InitUInt64List(4)
	require.NoError(t, err)
	for i := 0; i < l.Len(); i++ {
		l.Set(i, uint64(i*i))
	}

	r, err := b.AsReader().UInt64List()
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, uint64(9), r.At(3))
	assert.Equal(t, []uint64{0, 1, 4, 9}, collect(r.Iter()))
}

func TestTextList(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	l, err := b.InitTextList(3)
	require.NoError(t, err)
	require.NoError(t, l.Set(0, "foo"))
	require.NoError(t, l.Set(2, "baz"))

	r, err := b.AsReader().TextList()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "", "baz"}, collect(r.Iter()),
		"unset elements should read as empty")

	s, err := r.At(2)
	require.NoError(t, err)
	assert.Equal(t, "baz", s)
}

func TestStructList(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	l, err := b.InitStructList(3)
	require.NoError(t, err)
	for i := 0; i < l.Len(); i++ {
		l.At(i).SetUInt32Field(uint32(i + 1))
		require.NoError(t, l.At(i).SetTextField(fmt.Sprint(i)))
	}

	r, err := b.AsReader().StructList()
	require.NoError(t, err)

	var got []uint32
	for _, s := range collect(r.Iter()) {
		got = append(got, s.UInt32Field())
	}
	assert.Equal(t, []uint32{1, 2, 3}, got)

	text, err := r.At(1).TextField()
	require.NoError(t, err)
	assert.Equal(t, "1", text, "elements should expose pointer fields")

	t.Run("Copy", func(t *testing.T) {
		dst := newTestMessage(t)
		defer dst.Release()

		db, err := dst.Init()
		require.NoError(t, err)
		require.NoError(t, api.TestAllTypes_List.SetPointer(db.Raw().PointerField(5), r))

		copied, err := db.AsReader().StructList()
		require.NoError(t, err)
		require.Equal(t, r.Len(), copied.Len())

		text, err := copied.At(2).TextField()
		require.NoError(t, err)
		assert.Equal(t, "2", text, "copy should include nested pointers")
	})
}

func TestCapabilityList(t *testing.T) {
	t.Parallel()

	msg := newTestMessage(t)
	defer msg.Release()

	b, err := msg.Init()
	require.NoError(t, err)

	c := api.TestInterface_ServerToClient(new(demo.TestInterface))
	defer c.Release()

	l, err := b.InitInterfaceList(2)
	require.NoError(t, err)
	require.NoError(t, l.Set(1, ocap.Client(c.AddRef())))
	assert.Equal(t, 1, msg.Message().CapTable().Len(),
		"capability should be exported into the table")

	r, err := b.AsReader().InterfaceList()
	require.NoError(t, err)

	clients := collect(r.Iter())
	require.Len(t, clients, 2)
	for _, client := range clients {
		defer client.Release()
	}

	assert.False(t, clients[0].IsValid(), "unset element should be null")
	assert.True(t, clients[1].IsSame(ocap.Client(c)),
		"element should refer to the exported capability")
}
