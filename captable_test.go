package ocap_test

import (
	"context"
	"testing"

	"capnproto.org/go/capnp/v3"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetware/ocap"
	api "github.com/wetware/ocap/api/demo"
	mock_ocap "github.com/wetware/ocap/internal/mock/ocap"
)

func TestCapTable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mock_ocap.NewMockClientHook(ctrl)
	first.EXPECT().Shutdown().Times(1)

	second := mock_ocap.NewMockClientHook(ctrl)
	second.EXPECT().Shutdown().Times(1)

	var table ocap.CapTable

	id, err := table.Add(ocap.NewClient(first))
	require.NoError(t, err, "should add capability")
	assert.Equal(t, ocap.CapabilityID(0), id)

	id, err = table.Add(ocap.NewClient(second))
	require.NoError(t, err, "should add capability")
	assert.Equal(t, ocap.CapabilityID(1), id)
	assert.Equal(t, 2, table.Len())

	assert.True(t, table.At(1).IsValid(), "should return borrowed reference")
	assert.False(t, table.At(0).IsSame(table.At(1)),
		"distinct hooks should not compare equal")

	// Release calls Shutdown on each hook exactly once.
	table.Release()
}

func TestCapTable_sealed(t *testing.T) {
	t.Parallel()

	/*
		Adding to a sealed table must fail, and must release the
		client that the caller handed over.
	*/

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := mock_ocap.NewMockClientHook(ctrl)
	hook.EXPECT().Shutdown().Times(1)

	var table ocap.CapTable
	table.Seal()
	assert.True(t, table.Sealed())

	_, err := table.Add(ocap.NewClient(hook))
	require.Error(t, err, "should refuse capability")
	assert.Equal(t, ocap.Failed, ocap.KindOf(err))
	assert.Zero(t, table.Len())
}

func TestCapTable_outOfRange(t *testing.T) {
	t.Parallel()

	var table ocap.CapTable

	c := table.At(3)
	require.True(t, c.IsValid(), "should return error client, not null")
	defer c.Release()

	f, release := api.TestInterface(c).Bar(context.Background())
	defer release()

	err := f.Await(context.Background())
	require.Error(t, err, "call should fail")
	assert.Contains(t, err.Error(), "out of range")
}

// borrowCounter counts borrowed references handed out by a table.
type borrowCounter struct {
	*ocap.CapTable
	borrowed int
}

func (b *borrowCounter) At(id ocap.CapabilityID) ocap.Client {
	b.borrowed++
	return b.CapTable.At(id)
}

func TestPointerReader_Capability_outOfRange(t *testing.T) {
	t.Parallel()

	/*
		A capability pointer whose index is past the end of the
		table resolves to an owned error client, without borrowing
		from the table.
	*/

	_, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	require.NoError(t, err)

	table := &borrowCounter{CapTable: new(ocap.CapTable)}

	p := ocap.NewPointerReader(capnp.NewInterface(seg, 5).ToPtr())
	p.Imbue(table)

	c, err := p.Capability()
	require.NoError(t, err, "out-of-range index is a call-time failure")
	require.True(t, c.IsValid(), "should return error client, not null")
	assert.Zero(t, table.borrowed, "should not borrow from the table")

	f, release := api.TestInterface(c).Bar(context.Background())
	defer release()

	err = f.Await(context.Background())
	require.Error(t, err, "call should fail")
	assert.Equal(t, ocap.Failed, ocap.KindOf(err))
	assert.Contains(t, err.Error(), "out of range")

	c.Release()
}
