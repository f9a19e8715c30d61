package ctxutil_test

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctxutil "github.com/wetware/ocap/internal/util/ctx"
)

func TestWithSignals(t *testing.T) {
	t.Parallel()

	ctx, cancel := ctxutil.WithSignals(context.Background(), syscall.SIGUSR1)
	defer cancel()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("should expire on signal")
	}

	assert.EqualError(t, ctx.Err(), "signal received: user defined signal 1")
}

func TestWithSignals_cancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := ctxutil.WithSignals(context.Background(), syscall.SIGUSR2)
	cancel()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
