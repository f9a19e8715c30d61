package log_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"

	"github.com/wetware/ocap"
	mock_log "github.com/wetware/ocap/internal/mock/log"
	"github.com/wetware/ocap/log"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		err   error
		level slog.Level
	}{
		{"Failed", ocap.Failedf("test"), slog.LevelError},
		{"SchemaViolation", fmt.Errorf("read: %w", ocap.ErrSchemaViolation), slog.LevelError},
		{"Overloaded", ocap.Overloadedf("test"), slog.LevelWarn},
		{"Unimplemented", ocap.Unimplementedf("test"), slog.LevelWarn},
		{"Disconnected", ocap.Disconnectedf("test"), slog.LevelDebug},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, ok := log.NewEvent(tt.err, "key", "value")
			assert.True(t, ok, "should report error")
			assert.Equal(t, tt.level, ev.Level)
			assert.Equal(t, tt.err.Error(), ev.Message)
			assert.Equal(t, []any{"kind", ocap.KindOf(tt.err), "key", "value"}, ev.Args)
		})
	}
}

func TestNewEvent_dropped(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		err  error
	}{
		{"Nil", nil},
		{"Canceled", fmt.Errorf("call: %w", context.Canceled)},
		{"EOF", ocap.Failedf("stream: %w", io.EOF)},
	} {
		_, ok := log.NewEvent(tt.err)
		assert.False(t, ok, "%s should not be reported", tt.name)
	}
}

func TestErrorReporter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mock_log.NewMockLogger(ctrl)
	gomock.InOrder(
		logger.EXPECT().
			Error(gomock.Any(), "kind", ocap.Failed, "method", "foo").
			Times(1),
		logger.EXPECT().
			Debug(gomock.Any(), "kind", ocap.Disconnected).
			Times(1),
	)

	r := log.ErrorReporter{Logger: logger}
	r.ReportError(ocap.Failedf("test"), "method", "foo")
	r.ReportError(nil)
	r.ReportError(ocap.Disconnectedf("gone"))
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	ev, _ := log.NewEvent(ocap.Overloadedf("busy"))
	assert.Contains(t, ev.String(), "WARN")
	assert.Contains(t, ev.String(), "busy")
}
