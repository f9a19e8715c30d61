package log

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"github.com/wetware/ocap"
)

// Event is a classified error, ready to be logged.
type Event struct {
	Level   slog.Level
	Message string
	Args    []any
}

// NewEvent classifies err.  The boolean is false if err should not be
// reported at all.
func NewEvent(err error, args ...any) (Event, bool) {
	if err == nil || errors.Is(err, context.Canceled) {
		return Event{}, false
	}

	kind := ocap.KindOf(err)
	ev := Event{
		Message: err.Error(),
		Args:    append([]any{"kind", kind}, args...),
	}

	switch kind {
	case ocap.Failed:
		if errors.Is(err, io.EOF) {
			return Event{}, false
		}
		ev.Level = slog.LevelError

	case ocap.SchemaViolation:
		ev.Level = slog.LevelError

	case ocap.Overloaded, ocap.Unimplemented:
		ev.Level = slog.LevelWarn

	case ocap.Disconnected:
		ev.Level = slog.LevelDebug

	default:
		ev.Level = slog.LevelInfo
	}

	return ev, true
}

// Log writes the event to log at the event's level.
func (ev Event) Log(log Logger) {
	switch ev.Level {
	case slog.LevelDebug:
		log.Debug(ev.Message, ev.Args...)
	case slog.LevelWarn:
		log.Warn(ev.Message, ev.Args...)
	case slog.LevelError:
		log.Error(ev.Message, ev.Args...)
	default:
		log.Info(ev.Message, ev.Args...)
	}
}

func (ev Event) String() string {
	return fmt.Sprintf("[ %s ][ %s ][ %v ]", ev.Level, ev.Message, ev.Args)
}
