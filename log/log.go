//go:generate mockgen -source=log.go -destination=../internal/mock/log/log.go -package=mock_log

package log

import (
	"golang.org/x/exp/slog"
)

// Logger is used for logging by the dispatch system. Each method logs
// messages at a different level, but otherwise has the same semantics:
//
//   - Message is a human-readable description of the log event.
//   - Args is a sequenece of key, value pairs, where the keys must be strings
//     and the values may be any type.
//   - The methods may not block for long periods of time.
//
// This interface is designed such that it is satisfied by *slog.Logger.
type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

// ErrorReporter logs errors at a level that depends on their kind.
type ErrorReporter struct{ Logger }

// ReportError logs err.  Nil errors, canceled calls and closed streams
// are dropped.
func (log ErrorReporter) ReportError(err error, args ...any) {
	ev, ok := NewEvent(err, args...)
	if !ok {
		return
	}

	if log.Logger == nil {
		log.Logger = slog.Default()
	}

	ev.Log(log.Logger)
}
