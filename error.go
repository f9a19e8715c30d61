package ocap

import (
	"context"
	"fmt"

	"capnproto.org/go/capnp/v3/exc"
	"github.com/pkg/errors"
)

// ErrSchemaViolation is reported when a pointer's wire tag does not match
// the statically expected type.  It is always detected locally, at access
// time, and is never silently coerced.
var ErrSchemaViolation = errors.New("schema violation")

// ErrNotInSchema is reported when an enumerant is out of range.
var ErrNotInSchema = errors.Wrap(ErrSchemaViolation, "enum value not in schema")

// Kind classifies errors surfaced by accessors and calls.
type Kind uint8

const (
	// OK is the kind of a nil error.
	OK Kind = iota
	Failed
	Overloaded
	Disconnected
	Unimplemented
	SchemaViolation
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Failed:
		return "failed"
	case Overloaded:
		return "overloaded"
	case Disconnected:
		return "disconnected"
	case Unimplemented:
		return "unimplemented"
	case SchemaViolation:
		return "schema violation"
	}

	return fmt.Sprintf("Kind(%d)", k)
}

// KindOf returns the kind of err.  Errors that carry no kind information
// are treated as Failed.  KindOf(nil) is OK.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}

	if errors.Is(err, ErrSchemaViolation) {
		return SchemaViolation
	}

	switch exc.TypeOf(err) {
	case exc.Overloaded:
		return Overloaded
	case exc.Disconnected:
		return Disconnected
	case exc.Unimplemented:
		return Unimplemented
	}

	return Failed
}

// Failedf reports a business-logic failure.
func Failedf(format string, args ...any) error {
	return newException(exc.Failed, format, args...)
}

// Unimplementedf reports a method that has no working implementation.
func Unimplementedf(format string, args ...any) error {
	return newException(exc.Unimplemented, format, args...)
}

// Overloadedf reports a call that was rejected for lack of resources.
func Overloadedf(format string, args ...any) error {
	return newException(exc.Overloaded, format, args...)
}

// Disconnectedf reports a capability whose target has gone away.
func Disconnectedf(format string, args ...any) error {
	return newException(exc.Disconnected, format, args...)
}

func newException(t exc.Type, format string, args ...any) error {
	return &exc.Exception{
		Type:  t,
		Cause: fmt.Errorf(format, args...),
	}
}

// annotate err with a prefix, preserving its kind.
func annotate(prefix string, err error) error {
	if errors.Is(err, ErrSchemaViolation) {
		return errors.Wrap(err, prefix)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &exc.Exception{Type: exc.Failed, Prefix: prefix, Cause: err}
	}

	return &exc.Exception{
		Type:   exc.TypeOf(err),
		Prefix: prefix,
		Cause:  err,
	}
}

func schemaViolation(format string, args ...any) error {
	return errors.Wrapf(ErrSchemaViolation, format, args...)
}
