package server

import (
	"context"
	"sync"

	"github.com/wetware/ocap"
)

// Method is a dispatch-table entry.  Generated code declares one per
// schema method, including the methods of inherited interfaces.
type Method struct {
	ocap.Method

	// ResultSize is the shape of the results struct, which is allocated
	// before the handler runs.
	ResultSize ocap.StructSize

	Impl func(context.Context, *Call) error
}

type methodKey struct {
	interfaceID uint64
	methodID    uint16
}

func keyOf(m ocap.Method) methodKey {
	return methodKey{interfaceID: m.InterfaceID, methodID: m.MethodID}
}

// Call is the server side of a method invocation.
type Call struct {
	ocap.Method

	params  ocap.StructReader
	results ocap.StructBuilder

	once    sync.Once
	release func()
}

// Params returns the call's parameters.  They are valid until the
// handler returns.
func (c *Call) Params() ocap.StructReader {
	return c.params
}

// Results returns the call's results, which have already been
// allocated.  The handler fills them in place.
func (c *Call) Results() ocap.StructBuilder {
	return c.results
}

// Go lets the server start dispatching the next call before the
// handler returns.  Handlers that wait on other calls should invoke Go
// first, or risk deadlock.  Calling Go more than once has no effect.
func (c *Call) Go() {
	c.once.Do(c.release)
}
