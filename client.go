//go:generate mockgen -destination=internal/mock/ocap/ocap.go -package=mock_ocap github.com/wetware/ocap ClientHook

package ocap

import (
	"context"
	"fmt"

	"zenhack.net/go/util/rc"
)

// ClientHook is the behavior behind a Client: a local server, a
// promised capability, or a broken reference.
type ClientHook interface {
	// Send delivers a call.  The hook takes ownership of the call's
	// argument message.  Send MUST NOT block on the call's completion,
	// and calls sent through the same hook are delivered in order.
	Send(context.Context, Call) *Answer

	// Brand reports the interfaces the hook is known to implement, or
	// nil if it cannot tell.
	Brand() Brand

	// Shutdown is called once the last Client referencing the hook is
	// released.
	Shutdown()
}

// Client is a reference-counted reference to a capability.  The zero
// value is the null client: calls to it fail.
//
// Each Client value owns one reference.  Use AddRef to make another,
// and Release exactly once per reference.
type Client struct {
	ref *rc.Ref[ClientHook]
}

// NewClient wraps h in a Client that owns the only reference to it.
func NewClient(h ClientHook) Client {
	return Client{ref: rc.NewRef(h, h.Shutdown)}
}

// ErrorClient returns a client whose calls all fail with err.
func ErrorClient(err error) Client {
	return NewClient(&errorHook{err: err})
}

// IsValid reports whether c is not the null client.
func (c Client) IsValid() bool {
	return c.ref != nil
}

// AddRef returns a new reference to the same capability.
func (c Client) AddRef() Client {
	if c.ref == nil {
		return Client{}
	}

	return Client{ref: c.ref.AddRef()}
}

// Release drops the reference held by c.
func (c Client) Release() {
	if c.ref != nil {
		c.ref.Release()
	}
}

// IsSame reports whether c and other refer to the same capability.
func (c Client) IsSame(other Client) bool {
	if c.ref == nil || other.ref == nil {
		return c.ref == other.ref
	}

	return c.hook() == other.hook()
}

// Brand returns the interfaces c is known to implement.
func (c Client) Brand() Brand {
	if c.ref == nil {
		return nil
	}

	return c.hook().Brand()
}

// SendCall delivers call to the capability.  The client takes
// ownership of the call's arguments, even if the call fails.
func (c Client) SendCall(ctx context.Context, call Call) *Answer {
	if c.ref == nil {
		call.ReleaseArgs()
		return RejectedAnswer(call.Method, Failedf("call %s on null client", call.Method))
	}

	return c.hook().Send(ctx, call)
}

func (c Client) String() string {
	if c.ref == nil {
		return "Client(null)"
	}

	return fmt.Sprintf("Client(%T)", c.hook())
}

func (c Client) hook() ClientHook {
	return *c.ref.Value()
}

// Brand is the set of interface ids implemented by a capability,
// including every interface it inherits from.
type Brand []uint64

// Implements reports whether id is in the brand.
func (b Brand) Implements(id uint64) bool {
	for _, x := range b {
		if x == id {
			return true
		}
	}

	return false
}

// Narrow converts c to a more specific interface.  The returned client
// shares c's reference.  If c is known not to implement the interface,
// Narrow fails with a SchemaViolation and c is left untouched.  Clients
// of unknown brand, such as unresolved promises, are narrowed
// optimistically.
func Narrow(c Client, interfaceID uint64) (Client, error) {
	if b := c.Brand(); b != nil && !b.Implements(interfaceID) {
		return Client{}, schemaViolation("%s does not implement interface @%#x", c, interfaceID)
	}

	return c, nil
}

// Method identifies a method of an interface.
type Method struct {
	InterfaceID   uint64
	MethodID      uint16
	InterfaceName string
	MethodName    string
}

func (m Method) String() string {
	if m.InterfaceName == "" {
		return fmt.Sprintf("@%#x.@%d", m.InterfaceID, m.MethodID)
	}

	return m.InterfaceName + "." + m.MethodName
}

// Call is a method invocation in flight.  Args is imbued with the
// argument message's capability table.
type Call struct {
	Method Method
	Args   StructReader

	msg *Message
}

// NewCall reads the arguments from the root of msg.  The call takes
// ownership of msg.
func NewCall(m Method, msg *Message) (Call, error) {
	args, err := msg.RootReader().Struct()
	if err != nil {
		msg.Release()
		return Call{}, annotate(m.String(), err)
	}

	msg.Seal()
	return Call{Method: m, Args: args, msg: msg}, nil
}

// ReleaseArgs releases the argument message, and every capability it
// carries.  Args MUST NOT be used afterwards.
func (c Call) ReleaseArgs() {
	if c.msg != nil {
		c.msg.Release()
	}
}

// Request is an outgoing call whose arguments are being built.
type Request struct {
	client Client
	method Method
	msg    *Message
	args   StructBuilder
}

// NewRequest allocates an argument struct for a call to m on c.  The
// request borrows c, which must stay alive until Send returns.
func NewRequest(c Client, m Method, size StructSize) (*Request, error) {
	msg, err := NewMessage()
	if err != nil {
		return nil, err
	}

	args, err := msg.Root().InitStruct(size)
	if err != nil {
		msg.Release()
		return nil, err
	}

	return &Request{
		client: c,
		method: m,
		msg:    msg,
		args:   args,
	}, nil
}

// Args returns a builder for the call's parameters.
func (r *Request) Args() StructBuilder {
	return r.args
}

func (r *Request) Method() Method {
	return r.method
}

// Send seals the arguments and delivers the call.  The request MUST
// NOT be used afterwards.  The caller is responsible for calling the
// returned ReleaseFunc once it is done with the results.
func (r *Request) Send(ctx context.Context) (*Future, ReleaseFunc) {
	r.msg.Seal()
	call := Call{
		Method: r.method,
		Args:   r.args.AsReader(),
		msg:    r.msg,
	}
	r.msg = nil

	ans := r.client.SendCall(ctx, call)
	return ans.Future(), ans.Release
}

// Release discards a request that was never sent.
func (r *Request) Release() {
	if r.msg != nil {
		r.msg.Release()
		r.msg = nil
	}
}

// Send builds a call to m with params, and sends it.  A nil params
// sends the empty struct.  It is the building block for typed call
// methods.
func Send[P any](ctx context.Context, c Client, m Method, size StructSize, fp FromStructBuilder[P], params func(P) error) (*Future, ReleaseFunc) {
	req, err := NewRequest(c, m, size)
	if err != nil {
		ans := RejectedAnswer(m, annotate(m.String(), err))
		return ans.Future(), ans.Release
	}

	if params != nil {
		if err = params(fp.BuildStruct(req.Args())); err != nil {
			req.Release()
			ans := RejectedAnswer(m, annotate(m.String(), err))
			return ans.Future(), ans.Release
		}
	}

	return req.Send(ctx)
}

type errorHook struct{ err error }

func (h *errorHook) Send(_ context.Context, call Call) *Answer {
	call.ReleaseArgs()
	return RejectedAnswer(call.Method, h.err)
}

func (h *errorHook) Brand() Brand { return nil }
func (h *errorHook) Shutdown()    {}
