// Package ocap provides typed, zero-copy views over Cap'n Proto messages,
// and the object-capability call machinery that rides on top of them.
//
// Schema-specific code (see api/demo) exposes a Reader and a
// Builder for every struct type.  Both are thin wrappers around the
// cursors in this package, which in turn borrow the underlying message
// buffer.  No field is ever copied into a Go-native structure unless
// the caller asks for it.
//
// Capabilities are represented by Client.  A Client may point to a
// local server (see package server), or to a promise for a capability
// that will only exist once some pending call returns.  Calls issued
// against such a promise are queued and delivered in order once the
// promise resolves.
package ocap

const Version = "0.1.0"
