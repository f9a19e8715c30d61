// Package api contains the Cap'n Proto schemas exercised by this module.
//
// The accessors under ./demo are written against the ocap contracts
// rather than emitted by capnpc-go, and must be kept in sync with the
// schema by hand.  Field offsets are given in bytes (bits, for Bool),
// and pointer indices in declaration order.
package api
