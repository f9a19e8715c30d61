package ocap

// CapabilityID is the index of a capability in a message's table.
type CapabilityID uint32

// CapTableReader is the read-only face of a capability table, handed
// to cursors that only read a message.
type CapTableReader interface {
	Len() int

	// At returns a borrowed reference to the id-th capability.  The
	// caller MUST NOT release it; use AddRef to obtain an owned copy.
	At(CapabilityID) Client
}

// CapTable maps the capability indices stored inline in a message to
// live clients.  A table belongs to exactly one message.  It is only
// mutated while that message is being built; Seal makes it read-only.
//
// A CapTable is not safe for concurrent mutation.
type CapTable struct {
	caps   []Client
	sealed bool
}

var _ CapTableReader = (*CapTable)(nil)

func (t *CapTable) Len() int {
	return len(t.caps)
}

// At returns a borrowed reference to the id-th capability.  An index
// that is out of range yields a client whose calls fail.
func (t *CapTable) At(id CapabilityID) Client {
	if int(id) >= len(t.caps) {
		return ErrorClient(Failedf("capability index %d out of range (table has %d entries)",
			id, len(t.caps)))
	}

	return t.caps[id]
}

// Add exports c into the table, and returns its index.  The table
// steals the caller's reference, even when Add fails.
func (t *CapTable) Add(c Client) (CapabilityID, error) {
	if t.sealed {
		c.Release()
		return 0, Failedf("capability table is sealed")
	}

	t.caps = append(t.caps, c)
	return CapabilityID(len(t.caps) - 1), nil
}

// Seal marks the table read-only.  It is called when the owning
// message is sent.
func (t *CapTable) Seal() {
	t.sealed = true
}

func (t *CapTable) Sealed() bool {
	return t.sealed
}

// Release drops every reference held by the table.
func (t *CapTable) Release() {
	for _, c := range t.caps {
		c.Release()
	}

	t.caps = nil
}
