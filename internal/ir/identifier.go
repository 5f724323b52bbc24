package ir

// Identifier is an interned-string handle minted by a Context. Two
// identifiers minted by the same Context compare equal with == iff the
// underlying strings are equal; identifiers from different Contexts
// must never be compared.
type Identifier struct {
	id    uint32
	valid bool
}

// NewIdentifier is called only by a Context implementation to mint an
// Identifier backed by interner index id.
func NewIdentifier(id uint32) Identifier {
	return Identifier{id: id, valid: true}
}

func (n Identifier) IsValid() bool {
	return n.valid
}

// RawID exposes the interner index backing this Identifier. It exists
// for Context implementations that need to map an Identifier back to
// its interned string; ordinary callers should never need it.
func (n Identifier) RawID() uint32 {
	return n.id
}

// Context is the external collaborator that every Module, Function and
// Instruction is ultimately anchored to: it interns identifier strings
// and resolves compile options. The textual printer, the graph viewer
// and the front-end that populates source locations live on the other
// side of this interface and are not part of this package.
type Context interface {
	Intern(s string) Identifier
	Lookup(id Identifier) (string, bool)
	Option(name string) (string, bool)
}
