package ir

// Use is one operand slot: the producer Value being read, and the
// index of this particular slot within the producer's own user list.
// It is the bidirectional half of a use-def edge; the other half
// lives inside the consuming Instruction's operand vector.
type Use struct {
	Producer Value
	Index    int
}

// Value is satisfied by every node that can be read as an operand:
// literals, instructions, basic blocks (as branch targets), functions,
// modules, scopes, variables and parameters. base() is unexported so
// the set of implementors is closed to this package.
type Value interface {
	Kind() ValueKind
	Type() Type
	SetType(Type)
	Users() []*Instruction
	HasUser(*Instruction) bool
	HasOneUser() bool
	NumUsers() int
	GetContext() Context

	base() *valueBase
}

// valueBase carries the use-list bookkeeping shared by every concrete
// Value. It is embedded by value, never referenced directly by users
// of this package.
type valueBase struct {
	kind  ValueKind
	typ   Type
	users []*Instruction
}

func (vb *valueBase) Kind() ValueKind { return vb.kind }
func (vb *valueBase) Type() Type      { return vb.typ }
func (vb *valueBase) SetType(t Type)  { vb.typ = t }

// Users returns the instructions that read this value. Callers must
// not mutate the returned slice; it aliases the value's internal list.
func (vb *valueBase) Users() []*Instruction { return vb.users }

func (vb *valueBase) HasUser(inst *Instruction) bool {
	for _, u := range vb.users {
		if u == inst {
			return true
		}
	}
	return false
}

func (vb *valueBase) HasOneUser() bool { return len(vb.users) == 1 }
func (vb *valueBase) NumUsers() int    { return len(vb.users) }

func (vb *valueBase) base() *valueBase { return vb }

// addUser registers user as a reader of producer and returns the Use
// describing the new slot. It never fails: appending to a slice cannot
// run out of the index space a real ID-arena would have to guard.
func addUser(producer Value, user *Instruction) Use {
	b := producer.base()
	b.users = append(b.users, user)
	return Use{Producer: producer, Index: len(b.users) - 1}
}

// removeUse deletes u from its producer's user list in O(1) by
// swapping the last entry into u's slot and patching that moved
// user's own operand back-edge to point at the new slot.
func removeUse(u Use) {
	b := u.Producer.base()
	n := len(b.users)
	if u.Index < 0 || u.Index >= n {
		panic("graphir: corrupt use-list: index out of range")
	}

	lastIndex := n - 1
	moved := b.users[lastIndex]
	b.users[u.Index] = moved
	b.users = b.users[:lastIndex]

	if u.Index == lastIndex {
		return
	}

	for i, op := range moved.operands {
		if op.Producer == u.Producer && op.Index == lastIndex {
			moved.operands[i].Index = u.Index
			return
		}
	}
	panic("graphir: corrupt use-list: could not find back-edge to patch")
}

// ReplaceAllUsesWith rewrites every operand slot currently reading v so
// that it reads other instead, draining v's user list to empty. It is
// a no-op if v and other are the same Value.
func ReplaceAllUsesWith(v Value, other Value) {
	if v == other {
		return
	}
	b := v.base()
	for len(b.users) > 0 {
		last := b.users[len(b.users)-1]
		last.replaceFirstOperandWith(v, other)
	}
}

// RemoveAllUses erases every operand slot currently reading v, leaving
// v with no users.
func RemoveAllUses(v Value) {
	b := v.base()
	for len(b.users) > 0 {
		last := b.users[len(b.users)-1]
		last.eraseOperand(v)
	}
}

// Destroy switches on v's Kind and invokes the concrete teardown for
// it. Calling Destroy on nil is a no-op. The leaf kinds (literals,
// GlobalObjectProperty, Parameter, Variable, the scopes) own no
// outgoing containment edges of their own, so once severed from
// whatever held them there is nothing further to release.
func Destroy(v Value) {
	if v == nil {
		return
	}
	switch v.Kind() {
	case ModuleKind:
		v.(*Module).Destroy()
	case FunctionKind:
		v.(*Function).EraseFromParent()
	case BasicBlockKind:
		v.(*BasicBlock).EraseFromParent()
	case BinaryInstKind, UnaryInstKind, LoadParamInstKind, PhiInstKind,
		CallInstKind, ReturnInstKind, BranchInstKind, CondBranchInstKind:
		v.(*Instruction).eraseFromParent()
	case LiteralNumberKind, LiteralStringKind, LiteralBoolKind,
		GlobalObjectPropertyKind, ParameterKind, VariableKind,
		VariableScopeKind, ExternalScopeKind:
	default:
		panic("graphir: unknown ValueKind " + v.Kind().String() + " in Destroy dispatch")
	}
}
