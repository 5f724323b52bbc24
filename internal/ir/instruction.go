package ir

import (
	"strconv"

	"graphir/internal/source"
)

// Instruction is the single concrete representation for every opcode
// in the catalog: behavior that would otherwise require per-opcode
// subclassing (name, side effect, which operands it writes, whether a
// given value may occupy a given slot) is looked up in the dispatch
// tables in instrs.go, keyed by Kind(). This package only owns the
// operand vector and the containment/use-def plumbing; the catalog of
// opcodes is a collaborator the dispatch tables model, not a
// requirement this struct bakes in.
type Instruction struct {
	valueBase

	operands       []Use
	location       *source.Location
	statementIndex int

	// binaryOp/unaryOp are only meaningful when kind is BinaryInstKind
	// or UnaryInstKind respectively; every other kind leaves them zero.
	binaryOp BinaryOperator
	unaryOp  UnaryOperator

	parent *BasicBlock
}

func newInstruction(kind ValueKind, typ Type) *Instruction {
	return &Instruction{valueBase: valueBase{kind: kind, typ: typ}}
}

func (i *Instruction) Location() *source.Location    { return i.location }
func (i *Instruction) SetLocation(l *source.Location) { i.location = l }
func (i *Instruction) StatementIndex() int            { return i.statementIndex }
func (i *Instruction) SetStatementIndex(n int)        { i.statementIndex = n }
func (i *Instruction) Parent() *BasicBlock            { return i.parent }

func (i *Instruction) GetContext() Context {
	if i.parent == nil {
		return nil
	}
	return i.parent.GetContext()
}

func (i *Instruction) IsTerminator() bool { return i.kind.IsTerminator() }

// NumOperands and GetOperand give read access to the operand vector.
func (i *Instruction) NumOperands() int { return len(i.operands) }

func (i *Instruction) GetOperand(index int) Value {
	return i.operands[index].Producer
}

// pushOperand appends a null slot, then calls setOperand on it. Routing
// through setOperand rather than addUser directly means a nil v (an
// unset Phi operand, say) lands as a null slot instead of panicking on
// a nil Value's base().
func (i *Instruction) pushOperand(v Value) {
	i.operands = append(i.operands, Use{})
	i.setOperand(len(i.operands)-1, v)
}

// setOperand overwrites operand slot index with v. It is a no-op if v
// is already in that slot. It panics if v is non-nil and not a legal
// occupant of the slot per the kind's canSetOperand rule; a nil v
// always bypasses that check, since nulling a slot out (the shape a
// drained producer's surviving users are left in) is legal regardless
// of kind.
func (i *Instruction) setOperand(index int, v Value) {
	old := i.operands[index]
	if old.Producer == v {
		return
	}
	if v != nil && !canSetOperand(i.kind, index, v) {
		panic("graphir: illegal operand for " + i.kind.String() + " at index " + strconv.Itoa(index))
	}
	if old.Producer != nil {
		removeUse(old)
	}
	if v != nil {
		i.operands[index] = addUser(v, i)
	} else {
		i.operands[index] = Use{}
	}
}

// SetOperand is the public entry point; it exists so callers outside
// this package can rewrite an operand slot the same way setOperand does.
func (i *Instruction) SetOperand(index int, v Value) { i.setOperand(index, v) }

// PushOperand is the public entry point for pushOperand.
func (i *Instruction) PushOperand(v Value) { i.pushOperand(v) }

// removeOperand deletes the operand at index, compacting the vector.
// Indices of later operands shift down by one. It nulls the slot via
// setOperand first so an already-null slot (left behind by a drained
// producer) is handled the same way as a live one.
func (i *Instruction) removeOperand(index int) {
	i.setOperand(index, nil)
	i.operands = append(i.operands[:index], i.operands[index+1:]...)
}

// RemoveOperand is the public entry point for removeOperand.
func (i *Instruction) RemoveOperand(index int) { i.removeOperand(index) }

// replaceFirstOperandWith rewrites the first operand slot reading
// oldValue so that it reads newValue instead. It panics if oldValue is
// not among this instruction's operands, which would mean the use-def
// chain is already corrupt.
func (i *Instruction) replaceFirstOperandWith(oldValue, newValue Value) {
	for idx, op := range i.operands {
		if op.Producer == oldValue {
			i.setOperand(idx, newValue)
			return
		}
	}
	panic("graphir: invalid use-def chain: operand not found")
}

// ReplaceFirstOperandWith is the public entry point for
// replaceFirstOperandWith.
func (i *Instruction) ReplaceFirstOperandWith(oldValue, newValue Value) {
	i.replaceFirstOperandWith(oldValue, newValue)
}

// eraseOperand removes every operand slot reading v in a single pass,
// unregistering each one's use and compacting the vector so v has no
// remaining operand slots and no remaining use of this instruction. It
// panics if no slot reads v, or if v still lists this instruction as a
// user afterwards.
func (i *Instruction) eraseOperand(v Value) {
	found := false
	kept := i.operands[:0]
	for idx, op := range i.operands {
		if op.Producer == v {
			removeUse(op)
			i.operands[idx] = Use{}
			found = true
			continue
		}
		kept = append(kept, op)
	}
	if !found {
		panic("graphir: invalid use-def chain: operand not found")
	}
	i.operands = kept
	if v.HasUser(i) {
		panic("graphir: corrupt use-list: erased operand still lists its user")
	}
}

// EraseOperand is the public entry point for eraseOperand.
func (i *Instruction) EraseOperand(v Value) { i.eraseOperand(v) }

// insertBefore moves this (currently detached) instruction into other's
// block, directly before other.
func (i *Instruction) insertBefore(other *Instruction) {
	other.parent.insertBefore(i, other)
}

// InsertBefore is the public entry point for insertBefore.
func (i *Instruction) InsertBefore(other *Instruction) { i.insertBefore(other) }

// insertAfter moves this (currently detached) instruction into other's
// block, directly after other.
func (i *Instruction) insertAfter(other *Instruction) {
	other.parent.insertAfter(i, other)
}

// InsertAfter is the public entry point for insertAfter.
func (i *Instruction) InsertAfter(other *Instruction) { i.insertAfter(other) }

// moveBefore relocates this instruction, which must already be in some
// block, to directly before other.
func (i *Instruction) moveBefore(other *Instruction) {
	i.removeFromParent()
	other.parent.insertBefore(i, other)
}

// MoveBefore is the public entry point for moveBefore.
func (i *Instruction) MoveBefore(other *Instruction) { i.moveBefore(other) }

// removeFromParent unlinks the instruction from its block without
// destroying it; its operands and users are left untouched.
func (i *Instruction) removeFromParent() {
	if i.parent == nil {
		return
	}
	i.parent.remove(i)
}

// RemoveFromParent is the public entry point for removeFromParent.
func (i *Instruction) RemoveFromParent() { i.removeFromParent() }

// eraseFromParent nulls every operand (releasing this instruction's
// uses of its producers) and unlinks it from its block. It does not
// touch this instruction's own user list; callers that want to destroy
// a still-used instruction must call ReplaceAllUsesWith or
// RemoveAllUses first.
func (i *Instruction) eraseFromParent() {
	for len(i.operands) > 0 {
		last := i.operands[len(i.operands)-1]
		if last.Producer != nil {
			removeUse(last)
		}
		i.operands = i.operands[:len(i.operands)-1]
	}
	i.removeFromParent()
}

// EraseFromParent is the public entry point for eraseFromParent.
func (i *Instruction) EraseFromParent() { i.eraseFromParent() }
