package ir

import (
	"container/list"
	"fmt"
)

// BasicBlock is an ordered, position-stable list of instructions. The
// list is backed by container/list so that insertBefore/insertAfter/
// moveBefore are O(1) once the anchor element is found, mirroring the
// intrusive linked list the collaborator this package models would use.
type BasicBlock struct {
	valueBase

	insts  *list.List
	elemOf map[*Instruction]*list.Element

	parent *Function
	serial int // assigned by the owning Function, for PrintAsOperand
}

func newBasicBlock() *BasicBlock {
	return &BasicBlock{
		valueBase: valueBase{kind: BasicBlockKind},
		insts:     list.New(),
		elemOf:    make(map[*Instruction]*list.Element),
	}
}

// NewBasicBlock creates a block and appends it to parent.
func NewBasicBlock(parent *Function) *BasicBlock {
	b := newBasicBlock()
	parent.addBlock(b)
	return b
}

func (b *BasicBlock) Parent() *Function { return b.parent }

func (b *BasicBlock) GetContext() Context {
	if b.parent == nil {
		return nil
	}
	return b.parent.GetContext()
}

// PrintAsOperand renders the identity-based operand syntax used when a
// block appears as a branch target: "BB#<serial>". Rendering a full
// textual instruction listing is outside this package's scope.
func (b *BasicBlock) PrintAsOperand() string {
	return fmt.Sprintf("BB#%d", b.serial)
}

func (b *BasicBlock) NumInstructions() int { return b.insts.Len() }

// Instructions returns the block's instructions in order.
func (b *BasicBlock) Instructions() []*Instruction {
	out := make([]*Instruction, 0, b.insts.Len())
	for e := b.insts.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Instruction))
	}
	return out
}

// GetTerminator returns the block's terminator, if its last
// instruction is one; otherwise nil.
func (b *BasicBlock) GetTerminator() *Instruction {
	back := b.insts.Back()
	if back == nil {
		return nil
	}
	inst := back.Value.(*Instruction)
	if !inst.IsTerminator() {
		return nil
	}
	return inst
}

// PushBack appends inst to the end of the block.
func (b *BasicBlock) PushBack(inst *Instruction) {
	e := b.insts.PushBack(inst)
	b.elemOf[inst] = e
	inst.parent = b
}

func (b *BasicBlock) insertBefore(inst, before *Instruction) {
	anchor, ok := b.elemOf[before]
	if !ok {
		panic("graphir: insertBefore anchor is not in this block")
	}
	e := b.insts.InsertBefore(inst, anchor)
	b.elemOf[inst] = e
	inst.parent = b
}

func (b *BasicBlock) insertAfter(inst, after *Instruction) {
	anchor, ok := b.elemOf[after]
	if !ok {
		panic("graphir: insertAfter anchor is not in this block")
	}
	e := b.insts.InsertAfter(inst, anchor)
	b.elemOf[inst] = e
	inst.parent = b
}

// remove unlinks inst from the block without destroying it.
func (b *BasicBlock) remove(inst *Instruction) {
	e, ok := b.elemOf[inst]
	if !ok {
		panic("graphir: remove: instruction is not in this block")
	}
	b.insts.Remove(e)
	delete(b.elemOf, inst)
	inst.parent = nil
}

// Remove is the public entry point for remove.
func (b *BasicBlock) Remove(inst *Instruction) { b.remove(inst) }

// Erase unlinks inst from the block and destroys it: every operand
// slot is nulled first. It panics if inst still has users; callers
// must drain inst's users via ReplaceAllUsesWith or RemoveAllUses first.
func (b *BasicBlock) Erase(inst *Instruction) {
	if inst.NumUsers() != 0 {
		panic("graphir: erasing an instruction that still has users")
	}
	inst.eraseFromParent()
}

// RemoveFromParent unlinks b from its Function without destroying it.
func (b *BasicBlock) RemoveFromParent() {
	if b.parent == nil {
		return
	}
	b.parent.removeBlock(b)
}

// EraseFromParent destroys every instruction in the block. Each one's
// users are drained with ReplaceAllUsesWith(front, nil) rather than
// removed outright, exactly as Function.EraseFromParent drains its
// blocks, so a surviving user elsewhere keeps the rest of its operand
// slots instead of losing arity; it just reads a null operand where
// front used to be. EraseFromParent then asserts the block itself has
// no users and unlinks it.
func (b *BasicBlock) EraseFromParent() {
	for b.insts.Len() > 0 {
		front := b.insts.Front().Value.(*Instruction)
		ReplaceAllUsesWith(front, nil)
		b.Erase(front)
	}
	if b.NumUsers() != 0 {
		panic("graphir: erasing a basic block that still has users")
	}
	b.RemoveFromParent()
}
