package ir

import (
	"testing"

	"graphir/internal/source"
)

func TestSetOperandNoopWhenUnchanged(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	y := m.GetLiteralNumber(2)
	i := NewBinaryInst(OpAdd, x, y, AnyType())

	before := x.NumUsers()
	i.SetOperand(0, x)
	if x.NumUsers() != before {
		t.Fatalf("re-setting the same operand value should not touch the use list")
	}
}

func TestSetOperandPanicsOnIllegalOperand(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	param := NewParameter(f, ctx.Intern("arg0"), AnyType())
	i := NewLoadParamInst(param)

	notAParam := m.GetLiteralNumber(1)
	expectPanic(t, "LoadParamInst operand must be a Parameter", func() {
		i.SetOperand(0, notAParam)
	})
}

func TestRemoveOperandCompactsVector(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	a := m.GetLiteralNumber(1)
	b := m.GetLiteralNumber(2)
	c := m.GetLiteralNumber(3)
	i := NewCallInst(a, []Value{b, c}, AnyType())

	i.removeOperand(1)
	if i.NumOperands() != 2 {
		t.Fatalf("NumOperands() = %d, want 2", i.NumOperands())
	}
	if i.GetOperand(0) != Value(a) || i.GetOperand(1) != Value(c) {
		t.Fatalf("removeOperand should shift later operands down")
	}
	if b.NumUsers() != 0 {
		t.Fatalf("b should have no remaining users")
	}
}

func TestReplaceFirstOperandWithRewritesLowestMatchingSlot(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	z := m.GetLiteralNumber(9)
	i := NewBinaryInst(OpAdd, x, x, AnyType())

	i.replaceFirstOperandWith(x, z)
	if i.GetOperand(0) != Value(z) {
		t.Fatalf("first slot should be rewritten")
	}
	if i.GetOperand(1) != Value(x) {
		t.Fatalf("second slot should be untouched by a single replaceFirstOperandWith call")
	}
}

func TestReplaceFirstOperandWithPanicsWhenNotFound(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	y := m.GetLiteralNumber(2)
	z := m.GetLiteralNumber(3)
	i := NewUnaryInst(OpNegate, x, AnyType())

	expectPanic(t, "replaceFirstOperandWith with an absent producer", func() {
		i.replaceFirstOperandWith(y, z)
	})
}

func TestEraseOperandRemovesEveryMatchingSlotInOneCall(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	i := NewBinaryInst(OpAdd, x, x, AnyType())

	i.eraseOperand(x)
	if i.NumOperands() != 0 {
		t.Fatalf("NumOperands() = %d, want 0 after erasing every slot reading x", i.NumOperands())
	}
	if x.NumUsers() != 0 {
		t.Fatalf("x.NumUsers() = %d, want 0", x.NumUsers())
	}
	if x.HasUser(i) {
		t.Fatalf("x.HasUser(i) should be false once every slot reading x is erased")
	}
}

func TestEraseFromParentDrainsOwnOperandsAndUnlinks(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	bb := NewBasicBlock(f)
	x := m.GetLiteralNumber(1)
	i := NewUnaryInst(OpNegate, x, AnyType())
	bb.PushBack(i)

	i.eraseFromParent()

	if x.NumUsers() != 0 {
		t.Fatalf("x should have no users once its only reader is erased")
	}
	if i.Parent() != nil {
		t.Fatalf("erased instruction should be unlinked from its block")
	}
	if bb.NumInstructions() != 0 {
		t.Fatalf("block should be empty after erasing its only instruction")
	}
}

func TestPushOperandToleratesNilProducer(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)

	i := NewPhiInst([]Value{x, nil}, AnyType())
	if i.NumOperands() != 2 {
		t.Fatalf("NumOperands() = %d, want 2", i.NumOperands())
	}
	if i.GetOperand(0) != Value(x) {
		t.Fatalf("operand 0 should read x")
	}
	if i.GetOperand(1) != nil {
		t.Fatalf("operand 1 should be a null slot, not panic or carry a value")
	}
	if x.NumUsers() != 1 {
		t.Fatalf("x.NumUsers() = %d, want 1", x.NumUsers())
	}
}

func TestInsertBeforePlacesDetachedInstructionAheadOfAnchor(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	bb := NewBasicBlock(f)
	x := m.GetLiteralNumber(1)

	anchor := NewUnaryInst(OpNegate, x, AnyType())
	bb.PushBack(anchor)
	inserted := NewUnaryInst(OpLogicalNot, x, AnyType())

	inserted.InsertBefore(anchor)

	got := bb.Instructions()
	if len(got) != 2 || got[0] != inserted || got[1] != anchor {
		t.Fatalf("Instructions() = %v, want [inserted, anchor]", got)
	}
	if inserted.Parent() != bb {
		t.Fatalf("InsertBefore should set the inserted instruction's parent")
	}
}

func TestInsertAfterPlacesDetachedInstructionBehindAnchor(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	bb := NewBasicBlock(f)
	x := m.GetLiteralNumber(1)

	anchor := NewUnaryInst(OpNegate, x, AnyType())
	bb.PushBack(anchor)
	inserted := NewUnaryInst(OpLogicalNot, x, AnyType())

	inserted.InsertAfter(anchor)

	got := bb.Instructions()
	if len(got) != 2 || got[0] != anchor || got[1] != inserted {
		t.Fatalf("Instructions() = %v, want [anchor, inserted]", got)
	}
}

func TestMoveBeforeRelocatesAnAlreadyParentedInstruction(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	bb := NewBasicBlock(f)
	x := m.GetLiteralNumber(1)

	i1 := NewUnaryInst(OpNegate, x, AnyType())
	i2 := NewUnaryInst(OpLogicalNot, x, AnyType())
	i3 := NewUnaryInst(OpTypeof, x, AnyType())
	bb.PushBack(i1)
	bb.PushBack(i2)
	bb.PushBack(i3)

	i3.MoveBefore(i2)

	got := bb.Instructions()
	if len(got) != 3 || got[0] != i1 || got[1] != i3 || got[2] != i2 {
		t.Fatalf("Instructions() = %v, want [i1, i3, i2]", got)
	}
}

func TestBasicBlockRemoveUnlinksWithoutDestroying(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	f := NewFunction(m, ctx.Intern("f"), ES5Function, false, false, nil)
	bb := NewBasicBlock(f)
	x := m.GetLiteralNumber(1)
	i := NewUnaryInst(OpNegate, x, AnyType())
	bb.PushBack(i)

	bb.Remove(i)

	if bb.NumInstructions() != 0 {
		t.Fatalf("block should no longer contain i")
	}
	if i.Parent() != nil {
		t.Fatalf("removed instruction should report a nil parent")
	}
	if i.NumOperands() != 1 || i.GetOperand(0) != Value(x) {
		t.Fatalf("remove should not touch the instruction's own operands")
	}
	if x.NumUsers() != 1 {
		t.Fatalf("remove should not destroy the instruction, so x keeps its user")
	}
}

func TestNewInstructionLikeCopiesMetadataWithCallerOperands(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	y := m.GetLiteralNumber(2)
	src := NewBinaryInst(OpAdd, x, x, AnyType())
	src.SetLocation(&source.Location{})
	src.SetStatementIndex(7)

	clone := NewInstructionLike(src, BinaryInstKind, []Value{x, y})

	if clone.Kind() != BinaryInstKind {
		t.Fatalf("Kind() = %v, want BinaryInstKind", clone.Kind())
	}
	if clone.Type() != src.Type() {
		t.Fatalf("clone should share src's Type")
	}
	if clone.Location() != src.Location() {
		t.Fatalf("clone should share src's Location")
	}
	if clone.StatementIndex() != src.StatementIndex() {
		t.Fatalf("clone.StatementIndex() = %d, want %d", clone.StatementIndex(), src.StatementIndex())
	}
	if clone.GetOperand(0) != Value(x) || clone.GetOperand(1) != Value(y) {
		t.Fatalf("clone should carry the caller-supplied operands, not src's")
	}
}

func TestNewInstructionLikePanicsOnArityMismatch(t *testing.T) {
	ctx := newFakeContext()
	m := NewModule(ctx)
	x := m.GetLiteralNumber(1)
	src := NewUnaryInst(OpNegate, x, AnyType())

	expectPanic(t, "NewInstructionLike with the wrong number of operands", func() {
		NewInstructionLike(src, UnaryInstKind, []Value{x, x})
	})
}
