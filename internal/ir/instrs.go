package ir

// SideEffectKind is a reduced lattice of the effect an instruction may
// have on the surrounding program. The real opcode catalog this
// package treats as an external collaborator tracks finer-grained
// flags (may-read-property, may-throw, may-execute-generator, ...);
// this module only needs enough fidelity to exercise the dispatch
// table shape its analyses rely on.
type SideEffectKind uint8

const (
	SideEffectNone SideEffectKind = iota
	SideEffectMayReadMemory
	SideEffectMayWriteMemory
	SideEffectMayExecuteAnything
)

// BinaryOperator enumerates the binary opcodes this catalog supports.
type BinaryOperator uint8

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpEqual
	OpNotEqual
	OpLessThan
)

// UnaryOperator enumerates the unary opcodes this catalog supports.
type UnaryOperator uint8

const (
	OpNegate UnaryOperator = iota
	OpLogicalNot
	OpTypeof
)

var instNames = map[ValueKind]string{
	BinaryInstKind:     "BinaryOperator",
	UnaryInstKind:      "UnaryOperator",
	LoadParamInstKind:  "LoadParam",
	PhiInstKind:        "Phi",
	CallInstKind:       "Call",
	ReturnInstKind:     "Return",
	BranchInstKind:     "Branch",
	CondBranchInstKind: "CondBranch",
}

var instSideEffects = map[ValueKind]SideEffectKind{
	BinaryInstKind:     SideEffectNone,
	UnaryInstKind:      SideEffectNone,
	LoadParamInstKind:  SideEffectNone,
	PhiInstKind:        SideEffectNone,
	CallInstKind:       SideEffectMayExecuteAnything,
	ReturnInstKind:     SideEffectNone,
	BranchInstKind:     SideEffectNone,
	CondBranchInstKind: SideEffectNone,
}

// instChangedOperands is a bitset, one bit per operand index, marking
// operands the instruction writes through rather than merely reads.
// None of the opcodes in this catalog write through an operand; the
// table is wired up for opcodes that would.
var instChangedOperands = map[ValueKind]uint32{
	BinaryInstKind:     0,
	UnaryInstKind:      0,
	LoadParamInstKind:  0,
	PhiInstKind:        0,
	CallInstKind:       0,
	ReturnInstKind:     0,
	BranchInstKind:     0,
	CondBranchInstKind: 0,
}

// GetName looks up the catalog name for kind.
func GetName(kind ValueKind) string {
	name, ok := instNames[kind]
	if !ok {
		panic("graphir: unknown instruction kind " + kind.String())
	}
	return name
}

// GetSideEffect looks up the side effect for kind.
func GetSideEffect(kind ValueKind) SideEffectKind {
	se, ok := instSideEffects[kind]
	if !ok {
		panic("graphir: unknown instruction kind " + kind.String())
	}
	return se
}

// GetChangedOperands looks up the changed-operand bitset for kind.
func GetChangedOperands(kind ValueKind) uint32 {
	bits, ok := instChangedOperands[kind]
	if !ok {
		panic("graphir: unknown instruction kind " + kind.String())
	}
	return bits
}

// CanSetOperand is the per-opcode operand legality predicate: whether
// v may legally occupy operand slot index of an instruction of kind.
func CanSetOperand(kind ValueKind, index int, v Value) bool {
	return canSetOperand(kind, index, v)
}

func canSetOperand(kind ValueKind, index int, v Value) bool {
	if v == nil {
		return false
	}
	switch kind {
	case BinaryInstKind:
		return index == 0 || index == 1
	case UnaryInstKind:
		return index == 0
	case LoadParamInstKind:
		return index == 0 && v.Kind() == ParameterKind
	case PhiInstKind:
		return index >= 0
	case CallInstKind:
		return index >= 0
	case ReturnInstKind:
		return index == 0
	case BranchInstKind:
		return index == 0 && v.Kind() == BasicBlockKind
	case CondBranchInstKind:
		if index == 0 {
			return true
		}
		return (index == 1 || index == 2) && v.Kind() == BasicBlockKind
	}
	panic("graphir: unknown instruction kind " + kind.String())
}

// NewInstructionLike is the copy-construct variant: it builds a new
// Instruction of kind (ordinarily src.Kind(), though a caller
// rewriting an opcode in place may supply a different one), carrying
// src's Type, Location and StatementIndex, with operands supplied by
// the caller. operands must match src's arity.
func NewInstructionLike(src *Instruction, kind ValueKind, operands []Value) *Instruction {
	if len(operands) != src.NumOperands() {
		panic("graphir: NewInstructionLike: invalid number of operands")
	}
	i := newInstruction(kind, src.Type())
	i.location = src.location
	i.statementIndex = src.statementIndex
	i.binaryOp = src.binaryOp
	i.unaryOp = src.unaryOp
	for _, v := range operands {
		i.pushOperand(v)
	}
	return i
}

// NewBinaryInst builds a binary operator instruction.
func NewBinaryInst(op BinaryOperator, lhs, rhs Value, typ Type) *Instruction {
	i := newInstruction(BinaryInstKind, typ)
	i.binaryOp = op
	i.pushOperand(lhs)
	i.pushOperand(rhs)
	return i
}

// NewUnaryInst builds a unary operator instruction.
func NewUnaryInst(op UnaryOperator, operand Value, typ Type) *Instruction {
	i := newInstruction(UnaryInstKind, typ)
	i.unaryOp = op
	i.pushOperand(operand)
	return i
}

// NewLoadParamInst builds an instruction reading a Parameter's value.
func NewLoadParamInst(param *Parameter) *Instruction {
	i := newInstruction(LoadParamInstKind, param.Type())
	i.pushOperand(param)
	return i
}

// NewPhiInst builds a phi instruction with one incoming value per
// predecessor, in predecessor-list order.
func NewPhiInst(incoming []Value, typ Type) *Instruction {
	i := newInstruction(PhiInstKind, typ)
	for _, v := range incoming {
		i.pushOperand(v)
	}
	return i
}

// NewCallInst builds a call instruction: operand 0 is the callee,
// the rest are arguments in order.
func NewCallInst(callee Value, args []Value, typ Type) *Instruction {
	i := newInstruction(CallInstKind, typ)
	i.pushOperand(callee)
	for _, a := range args {
		i.pushOperand(a)
	}
	return i
}

// NewReturnInst builds a terminator returning value.
func NewReturnInst(value Value) *Instruction {
	i := newInstruction(ReturnInstKind, NoType())
	i.pushOperand(value)
	return i
}

// NewBranchInst builds an unconditional-branch terminator.
func NewBranchInst(target *BasicBlock) *Instruction {
	i := newInstruction(BranchInstKind, NoType())
	i.pushOperand(target)
	return i
}

// NewCondBranchInst builds a conditional-branch terminator.
func NewCondBranchInst(cond Value, trueBB, falseBB *BasicBlock) *Instruction {
	i := newInstruction(CondBranchInstKind, NoType())
	i.pushOperand(cond)
	i.pushOperand(trueBB)
	i.pushOperand(falseBB)
	return i
}

func (i *Instruction) BinaryOperator() BinaryOperator { return i.binaryOp }
func (i *Instruction) UnaryOperator() UnaryOperator   { return i.unaryOp }
