package ir

import (
	"container/list"

	"graphir/internal/source"
)

// DefinitionKind classifies the JS-level function definition this
// Function was lowered from. The distilled containment spec names the
// field without enumerating it; this is a representative, closed list
// of JS function kinds.
type DefinitionKind uint8

const (
	ES5Function DefinitionKind = iota
	ES6Arrow
	ES6Method
	ES6Constructor
	GeneratorFunction
	GeneratorInnerFunction
	AsyncFunction
)

// Function is a Module-owned container of BasicBlocks, Parameters and
// ExternalScopes, with a distinguished this-parameter and exactly one
// function-local VariableScope.
type Function struct {
	valueBase

	blocks    *list.List
	blockElem map[*BasicBlock]*list.Element

	parameters     []*Parameter
	thisParameter  *Parameter
	externalScopes []*ExternalScope
	functionScope  *VariableScope

	originalName Identifier
	internalName Identifier

	definitionKind DefinitionKind
	strictMode     bool
	isGlobal       bool
	sourceRange    *source.Location

	parent          *Module
	nextBlockSerial int
}

// NewFunction creates a function named originalName and inserts it
// into parent: directly before before if non-nil (which must belong to
// parent and must not be the new function itself), otherwise appended
// to the end of parent's function list.
func NewFunction(parent *Module, originalName Identifier, kind DefinitionKind, strictMode, isGlobal bool, before *Function) *Function {
	f := &Function{
		valueBase:      valueBase{kind: FunctionKind},
		blocks:         list.New(),
		blockElem:      make(map[*BasicBlock]*list.Element),
		originalName:   originalName,
		definitionKind: kind,
		strictMode:     strictMode,
		isGlobal:       isGlobal,
		parent:         parent,
	}
	f.functionScope = &VariableScope{valueBase: valueBase{kind: VariableScopeKind}, owner: f}

	f.internalName = parent.deriveUniqueInternalNameFor(originalName)

	if before != nil {
		if before.parent != parent {
			panic("graphir: insertBefore target does not belong to the same module")
		}
		if before == f {
			panic("graphir: a function cannot be inserted before itself")
		}
		parent.insertFunctionBefore(f, before)
	} else {
		parent.pushFunction(f)
	}
	return f
}

func (f *Function) Parent() *Module            { return f.parent }
func (f *Function) OriginalName() Identifier   { return f.originalName }
func (f *Function) InternalName() Identifier   { return f.internalName }
func (f *Function) DefinitionKind() DefinitionKind { return f.definitionKind }
func (f *Function) IsStrictMode() bool         { return f.strictMode }
func (f *Function) IsGlobal() bool             { return f.isGlobal }
func (f *Function) SourceRange() *source.Location { return f.sourceRange }
func (f *Function) SetSourceRange(l *source.Location) { f.sourceRange = l }

func (f *Function) FunctionScope() *VariableScope     { return f.functionScope }
func (f *Function) Parameters() []*Parameter          { return f.parameters }
func (f *Function) ThisParameter() *Parameter         { return f.thisParameter }
func (f *Function) ExternalScopes() []*ExternalScope   { return f.externalScopes }

func (f *Function) GetContext() Context {
	if f.parent == nil {
		return nil
	}
	return f.parent.GetContext()
}

func (f *Function) addParameter(p *Parameter)         { f.parameters = append(f.parameters, p) }
func (f *Function) setThisParameter(p *Parameter)     { f.thisParameter = p }
func (f *Function) addExternalScope(es *ExternalScope) {
	f.externalScopes = append(f.externalScopes, es)
}

func (f *Function) NumBlocks() int { return f.blocks.Len() }

// Blocks returns the function's basic blocks in order.
func (f *Function) Blocks() []*BasicBlock {
	out := make([]*BasicBlock, 0, f.blocks.Len())
	for e := f.blocks.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*BasicBlock))
	}
	return out
}

func (f *Function) addBlock(b *BasicBlock) {
	e := f.blocks.PushBack(b)
	f.blockElem[b] = e
	b.parent = f
	b.serial = f.nextBlockSerial
	f.nextBlockSerial++
}

func (f *Function) removeBlock(b *BasicBlock) {
	e, ok := f.blockElem[b]
	if !ok {
		panic("graphir: block is not in this function")
	}
	f.blocks.Remove(e)
	delete(f.blockElem, b)
	b.parent = nil
}

// EraseFromParent destroys every block in the function (draining each
// one's instructions first). A block's users — branch and conditional
// branch instructions targeting it — are drained with
// ReplaceAllUsesWith(front, nil) rather than removed outright, so a
// surviving branch elsewhere keeps its other operand slots and just
// reads a null target where front used to be. EraseFromParent then
// asserts the function itself has no users and unlinks it from its
// Module.
func (f *Function) EraseFromParent() {
	for f.blocks.Len() > 0 {
		front := f.blocks.Front().Value.(*BasicBlock)
		ReplaceAllUsesWith(front, nil)
		front.EraseFromParent()
	}
	if f.NumUsers() != 0 {
		panic("graphir: erasing a function that still has users")
	}
	f.parent.removeFunction(f)
}
