package ir

import (
	"container/list"
	"fmt"
	"math"
)

// GlobalObjectProperty records a property of the global object that
// some function in the Module reads or writes. It is a Value, not a
// bare record, because it joins the kind-dispatch world the rest of
// the graph does: Name is the interned LiteralString, not a raw
// Identifier (Parameter, Variable and Function, by contrast, hold their
// names as plain Identifiers). Declared is monotonic: once true (the property has a
// var/function declaration backing it) it never reverts to false.
type GlobalObjectProperty struct {
	valueBase

	Name     *LiteralString
	Declared bool

	module *Module
}

func (p *GlobalObjectProperty) GetContext() Context {
	if p.module == nil {
		return nil
	}
	return p.module.GetContext()
}

// CJSModule records a CommonJS module's wrapper Function at the index
// it was registered under.
type CJSModule struct {
	Function *Function
}

// Module is the top-level container: a list of Functions, the global
// property table, the literal-interning tables, and the lazily
// computed CommonJS module-use graph.
type Module struct {
	valueBase

	ctx Context

	functions *list.List
	funcElem  map[*Function]*list.Element

	globalFunction *Function

	globalProperties    map[Identifier]*GlobalObjectProperty
	globalPropertyOrder []*GlobalObjectProperty

	literalNumbers   map[uint64]*LiteralNumber
	literalStrings   map[Identifier]*LiteralString
	literalBoolTrue  *LiteralBool
	literalBoolFalse *LiteralBool

	internalNameCounters map[string]int

	cjsModules        []CJSModule
	cjsModuleUseGraph map[*Function]map[*Function]bool
	cjsGraphPopulated bool

	destroyLog []string
}

// NewModule creates an empty Module anchored to ctx. ctx supplies
// identifier interning and compile-option lookups for every Value this
// Module ends up owning.
func NewModule(ctx Context) *Module {
	m := &Module{
		valueBase:            valueBase{kind: ModuleKind},
		ctx:                  ctx,
		functions:            list.New(),
		funcElem:             make(map[*Function]*list.Element),
		globalProperties:     make(map[Identifier]*GlobalObjectProperty),
		literalNumbers:       make(map[uint64]*LiteralNumber),
		literalStrings:       make(map[Identifier]*LiteralString),
		internalNameCounters: make(map[string]int),
	}
	m.literalBoolTrue = &LiteralBool{valueBase: valueBase{kind: LiteralBoolKind, typ: MakeType(Boolean)}, value: true, module: m}
	m.literalBoolFalse = &LiteralBool{valueBase: valueBase{kind: LiteralBoolKind, typ: MakeType(Boolean)}, value: false, module: m}
	return m
}

func (m *Module) GetContext() Context { return m.ctx }

// --- function containment ---

func (m *Module) NumFunctions() int { return m.functions.Len() }

func (m *Module) Functions() []*Function {
	out := make([]*Function, 0, m.functions.Len())
	for e := m.functions.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Function))
	}
	return out
}

func (m *Module) pushFunction(f *Function) {
	e := m.functions.PushBack(f)
	m.funcElem[f] = e
	if f.isGlobal {
		m.setGlobalFunction(f)
	}
}

func (m *Module) insertFunctionBefore(f, before *Function) {
	anchor, ok := m.funcElem[before]
	if !ok {
		panic("graphir: insertBefore anchor is not in this module")
	}
	e := m.functions.InsertBefore(f, anchor)
	m.funcElem[f] = e
	if f.isGlobal {
		m.setGlobalFunction(f)
	}
}

func (m *Module) removeFunction(f *Function) {
	e, ok := m.funcElem[f]
	if !ok {
		panic("graphir: function is not in this module")
	}
	m.functions.Remove(e)
	delete(m.funcElem, f)
	if m.globalFunction == f {
		m.globalFunction = nil
	}
}

func (m *Module) setGlobalFunction(f *Function) {
	if m.globalFunction != nil && m.globalFunction != f {
		panic("graphir: module already has a global function")
	}
	m.globalFunction = f
}

func (m *Module) GlobalFunction() *Function { return m.globalFunction }

// --- unique internal names ---

// stripInternalNameSuffix removes a trailing " <digits>#" tail from s,
// exactly the grammar the counter-based re-suffixing below produces:
// a single space, one or more digits, then '#'. Any other trailing
// text, including a run of digits not preceded by exactly that space,
// is left untouched.
func stripInternalNameSuffix(s string) string {
	if len(s) == 0 || s[len(s)-1] != '#' {
		return s
	}
	j := len(s) - 1
	for j > 0 && s[j-1] >= '0' && s[j-1] <= '9' {
		j--
	}
	if j == len(s)-1 {
		return s // no digits between the space and '#'
	}
	if j == 0 || s[j-1] != ' ' {
		return s
	}
	return s[:j-1]
}

// deriveUniqueInternalName returns a name guaranteed unique within
// this Module among names ever derived from the same stripped base: the
// first request for a given base gets the base back unsuffixed, every
// later request gets "<base> <n>#" for an increasing n.
func (m *Module) deriveUniqueInternalName(candidate string) string {
	base := stripInternalNameSuffix(candidate)
	count, seen := m.internalNameCounters[base]
	if !seen {
		m.internalNameCounters[base] = 0
		return base
	}
	count++
	m.internalNameCounters[base] = count
	return fmt.Sprintf("%s %d#", base, count)
}

func (m *Module) deriveUniqueInternalNameFor(original Identifier) Identifier {
	s, ok := m.ctx.Lookup(original)
	if !ok {
		panic("graphir: original name is not interned in this module's context")
	}
	return m.ctx.Intern(m.deriveUniqueInternalName(s))
}

// --- global properties ---

func (m *Module) AddGlobalProperty(name Identifier, declared bool) *GlobalObjectProperty {
	if existing, ok := m.globalProperties[name]; ok {
		if declared {
			existing.Declared = true
		}
		return existing
	}
	prop := &GlobalObjectProperty{
		valueBase: valueBase{kind: GlobalObjectPropertyKind},
		Name:      m.GetLiteralString(name),
		Declared:  declared,
		module:    m,
	}
	m.globalProperties[name] = prop
	m.globalPropertyOrder = append(m.globalPropertyOrder, prop)
	return prop
}

func (m *Module) FindGlobalProperty(name Identifier) (*GlobalObjectProperty, bool) {
	p, ok := m.globalProperties[name]
	return p, ok
}

func (m *Module) EraseGlobalProperty(name Identifier) {
	prop, ok := m.globalProperties[name]
	if !ok {
		return
	}
	delete(m.globalProperties, name)
	for i, p := range m.globalPropertyOrder {
		if p == prop {
			m.globalPropertyOrder = append(m.globalPropertyOrder[:i], m.globalPropertyOrder[i+1:]...)
			break
		}
	}
}

func (m *Module) GlobalProperties() []*GlobalObjectProperty { return m.globalPropertyOrder }

// --- literal interning ---

func (m *Module) GetLiteralNumber(value float64) *LiteralNumber {
	bits := math.Float64bits(value)
	if lit, ok := m.literalNumbers[bits]; ok {
		return lit
	}
	lit := &LiteralNumber{
		valueBase: valueBase{kind: LiteralNumberKind, typ: MakeType(Number)},
		bits:      bits,
		module:    m,
	}
	m.literalNumbers[bits] = lit
	return lit
}

func (m *Module) GetLiteralString(value Identifier) *LiteralString {
	if lit, ok := m.literalStrings[value]; ok {
		return lit
	}
	lit := &LiteralString{
		valueBase: valueBase{kind: LiteralStringKind, typ: MakeType(String)},
		value:     value,
		module:    m,
	}
	m.literalStrings[value] = lit
	return lit
}

func (m *Module) GetLiteralBool(value bool) *LiteralBool {
	if value {
		return m.literalBoolTrue
	}
	return m.literalBoolFalse
}

// --- CommonJS module-use graph ---

func (m *Module) AddCJSModule(f *Function) int {
	idx := len(m.cjsModules)
	m.cjsModules = append(m.cjsModules, CJSModule{Function: f})
	return idx
}

func (m *Module) CJSModules() []CJSModule { return m.cjsModules }

// PopulateCJSModuleUseGraph computes, for every function, the set of
// functions it uses (calls, references, captures), indexed by the
// consuming function. It runs once per Module; later calls are no-ops.
func (m *Module) PopulateCJSModuleUseGraph() {
	if m.cjsGraphPopulated {
		return
	}
	m.cjsGraphPopulated = true
	m.cjsModuleUseGraph = make(map[*Function]map[*Function]bool)

	for e := m.functions.Front(); e != nil; e = e.Next() {
		f := e.Value.(*Function)
		for _, user := range f.Users() {
			block := user.Parent()
			if block == nil {
				continue
			}
			consumer := block.Parent()
			if consumer == nil {
				continue
			}
			set, ok := m.cjsModuleUseGraph[consumer]
			if !ok {
				set = make(map[*Function]bool)
				m.cjsModuleUseGraph[consumer] = set
			}
			set[f] = true
		}
	}
}

// GetFunctionsInSegment returns every function reachable, via the use
// graph, from the CJS modules registered at indices [first, last].
func (m *Module) GetFunctionsInSegment(first, last int) map[*Function]bool {
	m.PopulateCJSModuleUseGraph()

	result := make(map[*Function]bool)
	var worklist []*Function
	for idx := first; idx <= last && idx >= 0 && idx < len(m.cjsModules); idx++ {
		worklist = append(worklist, m.cjsModules[idx].Function)
	}

	for len(worklist) > 0 {
		f := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if result[f] {
			continue
		}
		result[f] = true
		for target := range m.cjsModuleUseGraph[f] {
			worklist = append(worklist, target)
		}
	}
	return result
}

// --- teardown ---

// Destroy tears the module down in the same order the original
// implementation does: functions first, then global properties, then
// interned literals, with the literals collected into a scratch slice
// before any of them are cleared so the clear isn't observed mid-walk.
// Go's garbage collector makes the ordering unnecessary for memory
// safety; it is preserved here because DestroyLog exposes it to tests
// that verify the containment/teardown contract, not because anything
// in this package still needs it for correctness.
func (m *Module) Destroy() {
	for e := m.functions.Front(); e != nil; e = e.Next() {
		m.destroyLog = append(m.destroyLog, "function")
	}
	m.functions.Init()
	m.funcElem = make(map[*Function]*list.Element)
	m.globalFunction = nil

	for range m.globalPropertyOrder {
		m.destroyLog = append(m.destroyLog, "global-property")
	}
	m.globalProperties = make(map[Identifier]*GlobalObjectProperty)
	m.globalPropertyOrder = nil

	var literals []Value
	for _, l := range m.literalNumbers {
		literals = append(literals, l)
	}
	for _, l := range m.literalStrings {
		literals = append(literals, l)
	}
	if m.literalBoolTrue != nil {
		literals = append(literals, m.literalBoolTrue)
	}
	if m.literalBoolFalse != nil {
		literals = append(literals, m.literalBoolFalse)
	}
	for range literals {
		m.destroyLog = append(m.destroyLog, "literal")
	}
	m.literalNumbers = make(map[uint64]*LiteralNumber)
	m.literalStrings = make(map[Identifier]*LiteralString)
	m.literalBoolTrue = nil
	m.literalBoolFalse = nil
}

// DestroyLog exposes the order Destroy tore the module's contents down
// in; it exists for tests that assert on that order.
func (m *Module) DestroyLog() []string { return m.destroyLog }
