package ir

import "strings"

// TypeKind is one bit in the Type lattice.
type TypeKind uint32

const (
	Undefined TypeKind = 1 << iota
	Null
	Boolean
	String
	Number
	BigInt
	Closure
	RegExp
	Object
	Array
	Uninit
	Environment
	Empty

	lastTypeKindBit = Empty
)

var typeKindNames = []struct {
	bit  TypeKind
	name string
}{
	{Undefined, "undefined"},
	{Null, "null"},
	{Boolean, "boolean"},
	{String, "string"},
	{Number, "number"},
	{BigInt, "bigint"},
	{Closure, "closure"},
	{RegExp, "regexp"},
	{Object, "object"},
	{Array, "array"},
	{Uninit, "uninit"},
	{Environment, "environment"},
	{Empty, "empty"},
}

// Type is a bitmask over TypeKind: a symbolic approximation of the set
// of concrete runtime types a Value might hold, refined monotonically
// as analyses narrow it.
type Type struct {
	bits TypeKind
}

func MakeType(bits TypeKind) Type { return Type{bits: bits} }

// AnyType returns the type representing every known kind, the top of
// the lattice.
func AnyType() Type {
	var all TypeKind
	for _, e := range typeKindNames {
		all |= e.bit
	}
	return Type{bits: all}
}

// NoType returns the bottom of the lattice: a value that can hold no
// runtime type, reached only by analyses that prove a code path dead.
func NoType() Type { return Type{} }

func (t Type) Is(k TypeKind) bool { return t.bits&k == k }
func (t Type) IsAny() bool        { return t == AnyType() }
func (t Type) IsNoType() bool     { return t.bits == 0 }

func (t Type) IsClosureType() bool { return t.Is(Closure) }
func (t Type) IsRegExpType() bool  { return t.Is(RegExp) }
func (t Type) IsObjectType() bool  { return t.Is(Object) }

func (t Type) Union(other Type) Type     { return Type{bits: t.bits | other.bits} }
func (t Type) Intersect(other Type) Type { return Type{bits: t.bits & other.bits} }

func (t Type) Equals(other Type) bool { return t.bits == other.bits }

// String renders the set bits joined with "|", in declaration order.
// The Object bit is suppressed when Closure or RegExp is set, since
// both are always-object subtypes and naming Object alongside them is
// redundant.
func (t Type) String() string {
	if t.IsNoType() {
		return "notype"
	}
	suppressObject := t.IsClosureType() || t.IsRegExpType()

	var parts []string
	for _, e := range typeKindNames {
		if !t.Is(e.bit) {
			continue
		}
		if e.bit == Object && suppressObject {
			continue
		}
		parts = append(parts, e.name)
	}
	return strings.Join(parts, "|")
}
