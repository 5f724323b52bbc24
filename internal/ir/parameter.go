package ir

// Parameter is a formal parameter of a Function. A Parameter named
// "this" is never appended to the ordinary parameter list; it becomes
// the function's distinguished this-parameter instead.
type Parameter struct {
	valueBase

	name   Identifier
	parent *Function
}

// NewParameter creates a parameter named name and attaches it to
// parent: to parent's this-parameter slot if name's text is "this",
// otherwise appended to parent's ordinary parameter list.
func NewParameter(parent *Function, name Identifier, typ Type) *Parameter {
	p := &Parameter{valueBase: valueBase{kind: ParameterKind, typ: typ}, name: name, parent: parent}

	isThis := false
	if ctx := parent.GetContext(); ctx != nil {
		if s, ok := ctx.Lookup(name); ok && s == "this" {
			isThis = true
		}
	}

	if isThis {
		parent.setThisParameter(p)
	} else {
		parent.addParameter(p)
	}
	return p
}

func (p *Parameter) Name() Identifier { return p.name }
func (p *Parameter) Parent() *Function { return p.parent }

func (p *Parameter) IsThisParameter() bool {
	return p.parent != nil && p.parent.ThisParameter() == p
}

// GetIndexInParamList returns this parameter's position in its
// parent's ordinary parameter list. It panics if p is the
// this-parameter or is not found, both of which indicate the
// containment invariant has been violated.
func (p *Parameter) GetIndexInParamList() int {
	for idx, other := range p.parent.Parameters() {
		if other == p {
			return idx
		}
	}
	panic("graphir: parameter not found in its parent's parameter list")
}

func (p *Parameter) GetContext() Context {
	if p.parent == nil {
		return nil
	}
	return p.parent.GetContext()
}
