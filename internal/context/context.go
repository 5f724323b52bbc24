// Package context provides the concrete Context collaborator that
// every graph in internal/ir is anchored to: identifier interning,
// compile-option lookups and a conduit for diagnostics. It implements
// ir.Context.
package context

import (
	"graphir/internal/diag"
	"graphir/internal/ir"
)

type Context struct {
	names       *interner
	options     *Options
	Diagnostics *diag.Bag
}

// New creates a Context with the given compile options and a
// diagnostic bag capped at maxDiagnostics entries.
func New(options *Options, maxDiagnostics int) *Context {
	if options == nil {
		options = NewOptions()
	}
	return &Context{
		names:       newInterner(),
		options:     options,
		Diagnostics: diag.NewBag(maxDiagnostics),
	}
}

func (c *Context) Intern(s string) ir.Identifier {
	return ir.NewIdentifier(c.names.intern(s))
}

func (c *Context) Lookup(id ir.Identifier) (string, bool) {
	if !id.IsValid() {
		return "", false
	}
	return c.names.lookup(id.RawID())
}

func (c *Context) Option(name string) (string, bool) {
	return c.options.Get(name)
}
