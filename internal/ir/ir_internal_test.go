package ir

import "testing"

// fakeContext is a minimal Context good enough to drive the package's
// own tests without depending on internal/context (which imports this
// package, so pulling it in from here would be a cycle).
type fakeContext struct {
	names []string
	index map[string]int
	opts  map[string]string
}

func newFakeContext() *fakeContext {
	return &fakeContext{index: make(map[string]int), opts: make(map[string]string)}
}

func (f *fakeContext) Intern(s string) Identifier {
	if idx, ok := f.index[s]; ok {
		return NewIdentifier(uint32(idx))
	}
	idx := len(f.names)
	f.names = append(f.names, s)
	f.index[s] = idx
	return NewIdentifier(uint32(idx))
}

func (f *fakeContext) Lookup(id Identifier) (string, bool) {
	if !id.IsValid() {
		return "", false
	}
	idx := int(id.RawID())
	if idx < 0 || idx >= len(f.names) {
		return "", false
	}
	return f.names[idx], true
}

func (f *fakeContext) Option(name string) (string, bool) {
	v, ok := f.opts[name]
	return v, ok
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected a panic, got none", what)
		}
	}()
	fn()
}
