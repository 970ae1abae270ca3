package lang

import (
	"maps"
	"slices"
)

// Context supplies binding values at render time.
//
// Lookups are exact and case-sensitive. A Context is read-only input to a
// render call; implementations need not be safe for concurrent mutation.
type Context interface {
	Lookup(name string) (string, bool)
}

// Bindings is a [Context] backed by a map.
type Bindings map[string]string

// Lookup implements [Context].
func (b Bindings) Lookup(name string) (string, bool) {
	v, ok := b[name]

	return v, ok
}

// Names returns the bound names in sorted order.
func (b Bindings) Names() []string {
	return slices.Sorted(maps.Keys(b))
}

// namer is implemented by contexts that can enumerate their names. It is
// used to suggest alternatives for unbound names.
type namer interface {
	Names() []string
}

// Empty is a [Context] with no bindings.
var Empty Context = Bindings(nil)
