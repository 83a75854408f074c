package dag

import (
	"fmt"
	"slices"
)

// Graph maps header keys to their records and remembers the order in which
// headers were discovered.
type Graph struct {
	records map[string]*Record
	order   []string
	sealed  bool
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		records: make(map[string]*Record),
	}
}

// Add registers r. Registering the same key twice, or any key after Seal,
// is an error.
func (g *Graph) Add(r *Record) error {
	if g.sealed {
		return fmt.Errorf("%w: cannot add %q", ErrSealed, r.Key)
	}
	if _, ok := g.records[r.Key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateHeader, r.Key)
	}
	g.records[r.Key] = r
	g.order = append(g.order, r.Key)
	return nil
}

// Seal marks the end of the build phase.
func (g *Graph) Seal() {
	g.sealed = true
}

// Has reports whether key is registered.
func (g *Graph) Has(key string) bool {
	_, ok := g.records[key]
	return ok
}

// Record returns the record for key.
func (g *Graph) Record(key string) (*Record, bool) {
	r, ok := g.records[key]
	return r, ok
}

// Keys returns every registered key in discovery order.
func (g *Graph) Keys() []string {
	return slices.Clone(g.order)
}

// Len returns the number of registered headers.
func (g *Graph) Len() int {
	return len(g.order)
}

// DependsOn reports whether a includes b directly.
func (g *Graph) DependsOn(a, b string) bool {
	r, ok := g.records[a]
	if !ok {
		return false
	}
	return slices.Contains(r.Deps, b)
}
