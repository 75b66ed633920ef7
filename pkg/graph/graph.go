package graph

import (
	"maps"
	"slices"
	"strings"
)

// Graph maps each visited package to its direct dependencies, in the order
// the metadata source declared them. Entries are recorded at first visit and
// never change afterwards; a package unknown to the source carries an empty
// list (a leaf).
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	deps map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Record stores pkg's direct-dependency list. The list is copied, and a nil
// or empty list is recorded as an empty one so leaves always report [].
// Recording a package again replaces its entry.
func (g *Graph) Record(pkg string, deps []string) {
	if len(deps) == 0 {
		g.deps[pkg] = []string{}
		return
	}
	g.deps[pkg] = slices.Clone(deps)
}

// Deps returns the recorded direct dependencies of pkg and whether pkg has
// an entry. The returned slice is the recorded list; callers must not
// modify it.
func (g *Graph) Deps(pkg string) ([]string, bool) {
	deps, ok := g.deps[pkg]
	return deps, ok
}

// Has reports whether pkg has a recorded entry.
func (g *Graph) Has(pkg string) bool {
	_, ok := g.deps[pkg]
	return ok
}

// IsLeaf reports whether pkg is recorded with no dependencies.
// Returns false for packages without an entry.
func (g *Graph) IsLeaf(pkg string) bool {
	deps, ok := g.deps[pkg]
	return ok && len(deps) == 0
}

// Packages returns all recorded package identifiers in sorted order.
// This is the iteration order consumers present to users.
func (g *Graph) Packages() []string {
	return slices.Sorted(maps.Keys(g.deps))
}

// Len returns the number of recorded packages.
func (g *Graph) Len() int { return len(g.deps) }

// EdgeCount returns the total number of recorded dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.deps {
		n += len(deps)
	}
	return n
}

// Cycle is a dependency path that begins and ends at the same package,
// in traversal order.
type Cycle []string

// String renders the cycle as an arrow-joined path, e.g. "A -> B -> A".
func (c Cycle) String() string {
	return strings.Join(c, " -> ")
}
