package deps

import (
	"slices"

	"github.com/nugraph/nugraph/pkg/graph"
)

// Result holds the outputs of one Build run.
type Result struct {
	Root   string        // Identifier the traversal started from
	Graph  *graph.Graph  // Adjacency of every visited package
	Cycles []graph.Cycle // Back-edge paths in detection order
}

// builder carries the traversal state as one value: the visited set, the
// current DFS path, the graph under construction, and the cycles collected
// so far. One builder serves exactly one Build call.
type builder struct {
	src     Source
	logf    func(string, ...any)
	visited map[string]bool
	onPath  map[string]int // package -> index of its frame in path
	path    []string
	graph   *graph.Graph
	cycles  []graph.Cycle
}

// frame is one in-progress expansion on the explicit work stack. next is
// the index of the dependency to visit when the frame resumes.
type frame struct {
	pkg  string
	deps []string
	next int
}

// Build computes the transitive dependency graph reachable from root,
// together with every cycle encountered, using an iterative depth-first
// traversal. Dependencies are visited in the exact order the source
// declares them, so output is deterministic for a given source.
//
// Visit discipline, per package:
//   - already visited: skip; its graph entry was finalized earlier
//   - unknown to the source: record an empty list (leaf) and mark visited
//   - on the current path: a back-edge; record the cycle (sub-path from
//     the package's first occurrence, closed with the package itself),
//     mark visited, and do not descend again
//   - otherwise: record its list verbatim and descend left to right
//
// A package becomes visited when it is finalized, not when its expansion
// starts; in-progress packages are guarded by the path check. Marking the
// target of a back-edge visited means each cycle is reported once, at its
// first detection.
//
// Build never fails: unknown packages are leaves and cycles are data.
// Source construction errors (a malformed repository file, for instance)
// belong to the source and abort the resolution before Build runs.
func Build(root string, src Source, opts Options) *Result {
	opts = opts.WithDefaults()
	b := &builder{
		src:     src,
		logf:    opts.Logger,
		visited: make(map[string]bool),
		onPath:  make(map[string]int),
		graph:   graph.New(),
	}
	b.run(root)
	return &Result{Root: root, Graph: b.graph, Cycles: b.cycles}
}

// run drives the work stack until every expansion reachable from root has
// finished. Each iteration either descends into the top frame's next
// dependency or, when the frame is exhausted, pops it off the path and
// marks its package visited.
func (b *builder) run(root string) {
	var stack []*frame
	b.step(root, &stack)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.deps) {
			next := f.deps[f.next]
			f.next++
			b.step(next, &stack)
			continue
		}
		stack = stack[:len(stack)-1]
		b.path = b.path[:len(b.path)-1]
		delete(b.onPath, f.pkg)
		b.visited[f.pkg] = true
	}
}

// step performs one visit of pkg, pushing an expansion frame when pkg
// needs its dependencies walked.
func (b *builder) step(pkg string, stack *[]*frame) {
	if b.visited[pkg] {
		return
	}

	deps, ok := b.src.DirectDependencies(pkg)
	if !ok {
		b.logf("leaf: %s (unknown to source)", pkg)
		b.graph.Record(pkg, nil)
		b.visited[pkg] = true
		return
	}

	if start, on := b.onPath[pkg]; on {
		cycle := graph.Cycle(append(slices.Clone(b.path[start:]), pkg))
		b.logf("cycle: %s", cycle)
		b.cycles = append(b.cycles, cycle)
		b.graph.Record(pkg, deps)
		b.visited[pkg] = true
		return
	}

	b.logf("expand: %s (%d dependencies)", pkg, len(deps))
	b.onPath[pkg] = len(b.path)
	b.path = append(b.path, pkg)
	b.graph.Record(pkg, deps)
	*stack = append(*stack, &frame{pkg: pkg, deps: deps})
}
