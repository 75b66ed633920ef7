package deps

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/nugraph/nugraph/pkg/graph"
)

// mapSource is a Source backed by a plain map, with per-package lookup
// counting so tests can assert how often the builder consulted it.
type mapSource struct {
	deps    map[string][]string
	lookups map[string]int
}

func newMapSource(deps map[string][]string) *mapSource {
	return &mapSource{deps: deps, lookups: make(map[string]int)}
}

func (s *mapSource) DirectDependencies(pkg string) ([]string, bool) {
	s.lookups[pkg]++
	deps, ok := s.deps[pkg]
	return deps, ok
}

func wantGraph(t *testing.T, g *graph.Graph, want map[string][]string) {
	t.Helper()

	if g.Len() != len(want) {
		t.Errorf("Graph.Len() = %d, want %d (packages %v)", g.Len(), len(want), g.Packages())
	}
	for pkg, wantDeps := range want {
		got, ok := g.Deps(pkg)
		if !ok {
			t.Errorf("Deps(%s) missing, want %v", pkg, wantDeps)
			continue
		}
		if !reflect.DeepEqual(got, wantDeps) {
			t.Errorf("Deps(%s) = %v, want %v", pkg, got, wantDeps)
		}
	}
}

func TestBuildCycle(t *testing.T) {
	// A -> B
	// B -> A   (back-edge)
	src := newMapSource(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	res := Build("A", src, Options{})

	wantGraph(t, res.Graph, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	wantCycles := []graph.Cycle{{"A", "B", "A"}}
	if !reflect.DeepEqual(res.Cycles, wantCycles) {
		t.Errorf("Cycles = %v, want %v", res.Cycles, wantCycles)
	}
}

func TestBuildDiamond(t *testing.T) {
	//     A
	//    / \
	//   B   C
	//    \ /
	//     D   (undeclared: leaf)
	src := newMapSource(map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
	})

	res := Build("A", src, Options{})

	wantGraph(t, res.Graph, map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
	})

	if len(res.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", res.Cycles)
	}
	if src.lookups["D"] != 1 {
		t.Errorf("lookups[D] = %d, want 1 (shared node expanded once)", src.lookups["D"])
	}
}

func TestBuildLeafRule(t *testing.T) {
	src := newMapSource(map[string][]string{
		"A": {"B"},
	})

	res := Build("A", src, Options{})

	deps, ok := res.Graph.Deps("B")
	if !ok {
		t.Fatal("Deps(B) missing, want empty entry")
	}
	if len(deps) != 0 {
		t.Errorf("Deps(B) = %v, want []", deps)
	}
}

func TestBuildRootUnknown(t *testing.T) {
	src := newMapSource(map[string][]string{})

	res := Build("GHOST", src, Options{})

	wantGraph(t, res.Graph, map[string][]string{
		"GHOST": {},
	})
	if len(res.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", res.Cycles)
	}
}

func TestBuildRecordsListVerbatim(t *testing.T) {
	// Duplicate tokens and declaration order must survive into the graph.
	src := newMapSource(map[string][]string{
		"A": {"C", "B", "C"},
	})

	res := Build("A", src, Options{})

	got, _ := res.Graph.Deps("A")
	want := []string{"C", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deps(A) = %v, want %v", got, want)
	}
}

func TestBuildDuplicateBackEdgeReportedOnce(t *testing.T) {
	// A -> B
	// B -> A A   (two tokens, one back-edge report)
	src := newMapSource(map[string][]string{
		"A": {"B"},
		"B": {"A", "A"},
	})

	res := Build("A", src, Options{})

	wantCycles := []graph.Cycle{{"A", "B", "A"}}
	if !reflect.DeepEqual(res.Cycles, wantCycles) {
		t.Errorf("Cycles = %v, want %v", res.Cycles, wantCycles)
	}
}

func TestBuildCycleClosedAtFirstDetection(t *testing.T) {
	// A -> B C, B -> A, C -> A. The back-edge through B finalizes A, so the
	// later edge C -> A is a plain revisit, not a second cycle.
	src := newMapSource(map[string][]string{
		"A": {"B", "C"},
		"B": {"A"},
		"C": {"A"},
	})

	res := Build("A", src, Options{})

	wantCycles := []graph.Cycle{{"A", "B", "A"}}
	if !reflect.DeepEqual(res.Cycles, wantCycles) {
		t.Errorf("Cycles = %v, want %v", res.Cycles, wantCycles)
	}
	wantGraph(t, res.Graph, map[string][]string{
		"A": {"B", "C"},
		"B": {"A"},
		"C": {"A"},
	})
}

func TestBuildInnerCycle(t *testing.T) {
	// A -> B -> C -> B: the cycle starts below the root.
	src := newMapSource(map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"B"},
	})

	res := Build("A", src, Options{})

	wantCycles := []graph.Cycle{{"B", "C", "B"}}
	if !reflect.DeepEqual(res.Cycles, wantCycles) {
		t.Errorf("Cycles = %v, want %v", res.Cycles, wantCycles)
	}
}

func TestBuildSelfLoop(t *testing.T) {
	src := newMapSource(map[string][]string{
		"A": {"A"},
	})

	res := Build("A", src, Options{})

	wantCycles := []graph.Cycle{{"A", "A"}}
	if !reflect.DeepEqual(res.Cycles, wantCycles) {
		t.Errorf("Cycles = %v, want %v", res.Cycles, wantCycles)
	}
	wantGraph(t, res.Graph, map[string][]string{
		"A": {"A"},
	})
}

func TestBuildOnlyReachableNodes(t *testing.T) {
	// X: Y is declared but unreachable from A and must not appear.
	src := newMapSource(map[string][]string{
		"A": {"B"},
		"X": {"Y"},
	})

	res := Build("A", src, Options{})

	if res.Graph.Has("X") || res.Graph.Has("Y") {
		t.Errorf("Packages() = %v, want only nodes reachable from A", res.Graph.Packages())
	}
	wantGraph(t, res.Graph, map[string][]string{
		"A": {"B"},
		"B": {},
	})
}

func TestBuildDeterministic(t *testing.T) {
	src := map[string][]string{
		"A": {"B", "C", "D"},
		"B": {"D", "E"},
		"C": {"B", "A"},
		"D": {},
		"E": {"A"},
	}

	first := Build("A", newMapSource(src), Options{})
	second := Build("A", newMapSource(src), Options{})

	if !reflect.DeepEqual(first.Graph.Packages(), second.Graph.Packages()) {
		t.Errorf("Packages() differ: %v vs %v", first.Graph.Packages(), second.Graph.Packages())
	}
	for _, pkg := range first.Graph.Packages() {
		a, _ := first.Graph.Deps(pkg)
		b, _ := second.Graph.Deps(pkg)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Deps(%s) differ: %v vs %v", pkg, a, b)
		}
	}
	if !reflect.DeepEqual(first.Cycles, second.Cycles) {
		t.Errorf("Cycles differ: %v vs %v", first.Cycles, second.Cycles)
	}
}

func TestBuildDeepChainIterative(t *testing.T) {
	// A linear chain far deeper than any comfortable recursion depth.
	// The builder imposes no character constraints of its own, so numeric
	// identifiers keep the fixture simple.
	const depth = 200000

	deps := make(map[string][]string, depth)
	name := func(i int) string { return "N" + strconv.Itoa(i) }
	for i := 0; i < depth; i++ {
		deps[name(i)] = []string{name(i + 1)}
	}

	res := Build(name(0), newMapSource(deps), Options{})

	if res.Graph.Len() != depth+1 {
		t.Errorf("Graph.Len() = %d, want %d", res.Graph.Len(), depth+1)
	}
	if len(res.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", res.Cycles)
	}
}

func TestBuildLoggerReceivesTrace(t *testing.T) {
	src := newMapSource(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	var lines int
	Build("A", src, Options{Logger: func(string, ...any) { lines++ }})

	// expand A, expand B, cycle A
	if lines != 3 {
		t.Errorf("logger calls = %d, want 3", lines)
	}
}
