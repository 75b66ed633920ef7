package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/nugraph/nugraph/pkg/graph"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds a dependency-count line to each expanded node's label.
	// When false, only the package identifier is shown.
	Detailed bool
}

// ToDOT converts a resolution result to Graphviz DOT format. The resulting
// DOT string can be rendered using [RenderSVG], [RenderPNG], [RenderJPG],
// or [RenderPDF].
//
// The root package is highlighted, cycle back-edges are drawn red and
// dashed, and packages the resolution did not expand (direct dependencies
// of an online run) get dashed outlines and grey fill.
func ToDOT(result *pipeline.Result, opts Options) string {
	g := result.AsGraph()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range nodeIDs(g) {
		deps, expanded := g.Deps(id)
		label := fmtLabel(id, deps, expanded, opts.Detailed)
		attrs := fmtAttrs(id, label, result.Root, expanded)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	back := backEdges(result.Cycles)
	buf.WriteString("\n")
	for _, id := range g.Packages() {
		deps, _ := g.Deps(id)
		for _, dep := range deps {
			if back[edge{id, dep}] {
				fmt.Fprintf(&buf, "  %q -> %q [color=red, style=dashed];\n", id, dep)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", id, dep)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeIDs returns every package appearing in the graph: the expanded ones
// plus any dependency target without an entry of its own, sorted.
func nodeIDs(g *graph.Graph) []string {
	ids := g.Packages()
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range ids {
		deps, _ := g.Deps(id)
		for _, dep := range deps {
			if !seen[dep] {
				seen[dep] = true
				ids = append(ids, dep)
			}
		}
	}
	slices.Sort(ids)
	return ids
}

func fmtLabel(id string, deps []string, expanded, detailed bool) string {
	if !detailed || !expanded {
		return id
	}
	if len(deps) == 0 {
		return id + "\nleaf"
	}
	return fmt.Sprintf("%s\n%d deps", id, len(deps))
}

func fmtAttrs(id, label, root string, expanded bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if id == root {
		attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
	} else if !expanded {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// edge identifies one dependency arrow for back-edge lookup.
type edge struct {
	from, to string
}

// backEdges collects the closing edge of each cycle, the one pointing back
// to a package already on the traversal path.
func backEdges(cycles []graph.Cycle) map[edge]bool {
	back := make(map[edge]bool, len(cycles))
	for _, c := range cycles {
		if len(c) >= 2 {
			back[edge{c[len(c)-2], c[len(c)-1]}] = true
		}
	}
	return back
}
