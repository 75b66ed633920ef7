// Package deps builds transitive dependency graphs from metadata sources.
//
// # Overview
//
// A metadata source answers one question: what are the direct dependencies
// of a named package? [Source] captures that contract. The repofile
// subpackage implements it over a flat test-repository file; the registry
// client in pkg/integrations/nuget answers the same question for remote
// packages but stays single-level by design and never feeds the builder.
//
// [Build] expands a root package into the full transitive graph:
//
//	repo, err := repofile.Load("testdata/repo.txt")
//	if err != nil {
//	    return err
//	}
//	res := deps.Build("A", repo, deps.Options{})
//	for _, pkg := range res.Graph.Packages() {
//	    ...
//	}
//
// # Traversal
//
// The builder runs an iterative depth-first traversal with an explicit work
// stack; graph depth is bounded by repository size, not by the runtime
// stack. Dependencies are visited in declaration order, revisits of
// finalized packages are skipped, unknown packages become leaves, and
// back-edges are collected as [graph.Cycle] values without descending
// again. The same root against the same source always produces the same
// graph and the same cycle list.
//
// # Errors
//
// Build raises none. Everything that can fail - reading a repository file,
// fetching a registry document - fails before traversal starts, inside the
// source that owns the failure.
package deps
