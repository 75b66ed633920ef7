// Package graph defines the dependency graph produced by a resolution run.
//
// # Overview
//
// A [Graph] is an adjacency mapping from each visited package to the ordered
// list of its direct dependencies, exactly as the metadata source declared
// them. Order matters: it is the traversal order of the builder and an
// observable property of every resolution.
//
// Packages unknown to the active source are still recorded, with an empty
// dependency list. Consumers can therefore distinguish "leaf" (recorded,
// empty list) from "never visited" (no entry) without consulting the source
// again.
//
// A [Cycle] is a path of package identifiers that begins and ends at the
// same package. Cycles are data, not errors: the builder records every
// back-edge it encounters and keeps traversing the rest of the graph.
//
// # Iteration
//
// [Graph.Packages] returns identifiers in sorted order, which is the
// presentation order for terminal output, JSON export, and DOT rendering.
// The per-package dependency lists keep their declared order.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Each resolution builds
// its own private Graph, so this never requires locking in practice.
package graph
