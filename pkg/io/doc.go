// Package io provides JSON import and export for resolution results.
//
// # Overview
//
// This package serializes resolved dependency graphs to and from a simple
// JSON document. The format is designed for:
//
//   - Re-rendering a resolution without resolving again
//   - Integration with external tools that consume graph data
//   - Round-trip preservation: export, re-import, and render identically
//
// # JSON Format
//
// A document carries the resolution root, the access mode it ran under,
// the adjacency of every visited package, and any cycles:
//
//	{
//	  "root": "A",
//	  "mode": "test",
//	  "nodes": [
//	    {"id": "A", "deps": ["B", "C"]},
//	    {"id": "B", "deps": ["C"]},
//	    {"id": "C", "deps": []}
//	  ],
//	  "cycles": [["A", "B", "A"]]
//	}
//
// Nodes are written in sorted identifier order; each node's deps keep the
// declaration order of the underlying metadata source. A leaf carries an
// empty deps array, never null. Version and cycles are omitted when empty.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	result, err := io.ImportJSON("deps.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both validate the document: every node needs an id, ids must be unique,
// and the root must be present. Dependency references without a node entry
// of their own are allowed; they are packages the resolution never
// expanded.
//
// # Export
//
// Use [ExportJSON] to write a result to a file, or [WriteJSON] to write to
// any io.Writer:
//
//	err := io.ExportJSON(result, "output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Online results export as a single-level document: the root node with its
// direct dependencies. Re-importing yields a result that renders the same
// diagram.
package io
