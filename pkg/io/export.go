package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nugraph/nugraph/pkg/pipeline"
)

type document struct {
	Root    string        `json:"root"`
	Version string        `json:"version,omitempty"`
	Mode    pipeline.Mode `json:"mode"`
	Nodes   []node        `json:"nodes"`
	Cycles  [][]string    `json:"cycles,omitempty"`
}

type node struct {
	ID   string   `json:"id"`
	Deps []string `json:"deps"`
}

// WriteJSON encodes a resolution result as a graph document and writes it
// to w. Nodes appear in sorted identifier order with their dependencies in
// declaration order. The output can be re-imported with [ReadJSON].
func WriteJSON(result *pipeline.Result, w io.Writer) error {
	g := result.AsGraph()
	out := document{
		Root:    result.Root,
		Version: result.Version,
		Mode:    result.Mode,
		Nodes:   make([]node, 0, g.Len()),
	}

	for _, id := range g.Packages() {
		deps, _ := g.Deps(id)
		out.Nodes = append(out.Nodes, node{ID: id, Deps: deps})
	}
	for _, c := range result.Cycles {
		out.Cycles = append(out.Cycles, []string(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a resolution result to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(result *pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(result, f)
}
