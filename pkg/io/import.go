package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/nugraph/nugraph/pkg/errors"
	"github.com/nugraph/nugraph/pkg/graph"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// ReadJSON decodes a graph document from r into a resolution result.
//
// The input must be a JSON object in the format produced by [WriteJSON]:
// a root identifier, an access mode, a nodes array, and an optional cycles
// array. Each node must have a unique, non-empty id. Dependencies that
// reference no node entry are allowed; they stay unexpanded.
//
// ReadJSON returns an INVALID_FORMAT error when the JSON is malformed, the
// root is missing, a node has no id, or two nodes share one.
//
// The returned result is independent of r and can be used freely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pipeline.Result, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding graph document")
	}
	if data.Root == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graph document has no root")
	}

	g := graph.New()
	for _, n := range data.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "graph document node without id")
		}
		if g.Has(n.ID) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node %s", n.ID)
		}
		g.Record(n.ID, n.Deps)
	}

	result := &pipeline.Result{
		Root:    data.Root,
		Version: data.Version,
		Mode:    data.Mode,
		Graph:   g,
	}
	for _, c := range data.Cycles {
		result.Cycles = append(result.Cycles, graph.Cycle(c))
	}
	return result, nil
}

// ImportJSON reads the graph document at path and returns the decoded
// result. It returns a FILE_NOT_FOUND error when the file does not exist
// and the same validation errors as [ReadJSON] for malformed documents.
func ImportJSON(path string) (*pipeline.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening graph file %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
