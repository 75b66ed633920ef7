package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nugraph/nugraph/pkg/errors"
	"github.com/nugraph/nugraph/pkg/graph"
	pkgio "github.com/nugraph/nugraph/pkg/io"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty means no file output", "", false},
		{"svg", "graph.svg", false},
		{"png uppercase", "graph.PNG", false},
		{"jpeg", "graph.jpeg", false},
		{"pdf", "graph.pdf", false},
		{"dot", "graph.dot", false},
		{"json", "graph.json", false},
		{"unsupported extension", "graph.txt", true},
		{"no extension", "graph", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

// outputTestResult builds a two-node result for output dispatch tests.
func outputTestResult() *pipeline.Result {
	g := graph.New()
	g.Record("A", []string{"B"})
	g.Record("B", nil)
	return &pipeline.Result{Root: "A", Mode: pipeline.ModeTest, Graph: g}
}

func TestRenderOutputDOT(t *testing.T) {
	data, err := renderOutput(outputTestResult(), "graph.dot", false, 1.0)
	if err != nil {
		t.Fatalf("renderOutput() error: %v", err)
	}

	dot := string(data)
	if !strings.Contains(dot, "digraph G {") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(dot, `"A" -> "B";`) {
		t.Error("DOT output missing the A -> B edge")
	}
}

func TestRenderOutputJSON(t *testing.T) {
	data, err := renderOutput(outputTestResult(), "graph.json", false, 1.0)
	if err != nil {
		t.Fatalf("renderOutput() error: %v", err)
	}

	result, err := pkgio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON() on rendered output: %v", err)
	}
	if result.Root != "A" {
		t.Errorf("Root = %q, want %q", result.Root, "A")
	}
	if result.Graph.Len() != 2 {
		t.Errorf("Len() = %d, want 2", result.Graph.Len())
	}
}

func TestWriteOutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := writeOutput(outputTestResult(), path, false, 1.0); err != nil {
		t.Fatalf("writeOutput() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Error("output file should contain DOT text")
	}
}

func TestOpenOutputStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput(\"\") error: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("Close() on the stdout wrapper should be a no-op, got %v", err)
	}
}
