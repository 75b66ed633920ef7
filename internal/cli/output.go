package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nugraph/nugraph/pkg/errors"
	pkgio "github.com/nugraph/nugraph/pkg/io"
	"github.com/nugraph/nugraph/pkg/pipeline"
	"github.com/nugraph/nugraph/pkg/render"
)

// outputExts is the set of supported --output file extensions.
var outputExts = map[string]bool{
	".png":  true,
	".svg":  true,
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".dot":  true,
	".json": true,
}

// validateOutputPath checks that path carries a supported extension.
// An empty path is valid and means no file output.
func validateOutputPath(path string) error {
	if path == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"output path %q has no extension (expected one of: .png, .svg, .pdf, .jpg, .jpeg, .dot, .json)", path)
	}
	if !outputExts[ext] {
		return errors.New(errors.ErrCodeInvalidInput,
			"unsupported output extension %q (expected one of: .png, .svg, .pdf, .jpg, .jpeg, .dot, .json)", ext)
	}
	return nil
}

// renderOutput produces the file content for path, dispatching on its
// extension: a graph document for .json, DOT text for .dot, and a rendered
// image otherwise.
func renderOutput(result *pipeline.Result, path string, detailed bool, scale float64) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(result, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := render.ToDOT(result, render.Options{Detailed: detailed})
	if ext == ".dot" {
		return []byte(dot), nil
	}

	var data []byte
	var err error
	switch ext {
	case ".svg":
		data, err = render.RenderSVG(dot)
	case ".png":
		data, err = render.RenderPNG(dot, scale)
	case ".jpg", ".jpeg":
		data, err = render.RenderJPG(dot, scale)
	case ".pdf":
		data, err = render.RenderPDF(dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unsupported output extension %q (expected one of: .png, .svg, .pdf, .jpg, .jpeg, .dot, .json)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rendering %s", filepath.Base(path))
	}
	return data, nil
}

// writeOutput renders result for path and writes the content there.
func writeOutput(result *pipeline.Result, path string, detailed bool, scale float64) error {
	data, err := renderOutput(result, path, detailed, scale)
	if err != nil {
		return err
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
