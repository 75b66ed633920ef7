package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF].
func RenderSVG(dot string) ([]byte, error) {
	svg, err := renderFormat(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI
// displays. Scale is applied through the Graphviz dpi attribute, where
// 96 dpi is 1x.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	return renderFormat(withScale(dot, scale), graphviz.PNG)
}

// RenderJPG renders a DOT graph to JPG using Graphviz.
// Scale behaves as in [RenderPNG].
func RenderJPG(dot string, scale float64) ([]byte, error) {
	return renderFormat(withScale(dot, scale), graphviz.JPG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// withScale injects a dpi attribute after the opening brace so raster
// renders come out at scale times the 96 dpi baseline. A scale of 1 (or
// anything non-positive) leaves the DOT untouched.
func withScale(dot string, scale float64) string {
	if scale <= 0 || scale == 1.0 {
		return dot
	}
	i := strings.Index(dot, "{")
	if i < 0 {
		return dot
	}
	return dot[:i+1] + fmt.Sprintf("\n  dpi=%.0f;", 96*scale) + dot[i+1:]
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
