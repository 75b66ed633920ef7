// Package render draws resolved dependency graphs as node-link diagrams.
//
// # Overview
//
// This package turns a resolution result into Graphviz DOT source and
// renders it to the supported image formats. Nodes appear as boxes
// connected by dependency arrows, with the resolution root highlighted
// and cycle back-edges drawn red and dashed.
//
// # Usage
//
// Convert a result to DOT format, then render:
//
//	dot := render.ToDOT(result, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// For raster or PDF output:
//
//	png, err := render.RenderPNG(dot, 2.0)  // 2x scale
//	jpg, err := render.RenderJPG(dot, 1.0)
//	pdf, err := render.RenderPDF(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG], [RenderPNG], or [RenderJPG]
//   - Saved as a .dot file and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes. Packages the resolution did not expand (the direct
// dependencies of an online run) are drawn dashed and grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG,
// PNG, and JPG rendering. PDF conversion requires librsvg (rsvg-convert).
package render
