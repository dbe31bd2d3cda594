// Package render rasterizes Graphviz DOT text into image formats.
//
// # Overview
//
// This package is the boundary between the deterministic DOT output and
// optional image generation. It provides:
//
//   - In-process rendering of DOT to SVG and PNG
//   - SVG post-processing so the view box starts at the origin
//   - Generic format conversion (SVG to PDF, scaled PNG)
//
// # Rendering
//
// [Render] and [RenderFile] cover the common cases:
//
//	svg, err := render.Render(ctx, dot, render.SVG)
//	path, err := render.RenderFile(ctx, "graph.dot", render.PNG)
//
// SVG and PNG render through the embedded Graphviz runtime from
// github.com/goccy/go-graphviz, so no system Graphviz installation is
// needed.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG using the external
// rsvg-convert tool (from librsvg). PDF output always takes this path;
// [ToPNG] exists for high-DPI output at a scale factor:
//
//	svg, err := render.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
package render
