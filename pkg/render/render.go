package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Format is a rasterization output format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	PDF Format = "pdf"
)

// ParseFormat validates a format name taken from a flag value or a file
// extension. A leading dot and upper case are tolerated.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case SVG, PNG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (choose svg, png, or pdf)", s)
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string { return "." + string(f) }

// Render rasterizes DOT text into the requested format. SVG and PNG
// render in-process; PDF goes through SVG and [ToPDF].
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case SVG:
		return RenderSVG(ctx, dot)
	case PNG:
		return renderNative(ctx, dot, graphviz.PNG)
	case PDF:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// RenderFile reads a DOT file, renders it, and writes the image next to
// it with the extension swapped for the format's. It returns the path
// written.
func RenderFile(ctx context.Context, dotPath string, format Format) (string, error) {
	dot, err := os.ReadFile(dotPath)
	if err != nil {
		return "", fmt.Errorf("read DOT: %w", err)
	}
	out, err := Render(ctx, string(dot), format)
	if err != nil {
		return "", err
	}

	path := strings.TrimSuffix(dotPath, filepath.Ext(dotPath)) + format.Ext()
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", format, err)
	}
	return path, nil
}

// RenderSVG renders DOT text to SVG using the embedded Graphviz.
// The returned bytes are ready for display or for conversion with
// [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderNative(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderNative(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts
// at the origin and the width and height match it. Graphviz emits point
// units and a translated origin, which trips up some viewers.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
