package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/godswood/pkg/core/render"
	"github.com/matzehuels/godswood/pkg/graph"
)

// Projection selects the plane positions are projected onto.
type Projection string

// Supported projections.
const (
	ProjectionFront Projection = "front"
	ProjectionTop   Projection = "top"
	ProjectionSide  Projection = "side"
)

// DefaultUnit is the number of points per layout unit.
const DefaultUnit = 10.0

// Options configures node-link diagram rendering.
type Options struct {
	// Projection defaults to ProjectionFront.
	Projection Projection
	// Unit is points per layout unit. Defaults to DefaultUnit.
	Unit float64
	// Detailed adds the dotted path and depth to node labels.
	Detailed bool
}

// ParseProjection validates a projection name. The empty string selects the
// default.
func ParseProjection(s string) (Projection, error) {
	switch p := Projection(strings.ToLower(s)); p {
	case "":
		return ProjectionFront, nil
	case ProjectionFront, ProjectionTop, ProjectionSide:
		return p, nil
	default:
		return "", fmt.Errorf("unknown projection %q (want front, top or side)", s)
	}
}

// Project maps a 3-D position onto the projection plane.
func (p Projection) Project(pos graph.Position) (x, y float64) {
	switch p {
	case ProjectionTop:
		return pos.X, pos.Z
	case ProjectionSide:
		return pos.Z, pos.Y
	default:
		return pos.X, pos.Y
	}
}

// ToDOT converts a laid-out wood to Graphviz DOT with pinned node positions.
// The result can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(w graph.Wood, opts Options) string {
	if opts.Unit <= 0 {
		opts.Unit = DefaultUnit
	}
	if opts.Projection == "" {
		opts.Projection = ProjectionFront
	}

	fill, stroke := "white", "black"
	if w.Primitive != nil {
		fill = dotColor(w.Primitive.Fill, fill)
		stroke = dotColor(w.Primitive.Stroke, stroke)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", w.Name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, penwidth=2, fontsize=12];\n", fill, stroke)
	buf.WriteString("  edge [arrowhead=none, color=\"#888888\"];\n")
	buf.WriteString("\n")

	for _, n := range w.Nodes {
		x, y := opts.Projection.Project(n.Position)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed), x*opts.Unit, y*opts.Unit), ", "))
	}

	buf.WriteString("\n")
	for _, e := range w.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label()
	}
	return fmt.Sprintf("%s\n%s\ndepth: %d", n.Label(), n.ID, n.Depth)
}

func fmtAttrs(n graph.Node, label string, x, y float64) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y),
	}
	if n.IsRoot() {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

var rgbaRe = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// dotColor converts CSS rgb()/rgba() notation to a Graphviz #rrggbbaa color.
// Other values pass through; empty values yield fallback.
func dotColor(c, fallback string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return fallback
	}
	m := rgbaRe.FindStringSubmatch(c)
	if m == nil {
		return c
	}
	var rgb [3]int
	for i := range rgb {
		v, _ := strconv.Atoi(m[i+1])
		rgb[i] = min(v, 255)
	}
	alpha := 255
	if m[4] != "" {
		a, _ := strconv.ParseFloat(m[4], 64)
		alpha = int(min(max(a, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", rgb[0], rgb[1], rgb[2], alpha)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honors pinned positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
