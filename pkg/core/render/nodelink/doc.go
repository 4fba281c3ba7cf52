// Package nodelink renders laid-out woods as flat node-link diagrams using
// Graphviz.
//
// The 3-D positions computed by pkg/core/layout are projected onto a plane
// and pinned, so Graphviz only draws; it never moves a node:
//
//	Wood → layout.Run → graph.Wood → ToDOT() → DOT → RenderSVG() → SVG
//
// The DOT string is the intermediate representation, enabling re-rendering
// without re-running the layout.
//
// # Projections
//
//   - front: x to the right, y up (default); depth levels become rows
//   - top: x to the right, z up; every ring is seen as a circle
//   - side: z to the right, y up
//
// # Usage
//
//	w, _ := wood.NewCollection().Add(data)
//	out, _, _ := scene.Record(w, layout.Options{})
//	dot := nodelink.ToDOT(out, nodelink.Options{Projection: nodelink.ProjectionTop})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//
// PNG and PDF output go through SVG and require rsvg-convert; see
// pkg/core/render.
package nodelink
