// Package pkg provides the core libraries for Godswood radial tree layouts.
//
// # Overview
//
// Godswood turns hierarchical application trees (an application, its
// services, their sub-services) into 3-D scenes. The root sits at a fixed
// origin; the children of every node are spread evenly on a circle one level
// below it, and each circle is wide enough that the subtrees hanging from
// neighbouring siblings never overlap. The pkg directory is organized into:
//
//  1. [core] - Domain logic (node store, tree building, scaling, layout)
//  2. [pipeline] - Orchestration (build → layout → render)
//  3. [graph] - Serialization types for laid-out scenes
//  4. [cache] - Cache backends for scenes and artifacts
//
// # Architecture
//
// The typical data flow through Godswood:
//
//	Tree document (JSON)
//	         ↓
//	    [core/wood] package (build nodes, assign paths and depths, scales)
//	         ↓
//	    [core/layout] package (place nodes on rings, emit entities and lines)
//	         ↓
//	    [core/render/scene] package (record emitted entities as a graph.Wood)
//	         ↓
//	    [core/render/nodelink] package (project and draw as DOT/SVG/PNG/PDF)
//
// # Quick Start
//
// Build a wood and lay it out:
//
//	import (
//	    "github.com/matzehuels/godswood/pkg/core/layout"
//	    "github.com/matzehuels/godswood/pkg/core/render/scene"
//	    "github.com/matzehuels/godswood/pkg/core/wood"
//	)
//
//	// 1. Build nodes, paths, depths and scales
//	c := wood.NewCollection()
//	w, _ := c.Add(wood.SampleTree)
//
//	// 2. Lay out and record the emitted scene
//	sw, placement, _ := scene.Record(w, layout.Options{})
//
//	// 3. Inspect positions
//	root, _ := w.RootNode()
//	pos, _ := placement.Position(root.ID)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/node] - Arena store of tree nodes addressed by numeric IDs, with a
// dotted-path index (".app.service1") maintained alongside.
//
// [core/wood] - One tree instance: building from a JSON document without
// recursion, breadth-first path and depth assignment, and per-depth scale
// compounding. [wood.Collection] holds several woods on one shared store.
//
// [core/layout] - The layout engine. Places every node and reports entities,
// transforms and connecting lines to an [layout.Emitter].
//
// [core/render/scene] - An Emitter that records everything into the
// serializable [graph] types.
//
// [core/render/nodelink] - Projection of a laid-out wood onto a plane and
// drawing with Graphviz.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (build → layout → render) used by the CLI
// and the HTTP API. Ensures consistent behavior across both entry points.
//
// [cache] - File, Redis and null caches plus content-addressed key
// derivation for scenes and artifacts.
//
// [observability] - Hook interfaces for pipeline stages, cache lookups and
// HTTP requests, with a logging implementation.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/wood/...          # Specific package
//	go test -run Example                 # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core
// [core/node]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core/node
// [core/wood]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core/wood
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core/layout
// [core/render/scene]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core/render/scene
// [core/render/nodelink]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/core/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/pipeline
// [graph]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/godswood/pkg/errors
package pkg
