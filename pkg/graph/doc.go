// Package graph provides the serialization types for laid-out woods.
//
// This package defines the canonical wire format for godswood scenes, used
// for JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory core
// and external formats:
//
//   - [Scene], [Wood]: Serialization types (this package)
//   - pkg/core/wood.Wood: Internal tree with depths and scales
//   - pkg/core/layout.Placement: Internal positions from one layout run
//
// pkg/core/render/scene records a layout run and exports it as a [Wood].
// This package has no dependency on the core.
//
// # Core Types
//
//   - [Scene]: Every wood of one collection
//   - [Wood]: One laid-out tree: nodes, edges, per-depth scales
//   - [Node]: A placed node with its dotted path, depth and position
//   - [Edge]: A parent → child relation, by path
//   - [Primitive]: The visual bound to every node of a wood
//
// # Scene Serialization
//
// Scenes use a simple JSON format:
//
//	{
//	  "woods": [{
//	    "name": "app",
//	    "max_depth": 2,
//	    "base_scale": 4,
//	    "base_gap": 20,
//	    "scales": {"1": 2.1547, "2": 1},
//	    "nodes": [{"id": ".app", "name": "app", "depth": 1, "position": {"x": 0, "y": 0, "z": -10}}],
//	    "edges": [{"from": ".app", "to": ".app.a"}]
//	  }]
//	}
//
// Use [MarshalScene], [WriteSceneFile] and [ReadSceneFile] to move scenes in
// and out of bytes and files. Decoding validates that every edge refers to a
// known node.
package graph
