// Package layout places the nodes of a wood in 3-D space.
//
// The engine walks a wood breadth-first from its root. A node with a single
// child drops that child straight down by the base gap. A node with n > 1
// children spreads them evenly on a horizontal circle one gap below, with the
// circle's radius taken from the scale of the node's depth:
//
//	r     = Scales[depth] * BaseScale
//	θ_i   = 2π/n * i
//	child = (x - r·cos θ_i, y - gap, z - r·sin θ_i)
//
// Child i always receives angle i, so sibling order in the source document
// matches the order around the circle.
//
// # Emitters
//
// The engine never renders anything itself. For every placed node it asks an
// [Emitter] to create an entity and bind a visual [Primitive], a transform and
// a tag back to the node; for every parent → child relation it asks for a
// line. See pkg/core/render/scene for an emitter that records a serializable
// scene.
//
// # Idempotence
//
// [Engine.Run] reads the wood but never mutates it. Running it twice on the
// same wood yields identical placements.
package layout
