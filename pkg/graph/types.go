package graph

import (
	"fmt"
	"math"
)

// Node kinds, matching pkg/core/node.Kind.String.
const (
	KindRoot   = "root"
	KindBranch = "branch"
	KindLeaf   = "leaf"
)

// =============================================================================
// Scene - Collection of Woods
// =============================================================================

// Scene is the serialization format for every wood of one collection.
type Scene struct {
	Woods []Wood `json:"woods"`
}

// Find returns the wood named name.
func (s *Scene) Find(name string) (*Wood, bool) {
	for i := range s.Woods {
		if s.Woods[i].Name == name {
			return &s.Woods[i], true
		}
	}
	return nil, false
}

// Names returns the wood names in scene order.
func (s *Scene) Names() []string {
	out := make([]string, len(s.Woods))
	for i, w := range s.Woods {
		out[i] = w.Name
	}
	return out
}

// NodeCount returns the total number of nodes across all woods.
func (s *Scene) NodeCount() int {
	total := 0
	for _, w := range s.Woods {
		total += len(w.Nodes)
	}
	return total
}

// =============================================================================
// Wood - One Laid-Out Tree
// =============================================================================

// Wood is one laid-out tree. Nodes are listed in layout visit order
// (breadth-first from the root).
type Wood struct {
	Name       string          `json:"name"`
	Display    string          `json:"display_name,omitempty"`
	MaxDepth   int             `json:"max_depth"`
	BaseScale  float64         `json:"base_scale"`
	BaseGap    float64         `json:"base_gap"`
	Scales     map[int]float64 `json:"scales"`
	Collisions int             `json:"collisions,omitempty"`
	Primitive  *Primitive      `json:"primitive,omitempty"`
	Nodes      []Node          `json:"nodes"`
	Edges      []Edge          `json:"edges"`
}

// Node returns the node whose ID (dotted path) is id.
func (w *Wood) Node(id string) (*Node, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i], true
		}
	}
	return nil, false
}

// Root returns the depth-1 node.
func (w *Wood) Root() (*Node, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].Depth == 1 {
			return &w.Nodes[i], true
		}
	}
	return nil, false
}

// Levels groups node IDs by depth, preserving node order within a level.
func (w *Wood) Levels() map[int][]string {
	out := make(map[int][]string)
	for _, n := range w.Nodes {
		out[n.Depth] = append(out[n.Depth], n.ID)
	}
	return out
}

// Children returns the IDs of id's children in edge order.
func (w *Wood) Children(id string) []string {
	var out []string
	for _, e := range w.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Bounds returns the smallest box containing every node position.
func (w *Wood) Bounds() (lo, hi Position) {
	if len(w.Nodes) == 0 {
		return Position{}, Position{}
	}
	lo = Position{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Position{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, n := range w.Nodes {
		p := n.Position
		lo = Position{min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z)}
		hi = Position{max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Validate checks that node IDs are unique and every edge refers to a node
// of the wood.
func (w *Wood) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("wood has no name")
	}
	seen := make(map[string]bool, len(w.Nodes))
	for _, n := range w.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("wood %q: duplicate node %q", w.Name, n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range w.Edges {
		if !seen[e.From] || !seen[e.To] {
			return fmt.Errorf("wood %q: edge %s -> %s refers to an unknown node", w.Name, e.From, e.To)
		}
	}
	return nil
}

// =============================================================================
// Node - Placed Node
// =============================================================================

// Node is a placed node. Its ID is its dotted path within the wood.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Display  string   `json:"display_name,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Depth    int      `json:"depth"`
	Position Position `json:"position"`
	Entity   string   `json:"entity,omitempty"`
}

// IsRoot reports whether n is the root of its wood.
func (n *Node) IsRoot() bool { return n.Kind == KindRoot }

// Label returns the display name if set, otherwise the name.
func (n *Node) Label() string {
	if n.Display != "" {
		return n.Display
	}
	return n.Name
}

// Position is a point in layout space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// =============================================================================
// Edge - Parent → Child
// =============================================================================

// Edge is a parent → child relation between two node IDs.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Primitive - Visual Descriptor
// =============================================================================

// Primitive describes the visual bound to every node of a wood.
type Primitive struct {
	Shape  string  `json:"shape"`
	Radius float64 `json:"radius,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
}
