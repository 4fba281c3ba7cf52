// Package scene records layout output into a serializable scene.
//
// [Recorder] implements layout.Emitter. Each entity it creates gets a random
// UUID. Visuals, transforms, tags and lines are kept in call order; once the
// run finishes they are exported as a graph.Wood, lines becoming its edges.
package scene

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/godswood/pkg/core/layout"
	"github.com/matzehuels/godswood/pkg/core/node"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/graph"
)

// Entity is everything bound to one entity.
type Entity struct {
	ID        layout.EntityID
	Primitive layout.Primitive
	Position  layout.Vec3
	Node      node.ID
	Tagged    bool
}

// Segment is one recorded line.
type Segment struct {
	From layout.Vec3
	To   layout.Vec3
}

// Recorder is a [layout.Emitter] that keeps every call in memory.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	entities map[layout.EntityID]*Entity
	order    []layout.EntityID
	lines    []Segment
}

var _ layout.Emitter = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{entities: make(map[layout.EntityID]*Entity)}
}

// CreateEntity implements [layout.Emitter].
func (r *Recorder) CreateEntity() layout.EntityID {
	id := layout.EntityID(uuid.NewString())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[id] = &Entity{ID: id}
	r.order = append(r.order, id)
	return id
}

// BindVisual implements [layout.Emitter]. Calls for unknown entities are
// ignored.
func (r *Recorder) BindVisual(id layout.EntityID, p layout.Primitive) {
	r.with(id, func(e *Entity) { e.Primitive = p })
}

// BindTransform implements [layout.Emitter].
func (r *Recorder) BindTransform(id layout.EntityID, pos layout.Vec3) {
	r.with(id, func(e *Entity) { e.Position = pos })
}

// BindTag implements [layout.Emitter].
func (r *Recorder) BindTag(id layout.EntityID, n *node.Node) {
	r.with(id, func(e *Entity) {
		e.Node = n.ID
		e.Tagged = true
	})
}

// DrawLine implements [layout.Emitter].
func (r *Recorder) DrawLine(from, to layout.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Segment{From: from, To: to})
}

func (r *Recorder) with(id layout.EntityID, fn func(*Entity)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entities[id]; ok {
		fn(e)
	}
}

// Entities returns copies of the recorded entities in creation order.
func (r *Recorder) Entities() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entity, len(r.order))
	for i, id := range r.order {
		out[i] = *r.entities[id]
	}
	return out
}

// Lines returns the recorded lines in draw order.
func (r *Recorder) Lines() []Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Segment(nil), r.lines...)
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entities)
	r.order = nil
	r.lines = nil
}

// Export converts what was recorded for w into its wire form. Only tagged
// entities whose node resolves and has a path in w become nodes. Each drawn
// line whose endpoints both sit on exported nodes becomes an edge, in draw
// order; nodes sharing an exact position resolve to the first one created.
func (r *Recorder) Export(w *wood.Wood) (graph.Wood, error) {
	name := w.Name()
	if name == "" {
		return graph.Wood{}, fmt.Errorf("export: root node %d does not resolve", w.Root)
	}

	out := graph.Wood{
		Name:       name,
		MaxDepth:   w.MaxDepth,
		BaseScale:  w.BaseScale,
		BaseGap:    w.BaseGap,
		Scales:     make(map[int]float64, len(w.Scales)),
		Collisions: w.Collisions,
		Nodes:      []graph.Node{},
		Edges:      []graph.Edge{},
	}
	for d, s := range w.Scales {
		out.Scales[d] = s
	}
	if root, ok := w.RootNode(); ok {
		out.Display = root.DisplayName
	}

	exported := make(map[node.ID]bool)
	at := make(map[layout.Vec3]string)
	for _, e := range r.Entities() {
		if !e.Tagged {
			continue
		}
		n, ok := w.Store().Resolve(e.Node)
		if !ok {
			continue
		}
		p, ok := w.PathOf(n)
		if !ok {
			continue
		}
		if _, dup := exported[n.ID]; dup {
			continue
		}
		if out.Primitive == nil && e.Primitive != nil {
			out.Primitive = FromPrimitive(e.Primitive)
		}
		exported[n.ID] = true
		if _, taken := at[e.Position]; !taken {
			at[e.Position] = p.String()
		}
		out.Nodes = append(out.Nodes, graph.Node{
			ID:       p.String(),
			Name:     n.Name,
			Display:  n.DisplayName,
			Kind:     n.Kind.String(),
			Depth:    p.Depth(),
			Position: graph.Position(e.Position),
			Entity:   string(e.ID),
		})
	}

	for _, l := range r.Lines() {
		from, ok := at[l.From]
		if !ok {
			continue
		}
		if to, ok := at[l.To]; ok && to != from {
			out.Edges = append(out.Edges, graph.Edge{From: from, To: to})
		}
	}
	return out, nil
}

// FromPrimitive converts a layout primitive to its wire form. Unknown
// primitive types keep only their shape name.
func FromPrimitive(p layout.Primitive) *graph.Primitive {
	switch v := p.(type) {
	case layout.Sphere:
		return &graph.Primitive{Shape: v.Shape(), Radius: v.Radius, Fill: v.Fill, Stroke: v.Stroke}
	case layout.Cube:
		return &graph.Primitive{Shape: v.Shape(), Size: v.Size, Fill: v.Fill, Stroke: v.Stroke}
	default:
		return &graph.Primitive{Shape: p.Shape()}
	}
}

// ToPrimitive converts a wire primitive back to a layout primitive.
func ToPrimitive(p *graph.Primitive) (layout.Primitive, error) {
	if p == nil {
		return layout.DefaultPrimitive(), nil
	}
	switch p.Shape {
	case layout.ShapeSphere:
		return layout.Sphere{Radius: p.Radius, Fill: p.Fill, Stroke: p.Stroke}, nil
	case layout.ShapeCube:
		return layout.Cube{Size: p.Size, Fill: p.Fill, Stroke: p.Stroke}, nil
	default:
		return nil, fmt.Errorf("unknown primitive shape %q", p.Shape)
	}
}
