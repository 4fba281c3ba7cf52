package layout

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/godswood/pkg/core/node"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
)

// =============================================================================
// Options
// =============================================================================

// Default visual applied to every entity.
const (
	DefaultSphereRadius = 2.0
	DefaultFill         = "rgba(100, 100, 100, 0.2)"
	DefaultStroke       = "orange"
)

// DefaultOrigin is where the root of every wood is placed.
var DefaultOrigin = Vec3{X: 0, Y: 0, Z: -10}

// DefaultPrimitive returns the translucent sphere bound to every entity when
// no other primitive is configured.
func DefaultPrimitive() Primitive {
	return Sphere{Radius: DefaultSphereRadius, Fill: DefaultFill, Stroke: DefaultStroke}
}

// Options configures an [Engine].
//
// BaseScale and BaseGap override the wood's own values when positive. A nil
// Origin places the root at [DefaultOrigin].
type Options struct {
	BaseScale float64
	BaseGap   float64
	Origin    *Vec3
	Primitive Primitive
	Logger    *log.Logger
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Origin == nil {
		origin := DefaultOrigin
		o.Origin = &origin
	}
	if o.Primitive == nil {
		o.Primitive = DefaultPrimitive()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks that explicitly set values are usable.
func (o *Options) Validate() error {
	if o.BaseScale < 0 || math.IsNaN(o.BaseScale) || math.IsInf(o.BaseScale, 0) {
		return errors.New(errors.ErrCodeInvalidOption, "base scale must be a finite non-negative number, got %v", o.BaseScale)
	}
	if o.BaseGap < 0 || math.IsNaN(o.BaseGap) || math.IsInf(o.BaseGap, 0) {
		return errors.New(errors.ErrCodeInvalidOption, "base gap must be a finite non-negative number, got %v", o.BaseGap)
	}
	if o.Origin != nil && !o.Origin.IsFinite() {
		return errors.New(errors.ErrCodeInvalidOption, "origin must be finite, got %v", *o.Origin)
	}
	return nil
}

// =============================================================================
// Placement
// =============================================================================

// Line is one parent → child segment drawn during a run.
type Line struct {
	Parent node.ID
	Child  node.ID
	From   Vec3
	To     Vec3
}

// Placement is the result of laying out one wood.
type Placement struct {
	Wood      string
	Order     []node.ID
	Positions map[node.ID]Vec3
	Depths    map[node.ID]int
	Entities  map[node.ID]EntityID
	Lines     []Line
}

// Position returns where id was placed.
func (p Placement) Position(id node.ID) (Vec3, bool) {
	v, ok := p.Positions[id]
	return v, ok
}

// Len returns the number of placed nodes.
func (p Placement) Len() int { return len(p.Order) }

// =============================================================================
// Engine
// =============================================================================

// Engine lays out woods. It holds no per-run state and may be reused.
type Engine struct {
	opts Options
}

// New creates an engine, applying defaults to unset options.
func New(opts Options) *Engine {
	opts.SetDefaults()
	return &Engine{opts: opts}
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options { return e.opts }

type item struct {
	pos   Vec3
	id    node.ID
	depth int
}

// Run places every node reachable from w's root and reports each placement
// to em. A nil em discards the output.
//
// The wood must have its depths and scales computed. A root that does not
// resolve is a structural error; other nodes that no longer resolve are
// skipped.
func (e *Engine) Run(w *wood.Wood, em Emitter) (Placement, error) {
	if em == nil {
		em = NopEmitter{}
	}
	root, ok := w.RootNode()
	if !ok {
		return Placement{}, errors.New(errors.ErrCodeStructural, "root node %d does not resolve", w.Root)
	}

	scale, gap := e.opts.BaseScale, e.opts.BaseGap
	if scale <= 0 {
		scale = w.BaseScale
	}
	if gap <= 0 {
		gap = w.BaseGap
	}
	logger := e.opts.Logger.With("wood", root.Name)

	p := Placement{
		Wood:      root.Name,
		Positions: make(map[node.ID]Vec3),
		Depths:    make(map[node.ID]int),
		Entities:  make(map[node.ID]EntityID),
	}

	queue := []item{{pos: *e.opts.Origin, id: root.ID, depth: 1}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		n, ok := w.Store().Resolve(it.id)
		if !ok {
			logger.Warn("skipping unresolved node", "id", it.id, "depth", it.depth)
			continue
		}
		if _, placed := p.Positions[n.ID]; placed {
			logger.Warn("node reached twice, keeping first placement", "node", n.Name)
			continue
		}

		ent := em.CreateEntity()
		em.BindVisual(ent, e.opts.Primitive)
		em.BindTransform(ent, it.pos)
		em.BindTag(ent, n)

		p.Order = append(p.Order, n.ID)
		p.Positions[n.ID] = it.pos
		p.Depths[n.ID] = it.depth
		p.Entities[n.ID] = ent
		logger.Debug("placed node", "node", n.Name, "depth", it.depth, "x", it.pos.X, "y", it.pos.Y, "z", it.pos.Z)

		radius := scaleAt(w, it.depth) * scale
		kids := ChildPositions(it.pos, len(n.Children), radius, gap)
		for i, id := range n.Children {
			em.DrawLine(it.pos, kids[i])
			p.Lines = append(p.Lines, Line{Parent: n.ID, Child: id, From: it.pos, To: kids[i]})
			queue = append(queue, item{pos: kids[i], id: id, depth: it.depth + 1})
		}
	}

	logger.Debug("layout complete", "nodes", p.Len(), "lines", len(p.Lines))
	return p, nil
}

func scaleAt(w *wood.Wood, depth int) float64 {
	if s, ok := w.Scales[depth]; ok {
		return s
	}
	return 1.0
}

// ChildPositions returns the positions of n children below parent.
//
// A single child sits directly below. More children are spread on a circle of
// the given radius, child i at angle 2π/n·i.
func ChildPositions(parent Vec3, n int, radius, gap float64) []Vec3 {
	if n <= 0 {
		return nil
	}
	below := parent.Sub(Vec3{Y: gap})
	if n == 1 {
		return []Vec3{below}
	}
	out := make([]Vec3, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		theta := step * float64(i)
		out[i] = below.Add(Vec3{X: -radius * math.Cos(theta), Z: -radius * math.Sin(theta)})
	}
	return out
}

// =============================================================================
// Collections
// =============================================================================

// LayOutAll lays out every wood of c independently, in insertion order.
// emitterFor supplies the emitter for each wood and may be nil.
//
// A wood that fails does not stop the others; the failures are joined into
// the returned error alongside the placements that succeeded.
func LayOutAll(c *wood.Collection, opts Options, emitterFor func(*wood.Wood) Emitter) (map[string]Placement, error) {
	eng := New(opts)
	out := make(map[string]Placement, c.Len())
	var errs []error
	for _, w := range c.Woods() {
		var em Emitter
		if emitterFor != nil {
			em = emitterFor(w)
		}
		p, err := eng.Run(w, em)
		if err != nil {
			errs = append(errs, fmt.Errorf("wood %s: %w", w.Label(), err))
			continue
		}
		out[p.Wood] = p
	}
	return out, errors.Join(errs...)
}
