package layout

import "github.com/matzehuels/godswood/pkg/core/node"

// EntityID is an opaque handle issued by an [Emitter].
type EntityID string

// Emitter receives the output of a layout run. Implementations own whatever
// the calls produce (scene entities, draw commands, records).
type Emitter interface {
	// CreateEntity allocates a new entity for one placed node.
	CreateEntity() EntityID
	// BindVisual attaches the shape the entity is drawn with.
	BindVisual(id EntityID, p Primitive)
	// BindTransform sets the entity's position.
	BindTransform(id EntityID, pos Vec3)
	// BindTag links the entity back to the node it represents.
	BindTag(id EntityID, n *node.Node)
	// DrawLine draws a line segment between two positions.
	DrawLine(from, to Vec3)
}

// Primitive describes the shape bound to every entity. The engine passes it
// through unexamined.
type Primitive interface {
	Shape() string
}

// Primitive shapes.
const (
	ShapeSphere = "sphere"
	ShapeCube   = "cube"
)

// Sphere is a sphere of the given radius.
type Sphere struct {
	Radius float64 `json:"radius"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
}

// Shape implements [Primitive].
func (Sphere) Shape() string { return ShapeSphere }

// Cube is an axis-aligned cube with edge length Size.
type Cube struct {
	Size   float64 `json:"size"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
}

// Shape implements [Primitive].
func (Cube) Shape() string { return ShapeCube }

// NopEmitter discards every call. Its entity IDs are empty.
type NopEmitter struct{}

func (NopEmitter) CreateEntity() EntityID         { return "" }
func (NopEmitter) BindVisual(EntityID, Primitive) {}
func (NopEmitter) BindTransform(EntityID, Vec3)   {}
func (NopEmitter) BindTag(EntityID, *node.Node)   {}
func (NopEmitter) DrawLine(Vec3, Vec3)            {}
