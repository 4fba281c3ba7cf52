// Package pipeline provides the build → layout → render pipeline for godswood.
//
// This package implements the complete pipeline that the CLI and the HTTP
// API share. By centralizing this logic, both entry points apply the same
// defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Parse tree documents into a wood collection, assigning dotted
//     paths, depths and per-depth scales
//  2. Layout: Place every wood radially in 3-D and record the result as a
//     graph.Scene
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Documents: [][]byte{data},
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	c, err := pipeline.Build(ctx, docs, opts)
//
//	// Layout with an existing collection
//	s, err := pipeline.Layout(ctx, c, opts)
//
//	// Render an existing scene
//	artifacts, err := runner.Render(ctx, s, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/godswood/pkg/cache"
	"github.com/matzehuels/godswood/pkg/core/layout"
	"github.com/matzehuels/godswood/pkg/core/render/nodelink"
	"github.com/matzehuels/godswood/pkg/core/render/scene"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBaseScale is the radius unit multiplied by each depth's scale.
	DefaultBaseScale = wood.DefaultBaseScale

	// DefaultBaseGap is the vertical distance between depth levels.
	DefaultBaseGap = wood.DefaultBaseGap

	// DefaultPrimitive is the shape bound to every entity.
	DefaultPrimitive = layout.ShapeSphere

	// DefaultProjection is the plane flat renderings are drawn on.
	DefaultProjection = string(nodelink.ProjectionFront)

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidPrimitives is the set of supported entity shapes.
var ValidPrimitives = map[string]bool{
	layout.ShapeSphere: true,
	layout.ShapeCube:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build input: one tree document per wood.
	Documents [][]byte `json:"-"`

	// Layout options
	BaseScale     float64     `json:"base_scale,omitempty"`
	BaseGap       float64     `json:"base_gap,omitempty"`
	Origin        *[3]float64 `json:"origin,omitempty"`
	Primitive     string      `json:"primitive,omitempty"`
	PrimitiveSize float64     `json:"primitive_size,omitempty"`
	Fill          string      `json:"fill,omitempty"`
	Stroke        string      `json:"stroke,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Wood       string   `json:"wood,omitempty"` // Wood to draw; defaults to the first
	Projection string   `json:"projection,omitempty"`
	Unit       float64  `json:"unit,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Refresh bypasses cached scenes and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is every laid-out wood.
	Scene graph.Scene

	// SceneHash is the content hash of the scene's JSON form.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo

	// Warnings lists documents or woods that were skipped.
	Warnings []string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Woods      int
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePrimitive checks that a primitive shape is valid.
func ValidatePrimitive(shape string) error {
	if !ValidPrimitives[shape] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid primitive: %q (must be one of: sphere, cube)", shape)
	}
	return nil
}

// ValidateProjection checks that a projection is valid.
func ValidateProjection(projection string) error {
	if _, err := nodelink.ParseProjection(projection); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid projection")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks that there is something to build.
func (o *Options) ValidateForBuild() error {
	if len(o.Documents) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one tree document is required")
	}
	for i, d := range o.Documents {
		if len(d) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "tree document %d is empty", i+1)
		}
	}
	return o.ValidateForLayout()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.BaseScale == 0 {
		o.BaseScale = DefaultBaseScale
	}
	if o.BaseGap == 0 {
		o.BaseGap = DefaultBaseGap
	}
	if o.Origin == nil {
		o.Origin = &[3]float64{layout.DefaultOrigin.X, layout.DefaultOrigin.Y, layout.DefaultOrigin.Z}
	}
	if o.Primitive == "" {
		o.Primitive = DefaultPrimitive
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateLayoutScale(o.BaseScale, o.BaseGap); err != nil {
		return err
	}
	if err := errors.ValidateOrigin(o.Origin[0], o.Origin[1], o.Origin[2]); err != nil {
		return err
	}
	if o.PrimitiveSize < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "primitive size must not be negative, got %v", o.PrimitiveSize)
	}
	return ValidatePrimitive(o.Primitive)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Projection == "" {
		o.Projection = DefaultProjection
	}
	if o.Unit == 0 {
		o.Unit = nodelink.DefaultUnit
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Unit < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "unit must be positive, got %v", o.Unit)
	}
	return ValidateProjection(o.Projection)
}

// logger returns the configured logger or a discarding one.
func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// NeedsDrawing reports whether any requested format is produced by Graphviz.
func (o *Options) NeedsDrawing() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool { return f != FormatJSON })
}

// WoodOptions returns the options applied while building woods.
func (o *Options) WoodOptions() []wood.Option {
	return []wood.Option{
		wood.WithLogger(o.logger()),
		wood.WithBaseScale(o.BaseScale),
		wood.WithBaseGap(o.BaseGap),
	}
}

// LayoutOptions returns the engine options for these pipeline options.
func (o *Options) LayoutOptions() (layout.Options, error) {
	opts := layout.Options{
		BaseScale: o.BaseScale,
		BaseGap:   o.BaseGap,
		Logger:    o.logger(),
	}
	if o.Origin != nil {
		opts.Origin = &layout.Vec3{X: o.Origin[0], Y: o.Origin[1], Z: o.Origin[2]}
	}

	p, err := o.primitive()
	if err != nil {
		return layout.Options{}, err
	}
	opts.Primitive = p
	return opts, nil
}

func (o *Options) primitive() (layout.Primitive, error) {
	def := layout.DefaultPrimitive().(layout.Sphere)
	wire := &graph.Primitive{Shape: o.Primitive, Fill: def.Fill, Stroke: def.Stroke}
	if wire.Shape == "" {
		wire.Shape = DefaultPrimitive
	}
	if o.Fill != "" {
		wire.Fill = o.Fill
	}
	if o.Stroke != "" {
		wire.Stroke = o.Stroke
	}
	size := o.PrimitiveSize
	if size == 0 {
		size = layout.DefaultSphereRadius
	}
	switch wire.Shape {
	case layout.ShapeSphere:
		wire.Radius = size
	case layout.ShapeCube:
		wire.Size = size
	}
	p, err := scene.ToPrimitive(wire)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "primitive")
	}
	return p, nil
}

// NodelinkOptions returns the drawing options for these pipeline options.
func (o *Options) NodelinkOptions() nodelink.Options {
	p, _ := nodelink.ParseProjection(o.Projection)
	return nodelink.Options{Projection: p, Unit: o.Unit, Detailed: o.Detailed}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		BaseScale: o.BaseScale,
		BaseGap:   o.BaseGap,
		Primitive: fmt.Sprintf("%s/%g/%s/%s", o.Primitive, o.PrimitiveSize, o.Fill, o.Stroke),
	}
	if o.Origin != nil {
		k.Origin = *o.Origin
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Projection: o.Projection,
		Unit:       o.Unit,
		Detailed:   o.Detailed,
		Wood:       o.Wood,
	}
}
