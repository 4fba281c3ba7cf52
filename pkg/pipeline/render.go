package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/godswood/pkg/core/render/nodelink"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/observability"
)

// Render generates output artifacts in the requested formats.
//
// JSON carries the whole scene. The drawn formats (DOT, SVG, PNG, PDF) show a
// single wood: opts.Wood when set, otherwise the first one.
func Render(ctx context.Context, s graph.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func render(ctx context.Context, s graph.Scene, opts Options) (map[string][]byte, error) {
	var dot string
	if opts.NeedsDrawing() {
		w, err := SelectWood(s, opts.Wood)
		if err != nil {
			return nil, err
		}
		dot = nodelink.ToDOT(w, opts.NodelinkOptions())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalScene(s)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// SelectWood returns the wood named name, or the first wood when name is empty.
func SelectWood(s graph.Scene, name string) (graph.Wood, error) {
	if len(s.Woods) == 0 {
		return graph.Wood{}, errors.New(errors.ErrCodeStructural, "scene has no woods")
	}
	if name == "" {
		return s.Woods[0], nil
	}
	w, ok := s.Find(name)
	if !ok {
		return graph.Wood{}, errors.New(errors.ErrCodeNotFound, "wood %q not in scene (have: %v)", name, s.Names())
	}
	return *w, nil
}
