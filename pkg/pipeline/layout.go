package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/godswood/pkg/core/render/scene"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout places every wood of c and records the result as a scene, in the
// order the woods were added. Woods are laid out independently: one that
// fails is left out of the scene and its error joined into the result.
func Layout(ctx context.Context, c *wood.Collection, opts Options) (graph.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Scene{}, err
	}
	lopts, err := opts.LayoutOptions()
	if err != nil {
		return graph.Scene{}, err
	}
	logger := opts.logger()
	hooks := observability.Pipeline()

	s := graph.Scene{Woods: []graph.Wood{}}
	var errs []error
	for _, w := range c.Woods() {
		if err := ctx.Err(); err != nil {
			return graph.Scene{}, err
		}
		name := w.Label()
		hooks.OnLayoutStart(ctx, name, w.NodeCount())
		start := time.Now()

		out, p, err := scene.Record(w, lopts)
		hooks.OnLayoutComplete(ctx, name, time.Since(start), err)
		if err != nil {
			logger.Warn("layout failed", "wood", name, "error", err)
			errs = append(errs, fmt.Errorf("wood %s: %w", name, err))
			continue
		}
		logger.Debug("laid out wood", "wood", name, "entities", p.Len(), "lines", len(p.Lines))
		s.Woods = append(s.Woods, out)
	}

	return s, errors.Join(errs...)
}
