package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/observability"
)

// Build parses every document into one collection. Each document becomes a
// wood with its paths, depths and scales computed.
//
// A document that fails to build is skipped and its error joined into the
// returned error; the collection still holds the others. Build fails outright
// only when no wood could be built.
func Build(ctx context.Context, docs [][]byte, opts Options) (*wood.Collection, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	logger := opts.logger()
	hooks := observability.Pipeline()

	hooks.OnBuildStart(ctx, len(docs))
	start := time.Now()

	c := wood.NewCollection(opts.WoodOptions()...)
	var errs []error
	for i, data := range docs {
		if err := ctx.Err(); err != nil {
			c.Close()
			hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
			return nil, err
		}
		w, err := c.Add(data)
		if err != nil {
			logger.Warn("skipping tree document", "document", i+1, "error", err)
			errs = append(errs, fmt.Errorf("document %d: %w", i+1, err))
			continue
		}
		if err := errors.ValidateName(w.Name()); err != nil {
			logger.Warn("wood name is not path safe", "wood", w.Name(), "error", err)
		}
	}

	nodes := 0
	for _, w := range c.Woods() {
		nodes += w.NodeCount()
	}
	err := errors.Join(errs...)
	if c.Len() == 0 {
		c.Close()
		if err == nil {
			err = errors.New(errors.ErrCodeInvalidInput, "no tree documents")
		}
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}

	hooks.OnBuildComplete(ctx, c.Len(), nodes, time.Since(start), err)
	logger.Debug("built woods", "woods", c.Len(), "nodes", nodes, "paths", c.Store().Paths(), "duration", time.Since(start))
	return c, err
}
