package scene

import (
	"fmt"

	"github.com/matzehuels/godswood/pkg/core/layout"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
)

// Record lays out w into a fresh recorder and exports the result.
func Record(w *wood.Wood, opts layout.Options) (graph.Wood, layout.Placement, error) {
	rec := NewRecorder()
	p, err := layout.New(opts).Run(w, rec)
	if err != nil {
		return graph.Wood{}, layout.Placement{}, err
	}
	out, err := rec.Export(w)
	if err != nil {
		return graph.Wood{}, layout.Placement{}, err
	}
	return out, p, nil
}

// RecordAll lays out every wood of c and collects the exports into one scene,
// in insertion order. Woods that fail are left out and their errors joined.
func RecordAll(c *wood.Collection, opts layout.Options) (graph.Scene, error) {
	s := graph.Scene{Woods: []graph.Wood{}}
	var errs []error
	for _, w := range c.Woods() {
		out, _, err := Record(w, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("wood %s: %w", w.Label(), err))
			continue
		}
		s.Woods = append(s.Woods, out)
	}
	return s, errors.Join(errs...)
}
