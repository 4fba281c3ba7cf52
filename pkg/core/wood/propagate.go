package wood

import (
	"github.com/matzehuels/godswood/pkg/core/node"
	"github.com/matzehuels/godswood/pkg/errors"
)

// task carries a resolved parent and the path it was assigned, so children
// can be derived without re-reading the parent's path map.
type task struct {
	path     node.Path
	children []node.ID
}

// AssignPathsAndDepths walks the wood breadth-first from the root, assigning
// every reachable node its dotted path and depth in the wood's context and
// recording it in the store index and in ByDepth.
//
// Children that no longer resolve are skipped. A root that does not resolve
// is a structural error. Running the pass again rebuilds ByDepth from
// scratch.
func (w *Wood) AssignPathsAndDepths() error {
	root, ok := w.RootNode()
	if !ok {
		return errors.New(errors.ErrCodeStructural, "root node %d does not resolve", w.Root)
	}

	clear(w.ByDepth)
	if w.ByDepth == nil {
		w.ByDepth = make(map[int][]node.ID)
	}
	w.MaxDepth = 0
	w.Collisions = 0

	app := root.Name
	rootPath := node.Path{}.Append(app)
	w.record(app, root, rootPath)

	queue := []task{{path: rootPath, children: root.Children}}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		for _, id := range t.children {
			kid, ok := w.store.Resolve(id)
			if !ok {
				w.logger.Warn("skipping unresolved child", "parent", t.path.String(), "id", id)
				continue
			}
			p := t.path.Append(kid.Name)
			w.record(app, kid, p)
			queue = append(queue, task{path: p, children: kid.Children})
		}
	}

	w.logger.Debug("assigned paths", "wood", app, "nodes", w.NodeCount(), "max_depth", w.MaxDepth)
	return nil
}

// record stores p on n, indexes it and files n under its depth.
func (w *Wood) record(app string, n *node.Node, p node.Path) {
	n.SetPath(app, p)
	if prev, replaced := w.store.UpdateIndex(p.String(), n.ID); replaced {
		w.Collisions++
		w.logger.Warn("path collision, index overwritten", "path", p.String(), "previous", prev, "current", n.ID)
	}
	d := p.Depth()
	w.ByDepth[d] = append(w.ByDepth[d], n.ID)
	if d > w.MaxDepth {
		w.MaxDepth = d
	}
	w.logger.Debug("assigned path", "path", p.String(), "depth", d)
}
