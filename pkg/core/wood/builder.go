package wood

import (
	"github.com/tidwall/gjson"

	"github.com/matzehuels/godswood/pkg/core/node"
	"github.com/matzehuels/godswood/pkg/errors"
)

// Build parses a tree document into store-owned nodes and returns the
// resulting wood. Paths, depths and scales are not assigned yet; see
// [Collection.Add] for the full sequence.
//
// Children are created depth-first in document key order and linked in both
// directions. Every node, including terminal ones, is tagged
// [node.KindBranch] except the root.
func Build(store *node.Store, data []byte, opts ...Option) (*Wood, error) {
	cfg := newConfig(opts)

	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree document is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree document must be a JSON object")
	}

	top := raw{doc}
	root := store.AddAppNode(top)

	// Explicit stack instead of recursion so deep documents cannot exhaust
	// the goroutine stack.
	type frame struct {
		parent  *node.Node
		entries []entry
		next    int
	}
	stack := []*frame{{parent: root, entries: top.children()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := f.entries[f.next]
		f.next++

		child := store.AddNode(e.raw, e.name)
		store.Link(f.parent, child)
		cfg.logger.Debug("linked node", "parent", f.parent.Name, "child", child.Name)

		if kids := e.raw.children(); len(kids) > 0 {
			stack = append(stack, &frame{parent: child, entries: kids})
		}
	}

	return &Wood{
		Root:      root.ID,
		ByDepth:   make(map[int][]node.ID),
		Scales:    make(map[int]float64),
		BaseScale: cfg.baseScale,
		BaseGap:   cfg.baseGap,
		store:     store,
		logger:    cfg.logger,
	}, nil
}
