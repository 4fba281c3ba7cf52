package wood

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/godswood/pkg/core/node"
)

// Collection holds several woods built on one shared store. Each wood is
// scaled and laid out independently; a document that fails to build leaves
// the others untouched.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	store  *node.Store
	woods  map[string]*Wood
	order  []string
	opts   []Option
	logger *log.Logger
}

// NewCollection creates an empty collection. The options apply to every wood
// added to it.
func NewCollection(opts ...Option) *Collection {
	cfg := newConfig(opts)
	return &Collection{
		store:  node.NewStore(),
		woods:  make(map[string]*Wood),
		opts:   opts,
		logger: cfg.logger,
	}
}

// Add builds a wood from a tree document, assigns paths and depths and
// computes its scales. A wood whose name is already present replaces the
// earlier one.
func (c *Collection) Add(data []byte) (*Wood, error) {
	w, err := Build(c.store, data, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := w.AssignPathsAndDepths(); err != nil {
		return nil, fmt.Errorf("assign paths: %w", err)
	}
	if err := w.ComputeScales(); err != nil {
		return nil, fmt.Errorf("compute scales: %w", err)
	}

	name := w.Name()
	if _, exists := c.woods[name]; exists {
		c.logger.Warn("replacing wood with the same name", "wood", name)
	} else {
		c.order = append(c.order, name)
	}
	c.woods[name] = w

	c.logger.Info("added wood", "wood", name, "nodes", w.NodeCount(), "max_depth", w.MaxDepth)
	return w, nil
}

// Get returns the wood named name.
func (c *Collection) Get(name string) (*Wood, bool) {
	w, ok := c.woods[name]
	return w, ok
}

// Woods returns the woods in insertion order.
func (c *Collection) Woods() []*Wood {
	out := make([]*Wood, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.woods[name])
	}
	return out
}

// Len returns the number of woods.
func (c *Collection) Len() int { return len(c.order) }

// Resolve finds a node by dotted path in any wood of the collection.
func (c *Collection) Resolve(path string) (*node.Node, bool) {
	return c.store.ResolvePath(path)
}

// Lookup finds the wood a dotted path belongs to, based on its first
// segment, and the node it names.
func (c *Collection) Lookup(path string) (*Wood, *node.Node, bool) {
	app, ok := node.AppName(path)
	if !ok {
		return nil, nil, false
	}
	w, ok := c.woods[app]
	if !ok {
		return nil, nil, false
	}
	n, ok := w.Resolve(path)
	if !ok {
		return w, nil, false
	}
	return w, n, true
}

// Store returns the shared arena.
func (c *Collection) Store() *node.Store { return c.store }

// Close tears down the shared store. Nodes of every wood stop resolving.
func (c *Collection) Close() {
	c.store.Close()
}
