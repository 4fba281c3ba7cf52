package wood

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/godswood/pkg/core/node"
)

// Layout constants applied to every wood unless overridden.
const (
	DefaultBaseScale = 4.0
	DefaultBaseGap   = 20.0
)

// Wood is one parsed tree document plus its derived metadata.
//
// ByDepth and MaxDepth are filled by [Wood.AssignPathsAndDepths]; Scales by
// [Wood.ComputeScales]. BaseScale is the global radius unit and BaseGap the
// vertical spacing between depth levels.
type Wood struct {
	Root      node.ID
	ByDepth   map[int][]node.ID
	MaxDepth  int
	Scales    map[int]float64
	BaseScale float64
	BaseGap   float64

	// Collisions counts index writes that replaced a different node's path.
	Collisions int

	store  *node.Store
	logger *log.Logger
}

// Option configures a [Wood] or a [Collection].
type Option func(*config)

type config struct {
	logger    *log.Logger
	baseScale float64
	baseGap   float64
}

func newConfig(opts []Option) config {
	cfg := config{baseScale: DefaultBaseScale, baseGap: DefaultBaseGap}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return cfg
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithBaseScale overrides [DefaultBaseScale].
func WithBaseScale(v float64) Option {
	return func(c *config) { c.baseScale = v }
}

// WithBaseGap overrides [DefaultBaseGap].
func WithBaseGap(v float64) Option {
	return func(c *config) { c.baseGap = v }
}

// Store returns the arena owning the wood's nodes.
func (w *Wood) Store() *node.Store { return w.store }

// RootNode resolves the root. It returns false once the store is closed.
func (w *Wood) RootNode() (*node.Node, bool) {
	return w.store.Resolve(w.Root)
}

// Name returns the root's name, which is also the wood's path context.
func (w *Wood) Name() string {
	if root, ok := w.RootNode(); ok {
		return root.Name
	}
	return ""
}

// Label names the wood in messages: its name, or "#<root id>" once the root
// no longer resolves.
func (w *Wood) Label() string {
	if name := w.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", w.Root)
}

// Resolve looks up a node by dotted path.
func (w *Wood) Resolve(path string) (*node.Node, bool) {
	return w.store.ResolvePath(path)
}

// PathOf returns n's path in this wood's context.
func (w *Wood) PathOf(n *node.Node) (node.Path, bool) {
	return n.PathIn(w.Name())
}

// Nodes returns the resolvable nodes grouped by depth in breadth-first
// discovery order.
func (w *Wood) Nodes() []*node.Node {
	var out []*node.Node
	for d := 1; d <= w.MaxDepth; d++ {
		for _, id := range w.ByDepth[d] {
			if n, ok := w.store.Resolve(id); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// NodeCount returns the number of nodes recorded across all depths.
func (w *Wood) NodeCount() int {
	total := 0
	for _, ids := range w.ByDepth {
		total += len(ids)
	}
	return total
}

// EdgeCount returns the number of parent → child links among recorded nodes.
func (w *Wood) EdgeCount() int {
	total := 0
	for _, n := range w.Nodes() {
		total += n.FanOut()
	}
	return total
}
