package node

// ID identifies a node within one [Store]. IDs start at 0, increase
// monotonically and are never reused.
type ID uint64

// Kind tags the role a node was created for.
//
// The tag is informational: a [KindBranch] node may end up without children
// when the source data has none, and only nodes created through
// [Store.AddLeafNode] carry [KindLeaf].
type Kind int

const (
	// KindBranch is an interior node. It is the default for new nodes.
	KindBranch Kind = iota
	// KindRoot is the single top node of a tree instance.
	KindRoot
	// KindLeaf is a node created explicitly as terminal.
	KindLeaf
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLeaf:
		return "leaf"
	default:
		return "branch"
	}
}

// Default field values used when the source data omits them.
const (
	DefaultDisplayName = "new node"
	DefaultAppName     = "new_application"
)

// Node is one entry in the hierarchy.
//
// Parents and Children hold non-owning links in insertion order; the order
// of Children defines rendering order and angular placement. Paths maps a
// traversal context (the application name) to the node's dotted path and
// depth in that context.
type Node struct {
	ID          ID
	Name        string
	DisplayName string
	Kind        Kind
	Parents     []ID
	Children    []ID
	Paths       map[string]Path
}

// AddChild appends a child link.
func (n *Node) AddChild(id ID) { n.Children = append(n.Children, id) }

// AddParent appends a parent link.
func (n *Node) AddParent(id ID) { n.Parents = append(n.Parents, id) }

// FanOut returns the number of child links.
func (n *Node) FanOut() int { return len(n.Children) }

// PathIn returns the path recorded for the given context.
func (n *Node) PathIn(context string) (Path, bool) {
	p, ok := n.Paths[context]
	return p, ok
}

// SetPath records p as the node's path in the given context.
func (n *Node) SetPath(context string, p Path) {
	if n.Paths == nil {
		n.Paths = make(map[string]Path)
	}
	n.Paths[context] = p
}
