package node

import "sync"

// Raw is read access to one decoded source object (a node description).
// Implementations return fallback when key is absent or not a string.
type Raw interface {
	String(key, fallback string) string
}

// Store is the arena that owns every node of a tree-building session,
// plus the path → ID index filled during path propagation.
//
// Nodes are never removed individually. [Store.Close] drops the whole arena;
// afterwards every ID and path lookup misses.
//
// The zero value is not usable; create a Store with [NewStore].
type Store struct {
	mu     sync.RWMutex
	nextID ID
	nodes  map[ID]*Node
	index  map[string]ID
}

// NewStore creates an empty arena.
func NewStore() *Store {
	return &Store{
		nodes: make(map[ID]*Node),
		index: make(map[string]ID),
	}
}

// CreateNode allocates a node with a fresh ID and default fields
// (kind [KindBranch]) and registers it in the arena.
func (s *Store) CreateNode() *Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nodes == nil {
		s.nodes = make(map[ID]*Node)
	}
	n := &Node{ID: s.nextID, Kind: KindBranch}
	s.nodes[n.ID] = n
	s.nextID++
	return n
}

// AddNode creates a branch node named name. The display name is read from
// raw's "display_name" field, falling back to [DefaultDisplayName].
func (s *Store) AddNode(raw Raw, name string) *Node {
	n := s.CreateNode()
	n.Name = name
	n.DisplayName = displayName(raw)
	n.Kind = KindBranch
	return n
}

// AddLeafNode is AddNode for a node tagged [KindLeaf].
func (s *Store) AddLeafNode(name string, raw Raw) *Node {
	n := s.AddNode(raw, name)
	n.Kind = KindLeaf
	return n
}

// AddAppNode creates the root node of an application tree. Its name is read
// from raw's "name" field, falling back to [DefaultAppName].
func (s *Store) AddAppNode(raw Raw) *Node {
	name := DefaultAppName
	if raw != nil {
		name = raw.String("name", DefaultAppName)
	}
	n := s.AddNode(raw, name)
	n.Kind = KindRoot
	return n
}

func displayName(raw Raw) string {
	if raw == nil {
		return DefaultDisplayName
	}
	return raw.String("display_name", DefaultDisplayName)
}

// Link records child under parent and parent above child.
func (s *Store) Link(parent, child *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent.AddChild(child.ID)
	child.AddParent(parent.ID)
}

// UpdateIndex maps path to id. The last writer wins: when path already
// pointed at a different node, the previous ID is returned with replaced set.
func (s *Store) UpdateIndex(path string, id ID) (prev ID, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		s.index = make(map[string]ID)
	}
	old, ok := s.index[path]
	s.index[path] = id
	if ok && old != id {
		return old, true
	}
	return 0, false
}

// Resolve returns the node stored under id.
func (s *Store) Resolve(id ID) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

// ResolvePath looks up the ID indexed under path, then the node for that
// ID. It returns false if either lookup misses.
func (s *Store) ResolvePath(path string) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.index[path]
	if !ok {
		return nil, false
	}
	n, ok := s.nodes[id]
	return n, ok
}

// Lookup returns the ID indexed under path without resolving it.
func (s *Store) Lookup(path string) (ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.index[path]
	return id, ok
}

// Len returns the number of nodes in the arena.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Paths returns the number of indexed paths.
func (s *Store) Paths() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

// Close drops the arena and the index. IDs handed out before Close are not
// reused by later allocations.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nil
	s.index = nil
}
