package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRaw map[string]string

func (m mapRaw) String(key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func TestCreateNodeAssignsMonotonicIDs(t *testing.T) {
	s := NewStore()

	a := s.CreateNode()
	b := s.CreateNode()
	c := s.CreateNode()

	assert.Equal(t, ID(0), a.ID)
	assert.Equal(t, ID(1), b.ID)
	assert.Equal(t, ID(2), c.ID)
	assert.Equal(t, KindBranch, a.Kind)
	assert.Equal(t, 3, s.Len())
}

func TestAddNodeVariants(t *testing.T) {
	tests := []struct {
		name        string
		create      func(s *Store) *Node
		wantName    string
		wantDisplay string
		wantKind    Kind
	}{
		{
			name:        "BranchWithDisplayName",
			create:      func(s *Store) *Node { return s.AddNode(mapRaw{"display_name": "Service A"}, "a") },
			wantName:    "a",
			wantDisplay: "Service A",
			wantKind:    KindBranch,
		},
		{
			name:        "BranchDefaultDisplayName",
			create:      func(s *Store) *Node { return s.AddNode(mapRaw{}, "b") },
			wantName:    "b",
			wantDisplay: DefaultDisplayName,
			wantKind:    KindBranch,
		},
		{
			name:        "Leaf",
			create:      func(s *Store) *Node { return s.AddLeafNode("c", mapRaw{}) },
			wantName:    "c",
			wantDisplay: DefaultDisplayName,
			wantKind:    KindLeaf,
		},
		{
			name:        "App",
			create:      func(s *Store) *Node { return s.AddAppNode(mapRaw{"name": "shop"}) },
			wantName:    "shop",
			wantDisplay: DefaultDisplayName,
			wantKind:    KindRoot,
		},
		{
			name:        "AppDefaultName",
			create:      func(s *Store) *Node { return s.AddAppNode(nil) },
			wantName:    DefaultAppName,
			wantDisplay: DefaultDisplayName,
			wantKind:    KindRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			n := tt.create(s)
			assert.Equal(t, tt.wantName, n.Name)
			assert.Equal(t, tt.wantDisplay, n.DisplayName)
			assert.Equal(t, tt.wantKind, n.Kind)

			got, ok := s.Resolve(n.ID)
			require.True(t, ok)
			assert.Same(t, n, got)
		})
	}
}

func TestLinkIsBidirectional(t *testing.T) {
	s := NewStore()
	parent := s.AddAppNode(mapRaw{"name": "app"})
	a := s.AddNode(nil, "a")
	b := s.AddNode(nil, "b")

	s.Link(parent, a)
	s.Link(parent, b)

	assert.Equal(t, []ID{a.ID, b.ID}, parent.Children)
	assert.Equal(t, []ID{parent.ID}, a.Parents)
	assert.Equal(t, []ID{parent.ID}, b.Parents)
	assert.Equal(t, 2, parent.FanOut())
}

func TestUpdateIndexLastWriterWins(t *testing.T) {
	s := NewStore()
	a := s.CreateNode()
	b := s.CreateNode()

	_, replaced := s.UpdateIndex(".app.x", a.ID)
	assert.False(t, replaced)

	_, replaced = s.UpdateIndex(".app.x", a.ID)
	assert.False(t, replaced, "rewriting the same id is not a collision")

	prev, replaced := s.UpdateIndex(".app.x", b.ID)
	assert.True(t, replaced)
	assert.Equal(t, a.ID, prev)

	got, ok := s.ResolvePath(".app.x")
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestResolvePathMisses(t *testing.T) {
	s := NewStore()
	n := s.CreateNode()
	s.UpdateIndex(".app", n.ID)
	s.UpdateIndex(".app.ghost", ID(99))

	_, ok := s.ResolvePath(".app.unknown")
	assert.False(t, ok, "unindexed path")

	_, ok = s.ResolvePath(".app.ghost")
	assert.False(t, ok, "indexed id without a node")
}

func TestCloseDropsEverything(t *testing.T) {
	s := NewStore()
	n := s.CreateNode()
	s.UpdateIndex(".app", n.ID)
	assert.Equal(t, 1, s.Paths())

	s.Close()

	_, ok := s.Resolve(n.ID)
	assert.False(t, ok)
	_, ok = s.ResolvePath(".app")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Paths())

	next := s.CreateNode()
	assert.Greater(t, next.ID, n.ID, "ids are never reused")
}
