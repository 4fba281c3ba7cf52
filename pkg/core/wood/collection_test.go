package wood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionKeepsWoodsIndependent(t *testing.T) {
	c := NewCollection()
	a, err := c.Add([]byte(`{"name":"alpha","children":{"x":{},"y":{},"z":{}}}`))
	require.NoError(t, err)
	b, err := c.Add([]byte(`{"name":"beta","children":{"x":{"children":{"deep":{}}}}}`))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, a.MaxDepth)
	assert.Equal(t, 3, b.MaxDepth)
	assert.InDelta(t, RawScale(3), a.Scales[1], 1e-9)
	assert.InDelta(t, 1.0, b.Scales[1], 1e-9)

	got := c.Woods()
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Name())
	assert.Equal(t, "beta", got[1].Name())

	// Both woods share one arena but keep separate path contexts.
	assert.Equal(t, 7, c.Store().Len())
	n, ok := c.Resolve(".beta.x.deep")
	require.True(t, ok)
	_, ok = n.PathIn("alpha")
	assert.False(t, ok)
}

func TestCollectionFailedDocumentLeavesOthersIntact(t *testing.T) {
	c := NewCollection()
	_, err := c.Add([]byte(`{"name":"good","children":{"a":{}}}`))
	require.NoError(t, err)

	_, err = c.Add([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build:")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Resolve(".good.a")
	assert.True(t, ok)
}

func TestCollectionReplacesSameName(t *testing.T) {
	c := NewCollection()
	_, err := c.Add([]byte(`{"name":"app","children":{"a":{}}}`))
	require.NoError(t, err)
	second, err := c.Add([]byte(`{"name":"app","children":{"a":{},"b":{}}}`))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	got, ok := c.Get("app")
	require.True(t, ok)
	assert.Same(t, second, got)

	// The index points at the newer wood's nodes.
	n, ok := c.Resolve(".app.a")
	require.True(t, ok)
	root, _ := second.RootNode()
	assert.Equal(t, root.Children[0], n.ID)
}

func TestCollectionLookup(t *testing.T) {
	c := NewCollection()
	_, err := c.Add(SampleTree)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		wantWood bool
		wantNode string
	}{
		{"Root", ".sample-application", true, "sample-application"},
		{"Nested", ".sample-application.service1.service5.service7", true, "service7"},
		{"MissingNode", ".sample-application.nope", true, ""},
		{"UnknownWood", ".other.service1", false, ""},
		{"NoLeadingDot", "sample-application", false, ""},
		{"Empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, n, ok := c.Lookup(tt.path)
			assert.Equal(t, tt.wantWood, w != nil)
			if tt.wantNode == "" {
				assert.False(t, ok)
				assert.Nil(t, n)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantNode, n.Name)
		})
	}
}

func TestCollectionClose(t *testing.T) {
	c := NewCollection()
	w, err := c.Add(SampleTree)
	require.NoError(t, err)
	rootID := w.Root

	c.Close()

	_, ok := c.Store().Resolve(rootID)
	assert.False(t, ok)
	_, ok = c.Resolve(".sample-application")
	assert.False(t, ok)
	_, ok = w.RootNode()
	assert.False(t, ok)
	assert.Empty(t, w.Nodes())
}

func TestCollectionOptions(t *testing.T) {
	c := NewCollection(WithBaseScale(2), WithBaseGap(5))
	w, err := c.Add([]byte(`{"name":"app","children":{"a":{},"b":{}}}`))
	require.NoError(t, err)
	assert.Equal(t, 2.0, w.BaseScale)
	assert.Equal(t, 5.0, w.BaseGap)
	assert.InDelta(t, 4.0, w.Radius(1), 1e-9)
}
