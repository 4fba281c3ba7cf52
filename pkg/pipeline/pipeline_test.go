package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/godswood/pkg/core/layout"
	"github.com/matzehuels/godswood/pkg/core/wood"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/observability"
)

const fanOutThree = `{"name":"app","children":{"a":{},"b":{},"c":{}}}`

// memCache is an in-memory cache.Cache that counts Set calls.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidatePrimitive(t *testing.T) {
	tests := []struct {
		shape   string
		wantErr bool
	}{
		{"sphere", false},
		{"cube", false},
		{"cone", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidatePrimitive(tt.shape)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePrimitive(%q) error = %v, wantErr %v", tt.shape, err, tt.wantErr)
		}
	}
}

func TestValidateProjection(t *testing.T) {
	tests := []struct {
		projection string
		wantErr    bool
	}{
		{"front", false},
		{"top", false},
		{"side", false},
		{"iso", true},
	}

	for _, tt := range tests {
		err := ValidateProjection(tt.projection)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateProjection(%q) error = %v, wantErr %v", tt.projection, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.BaseScale != DefaultBaseScale {
		t.Errorf("BaseScale should be %v, got %v", DefaultBaseScale, opts.BaseScale)
	}
	if opts.BaseGap != DefaultBaseGap {
		t.Errorf("BaseGap should be %v, got %v", DefaultBaseGap, opts.BaseGap)
	}
	if opts.Origin == nil || *opts.Origin != [3]float64{0, 0, -10} {
		t.Errorf("Origin should be (0, 0, -10), got %v", opts.Origin)
	}
	if opts.Primitive != DefaultPrimitive {
		t.Errorf("Primitive should be %s, got %s", DefaultPrimitive, opts.Primitive)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Projection != DefaultProjection {
		t.Errorf("Projection should be %s, got %s", DefaultProjection, opts.Projection)
	}
	if opts.Unit <= 0 {
		t.Errorf("Unit should be positive, got %v", opts.Unit)
	}
}

func TestOptionsValidateForBuild(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"NoDocuments", Options{}, errors.ErrCodeInvalidInput},
		{"EmptyDocument", Options{Documents: [][]byte{nil}}, errors.ErrCodeInvalidInput},
		{"NegativeScale", Options{Documents: [][]byte{[]byte(`{}`)}, BaseScale: -1}, errors.ErrCodeInvalidOption},
		{"BadPrimitive", Options{Documents: [][]byte{[]byte(`{}`)}, Primitive: "cone"}, errors.ErrCodeInvalidOption},
		{"NegativeSize", Options{Documents: [][]byte{[]byte(`{}`)}, PrimitiveSize: -2}, errors.ErrCodeInvalidOption},
		{"Valid", Options{Documents: [][]byte{[]byte(`{}`)}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForBuild()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Documents: [][]byte{[]byte(fanOutThree)},
		Formats:   []string{FormatJSON},
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalScale := opts.BaseScale
	originalFormats := strings.Join(opts.Formats, ",")

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.BaseScale != originalScale {
		t.Error("BaseScale changed on second call")
	}
	if strings.Join(opts.Formats, ",") != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestLayoutOptions(t *testing.T) {
	opts := Options{Primitive: "cube", PrimitiveSize: 3, Fill: "red", Origin: &[3]float64{1, 2, 3}}
	opts.SetLayoutDefaults()

	lo, err := opts.LayoutOptions()
	if err != nil {
		t.Fatalf("LayoutOptions: %v", err)
	}
	cube, ok := lo.Primitive.(layout.Cube)
	if !ok {
		t.Fatalf("Primitive = %T, want layout.Cube", lo.Primitive)
	}
	if cube.Size != 3 || cube.Fill != "red" || cube.Stroke != layout.DefaultStroke {
		t.Errorf("cube = %+v", cube)
	}
	if lo.Origin == nil || *lo.Origin != (layout.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Origin = %v", lo.Origin)
	}
}

func TestLayoutKeyOptsVaryWithPrimitive(t *testing.T) {
	a := Options{}
	a.SetLayoutDefaults()
	b := a
	b.Fill = "blue"

	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("fill should change the layout key")
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	docs := [][]byte{[]byte(fanOutThree), wood.SampleTree}

	c, err := Build(ctx, docs, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()

	if c.Len() != 2 {
		t.Fatalf("woods = %d, want 2", c.Len())
	}
	if _, ok := c.Get("sample-application"); !ok {
		t.Error("sample wood missing")
	}
}

func TestBuildPartialFailure(t *testing.T) {
	ctx := context.Background()
	docs := [][]byte{[]byte(`[1,2]`), []byte(fanOutThree)}

	c, err := Build(ctx, docs, Options{})
	if err == nil {
		t.Fatal("expected error for the array document")
	}
	if c == nil || c.Len() != 1 {
		t.Fatalf("the valid document should still be built")
	}
	if !strings.Contains(err.Error(), "document 1") {
		t.Errorf("error should name the document: %v", err)
	}
	c.Close()
}

func TestBuildAllFail(t *testing.T) {
	c, err := Build(context.Background(), [][]byte{[]byte(`"x"`)}, Options{})
	if c != nil {
		t.Error("collection should be nil when nothing was built")
	}
	if !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Errorf("error = %v, want INVALID_TREE", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Build(ctx, [][]byte{[]byte(fanOutThree)}, Options{}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLayout(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, [][]byte{[]byte(fanOutThree)}, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Close()

	s, err := Layout(ctx, c, Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(s.Woods) != 1 {
		t.Fatalf("woods = %d, want 1", len(s.Woods))
	}
	w := s.Woods[0]
	if len(w.Nodes) != 4 || len(w.Edges) != 3 {
		t.Errorf("nodes = %d, edges = %d; want 4, 3", len(w.Nodes), len(w.Edges))
	}

	root, ok := w.Root()
	if !ok {
		t.Fatal("no root")
	}
	if root.Position != (graph.Position{X: 0, Y: 0, Z: -10}) {
		t.Errorf("root position = %+v", root.Position)
	}
	a, _ := w.Node(".app.a")
	if a.Position.Y != -20 {
		t.Errorf("child y = %v, want -20", a.Position.Y)
	}
}

func TestRenderJSONAndDOT(t *testing.T) {
	ctx := context.Background()
	c, _ := Build(ctx, [][]byte{[]byte(fanOutThree)}, Options{})
	defer c.Close()
	s, err := Layout(ctx, c, Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	artifacts, err := Render(ctx, s, Options{Formats: []string{FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	parsed, err := graph.UnmarshalScene(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact does not parse: %v", err)
	}
	if parsed.NodeCount() != 4 {
		t.Errorf("parsed nodes = %d, want 4", parsed.NodeCount())
	}

	dot := string(artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "digraph") || !strings.Contains(dot, `".app.a"`) {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
}

func TestRenderUnknownWood(t *testing.T) {
	s := graph.Scene{Woods: []graph.Wood{{Name: "app"}}}

	_, err := Render(context.Background(), s, Options{Formats: []string{FormatDOT}, Wood: "other"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}

	// JSON needs no wood selection.
	if _, err := Render(context.Background(), graph.Scene{}, Options{Formats: []string{FormatJSON}}); err != nil {
		t.Errorf("json of empty scene: %v", err)
	}
}

func TestSelectWood(t *testing.T) {
	s := graph.Scene{Woods: []graph.Wood{{Name: "one"}, {Name: "two"}}}

	tests := []struct {
		name     string
		want     string
		wantCode errors.Code
	}{
		{"", "one", ""},
		{"two", "two", ""},
		{"three", "", errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		w, err := SelectWood(s, tt.name)
		if tt.wantCode != "" {
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("SelectWood(%q) error = %v", tt.name, err)
			}
			continue
		}
		if err != nil || w.Name != tt.want {
			t.Errorf("SelectWood(%q) = %q, %v; want %q", tt.name, w.Name, err, tt.want)
		}
	}

	if _, err := SelectWood(graph.Scene{}, ""); !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("empty scene error = %v", err)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	defer r.Close()

	opts := Options{
		Documents: [][]byte{wood.SampleTree},
		Formats:   []string{FormatJSON, FormatDOT},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Woods != 1 || first.Stats.NodeCount != 13 || first.Stats.EdgeCount != 12 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.SceneHash == "" {
		t.Error("SceneHash should be set")
	}
	if mc.sets != 3 {
		t.Errorf("cache sets = %d, want 3 (scene + 2 artifacts)", mc.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.SceneHash != first.SceneHash {
		t.Error("cached scene should hash the same")
	}
	if string(second.Artifacts[FormatDOT]) != string(first.Artifacts[FormatDOT]) {
		t.Error("cached dot differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerExecutePartial(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	result, err := r.Execute(context.Background(), Options{
		Documents: [][]byte{[]byte(fanOutThree), []byte(`42`)},
		Formats:   []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Woods != 1 {
		t.Errorf("woods = %d, want 1", result.Stats.Woods)
	}
	if len(result.Warnings) == 0 {
		t.Error("skipped document should be reported")
	}
	for k := range mc.data {
		if strings.HasPrefix(k, "layout:") {
			t.Error("partial scenes should not be cached")
		}
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Documents: [][]byte{[]byte(`{}`)}, Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerConcurrentLayouts(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Documents: [][]byte{wood.SampleTree}}

	const workers = 8
	var wg sync.WaitGroup
	counts := make([]int, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.GenerateScene(context.Background(), opts)
			counts[i], errs[i] = s.NodeCount(), err
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if counts[i] != 13 {
			t.Errorf("worker %d saw %d nodes, want 13", i, counts[i])
		}
	}
}

// gatedHooks holds OnBuildStart until release is closed.
type gatedHooks struct {
	observability.NoopPipelineHooks
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *gatedHooks) OnBuildStart(context.Context, int) {
	h.once.Do(func() { close(h.entered) })
	<-h.release
}

func TestRunnerSharedLayoutSurvivesCancel(t *testing.T) {
	hooks := &gatedHooks{entered: make(chan struct{}), release: make(chan struct{})}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Documents: [][]byte{wood.SampleTree}}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.GenerateScene(ctx, opts)
		firstErr <- err
	}()
	<-hooks.entered

	type result struct {
		nodes int
		err   error
	}
	second := make(chan result, 1)
	go func() {
		s, err := r.GenerateScene(context.Background(), opts)
		second <- result{s.NodeCount(), err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		if err != context.Canceled {
			t.Errorf("canceled caller error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("canceled caller did not return")
	}

	close(hooks.release)
	select {
	case got := <-second:
		if got.err != nil {
			t.Fatalf("live caller: %v", got.err)
		}
		if got.nodes != 13 {
			t.Errorf("live caller saw %d nodes, want 13", got.nodes)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("live caller did not return")
	}
}
