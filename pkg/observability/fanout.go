package observability

import (
	"context"
	"time"
)

// Hooks is the union of all hook interfaces. [LogHooks] and [MetricsHooks]
// implement it.
type Hooks interface {
	PipelineHooks
	CacheHooks
	ServerHooks
}

// Fanout forwards every event to each of its hooks in order.
type Fanout []Hooks

var _ Hooks = Fanout(nil)

// Register installs h as the pipeline, cache and server hooks.
func Register(h Hooks) {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (f Fanout) OnBuildStart(ctx context.Context, documents int) {
	for _, h := range f {
		h.OnBuildStart(ctx, documents)
	}
}

func (f Fanout) OnBuildComplete(ctx context.Context, woods, nodes int, d time.Duration, err error) {
	for _, h := range f {
		h.OnBuildComplete(ctx, woods, nodes, d, err)
	}
}

func (f Fanout) OnLayoutStart(ctx context.Context, wood string, nodeCount int) {
	for _, h := range f {
		h.OnLayoutStart(ctx, wood, nodeCount)
	}
}

func (f Fanout) OnLayoutComplete(ctx context.Context, wood string, d time.Duration, err error) {
	for _, h := range f {
		h.OnLayoutComplete(ctx, wood, d, err)
	}
}

func (f Fanout) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range f {
		h.OnRenderStart(ctx, formats)
	}
}

func (f Fanout) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

func (f Fanout) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheHit(ctx, keyType)
	}
}

func (f Fanout) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (f Fanout) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, keyType, size)
	}
}

func (f Fanout) OnRequest(ctx context.Context, method, route string) {
	for _, h := range f {
		h.OnRequest(ctx, method, route)
	}
}

func (f Fanout) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	for _, h := range f {
		h.OnResponse(ctx, method, route, status, d)
	}
}
