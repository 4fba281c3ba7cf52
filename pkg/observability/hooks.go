// Package observability carries pipeline, cache and HTTP events out of the
// core packages.
//
// Libraries only ever call the registered hooks:
//
//	observability.Pipeline().OnBuildStart(ctx, len(docs))
//	observability.Cache().OnCacheHit(ctx, "layout")
//
// The binary decides what listens. By default every hook is a no-op. serve
// installs [LogHooks], plus [MetricsHooks] behind a
// [Fanout] when /metrics is enabled:
//
//	observability.Register(observability.Fanout{
//	    observability.NewLogHooks(logger),
//	    observability.NewMetricsHooks(reg),
//	})
//	defer observability.Reset()
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives one start/complete pair per pipeline stage. Layout
// events are reported per wood.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, documents int)
	OnBuildComplete(ctx context.Context, woods, nodes int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, wood string, nodeCount int)
	OnLayoutComplete(ctx context.Context, wood string, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives lookups and writes. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives API requests. OnRequest fires before routing and sees
// the raw URL path; OnResponse gets the matched chi route pattern, or
// "unmatched" when no route matched.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type (
	NoopPipelineHooks struct{}
	NoopCacheHooks    struct{}
	NoopServerHooks   struct{}
)

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry holds the process-wide hooks.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

var global = &registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	server:   NoopServerHooks{},
}

func (r *registry) update(fn func(*registry)) {
	r.mu.Lock()
	fn(r)
	r.mu.Unlock()
}

// SetPipelineHooks installs h. A nil h leaves the current hooks in place.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		global.update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h leaves the current hooks in place.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		global.update(func(r *registry) { r.cache = h })
	}
}

// SetServerHooks installs h. A nil h leaves the current hooks in place.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		global.update(func(r *registry) { r.server = h })
	}
}

func Pipeline() PipelineHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.pipeline
}

func Cache() CacheHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.cache
}

func Server() ServerHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.server
}

// Reset puts every hook back to its no-op.
func Reset() {
	global.update(func(r *registry) {
		r.pipeline = NoopPipelineHooks{}
		r.cache = NoopCacheHooks{}
		r.server = NoopServerHooks{}
	})
}
