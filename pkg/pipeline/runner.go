package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/godswood/pkg/cache"
	"github.com/matzehuels/godswood/pkg/errors"
	"github.com/matzehuels/godswood/pkg/graph"
	"github.com/matzehuels/godswood/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options. Concurrent layouts of identical documents
// and options share one computation.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	flight singleflight.Group
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1+2: Build and layout, cached together on the documents
	layoutStart := time.Now()
	s, layoutHit, err := r.GenerateSceneWithCacheInfo(ctx, opts)
	if err != nil {
		if len(s.Woods) == 0 {
			return nil, fmt.Errorf("layout: %w", err)
		}
		// Keep going with the woods that made it.
		r.Logger.Warn("some trees were skipped", "error", err)
		result.Warnings = strings.Split(err.Error(), "\n")
	}
	result.Scene = s
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Woods = len(s.Woods)
	result.Stats.NodeCount = s.NodeCount()
	for _, w := range s.Woods {
		result.Stats.EdgeCount += len(w.Edges)
	}
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := graph.MarshalScene(s); err == nil {
		result.SceneHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"woods", result.Stats.Woods,
		"nodes", result.Stats.NodeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateSceneWithCacheInfo builds and lays out the documents with caching
// and returns cache hit info.
//
// A partial failure (some documents or woods rejected) still yields the scene
// of the others alongside the error. Partial scenes are never cached.
func (r *Runner) GenerateSceneWithCacheInfo(ctx context.Context, opts Options) (graph.Scene, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return graph.Scene{}, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Cache()

	cacheKey := r.Keyer.LayoutKey(cache.HashAll(opts.Documents...), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			s, err := graph.UnmarshalScene(data)
			if err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return s, true, nil // Cache hit
			}
			r.Logger.Warn("discarding unreadable cached scene", "error", err)
		}
	}
	hooks.OnCacheMiss(ctx, "layout")

	// The shared computation ignores caller cancellation; each caller only
	// stops waiting when its own ctx is done.
	ch := r.flight.DoChan(cacheKey, func() (any, error) {
		return buildAndLayout(context.WithoutCancel(ctx), opts)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return graph.Scene{}, false, ctx.Err()
	case res = <-ch:
	}
	if res.Shared {
		r.Logger.Debug("shared in-flight layout", "key", cacheKey)
	}
	s := res.Val.(graph.Scene)
	if res.Err != nil {
		return s, false, res.Err
	}

	if data, err := graph.MarshalScene(s); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache write failed", "kind", "layout", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return s, false, nil // Cache miss
}

// buildAndLayout runs the uncached stages. The scene holds every wood that
// made it even when the error is non-nil.
func buildAndLayout(ctx context.Context, opts Options) (any, error) {
	c, err := Build(ctx, opts.Documents, opts)
	if c == nil {
		return graph.Scene{}, err
	}
	defer c.Close()

	s, layoutErr := Layout(ctx, c, opts)
	return s, errors.Join(err, layoutErr)
}

// GenerateScene is a convenience wrapper that calls GenerateSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateScene(ctx context.Context, opts Options) (graph.Scene, error) {
	s, _, err := r.GenerateSceneWithCacheInfo(ctx, opts)
	return s, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s graph.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hooks := observability.Cache()

	// Compute cache key from scene data
	sceneData, err := graph.MarshalScene(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		hooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	hooks.OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(ctx, s, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "kind", "artifact", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s graph.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
