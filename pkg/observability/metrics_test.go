package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetricsHooks(reg)

	m.OnBuildComplete(ctx, 2, 17, time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "app", time.Millisecond, errors.New("boom"))
	m.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	m.OnCacheHit(ctx, "layout")
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnRequest(ctx, "POST", "/v1/layout")
	m.OnResponse(ctx, "POST", "/v1/layout", 200, time.Millisecond)

	if got := testutil.ToFloat64(m.woodsBuilt); got != 2 {
		t.Errorf("woods built = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.nodesBuilt); got != 17 {
		t.Errorf("nodes built = %v, want 17", got)
	}
	if got := testutil.ToFloat64(m.stageErrors.WithLabelValues("layout")); got != 1 {
		t.Errorf("layout errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.stageErrors.WithLabelValues("build")); got != 0 {
		t.Errorf("build errors = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("layout", "hit")); got != 1 {
		t.Errorf("layout hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheBytes.WithLabelValues("artifact")); got != 512 {
		t.Errorf("artifact bytes = %v, want 512", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/v1/layout", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.inflight); got != 0 {
		t.Errorf("in flight = %v, want 0 after the response", got)
	}
	if n := testutil.CollectAndCount(m.stageDuration); n != 3 {
		t.Errorf("stage histograms = %d, want one per stage", n)
	}
}

func TestMetricsHooksRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetricsHooks(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewMetricsHooks(reg)
}

func TestFanout(t *testing.T) {
	Reset()
	defer Reset()

	ctx := context.Background()
	var buf bytes.Buffer
	logs := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	metrics := NewMetricsHooks(prometheus.NewRegistry())

	Register(Fanout{logs, metrics})
	Cache().OnCacheHit(ctx, "layout")
	Pipeline().OnBuildComplete(ctx, 1, 3, time.Millisecond, nil)
	Server().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	if !strings.Contains(buf.String(), "cache hit") {
		t.Errorf("log hooks should see the event:\n%s", buf.String())
	}
	if got := testutil.ToFloat64(metrics.cacheEvents.WithLabelValues("layout", "hit")); got != 1 {
		t.Errorf("metrics hooks should see the event, hits = %v", got)
	}
	if got := testutil.ToFloat64(metrics.woodsBuilt); got != 1 {
		t.Errorf("woods built = %v, want 1", got)
	}
}
