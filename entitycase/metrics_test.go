package entitycase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/userhub/userhub/cache"
	"github.com/userhub/userhub/model"
	"github.com/userhub/userhub/pkg/testsupport"
)

func TestMetrics_CountsPerKeyspace(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	reader := newMockUserReader(testsupport.SeedUsers()...)
	lookup := NewLookup[model.User]("user", newTestCache(t, 8), reader, metrics)
	ctx := context.Background()

	if _, _, err := lookup.Execute(ctx, cache.ByID("u1")); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, _, err := lookup.Execute(ctx, cache.ByID("u1")); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	lookup.Execute(ctx, cache.ByID("ghost"))

	if got := testutil.ToFloat64(metrics.misses.WithLabelValues("user")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.hits.WithLabelValues("user")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.absent.WithLabelValues("user")); got != 1 {
		t.Errorf("absent = %v, want 1", got)
	}
}

func TestMetrics_NilRecorderIsSafe(t *testing.T) {
	var metrics *Metrics

	metrics.recordHit("user")
	metrics.recordMiss("user")
	metrics.recordAbsent("user")
}
