package geocode

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/savingsmap/bankpipe/pkg/jsoncache"
	"github.com/savingsmap/bankpipe/pkg/politely"
)

func testResolver(t *testing.T, handler http.Handler) (*Resolver, *jsoncache.Cache) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache, err := jsoncache.Open(filepath.Join(t.TempDir(), "geo.json"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewResolver(DefaultConfig(), cache, logger)
	r.BaseURL = srv.URL
	r.runner = politely.NewRunner(0, time.Second)
	return r, cache
}

func TestResolveCachesHits(t *testing.T) {
	calls := 0
	r, _ := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls++
		if q := req.URL.Query().Get("q"); q != "Oslo, Norway" {
			t.Errorf("query = %q", q)
		}
		if cc := req.URL.Query().Get("countrycodes"); cc != "no" {
			t.Errorf("countrycodes = %q", cc)
		}
		w.Write([]byte(`[{"lat":"59.9139","lon":"10.7522"}]`))
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		pt, err := r.Resolve(ctx, "Oslo", "NO")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if pt == nil || pt.Lat != 59.9139 || pt.Lng != 10.7522 {
			t.Fatalf("pt = %v", pt)
		}
	}

	if calls != 1 {
		t.Fatalf("expected exactly 1 network call, got %d", calls)
	}
	if r.CacheHits != 2 || r.NetworkCalls != 1 {
		t.Fatalf("stats: hits=%d calls=%d", r.CacheHits, r.NetworkCalls)
	}
}

func TestResolveNegativeCaching(t *testing.T) {
	calls := 0
	r, cache := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))

	ctx := context.Background()
	pt, err := r.Resolve(ctx, "Atlantis", "GR")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pt != nil {
		t.Fatalf("expected no result, got %v", pt)
	}

	// The failure is cached: a second resolve must not hit the network.
	pt, err = r.Resolve(ctx, "Atlantis", "GR")
	if err != nil || pt != nil {
		t.Fatalf("second Resolve: pt=%v err=%v", pt, err)
	}
	if calls != 1 {
		t.Fatalf("negative result retried: %d calls", calls)
	}
	if !cache.Has(r.CacheKey("Atlantis", "GR")) {
		t.Fatal("negative entry missing from cache")
	}
}

func TestResolveServerError(t *testing.T) {
	r, _ := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	pt, err := r.Resolve(context.Background(), "Oslo", "NO")
	if err != nil {
		t.Fatalf("server errors should degrade to a negative, got %v", err)
	}
	if pt != nil {
		t.Fatalf("pt = %v", pt)
	}
	if r.Failures != 1 {
		t.Fatalf("Failures = %d, want 1", r.Failures)
	}
}

func TestResolveEmptyCity(t *testing.T) {
	r, _ := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("empty city must not reach the network")
	}))
	pt, err := r.Resolve(context.Background(), "", "NO")
	if pt != nil || err != nil {
		t.Fatalf("pt=%v err=%v", pt, err)
	}
}

func TestCacheKey(t *testing.T) {
	r, _ := testResolver(t, http.NotFoundHandler())
	if got := r.CacheKey("Oslo", "NO"); got != "oslo, norway" {
		t.Fatalf("CacheKey = %q", got)
	}
}

func TestFallback(t *testing.T) {
	cfg := DefaultConfig()

	pt := cfg.Fallback("NO")
	if pt.Lat == 0 && pt.Lng == 0 {
		t.Fatal("known country should have a centroid")
	}

	zero := cfg.Fallback("XX")
	if zero.Lat != 0 || zero.Lng != 0 {
		t.Fatalf("unknown country should fall back to zero, got %v", zero)
	}
}
