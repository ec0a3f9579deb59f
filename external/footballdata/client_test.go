package footballdata

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
)

const testKey = "secret-key-123"

const standingsBody = `{"get":"standings","parameters":{"league":"39","season":"2026"},"errors":[],"results":1,"response":[{"league":{"id":39,"name":"Premier League","country":"England","season":2026,"standings":[[{"rank":1,"team":{"id":42,"name":"Arsenal"},"points":10,"goalsDiff":7,"all":{"played":4,"win":3,"draw":1,"lose":0,"goals":{"for":9,"against":2}}}]]}}]}`

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type upstream struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func newTestClient(t *testing.T, baseURL string, clock *fakeClock, mutate func(*ClientConfig)) *Client {
	t.Helper()
	cfg := ClientConfig{
		BaseURL:      baseURL,
		APIKey:       testKey,
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
		Now:          clock.Now,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := NewClient(cfg, NewMemoryCacheStore())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClient_FailsFastWithoutAPIKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   "} {
		if _, err := NewClient(ClientConfig{APIKey: key}, NewMemoryCacheStore()); !crerr.Is(err, ErrMissingAPIKey) {
			t.Fatalf("expected ErrMissingAPIKey for %q, got %v", key, err)
		}
	}
}

func TestClient_StandingsServedFromCacheWithinTTL(t *testing.T) {
	t.Parallel()

	var gotKey, gotQuery string
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(defaultKeyHeader)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(standingsBody))
	})
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	client := newTestClient(t, up.server.URL, clock, nil)
	ctx := context.Background()

	first := client.Standings(ctx, 39, 2026)
	if !first.OK() || first.Cached {
		t.Fatalf("expected fresh upstream result, got %+v", first)
	}
	clock.Advance(59 * time.Second)
	second := client.Standings(ctx, 39, 2026)
	if !second.OK() || !second.Cached {
		t.Fatalf("expected cached result, got %+v", second)
	}

	if got := up.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", got)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatalf("cached data differs:\nfirst:  %s\nsecond: %s", first.Data, second.Data)
	}
	if gotKey != testKey {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotQuery != "league=39&season=2026" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}

	var items []StandingsItem
	if err := second.Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].League.ID != 39 || items[0].League.Standings[0][0].Team.Name != "Arsenal" {
		t.Fatalf("unexpected standings: %+v", items)
	}
}

func TestClient_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(standingsBody))
	})
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	client := newTestClient(t, up.server.URL, clock, func(cfg *ClientConfig) {
		cfg.TTL.Standings = time.Minute
	})
	ctx := context.Background()

	client.Standings(ctx, 39, 2026)
	clock.Advance(time.Minute)

	res := client.Standings(ctx, 39, 2026)
	if !res.OK() || res.Cached {
		t.Fatalf("expected refetch at expiry, got %+v", res)
	}
	if got := up.calls.Load(); got != 2 {
		t.Fatalf("expected exactly two upstream calls, got %d", got)
	}

	client.Standings(ctx, 39, 2026)
	if got := up.calls.Load(); got != 2 {
		t.Fatalf("expected refreshed entry to be cached, got %d calls", got)
	}
}

func TestClient_CategoriesUseTheirOwnTTL(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[],"results":0,"response":[]}`))
	})
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	client := newTestClient(t, up.server.URL, clock, nil)
	ctx := context.Background()

	client.LiveFixtures(ctx)
	client.Fixtures(ctx, 39, 2026)
	clock.Advance(61 * time.Second)
	client.LiveFixtures(ctx)
	client.Fixtures(ctx, 39, 2026)

	// live expired after 60s, fixtures are good for 30 minutes
	if got := up.calls.Load(); got != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", got)
	}
}

func TestClient_DegradesGracefully(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCalls int32
	}{
		{
			name: "server error is retried then degraded",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom "+testKey, http.StatusBadGateway)
			},
			wantCalls: 3,
		},
		{
			name: "client error is not retried",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "forbidden", http.StatusForbidden)
			},
			wantCalls: 1,
		},
		{
			name: "errors envelope is a failure",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":{"requests":"You have reached the request limit for the day"},"results":0,"response":[]}`))
			},
			wantCalls: 1,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			up := newUpstream(t, tt.handler)
			clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
			client := newTestClient(t, up.server.URL, clock, func(cfg *ClientConfig) {
				cfg.MaxRetries = 2
			})

			res := client.TopScorers(context.Background(), 39, 2026)
			if res.OK() {
				t.Fatalf("expected degraded result")
			}
			if !crerr.Is(res.Err, ErrUpstreamUnavailable) {
				t.Fatalf("expected ErrUpstreamUnavailable, got %v", res.Err)
			}
			if strings.Contains(res.Err.Error(), testKey) {
				t.Fatalf("api key leaked into error: %v", res.Err)
			}
			if string(res.Data) != "[]" {
				t.Fatalf("expected empty sequence, got %s", res.Data)
			}

			var scorers []ScorerItem
			if err := res.Decode(&scorers); err != nil || len(scorers) != 0 {
				t.Fatalf("expected empty decode, got %v %+v", err, scorers)
			}
			if got := up.calls.Load(); got != tt.wantCalls {
				t.Fatalf("expected %d upstream calls, got %d", tt.wantCalls, got)
			}

			// failures are never cached
			client.TopScorers(context.Background(), 39, 2026)
			if got := up.calls.Load(); got != tt.wantCalls*2 {
				t.Fatalf("expected failure not to be cached, got %d calls", got)
			}
		})
	}
}

func TestClient_UnreachableUpstream(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	client := newTestClient(t, "http://127.0.0.1:1", clock, nil)

	res := client.Fixture(context.Background(), 1035037)
	if res.OK() || !crerr.Is(res.Err, ErrUpstreamUnavailable) {
		t.Fatalf("expected degraded result, got %+v", res)
	}
}

func TestClient_TimeoutDegrades(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	up := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	clock := &fakeClock{now: time.Now()}
	client := newTestClient(t, up.server.URL, clock, func(cfg *ClientConfig) {
		cfg.HTTPClient = &http.Client{Timeout: 50 * time.Millisecond}
	})

	res := client.LiveFixtures(context.Background())
	if res.OK() {
		t.Fatalf("expected timeout to degrade")
	}
}

func TestClient_BreakerStopsCallingAfterFailures(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	client := newTestClient(t, up.server.URL, clock, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Hour, HalfOpenProbes: 1}
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if res := client.Leagues(ctx); res.OK() {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}
	if got := up.calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop after 2 calls, got %d", got)
	}
}

func TestClient_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		<-gate
		_, _ = w.Write([]byte(standingsBody))
	})
	clock := &fakeClock{now: time.Now()}
	client := newTestClient(t, up.server.URL, clock, nil)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = client.Standings(context.Background(), 39, 2026)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i, res := range results {
		if !res.OK() {
			t.Fatalf("result %d failed: %v", i, res.Err)
		}
	}
	if got := up.calls.Load(); got != 1 {
		t.Fatalf("expected one shared upstream call, got %d", got)
	}
}

func TestClient_SweepDropsExpiredEntries(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(standingsBody))
	})
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryCacheStore()
	client, err := NewClient(ClientConfig{BaseURL: up.server.URL, APIKey: testKey, Now: clock.Now, Logger: logging.NewNop()}, store)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx := context.Background()

	client.LiveFixtures(ctx)
	client.Standings(ctx, 39, 2026)
	clock.Advance(2 * time.Minute)

	removed, err := client.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 || store.Len() != 1 {
		t.Fatalf("expected only the live entry to be swept, removed=%d left=%d", removed, store.Len())
	}
}
