package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
)

func TestAPICacheRepository_RoundTripAndSweep(t *testing.T) {
	t.Parallel()

	repo := NewAPICacheRepository(newTestGateway(t))
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`[{"league":{"id":39,"name":"Premier League"}}]`)

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	key := footballdata.CacheKey("/standings", map[string]string{"season": "2026", "league": "39"})
	if err := repo.Put(ctx, footballdata.CacheEntry{Key: key, Data: payload, ExpiresAt: now.Add(time.Hour), CreatedAt: now}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := repo.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got.Data) != string(payload) {
		t.Fatalf("payload changed: %s", got.Data)
	}
	if !got.ExpiresAt.Equal(now.Add(time.Hour)) || !got.Fresh(now) {
		t.Fatalf("unexpected expiry: %v", got.ExpiresAt)
	}

	// overwrite keeps a single row per key
	if err := repo.Put(ctx, footballdata.CacheEntry{Key: key, Data: []byte(`[]`), ExpiresAt: now.Add(-time.Minute), CreatedAt: now}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := repo.Put(ctx, footballdata.CacheEntry{Key: "leagues", Data: []byte(`[]`), ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now}); err != nil {
		t.Fatalf("put second: %v", err)
	}

	removed, err := repo.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}
	if _, ok, _ := repo.Get(ctx, key); ok {
		t.Fatalf("expired entry survived sweep")
	}
	if _, ok, _ := repo.Get(ctx, "leagues"); !ok {
		t.Fatalf("fresh entry was swept")
	}
}
