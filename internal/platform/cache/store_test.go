package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "nav:categories", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_LoadTyped(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"news", "transfers"}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := Load(context.Background(), store, "k", loader)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected value: %v", got)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}

	store.Set(context.Background(), "wrong", 42)
	if _, err := Load(context.Background(), store, "wrong", loader); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_PerEntryTTLAndSweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "short", 1)
	store.SetTTL(ctx, "session:abc", "user-1", 2*time.Hour)
	store.SetTTL(ctx, "forever", true, 0)

	now = now.Add(90 * time.Second)
	if _, ok := store.Get(ctx, "short"); ok {
		t.Fatalf("expected default ttl entry to expire")
	}
	if v, ok := store.Get(ctx, "session:abc"); !ok || v != "user-1" {
		t.Fatalf("expected session to survive, got %v %v", v, ok)
	}

	now = now.Add(3 * time.Hour)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected only the non-expiring entry, got %d", store.Len())
	}

	store.DeletePrefix(ctx, "for")
	if store.Len() != 0 {
		t.Fatalf("expected prefix delete to empty the store")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
