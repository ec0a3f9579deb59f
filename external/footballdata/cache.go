package footballdata

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// CacheEntry is one stored upstream response.
type CacheEntry struct {
	Key       string
	Data      []byte
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Fresh reports whether the entry may still be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// CacheStore persists entries. Get returns an entry regardless of expiry; the
// client decides freshness. Put overwrites.
type CacheStore interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Put(ctx context.Context, entry CacheEntry) error
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

// CacheKey derives the storage key from the endpoint and its parameters,
// sorted by name so parameter order never changes the key.
func CacheKey(endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strings.Trim(endpoint, "/"))
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

// MemoryCacheStore keeps entries in process. Used in tests and when no
// database is configured.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[string]CacheEntry)}
}

func (s *MemoryCacheStore) Get(_ context.Context, key string) (CacheEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return CacheEntry{}, false, nil
	}
	entry.Data = append([]byte(nil), entry.Data...)
	return entry, true, nil
}

func (s *MemoryCacheStore) Put(_ context.Context, entry CacheEntry) error {
	entry.Data = append([]byte(nil), entry.Data...)
	s.mu.Lock()
	s.entries[entry.Key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryCacheStore) Sweep(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, entry := range s.entries {
		if !entry.ExpiresAt.After(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryCacheStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
