package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

const apiCacheTable = "api_cache"

type apiCacheTableModel struct {
	Key       string    `db:"cache_key"`
	Payload   string    `db:"payload"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// APICacheRepository stores football-data responses in the api_cache table.
type APICacheRepository struct {
	exec database.Executor
}

func NewAPICacheRepository(exec database.Executor) *APICacheRepository {
	return &APICacheRepository{exec: exec}
}

func (r *APICacheRepository) Get(ctx context.Context, key string) (footballdata.CacheEntry, bool, error) {
	query, args, err := qb.Select("cache_key", "payload", "expires_at", "created_at").
		From(apiCacheTable).
		Where(qb.Eq("cache_key", key)).
		PlaceholderFormat(r.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return footballdata.CacheEntry{}, false, fmt.Errorf("build get api cache query: %w", err)
	}

	var row apiCacheTableModel
	if err := r.exec.Get(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return footballdata.CacheEntry{}, false, nil
		}
		return footballdata.CacheEntry{}, false, fmt.Errorf("get api cache entry: %w", err)
	}

	return footballdata.CacheEntry{
		Key:       row.Key,
		Data:      []byte(row.Payload),
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, true, nil
}

func (r *APICacheRepository) Put(ctx context.Context, entry footballdata.CacheEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := qb.InsertInto(apiCacheTable).
		Columns("cache_key", "payload", "expires_at", "created_at").
		Values(entry.Key, string(entry.Data), entry.ExpiresAt.UTC().Truncate(time.Second), createdAt.UTC().Truncate(time.Second)).
		Suffix(`ON CONFLICT (cache_key) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`).
		PlaceholderFormat(r.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert api cache query: %w", err)
	}
	if _, err := r.exec.Execute(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert api cache entry: %w", err)
	}
	return nil
}

// Sweep deletes every entry with expires_at <= now.
func (r *APICacheRepository) Sweep(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(apiCacheTable).
		Where(qb.Expr("expires_at <= ?", now.UTC().Truncate(time.Second))).
		PlaceholderFormat(r.exec.Placeholder()).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build sweep api cache query: %w", err)
	}
	rs, err := r.exec.Execute(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("sweep api cache: %w", err)
	}
	return rs.RowsAffected, nil
}

var _ footballdata.CacheStore = (*APICacheRepository)(nil)
