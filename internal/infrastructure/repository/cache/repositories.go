package cache

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	basecache "github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

const (
	leaguePrefix = "league:"
	teamPrefix   = "team:"
)

// LeagueRepository serves league reads from the hot cache and drops every
// cached league on any write.
type LeagueRepository struct {
	league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{Repository: next, cache: cache}
}

func (r *LeagueRepository) All(ctx context.Context) ([]record.Record, error) {
	items, err := basecache.Load(ctx, r.cache, leaguePrefix+"all", r.Repository.All)
	if err != nil {
		return nil, err
	}
	return cloneRecords(items), nil
}

func (r *LeagueRepository) Find(ctx context.Context, id any) (record.Record, bool, error) {
	item, err := basecache.Load(ctx, r.cache, leaguePrefix+"id:"+idKey(id), func(ctx context.Context) (cachedRecord, error) {
		return findRecord(ctx, r.Repository, id)
	})
	if err != nil {
		return nil, false, err
	}
	return maps.Clone(item.value), item.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, fields record.Record) (int64, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.Repository.Create(ctx, fields)
}

func (r *LeagueRepository) Update(ctx context.Context, id any, fields record.Record) (bool, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.Repository.Update(ctx, id, fields)
}

func (r *LeagueRepository) Delete(ctx context.Context, id any) (bool, error) {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.Repository.Delete(ctx, id)
}

// TeamRepository caches team lookups and per-league rosters.
type TeamRepository struct {
	team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{Repository: next, cache: cache}
}

func (r *TeamRepository) ByLeague(ctx context.Context, leagueID int64) ([]record.Record, error) {
	key := teamPrefix + "league:" + strconv.FormatInt(leagueID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]record.Record, error) {
		return r.Repository.ByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return cloneRecords(items), nil
}

func (r *TeamRepository) Find(ctx context.Context, id any) (record.Record, bool, error) {
	item, err := basecache.Load(ctx, r.cache, teamPrefix+"id:"+idKey(id), func(ctx context.Context) (cachedRecord, error) {
		return findRecord(ctx, r.Repository, id)
	})
	if err != nil {
		return nil, false, err
	}
	return maps.Clone(item.value), item.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, fields record.Record) (int64, error) {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.Repository.Create(ctx, fields)
}

func (r *TeamRepository) Update(ctx context.Context, id any, fields record.Record) (bool, error) {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.Repository.Update(ctx, id, fields)
}

func (r *TeamRepository) Delete(ctx context.Context, id any) (bool, error) {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.Repository.Delete(ctx, id)
}

type cachedRecord struct {
	value  record.Record
	exists bool
}

func findRecord(ctx context.Context, store record.Store, id any) (cachedRecord, error) {
	item, exists, err := store.Find(ctx, id)
	if err != nil {
		return cachedRecord{}, err
	}
	return cachedRecord{value: item, exists: exists}, nil
}

func idKey(id any) string {
	switch v := id.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func cloneRecords(items []record.Record) []record.Record {
	if items == nil {
		return nil
	}
	out := make([]record.Record, len(items))
	for i, item := range items {
		out[i] = maps.Clone(item)
	}
	return out
}
