package postgres

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type LeagueRepository struct {
	*record.Model
}

func NewLeagueRepository(exec database.Executor) *LeagueRepository {
	return &LeagueRepository{Model: record.MustModel(exec, league.Schema)}
}

func (r *LeagueRepository) All(ctx context.Context) ([]record.Record, error) {
	return r.Select(ctx, "", 0)
}

// EnsureByExternalID updates the league with externalID or creates it.
// created reports which happened.
func (r *LeagueRepository) EnsureByExternalID(ctx context.Context, externalID int64, fields record.Record) (id int64, created bool, err error) {
	return upsertByExternalID(ctx, r.Model, externalID, fields)
}

var _ league.Repository = (*LeagueRepository)(nil)
