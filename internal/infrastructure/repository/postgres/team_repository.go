package postgres

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type TeamRepository struct {
	*record.Model
}

func NewTeamRepository(exec database.Executor) *TeamRepository {
	return &TeamRepository{Model: record.MustModel(exec, team.Schema)}
}

func (r *TeamRepository) ByLeague(ctx context.Context, leagueID int64) ([]record.Record, error) {
	return r.Select(ctx, "", 0, qb.Eq("league_id", leagueID))
}

func (r *TeamRepository) EnsureByExternalID(ctx context.Context, externalID int64, fields record.Record) (id int64, created bool, err error) {
	return upsertByExternalID(ctx, r.Model, externalID, fields)
}

var _ team.Repository = (*TeamRepository)(nil)
