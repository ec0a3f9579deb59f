package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// MatchImporter upserts a league, its teams and fixtures by external id.
type MatchImporter struct {
	exec database.Executor
	now  func() time.Time
}

func NewMatchImporter(exec database.Executor) *MatchImporter {
	return &MatchImporter{exec: exec, now: time.Now}
}

// ImportFixtures writes everything in one transaction so a failed sync never
// leaves matches pointing at half-created teams.
func (i *MatchImporter) ImportFixtures(ctx context.Context, lg match.LeagueImport, fixtures []match.FixtureImport) (match.ImportResult, error) {
	var result match.ImportResult

	err := database.RunInTx(ctx, i.exec, func(tx database.Executor) error {
		leagues := &LeagueRepository{Model: record.MustModel(tx, league.Schema).WithClock(i.now)}
		teams := &TeamRepository{Model: record.MustModel(tx, team.Schema).WithClock(i.now)}
		matches := record.MustModel(tx, match.Schema).WithClock(i.now)

		leagueID, _, err := leagues.EnsureByExternalID(ctx, lg.ExternalID, record.Record{
			"name":        lg.Name,
			"country":     lg.Country,
			"logo_url":    lg.LogoURL,
			"season":      lg.Season,
			"external_id": lg.ExternalID,
		})
		if err != nil {
			return fmt.Errorf("upsert league %d: %w", lg.ExternalID, err)
		}
		result.LeagueID = leagueID

		teamIDs := make(map[int64]int64)
		ensureTeam := func(t match.TeamImport) (int64, error) {
			if id, ok := teamIDs[t.ExternalID]; ok {
				return id, nil
			}
			id, _, err := teams.EnsureByExternalID(ctx, t.ExternalID, record.Record{
				"name":        t.Name,
				"logo_url":    t.LogoURL,
				"league_id":   leagueID,
				"external_id": t.ExternalID,
			})
			if err != nil {
				return 0, fmt.Errorf("upsert team %d: %w", t.ExternalID, err)
			}
			teamIDs[t.ExternalID] = id
			return id, nil
		}

		for _, f := range fixtures {
			homeID, err := ensureTeam(f.Home)
			if err != nil {
				return err
			}
			awayID, err := ensureTeam(f.Away)
			if err != nil {
				return err
			}

			fields := record.Record{
				"league_id":    leagueID,
				"home_team_id": homeID,
				"away_team_id": awayID,
				"status":       f.Status,
				"kickoff_at":   f.KickoffAt.UTC(),
				"venue":        f.Venue,
				"round":        f.Round,
				"external_id":  f.ExternalID,
			}
			record.Put(fields, "home_score", f.HomeScore)
			record.Put(fields, "away_score", f.AwayScore)

			_, created, err := upsertByExternalID(ctx, matches, f.ExternalID, fields)
			if err != nil {
				return fmt.Errorf("upsert fixture %d: %w", f.ExternalID, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		result.Teams = len(teamIDs)
		return nil
	})
	if err != nil {
		return match.ImportResult{}, err
	}
	return result, nil
}

func upsertByExternalID(ctx context.Context, m *record.Model, externalID int64, fields record.Record) (int64, bool, error) {
	existing, ok, err := m.FindBy(ctx, "external_id", externalID)
	if err != nil {
		return 0, false, err
	}
	if ok {
		id := existing.Int64(m.Schema().PrimaryKey)
		if _, err := m.Update(ctx, id, fields); err != nil {
			return 0, false, err
		}
		return id, false, nil
	}

	id, err := m.Create(ctx, fields)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

var _ match.Importer = (*MatchImporter)(nil)
