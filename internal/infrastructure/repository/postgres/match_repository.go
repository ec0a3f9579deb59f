package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type MatchRepository struct {
	*record.Model
	now func() time.Time
}

func NewMatchRepository(exec database.Executor) *MatchRepository {
	return &MatchRepository{Model: record.MustModel(exec, match.Schema), now: time.Now}
}

func (r *MatchRepository) ListByStatus(ctx context.Context, status string, limit int) ([]record.Record, error) {
	return r.Select(ctx, "kickoff_at ASC, id ASC", limit, qb.Eq("status", status))
}

func (r *MatchRepository) Upcoming(ctx context.Context, limit int) ([]record.Record, error) {
	return r.Select(ctx, "kickoff_at ASC, id ASC", limit,
		qb.Eq("status", match.StatusScheduled),
		qb.Expr("kickoff_at >= ?", utcNow(r.now)),
	)
}

func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]record.Record, error) {
	return r.Select(ctx, "kickoff_at DESC, id DESC", limit, qb.Eq("status", match.StatusFinished))
}

func (r *MatchRepository) ByLeague(ctx context.Context, leagueID int64, limit int) ([]record.Record, error) {
	return r.Select(ctx, "kickoff_at ASC, id ASC", limit, qb.Eq("league_id", leagueID))
}

// Each finished match contributes one row per side, then rows are folded
// per team: win 3, draw 1, loss 0.
const standingsQuery = `
WITH results AS (
	SELECT home_team_id AS team_id, home_score AS gf, away_score AS ga
	FROM matches
	WHERE league_id = ? AND status = ? AND home_score IS NOT NULL AND away_score IS NOT NULL
	UNION ALL
	SELECT away_team_id AS team_id, away_score AS gf, home_score AS ga
	FROM matches
	WHERE league_id = ? AND status = ? AND home_score IS NOT NULL AND away_score IS NOT NULL
)
SELECT
	t.id AS team_id,
	t.name AS team_name,
	COUNT(*) AS played,
	SUM(CASE WHEN r.gf > r.ga THEN 1 ELSE 0 END) AS won,
	SUM(CASE WHEN r.gf = r.ga THEN 1 ELSE 0 END) AS drawn,
	SUM(CASE WHEN r.gf < r.ga THEN 1 ELSE 0 END) AS lost,
	SUM(r.gf) AS goals_for,
	SUM(r.ga) AS goals_against,
	SUM(r.gf) - SUM(r.ga) AS goal_difference,
	SUM(CASE WHEN r.gf > r.ga THEN 3 WHEN r.gf = r.ga THEN 1 ELSE 0 END) AS points
FROM results r
JOIN teams t ON t.id = r.team_id
GROUP BY t.id, t.name
ORDER BY points DESC, goal_difference DESC, goals_for DESC, team_name ASC`

func (r *MatchRepository) Standings(ctx context.Context, leagueID int64) ([]league.Standing, error) {
	exec := r.Executor()
	var rows []league.Standing
	err := exec.Select(ctx, &rows, rebind(exec, standingsQuery),
		leagueID, match.StatusFinished, leagueID, match.StatusFinished)
	if err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows, nil
}

func (r *MatchRepository) Events(ctx context.Context, matchID int64) ([]match.Event, error) {
	exec := r.Executor()
	query, args, err := qb.Select("id", "match_id", "team_id", "player_id", "type", "minute", "detail", "created_at").
		From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("minute ASC", "id ASC").
		PlaceholderFormat(exec.Placeholder()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var events []match.Event
	if err := exec.Select(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}
	return events, nil
}

func (r *MatchRepository) AddEvent(ctx context.Context, matchID int64, in match.EventInput) (match.Event, error) {
	exec := r.Executor()
	event := match.Event{
		MatchID:   matchID,
		TeamID:    in.TeamID,
		PlayerID:  in.PlayerID,
		Type:      in.Type,
		Minute:    in.Minute,
		Detail:    in.Detail,
		CreatedAt: utcNow(r.now),
	}

	query, args, err := qb.InsertModel("match_events", event, "RETURNING id", exec.Placeholder())
	if err != nil {
		return match.Event{}, fmt.Errorf("build insert match event query: %w", err)
	}
	rs, err := exec.Execute(ctx, query, args...)
	if err != nil {
		return match.Event{}, fmt.Errorf("insert match event: %w", err)
	}
	event.ID = rs.LastInsertID
	return event, nil
}

func (r *MatchRepository) Lineups(ctx context.Context, matchID int64) ([]match.LineupEntry, error) {
	exec := r.Executor()
	query, args, err := qb.Select(
		"l.match_id", "l.team_id", "l.player_id", "p.name AS player_name",
		"l.position", "l.shirt_number", "l.is_starter",
	).
		From("lineups l JOIN players p ON p.id = l.player_id").
		Where(qb.Eq("l.match_id", matchID)).
		OrderBy("l.team_id ASC", "l.is_starter DESC", "l.shirt_number ASC").
		PlaceholderFormat(exec.Placeholder()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineups query: %w", err)
	}

	var entries []match.LineupEntry
	if err := exec.Select(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("select lineups: %w", err)
	}
	return entries, nil
}

// ReplaceLineup swaps one team's lineup for a match in a single transaction.
func (r *MatchRepository) ReplaceLineup(ctx context.Context, matchID int64, in match.LineupInput) error {
	return database.RunInTx(ctx, r.Executor(), func(tx database.Executor) error {
		query, args, err := qb.DeleteFrom("lineups").
			Where(qb.Eq("match_id", matchID), qb.Eq("team_id", in.TeamID)).
			PlaceholderFormat(tx.Placeholder()).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete lineup query: %w", err)
		}
		if _, err := tx.Execute(ctx, query, args...); err != nil {
			return fmt.Errorf("delete lineup: %w", err)
		}

		for _, item := range in.Players {
			entry := match.LineupEntry{
				MatchID:     matchID,
				TeamID:      in.TeamID,
				PlayerID:    item.PlayerID,
				Position:    item.Position,
				ShirtNumber: item.ShirtNumber,
				IsStarter:   item.IsStarter,
			}
			query, args, err := qb.InsertModel("lineups", entry, "", tx.Placeholder())
			if err != nil {
				return fmt.Errorf("build insert lineup query: %w", err)
			}
			if _, err := tx.Execute(ctx, query, args...); err != nil {
				return fmt.Errorf("insert lineup player %d: %w", item.PlayerID, err)
			}
		}
		return nil
	})
}

var _ match.Repository = (*MatchRepository)(nil)
