package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

const defaultTopScorersLimit = 20

type PlayerRepository struct {
	*record.Model
}

func NewPlayerRepository(exec database.Executor) *PlayerRepository {
	return &PlayerRepository{Model: record.MustModel(exec, player.Schema)}
}

func (r *PlayerRepository) ByTeam(ctx context.Context, teamID int64) ([]record.Record, error) {
	return r.Select(ctx, "shirt_number ASC, name ASC", 0, qb.Eq("team_id", teamID))
}

// own goals are credited to the opponent and never count for the scorer.
const topScorersQuery = `
SELECT
	p.id AS player_id,
	p.name AS player_name,
	e.team_id AS team_id,
	t.name AS team_name,
	COUNT(*) AS goals,
	SUM(CASE WHEN e.type = ? THEN 1 ELSE 0 END) AS penalties
FROM match_events e
JOIN matches m ON m.id = e.match_id
JOIN players p ON p.id = e.player_id
JOIN teams t ON t.id = e.team_id
WHERE m.league_id = ? AND e.type IN (?, ?)
GROUP BY p.id, p.name, e.team_id, t.name
ORDER BY goals DESC, penalties ASC, player_name ASC
LIMIT ?`

func (r *PlayerRepository) TopScorers(ctx context.Context, leagueID int64, limit int) ([]player.TopScorer, error) {
	if limit <= 0 {
		limit = defaultTopScorersLimit
	}

	exec := r.Executor()
	var rows []player.TopScorer
	err := exec.Select(ctx, &rows, rebind(exec, topScorersQuery),
		match.EventPenalty, leagueID, match.EventGoal, match.EventPenalty, limit)
	if err != nil {
		return nil, fmt.Errorf("select top scorers: %w", err)
	}
	return rows, nil
}

var _ player.Repository = (*PlayerRepository)(nil)
