package player

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes player persistence needs from use cases.
type Repository interface {
	record.Store
	ByTeam(ctx context.Context, teamID int64) ([]record.Record, error)
	TopScorers(ctx context.Context, leagueID int64, limit int) ([]TopScorer, error)
}
