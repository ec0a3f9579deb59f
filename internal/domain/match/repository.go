package match

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	record.Store
	ListByStatus(ctx context.Context, status string, limit int) ([]record.Record, error)
	Upcoming(ctx context.Context, limit int) ([]record.Record, error)
	Recent(ctx context.Context, limit int) ([]record.Record, error)
	ByLeague(ctx context.Context, leagueID int64, limit int) ([]record.Record, error)
	Standings(ctx context.Context, leagueID int64) ([]league.Standing, error)
	Events(ctx context.Context, matchID int64) ([]Event, error)
	AddEvent(ctx context.Context, matchID int64, in EventInput) (Event, error)
	Lineups(ctx context.Context, matchID int64) ([]LineupEntry, error)
	ReplaceLineup(ctx context.Context, matchID int64, in LineupInput) error
}
