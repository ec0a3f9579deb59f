package team

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	record.Store
	ByLeague(ctx context.Context, leagueID int64) ([]record.Record, error)
}
