package league

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes league persistence needs from use cases.
type Repository interface {
	record.Store
	All(ctx context.Context) ([]record.Record, error)
}
