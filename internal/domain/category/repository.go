package category

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type Repository interface {
	record.Store
	All(ctx context.Context) ([]record.Record, error)
	BySlug(ctx context.Context, slug string) (record.Record, bool, error)
}
