package article

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes article persistence needs from use cases.
type Repository interface {
	record.Store
	Published(ctx context.Context, page, perPage int) (record.Page[record.Record], error)
	ByCategory(ctx context.Context, categoryID int64, page, perPage int) (record.Page[record.Record], error)
	BySlug(ctx context.Context, slug string) (record.Record, bool, error)
	Featured(ctx context.Context, limit int) ([]record.Record, error)
	IncrementViews(ctx context.Context, id int64) error
}
