package postgres

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/domain/category"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type CategoryRepository struct {
	*record.Model
}

func NewCategoryRepository(exec database.Executor) *CategoryRepository {
	return &CategoryRepository{Model: record.MustModel(exec, category.Schema)}
}

func (r *CategoryRepository) All(ctx context.Context) ([]record.Record, error) {
	return r.Select(ctx, "", 0)
}

func (r *CategoryRepository) BySlug(ctx context.Context, slug string) (record.Record, bool, error) {
	return r.FindBy(ctx, "slug", slug)
}

var _ category.Repository = (*CategoryRepository)(nil)
