package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-portal/internal/domain/article"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

const publishedOrder = "published_at DESC, id DESC"

type ArticleRepository struct {
	*record.Model
}

func NewArticleRepository(exec database.Executor) *ArticleRepository {
	return &ArticleRepository{Model: record.MustModel(exec, article.Schema)}
}

func (r *ArticleRepository) Published(ctx context.Context, page, perPage int) (record.Page[record.Record], error) {
	return r.List(ctx, record.Query{
		Where:   []qb.Condition{qb.Eq("status", article.StatusPublished)},
		OrderBy: publishedOrder,
		Page:    page,
		PerPage: perPage,
	})
}

func (r *ArticleRepository) ByCategory(ctx context.Context, categoryID int64, page, perPage int) (record.Page[record.Record], error) {
	return r.List(ctx, record.Query{
		Where: []qb.Condition{
			qb.Eq("status", article.StatusPublished),
			qb.Eq("category_id", categoryID),
		},
		OrderBy: publishedOrder,
		Page:    page,
		PerPage: perPage,
	})
}

func (r *ArticleRepository) BySlug(ctx context.Context, slug string) (record.Record, bool, error) {
	return r.FindBy(ctx, "slug", slug)
}

func (r *ArticleRepository) Featured(ctx context.Context, limit int) ([]record.Record, error) {
	return r.Select(ctx, publishedOrder, limit,
		qb.Eq("status", article.StatusPublished),
		qb.Eq("is_featured", true),
	)
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id int64) error {
	exec := r.Executor()
	query, args, err := qb.Update("articles").
		SetExpr("views", "views + ?", 1).
		Where(qb.Eq("id", id)).
		PlaceholderFormat(exec.Placeholder()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build increment article views query: %w", err)
	}
	if _, err := exec.Execute(ctx, query, args...); err != nil {
		return fmt.Errorf("increment article views: %w", err)
	}
	return nil
}

var _ article.Repository = (*ArticleRepository)(nil)
