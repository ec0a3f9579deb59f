package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

// Transactor opens transactions. The Gateway implements it; transaction
// executors do not.
type Transactor interface {
	WithTx(ctx context.Context, fn func(Executor) error) error
}

// RunInTx starts a transaction when exec can open one, otherwise it assumes
// exec is already transactional and runs fn directly.
func RunInTx(ctx context.Context, exec Executor, fn func(Executor) error) error {
	if tx, ok := exec.(Transactor); ok {
		return tx.WithTx(ctx, fn)
	}
	return fn(exec)
}

// Rebind rewrites ? placeholders for the executor's driver.
func Rebind(format querybuilder.PlaceholderFormat, query string) string {
	if format == querybuilder.Question {
		return query
	}
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
