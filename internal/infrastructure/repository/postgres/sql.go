package postgres

import (
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/database"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

func rebind(exec database.Executor, query string) string {
	return database.Rebind(exec.Placeholder(), query)
}

// utcNow is truncated to seconds so stored timestamps compare cleanly on
// every driver.
func utcNow(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return now().UTC().Truncate(time.Second)
}
