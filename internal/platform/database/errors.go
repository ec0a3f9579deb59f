package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

var (
	// ErrConnection marks failures to reach or authenticate against the database.
	ErrConnection = crerr.New("database connection failed")
	// ErrQuery marks statements the database rejected.
	ErrQuery = crerr.New("database query failed")
)

// connection-level SQLSTATE classes: connection exception, invalid authorization,
// insufficient resources, operator intervention.
var connectionClasses = map[pq.ErrorClass]struct{}{
	"08": {},
	"28": {},
	"53": {},
	"57": {},
}

func classify(err error) error {
	if err == nil || crerr.Is(err, sql.ErrNoRows) {
		return err
	}
	if crerr.Is(err, ErrConnection) || crerr.Is(err, ErrQuery) {
		return err
	}
	if isConnectionFailure(err) {
		return crerr.Mark(err, ErrConnection)
	}
	return crerr.Mark(err, ErrQuery)
}

func isConnectionFailure(err error) bool {
	var pqErr *pq.Error
	if crerr.As(err, &pqErr) {
		_, ok := connectionClasses[pqErr.Code.Class()]
		return ok
	}
	if crerr.Is(err, driver.ErrBadConn) || crerr.Is(err, sql.ErrConnDone) {
		return true
	}
	if crerr.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return crerr.As(err, &netErr)
}

// IsUniqueViolation reports a unique constraint failure on either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if crerr.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
