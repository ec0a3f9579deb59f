package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver                string
	DSN                   string
	MaxOpenConns          int
	MaxIdleConns          int
	ConnMaxLifetime       time.Duration
	DisablePreparedBinary bool
}

// Row is one result row keyed by column name.
type Row map[string]any

// RowSet is the outcome of Execute.
type RowSet struct {
	Records      []Row
	RowsAffected int64
	LastInsertID int64
}

// Executor runs statements either on the shared handle or inside a transaction.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (RowSet, error)
	Select(ctx context.Context, dest any, query string, args ...any) error
	Get(ctx context.Context, dest any, query string, args ...any) error
	Placeholder() querybuilder.PlaceholderFormat
}

type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// Gateway owns the single process-wide database handle.
type Gateway struct {
	cfg    Config
	logger *logging.Logger

	mu sync.Mutex
	db *sqlx.DB
}

func NewGateway(cfg Config, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Driver) == "" {
		cfg.Driver = DriverPostgres
	}
	return &Gateway{cfg: cfg, logger: logger}
}

// Open connects once. Later calls return nil without opening a second handle.
func (g *Gateway) Open(ctx context.Context) error {
	_, err := g.handle(ctx)
	return err
}

func (g *Gateway) handle(ctx context.Context) (*sqlx.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	db, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	g.db = db
	return db, nil
}

func (g *Gateway) connect(ctx context.Context) (*sqlx.DB, error) {
	driverName, dsn, system, err := g.driverSettings()
	if err != nil {
		return nil, err
	}

	db, err := otelsqlx.Open(driverName, dsn,
		otelsql.WithDBSystem(system),
		otelsql.WithDBName(NameFromDSN(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("open %s database: %w", g.cfg.Driver, err), ErrConnection)
	}

	g.applyPoolSettings(db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Mark(fmt.Errorf("ping %s database: %w", g.cfg.Driver, err), ErrConnection)
	}

	g.logger.InfoContext(ctx, "database connected", "driver", g.cfg.Driver, "db_name", NameFromDSN(dsn))
	return db, nil
}

func (g *Gateway) driverSettings() (driverName, dsn, system string, err error) {
	switch g.cfg.Driver {
	case DriverPostgres:
		if strings.TrimSpace(g.cfg.DSN) == "" {
			return "", "", "", crerr.Mark(crerr.New("database dsn is empty"), ErrConnection)
		}
		return "postgres", normalizeDSN(g.cfg.DSN, g.cfg.DisablePreparedBinary), "postgresql", nil
	case DriverSQLite:
		return "sqlite", sqliteDSN(g.cfg.DSN), "sqlite", nil
	default:
		return "", "", "", crerr.Mark(crerr.Newf("unsupported database driver %q", g.cfg.Driver), ErrConnection)
	}
}

func (g *Gateway) applyPoolSettings(db *sqlx.DB) {
	if g.cfg.Driver == DriverSQLite {
		// every sqlite connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	if g.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(g.cfg.MaxOpenConns)
	}
	if g.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(g.cfg.MaxIdleConns)
	}
	if g.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(g.cfg.ConnMaxLifetime)
	}
}

func (g *Gateway) Placeholder() querybuilder.PlaceholderFormat {
	if g.cfg.Driver == DriverSQLite {
		return querybuilder.Question
	}
	return querybuilder.Dollar
}

// DB exposes the raw handle for migrations and health checks.
func (g *Gateway) DB(ctx context.Context) (*sqlx.DB, error) {
	return g.handle(ctx)
}

func (g *Gateway) Ping(ctx context.Context) error {
	db, err := g.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return crerr.Mark(err, ErrConnection)
	}
	return nil
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

// Execute runs query with bound args. Statements that yield rows are collected
// into Records; the rest report RowsAffected.
func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (RowSet, error) {
	db, err := g.handle(ctx)
	if err != nil {
		return RowSet{}, err
	}
	return execute(ctx, db, query, args...)
}

func (g *Gateway) Select(ctx context.Context, dest any, query string, args ...any) error {
	db, err := g.handle(ctx)
	if err != nil {
		return err
	}
	return classify(sqlx.SelectContext(ctx, db, dest, query, args...))
}

// Get scans a single row. sql.ErrNoRows is returned unmarked.
func (g *Gateway) Get(ctx context.Context, dest any, query string, args ...any) error {
	db, err := g.handle(ctx)
	if err != nil {
		return err
	}
	return classify(sqlx.GetContext(ctx, db, dest, query, args...))
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (g *Gateway) WithTx(ctx context.Context, fn func(Executor) error) error {
	db, err := g.handle(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin transaction: %w", err))
	}

	if err := fn(&txExecutor{tx: tx, format: g.Placeholder()}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !crerr.Is(rbErr, sql.ErrTxDone) {
			g.logger.WarnContext(ctx, "rollback transaction failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

type txExecutor struct {
	tx     *sqlx.Tx
	format querybuilder.PlaceholderFormat
}

func (t *txExecutor) Execute(ctx context.Context, query string, args ...any) (RowSet, error) {
	return execute(ctx, t.tx, query, args...)
}

func (t *txExecutor) Select(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.SelectContext(ctx, t.tx, dest, query, args...))
}

func (t *txExecutor) Get(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.GetContext(ctx, t.tx, dest, query, args...))
}

func (t *txExecutor) Placeholder() querybuilder.PlaceholderFormat {
	return t.format
}

func execute(ctx context.Context, q queryer, query string, args ...any) (RowSet, error) {
	if !returnsRows(query) {
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return RowSet{}, classify(err)
		}
		out := RowSet{}
		if n, err := res.RowsAffected(); err == nil {
			out.RowsAffected = n
		}
		// lib/pq does not support LastInsertId; RETURNING id covers it.
		if id, err := res.LastInsertId(); err == nil {
			out.LastInsertID = id
		}
		return out, nil
	}

	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return RowSet{}, classify(err)
	}
	defer rows.Close()

	out := RowSet{}
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return RowSet{}, classify(fmt.Errorf("scan row: %w", err))
		}
		out.Records = append(out.Records, normalizeRow(row))
	}
	if err := rows.Err(); err != nil {
		return RowSet{}, classify(err)
	}

	out.RowsAffected = int64(len(out.Records))
	if len(out.Records) > 0 {
		if id, ok := AsInt64(out.Records[0]["id"]); ok {
			out.LastInsertID = id
		}
	}
	return out, nil
}

func returnsRows(query string) bool {
	trimmed := strings.ToUpper(strings.TrimSpace(query))
	if strings.HasPrefix(trimmed, "SELECT") || strings.HasPrefix(trimmed, "WITH") {
		return true
	}
	return strings.Contains(trimmed, " RETURNING ")
}

func normalizeRow(row map[string]any) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return Row(row)
}

// AsInt64 converts the integer shapes drivers return for id columns.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		var id int64
		if _, err := fmt.Sscan(n, &id); err == nil {
			return id, true
		}
	case []byte:
		return AsInt64(string(n))
	}
	return 0, false
}
