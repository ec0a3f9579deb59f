package postgres

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-portal/internal/platform/database"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// sqliteSchema mirrors db/migrations in SQLite dialect.
var sqliteSchema = []string{
	`CREATE TABLE leagues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT '',
		logo_url TEXT NOT NULL DEFAULT '',
		season TEXT NOT NULL DEFAULT '',
		external_id INTEGER UNIQUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL DEFAULT '',
		logo_url TEXT NOT NULL DEFAULT '',
		league_id INTEGER REFERENCES leagues(id) ON DELETE SET NULL,
		stadium TEXT NOT NULL DEFAULT '',
		founded INTEGER,
		external_id INTEGER UNIQUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		team_id INTEGER REFERENCES teams(id) ON DELETE SET NULL,
		position TEXT NOT NULL,
		nationality TEXT NOT NULL DEFAULT '',
		shirt_number INTEGER,
		photo_url TEXT NOT NULL DEFAULT '',
		date_of_birth TIMESTAMP,
		external_id INTEGER UNIQUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		league_id INTEGER NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
		home_team_id INTEGER NOT NULL REFERENCES teams(id),
		away_team_id INTEGER NOT NULL REFERENCES teams(id),
		home_score INTEGER,
		away_score INTEGER,
		status TEXT NOT NULL DEFAULT 'scheduled',
		kickoff_at TIMESTAMP NOT NULL,
		venue TEXT NOT NULL DEFAULT '',
		round TEXT NOT NULL DEFAULT '',
		external_id INTEGER UNIQUE,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		CHECK (home_team_id <> away_team_id)
	)`,
	`CREATE TABLE match_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		player_id INTEGER REFERENCES players(id) ON DELETE SET NULL,
		type TEXT NOT NULL,
		minute INTEGER NOT NULL DEFAULT 0,
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP
	)`,
	`CREATE TABLE lineups (
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		position TEXT NOT NULL DEFAULT '',
		shirt_number INTEGER,
		is_starter BOOLEAN NOT NULL DEFAULT 1,
		PRIMARY KEY (match_id, player_id)
	)`,
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		author_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		published_at TIMESTAMP,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE api_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

func newTestGateway(t *testing.T) *database.Gateway {
	t.Helper()

	gw := database.NewGateway(database.Config{Driver: database.DriverSQLite}, logging.NewNop())
	t.Cleanup(func() { _ = gw.Close() })

	ctx := context.Background()
	for _, stmt := range sqliteSchema {
		if _, err := gw.Execute(ctx, stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return gw
}

func mustExec(t *testing.T, gw *database.Gateway, query string, args ...any) {
	t.Helper()
	if _, err := gw.Execute(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
