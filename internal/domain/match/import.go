package match

import (
	"context"
	"time"
)

// LeagueImport and the types below carry upstream fixtures into storage.
type LeagueImport struct {
	ExternalID int64
	Name       string
	Country    string
	LogoURL    string
	Season     string
}

type TeamImport struct {
	ExternalID int64
	Name       string
	LogoURL    string
}

type FixtureImport struct {
	ExternalID int64
	Home       TeamImport
	Away       TeamImport
	HomeScore  *int
	AwayScore  *int
	Status     string
	KickoffAt  time.Time
	Venue      string
	Round      string
}

type ImportResult struct {
	LeagueID int64 `json:"league_id"`
	Teams    int   `json:"teams"`
	Created  int   `json:"created"`
	Updated  int   `json:"updated"`
}

// Importer persists a league's fixtures atomically.
type Importer interface {
	ImportFixtures(ctx context.Context, league LeagueImport, fixtures []FixtureImport) (ImportResult, error)
}
