package footballdata

import "time"

// Category groups endpoints by how quickly their data goes stale.
type Category string

const (
	CategoryLive      Category = "live"
	CategoryMatch     Category = "match"
	CategoryFixtures  Category = "fixtures"
	CategoryStandings Category = "standings"
	CategoryScorers   Category = "scorers"
	CategoryReference Category = "reference"
)

type TTLConfig struct {
	Live      time.Duration
	Match     time.Duration
	Fixtures  time.Duration
	Standings time.Duration
	Scorers   time.Duration
	Reference time.Duration
}

func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Live:      60 * time.Second,
		Match:     300 * time.Second,
		Fixtures:  1800 * time.Second,
		Standings: 3600 * time.Second,
		Scorers:   3600 * time.Second,
		Reference: 24 * time.Hour,
	}
}

func (t TTLConfig) withDefaults() TTLConfig {
	d := DefaultTTLConfig()
	if t.Live <= 0 {
		t.Live = d.Live
	}
	if t.Match <= 0 {
		t.Match = d.Match
	}
	if t.Fixtures <= 0 {
		t.Fixtures = d.Fixtures
	}
	if t.Standings <= 0 {
		t.Standings = d.Standings
	}
	if t.Scorers <= 0 {
		t.Scorers = d.Scorers
	}
	if t.Reference <= 0 {
		t.Reference = d.Reference
	}
	return t
}

// For returns the TTL of a category. Unknown categories get the shortest one.
func (t TTLConfig) For(c Category) time.Duration {
	switch c {
	case CategoryLive:
		return t.Live
	case CategoryMatch:
		return t.Match
	case CategoryFixtures:
		return t.Fixtures
	case CategoryStandings:
		return t.Standings
	case CategoryScorers:
		return t.Scorers
	case CategoryReference:
		return t.Reference
	default:
		return t.Live
	}
}
