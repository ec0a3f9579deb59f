package match

import (
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
)

var Schema = record.Schema{
	Collection: "matches",
	Fields: []string{
		"id", "league_id", "home_team_id", "away_team_id", "home_score", "away_score",
		"status", "kickoff_at", "venue", "round", "external_id", "created_at", "updated_at",
	},
	Writable: []string{
		"league_id", "home_team_id", "away_team_id", "home_score", "away_score",
		"status", "kickoff_at", "venue", "round", "external_id",
	},
	Searchable:   []string{"venue", "round", "status"},
	DefaultOrder: "kickoff_at DESC, id DESC",
	Timestamps:   true,
}

type CreateInput struct {
	LeagueID   int64     `json:"league_id" validate:"required,gt=0"`
	HomeTeamID int64     `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID int64     `json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	HomeScore  *int      `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore  *int      `json:"away_score" validate:"omitempty,gte=0"`
	Status     string    `json:"status" validate:"omitempty,oneof=scheduled live finished postponed"`
	KickoffAt  time.Time `json:"kickoff_at" validate:"required"`
	Venue      string    `json:"venue" validate:"max=120"`
	Round      string    `json:"round" validate:"max=60"`
	ExternalID *int64    `json:"external_id" validate:"omitempty,gt=0"`
}

func (in CreateInput) Record() (record.Record, error) {
	status := in.Status
	if status == "" {
		status = StatusScheduled
	}
	rec := record.Record{
		"league_id":    in.LeagueID,
		"home_team_id": in.HomeTeamID,
		"away_team_id": in.AwayTeamID,
		"status":       status,
		"kickoff_at":   in.KickoffAt.UTC(),
		"venue":        in.Venue,
		"round":        in.Round,
	}
	record.Put(rec, "home_score", in.HomeScore)
	record.Put(rec, "away_score", in.AwayScore)
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}

type UpdateInput struct {
	HomeScore *int       `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore *int       `json:"away_score" validate:"omitempty,gte=0"`
	Status    *string    `json:"status" validate:"omitempty,oneof=scheduled live finished postponed"`
	KickoffAt *time.Time `json:"kickoff_at"`
	Venue     *string    `json:"venue" validate:"omitempty,max=120"`
	Round     *string    `json:"round" validate:"omitempty,max=60"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "home_score", in.HomeScore)
	record.Put(rec, "away_score", in.AwayScore)
	record.Put(rec, "status", in.Status)
	if in.KickoffAt != nil {
		rec["kickoff_at"] = in.KickoffAt.UTC()
	}
	record.Put(rec, "venue", in.Venue)
	record.Put(rec, "round", in.Round)
	return rec, nil
}

const (
	EventGoal         = "goal"
	EventOwnGoal      = "own_goal"
	EventPenalty      = "penalty"
	EventYellowCard   = "yellow_card"
	EventRedCard      = "red_card"
	EventSubstitution = "substitution"
)

// Event is something that happened during a match, e.g. a goal.
type Event struct {
	ID        int64     `db:"id,readonly" json:"id"`
	MatchID   int64     `db:"match_id" json:"match_id"`
	TeamID    int64     `db:"team_id" json:"team_id"`
	PlayerID  *int64    `db:"player_id" json:"player_id,omitempty"`
	Type      string    `db:"type" json:"type"`
	Minute    int       `db:"minute" json:"minute"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type EventInput struct {
	TeamID   int64  `json:"team_id" validate:"required,gt=0"`
	PlayerID *int64 `json:"player_id" validate:"omitempty,gt=0"`
	Type     string `json:"type" validate:"required,oneof=goal own_goal penalty yellow_card red_card substitution"`
	Minute   int    `json:"minute" validate:"gte=0,lte=130"`
	Detail   string `json:"detail" validate:"max=200"`
}

// LineupEntry is one player named in a team's matchday squad.
type LineupEntry struct {
	MatchID     int64  `db:"match_id" json:"match_id"`
	TeamID      int64  `db:"team_id" json:"team_id"`
	PlayerID    int64  `db:"player_id" json:"player_id"`
	PlayerName  string `db:"player_name,readonly" json:"player_name"`
	Position    string `db:"position" json:"position"`
	ShirtNumber *int   `db:"shirt_number" json:"shirt_number,omitempty"`
	IsStarter   bool   `db:"is_starter" json:"is_starter"`
}

type LineupInput struct {
	TeamID  int64              `json:"team_id" validate:"required,gt=0"`
	Players []LineupPlayerItem `json:"players" validate:"required,min=1,max=30,dive"`
}

type LineupPlayerItem struct {
	PlayerID    int64  `json:"player_id" validate:"required,gt=0"`
	Position    string `json:"position" validate:"max=40"`
	ShirtNumber *int   `json:"shirt_number" validate:"omitempty,gte=1,lte=99"`
	IsStarter   bool   `json:"is_starter"`
}

// Lineups groups a match's entries by team.
type Lineups struct {
	Home []LineupEntry `json:"home"`
	Away []LineupEntry `json:"away"`
}
