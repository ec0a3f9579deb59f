package player

import (
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

var Schema = record.Schema{
	Collection: "players",
	Fields: []string{
		"id", "name", "team_id", "position", "nationality", "shirt_number",
		"photo_url", "date_of_birth", "external_id", "created_at", "updated_at",
	},
	Writable: []string{
		"name", "team_id", "position", "nationality", "shirt_number",
		"photo_url", "date_of_birth", "external_id",
	},
	Searchable:   []string{"name", "nationality", "position"},
	DefaultOrder: "name ASC",
	Timestamps:   true,
}

type CreateInput struct {
	Name        string     `json:"name" validate:"required,max=120"`
	TeamID      *int64     `json:"team_id" validate:"omitempty,gt=0"`
	Position    string     `json:"position" validate:"required,oneof=goalkeeper defender midfielder forward"`
	Nationality string     `json:"nationality" validate:"max=80"`
	ShirtNumber *int       `json:"shirt_number" validate:"omitempty,gte=1,lte=99"`
	PhotoURL    string     `json:"photo_url" validate:"omitempty,url"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	ExternalID  *int64     `json:"external_id" validate:"omitempty,gt=0"`
}

func (in CreateInput) Record() (record.Record, error) {
	rec := record.Record{
		"name":        in.Name,
		"position":    in.Position,
		"nationality": in.Nationality,
		"photo_url":   in.PhotoURL,
	}
	record.Put(rec, "team_id", in.TeamID)
	record.Put(rec, "shirt_number", in.ShirtNumber)
	record.Put(rec, "date_of_birth", in.DateOfBirth)
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}

type UpdateInput struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=120"`
	TeamID      *int64     `json:"team_id" validate:"omitempty,gt=0"`
	ClearTeam   bool       `json:"clear_team"`
	Position    *string    `json:"position" validate:"omitempty,oneof=goalkeeper defender midfielder forward"`
	Nationality *string    `json:"nationality" validate:"omitempty,max=80"`
	ShirtNumber *int       `json:"shirt_number" validate:"omitempty,gte=1,lte=99"`
	PhotoURL    *string    `json:"photo_url" validate:"omitempty,url"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "name", in.Name)
	record.PutNullable(rec, "team_id", in.TeamID, in.ClearTeam)
	record.Put(rec, "position", in.Position)
	record.Put(rec, "nationality", in.Nationality)
	record.Put(rec, "shirt_number", in.ShirtNumber)
	record.Put(rec, "photo_url", in.PhotoURL)
	record.Put(rec, "date_of_birth", in.DateOfBirth)
	return rec, nil
}

// TopScorer is one row of a league scoring chart built from match events.
type TopScorer struct {
	PlayerID  int64  `db:"player_id" json:"player_id"`
	Name      string `db:"player_name" json:"player_name"`
	TeamID    int64  `db:"team_id" json:"team_id"`
	TeamName  string `db:"team_name" json:"team_name"`
	Goals     int    `db:"goals" json:"goals"`
	Penalties int    `db:"penalties" json:"penalties"`
}
