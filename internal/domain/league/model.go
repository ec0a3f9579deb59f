package league

import "github.com/riskibarqy/football-portal/internal/platform/record"

var Schema = record.Schema{
	Collection:   "leagues",
	Fields:       []string{"id", "name", "country", "logo_url", "season", "external_id", "created_at", "updated_at"},
	Writable:     []string{"name", "country", "logo_url", "season", "external_id"},
	Searchable:   []string{"name", "country"},
	DefaultOrder: "name ASC",
	Timestamps:   true,
}

type CreateInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	Country    string `json:"country" validate:"required,max=80"`
	LogoURL    string `json:"logo_url" validate:"omitempty,url"`
	Season     string `json:"season" validate:"required,max=20"`
	ExternalID *int64 `json:"external_id" validate:"omitempty,gt=0"`
}

func (in CreateInput) Record() (record.Record, error) {
	rec := record.Record{
		"name":     in.Name,
		"country":  in.Country,
		"logo_url": in.LogoURL,
		"season":   in.Season,
	}
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}

type UpdateInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=120"`
	Country    *string `json:"country" validate:"omitempty,min=1,max=80"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,url"`
	Season     *string `json:"season" validate:"omitempty,min=1,max=20"`
	ExternalID *int64  `json:"external_id" validate:"omitempty,gt=0"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "name", in.Name)
	record.Put(rec, "country", in.Country)
	record.Put(rec, "logo_url", in.LogoURL)
	record.Put(rec, "season", in.Season)
	record.Put(rec, "external_id", in.ExternalID)
	return rec, nil
}

// Standing is one table row computed from finished matches.
type Standing struct {
	Position       int    `db:"-" json:"position"`
	TeamID         int64  `db:"team_id" json:"team_id"`
	TeamName       string `db:"team_name" json:"team_name"`
	Played         int    `db:"played" json:"played"`
	Won            int    `db:"won" json:"won"`
	Drawn          int    `db:"drawn" json:"drawn"`
	Lost           int    `db:"lost" json:"lost"`
	GoalsFor       int    `db:"goals_for" json:"goals_for"`
	GoalsAgainst   int    `db:"goals_against" json:"goals_against"`
	GoalDifference int    `db:"goal_difference" json:"goal_difference"`
	Points         int    `db:"points" json:"points"`
}
