package footballdata

import "time"

// Typed views of the upstream "response" arrays. Only the members the portal
// reads are declared.

type TeamRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner,omitempty"`
}

type LeagueRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Round   string `json:"round,omitempty"`
}

type FixtureItem struct {
	Fixture struct {
		ID      int64     `json:"id"`
		Referee string    `json:"referee"`
		Date    time.Time `json:"date"`
		Venue   struct {
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
		Status FixtureStatus `json:"status"`
	} `json:"fixture"`
	League LeagueRef `json:"league"`
	Teams  struct {
		Home TeamRef `json:"home"`
		Away TeamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type FixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type StandingsItem struct {
	League struct {
		LeagueRef
		Standings [][]StandingRow `json:"standings"`
	} `json:"league"`
}

type StandingRow struct {
	Rank        int          `json:"rank"`
	Team        TeamRef      `json:"team"`
	Points      int          `json:"points"`
	GoalsDiff   int          `json:"goalsDiff"`
	Group       string       `json:"group"`
	Form        string       `json:"form"`
	Description string       `json:"description"`
	All         StandingLine `json:"all"`
}

type StandingLine struct {
	Played int `json:"played"`
	Win    int `json:"win"`
	Draw   int `json:"draw"`
	Lose   int `json:"lose"`
	Goals  struct {
		For     int `json:"for"`
		Against int `json:"against"`
	} `json:"goals"`
}

type ScorerItem struct {
	Player struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Nationality string `json:"nationality"`
		Photo       string `json:"photo"`
	} `json:"player"`
	Statistics []struct {
		Team  TeamRef `json:"team"`
		Goals struct {
			Total   *int `json:"total"`
			Assists *int `json:"assists"`
		} `json:"goals"`
		Penalty struct {
			Scored *int `json:"scored"`
		} `json:"penalty"`
	} `json:"statistics"`
}

type EventItem struct {
	Time struct {
		Elapsed int  `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team   TeamRef `json:"team"`
	Player struct {
		ID   *int64 `json:"id"`
		Name string `json:"name"`
	} `json:"player"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type LineupItem struct {
	Team        TeamRef        `json:"team"`
	Formation   string         `json:"formation"`
	StartXI     []LineupPlayer `json:"startXI"`
	Substitutes []LineupPlayer `json:"substitutes"`
}

type LineupPlayer struct {
	Player struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Number *int   `json:"number"`
		Pos    string `json:"pos"`
	} `json:"player"`
}
