package match

import (
	"testing"
	"time"
)

func TestCreateInput_RecordDefaultsStatus(t *testing.T) {
	kickoff := time.Date(2026, 10, 24, 15, 0, 0, 0, time.FixedZone("BST", 3600))
	rec, err := CreateInput{LeagueID: 1, HomeTeamID: 2, AwayTeamID: 3, KickoffAt: kickoff}.Record()
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if rec["status"] != StatusScheduled {
		t.Fatalf("expected scheduled status, got %v", rec["status"])
	}
	if got := rec["kickoff_at"].(time.Time); got.Location() != time.UTC || !got.Equal(kickoff) {
		t.Fatalf("expected kickoff normalised to UTC, got %v", got)
	}
	if _, ok := rec["home_score"]; ok {
		t.Fatalf("unset score must not be projected")
	}
}

func TestUpdateInput_ScoreOnly(t *testing.T) {
	home, away := 2, 1
	rec, _ := UpdateInput{HomeScore: &home, AwayScore: &away}.Record()
	if len(rec) != 2 || rec["home_score"] != 2 || rec["away_score"] != 1 {
		t.Fatalf("unexpected projection: %+v", rec)
	}
}
