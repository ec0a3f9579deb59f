package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("load article: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation articles does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestUTCNowTruncatesToSeconds(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	fixed := time.Date(2026, 3, 14, 20, 15, 30, 987654321, loc)

	got := utcNow(func() time.Time { return fixed })
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %s", got.Location())
	}
	if got.Nanosecond() != 0 || got.Hour() != 13 {
		t.Fatalf("unexpected timestamp %s", got)
	}
}
