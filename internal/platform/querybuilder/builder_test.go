package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("users").
		Where(Eq("role", "admin"), IsNull("deleted_at")).
		OrderBy("id DESC").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM users WHERE role = $1 AND deleted_at IS NULL ORDER BY id DESC LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "admin" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrContainsWithQuestionPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("articles").
		Where(Or(Contains("title", "Derby"), Contains("content", "50%_off"))).
		PlaceholderFormat(Question).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := `SELECT id FROM articles WHERE (LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "%derby%" || args[1] != `%50\%\_off%` {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyOrAndIn(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(Or(), In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0 AND 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("email", "name").
		Values("ed@example.com", "Ed").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "ed@example.com" || args[1] != "Ed" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("articles").
		Set("title", "new").
		SetExpr("views", "views + ?", 1).
		Where(Eq("id", 7)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE articles SET title = $1, views = views + $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "new" || args[1] != 1 || args[2] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("matches").Where(Eq("id", int64(3))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM matches WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("matches").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertModel_SkipsReadonlyColumns(t *testing.T) {
	type row struct {
		ID      int64  `db:"id,readonly"`
		MatchID int64  `db:"match_id"`
		Kind    string `db:"kind"`
		ignored string
	}

	query, args, err := InsertModel("match_events", row{ID: 9, MatchID: 4, Kind: "goal"}, "", Question)
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if query != "INSERT INTO match_events (match_id, kind) VALUES (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != int64(4) || args[1] != "goal" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "title", want: true},
		{in: "matches.home_team_id", want: true},
		{in: "_private", want: true},
		{in: "title; DROP TABLE users", want: false},
		{in: "1abc", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.in); got != tt.want {
			t.Fatalf("IsIdentifier(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
