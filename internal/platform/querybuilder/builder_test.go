package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name", "status").
		From("players").
		Where(Eq("status", "available"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(25).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name, status FROM players WHERE status = $1 AND deleted_at IS NULL ORDER BY name LIMIT 25"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "available" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderIn(t *testing.T) {
	query, args, err := Select("public_id").
		From("players").
		Where(In("status", []any{"available", "unsold"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM players WHERE status IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	// Empty IN lists must never match anything.
	query, _, err = Select("public_id").From("players").Where(In("status", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty-IN query: %v", err)
	}
	if want := "SELECT public_id FROM players WHERE 1=0"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("public_id", "name", "initial_budget", "current_budget").
		Values("team_1", "Mumbai Indians", int64(10000000), int64(10000000)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name, initial_budget, current_budget) VALUES ($1, $2, $3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "Mumbai Indians" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		Internal string `db:"-"`
	}

	query, args, err := InsertModel("teams", row{PublicID: "team_1", Name: "Chennai Super Kings", Internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "team_1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		SetExpr("current_budget", "current_budget - ?", int64(500000)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "team_1"), Expr("current_budget >= ?", int64(500000))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET current_budget = current_budget - $1, updated_at = NOW() WHERE public_id = $2 AND current_budget >= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(500000) || args[1] != "team_1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").
		Where(Eq("public_id", "player_9")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM players WHERE public_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "player_9" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("  ").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}
