package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ahmednooor/SRS/app/config"
)

func openExecutorTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "executor.db")
	db, err := sql.Open("sqlite", config.DSN(path))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if _, err := db.Exec(`CREATE TABLE items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		qty INTEGER NOT NULL
	)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestExecuteInsertReturnsGeneratedIdentity(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	res, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", "pencil"), sql.Named("qty", 3))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if res.Kind != KindInsertID {
		t.Fatalf("kind = %v, want KindInsertID", res.Kind)
	}
	if res.InsertID != 1 {
		t.Fatalf("insert id = %d, want 1", res.InsertID)
	}

	res, err = Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", "eraser"), sql.Named("qty", 5))
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if res.InsertID != 2 {
		t.Fatalf("second insert id = %d, want 2", res.InsertID)
	}
}

func TestExecuteSelectReturnsOrderedRowMaps(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"pencil", "eraser", "ruler"} {
		if _, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
			sql.Named("name", name), sql.Named("qty", 1)); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	res, err := Execute(ctx, db, `SELECT * FROM items ORDER BY name`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if res.Kind != KindRows {
		t.Fatalf("kind = %v, want KindRows", res.Kind)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(res.Rows))
	}
	want := []string{"eraser", "pencil", "ruler"}
	for i, row := range res.Rows {
		if got := rowString(row, "name"); got != want[i] {
			t.Fatalf("row %d name = %q, want %q", i, got, want[i])
		}
	}
}

func TestExecuteInsertReturningTakesRowSetPath(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	res, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty) RETURNING id`,
		sql.Named("name", "pencil"), sql.Named("qty", 3))
	if err != nil {
		t.Fatalf("insert returning: %v", err)
	}
	if res.Kind != KindRows {
		t.Fatalf("kind = %v, want KindRows", res.Kind)
	}
	if len(res.Rows) != 1 || rowInt64(res.Rows[0], "id") != 1 {
		t.Fatalf("rows = %+v, want one row with id 1", res.Rows)
	}
}

func TestExecuteUpdateReturnsAffectedCount(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	if _, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", "pencil"), sql.Named("qty", 3)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	res, err := Execute(ctx, db, `UPDATE items SET qty=:qty WHERE name=:name`,
		sql.Named("qty", 9), sql.Named("name", "pencil"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Kind != KindAffected || res.Affected != 1 {
		t.Fatalf("got kind=%v affected=%d, want KindAffected/1", res.Kind, res.Affected)
	}

	// A no-op update is a legitimate zero, not an error.
	res, err = Execute(ctx, db, `UPDATE items SET qty=:qty WHERE name=:name`,
		sql.Named("qty", 9), sql.Named("name", "missing"))
	if err != nil {
		t.Fatalf("no-op update: %v", err)
	}
	if res.Kind != KindAffected || res.Affected != 0 {
		t.Fatalf("got kind=%v affected=%d, want KindAffected/0", res.Kind, res.Affected)
	}
}

func TestExecuteConstraintViolationReturnsSentinel(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	if _, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", "pencil"), sql.Named("qty", 3)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", "pencil"), sql.Named("qty", 7))
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("duplicate insert err = %v, want ErrConstraint", err)
	}

	_, err = Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, NULL)`,
		sql.Named("name", "ruler"))
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("not-null insert err = %v, want ErrConstraint", err)
	}

	res, err := Execute(ctx, db, `SELECT COUNT(*) AS n FROM items`)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n := rowInt64(res.Rows[0], "n"); n != 1 {
		t.Fatalf("row count = %d, want 1 (rejected writes must not land)", n)
	}
}

func TestExecuteOtherFailuresPropagate(t *testing.T) {
	db := openExecutorTestDB(t)

	_, err := Execute(context.Background(), db, `UPDATE nonexistent SET qty=1`)
	if err == nil {
		t.Fatal("expected error for malformed statement")
	}
	if errors.Is(err, ErrConstraint) {
		t.Fatalf("unrelated failure must not collapse into ErrConstraint: %v", err)
	}
}

func TestExecuteBindsQuotedValuesSafely(t *testing.T) {
	db := openExecutorTestDB(t)
	ctx := context.Background()

	hostile := `O'Brien"; DROP TABLE items; --`
	if _, err := Execute(ctx, db, `INSERT INTO items (name, qty) VALUES (:name, :qty)`,
		sql.Named("name", hostile), sql.Named("qty", 1)); err != nil {
		t.Fatalf("insert quoted value: %v", err)
	}

	res, err := Execute(ctx, db, `SELECT name FROM items WHERE name=:name`, sql.Named("name", hostile))
	if err != nil {
		t.Fatalf("select quoted value: %v", err)
	}
	if len(res.Rows) != 1 || rowString(res.Rows[0], "name") != hostile {
		t.Fatalf("quoted value did not round-trip: %+v", res.Rows)
	}
}

func TestLeadingKeywordSkipsComments(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{"SELECT 1", "SELECT"},
		{"  \n\tselect 1", "SELECT"},
		{"-- note\nINSERT INTO t VALUES (1)", "INSERT"},
		{"/* block */ UPDATE t SET a=1", "UPDATE"},
		{"WITH x AS (SELECT 1) SELECT * FROM x", "WITH"},
	}
	for _, tt := range tests {
		if got := leadingKeyword(tt.stmt); got != tt.want {
			t.Errorf("leadingKeyword(%q) = %q, want %q", tt.stmt, got, tt.want)
		}
	}
}

func TestContainsWordMatchesKeywordsOnly(t *testing.T) {
	if containsWord(`UPDATE t SET returning_flag=1`, "RETURNING") {
		t.Fatal("matched RETURNING inside an identifier")
	}
	if !containsWord(`DELETE FROM t RETURNING id`, "RETURNING") {
		t.Fatal("missed RETURNING keyword")
	}
}
