package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConstraint is returned by Execute when the store rejects a write because
// of a uniqueness, foreign-key or not-null constraint. Callers that care about
// duplicates check for it with errors.Is; every other execution failure
// propagates unchanged and is never retried here.
var ErrConstraint = errors.New("statement rejected by constraint")

// Queryer is the subset of *sql.DB and *sql.Tx the executor needs, so logical
// operations can run inside one transaction.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ResultKind identifies which of the three mutually exclusive result shapes a
// statement produced.
type ResultKind int

const (
	// KindRows means the statement returned a row set (SELECT, or an
	// INSERT/UPDATE/DELETE with a RETURNING clause).
	KindRows ResultKind = iota
	// KindInsertID means the statement was an insert and the store reported
	// the generated identity.
	KindInsertID
	// KindAffected means the statement reported an affected-row count, which
	// may legitimately be zero.
	KindAffected
)

// Result is the shape-inferred outcome of one statement.
type Result struct {
	Kind     ResultKind
	Rows     []map[string]any
	InsertID int64
	Affected int64
}

// Execute runs one statement with named parameters against q and infers the
// result shape from the statement itself. Parameters must be passed as
// sql.Named values matching :name placeholders; they are bound by the driver,
// never rendered into the statement text. The executor holds no state and is
// safe to share for the life of the process.
func Execute(ctx context.Context, q Queryer, statement string, params ...any) (*Result, error) {
	if returnsRows(statement) {
		rows, err := q.QueryContext(ctx, statement, params...)
		if err != nil {
			if isConstraintError(err) {
				return nil, ErrConstraint
			}
			return nil, fmt.Errorf("execute query: %w", err)
		}
		defer rows.Close()

		mapped, err := scanRows(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindRows, Rows: mapped}, nil
	}

	res, err := q.ExecContext(ctx, statement, params...)
	if err != nil {
		if isConstraintError(err) {
			return nil, ErrConstraint
		}
		return nil, fmt.Errorf("execute statement: %w", err)
	}

	if isInsert(statement) {
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("generated identity: %w", err)
		}
		return &Result{Kind: KindInsertID, InsertID: id}, nil
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("affected rows: %w", err)
	}
	return &Result{Kind: KindAffected, Affected: affected}, nil
}

// scanRows converts a row set into ordered column-name keyed maps. Row order
// is exactly as returned by the store.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// returnsRows reports whether the statement produces a result set.
func returnsRows(statement string) bool {
	switch leadingKeyword(statement) {
	case "SELECT", "WITH", "PRAGMA":
		return true
	}
	return containsWord(statement, "RETURNING")
}

func isInsert(statement string) bool {
	kw := leadingKeyword(statement)
	return kw == "INSERT" || kw == "REPLACE"
}

// leadingKeyword returns the first SQL keyword, skipping whitespace and
// comments.
func leadingKeyword(statement string) string {
	s := strings.TrimSpace(statement)
	for {
		switch {
		case strings.HasPrefix(s, "--"):
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = strings.TrimSpace(s[i+1:])
				continue
			}
			return ""
		case strings.HasPrefix(s, "/*"):
			if i := strings.Index(s, "*/"); i >= 0 {
				s = strings.TrimSpace(s[i+2:])
				continue
			}
			return ""
		}
		break
	}
	end := len(s)
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			end = i
			break
		}
	}
	return strings.ToUpper(s[:end])
}

// containsWord reports whether word appears in the statement as a standalone
// keyword rather than inside an identifier.
func containsWord(statement, word string) bool {
	upper := strings.ToUpper(statement)
	for off := 0; ; {
		i := strings.Index(upper[off:], word)
		if i < 0 {
			return false
		}
		i += off
		before := i == 0 || !isWordByte(upper[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(upper) || !isWordByte(upper[afterIdx])
		if before && after {
			return true
		}
		off = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// isConstraintError reports whether err is a uniqueness, foreign-key or
// not-null rejection. Anything outside this narrow class is unrecoverable at
// this layer.
func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT,
		sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return true
	}
	return false
}
